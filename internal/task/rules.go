package task

// Rule carries the scheduling defaults for one task type.
type Rule struct {
	DefaultDuration int // hours
	DefaultPriority Priority
	IdealDaysBefore int // due date = event date - IdealDaysBefore
	Role            Role
}

// ruleFor resolves the rule table entry for a task type. The switch is
// exhaustive over the closed Type set; unknown values report !ok.
func ruleFor(t Type) (Rule, bool) {
	switch t {
	case TypeShopping:
		return Rule{DefaultDuration: 3, DefaultPriority: PriorityHigh, IdealDaysBefore: 2, Role: RoleLogistics}, true
	case TypeReservation:
		return Rule{DefaultDuration: 1, DefaultPriority: PriorityUrgent, IdealDaysBefore: 7, Role: RoleLogistics}, true
	case TypeDelivery:
		return Rule{DefaultDuration: 2, DefaultPriority: PriorityHigh, IdealDaysBefore: 1, Role: RoleLogistics}, true
	case TypePreparation:
		return Rule{DefaultDuration: 4, DefaultPriority: PriorityMedium, IdealDaysBefore: 1, Role: RoleCook}, true
	case TypeCooking:
		return Rule{DefaultDuration: 6, DefaultPriority: PriorityUrgent, IdealDaysBefore: 0, Role: RoleCook}, true
	case TypeSetup:
		return Rule{DefaultDuration: 2, DefaultPriority: PriorityMedium, IdealDaysBefore: 0, Role: RoleLogistics}, true
	case TypeCleanup:
		return Rule{DefaultDuration: 2, DefaultPriority: PriorityLow, IdealDaysBefore: 0, Role: RoleLogistics}, true
	case TypeNeed:
		return Rule{DefaultDuration: 1, DefaultPriority: PriorityMedium, IdealDaysBefore: 1, Role: RoleLogistics}, true
	}
	return Rule{}, false
}

// RuleFor is the exported rule table lookup.
func RuleFor(t Type) (Rule, bool) {
	return ruleFor(t)
}
