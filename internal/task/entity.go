package task

import (
	"sort"
	"time"
)

// Type is the closed set of operational work kinds derived from a budget.
type Type string

const (
	TypeShopping    Type = "shopping"
	TypeReservation Type = "reservation"
	TypeDelivery    Type = "delivery"
	TypePreparation Type = "preparation"
	TypeCooking     Type = "cooking"
	TypeSetup       Type = "setup"
	TypeCleanup     Type = "cleanup"
	TypeNeed        Type = "need"
)

func (t Type) Valid() bool {
	_, ok := ruleFor(t)
	return ok
}

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	// StatusBlocked is set and cleared by dependency resolution outside the
	// engine; the generator never emits it.
	StatusBlocked Status = "blocked"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusBlocked:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Role is the operational team responsible for a task. It is derived 1:1
// from the task type via the rule table.
type Role string

const (
	RoleLogistics Role = "logistics"
	RoleCook      Role = "cook"
)

type DependencyType string

const (
	DependencyBlocks   DependencyType = "blocks"
	DependencyRequires DependencyType = "requires"
	DependencySuggests DependencyType = "suggests"
)

// Dependency names another task of the same budget. The generator only emits
// a linear producer -> consumer chain, never back-edges.
type Dependency struct {
	ID              string         `yaml:"id" json:"id"`
	DependsOnTaskID string         `yaml:"depends_on_task_id" json:"dependsOnTaskId"`
	Type            DependencyType `yaml:"type" json:"dependencyType"`
	Notes           string         `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// ProductRequirement is a quantity of a named product needed for one task.
// (product name, unit) is the consolidation identity across budgets.
type ProductRequirement struct {
	ID          string     `yaml:"id" json:"id"`
	ProductID   string     `yaml:"product_id" json:"productId"`
	ProductName string     `yaml:"product_name" json:"productName"`
	Quantity    float64    `yaml:"quantity" json:"quantity"`
	Unit        string     `yaml:"unit" json:"unit"`
	Category    string     `yaml:"category" json:"category"`
	IsPurchased bool       `yaml:"is_purchased" json:"isPurchased"`
	PurchasedBy string     `yaml:"purchased_by,omitempty" json:"purchasedBy,omitempty"`
	PurchasedAt *time.Time `yaml:"purchased_at,omitempty" json:"purchasedAt,omitempty"`
	Notes       string     `yaml:"notes,omitempty" json:"notes,omitempty"`
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// CookingSchedule is the timed cooking plan for one event's meal.
type CookingSchedule struct {
	ID                  string               `yaml:"id" json:"id"`
	EventDate           time.Time            `yaml:"event_date" json:"eventDate"`
	CookingTime         string               `yaml:"cooking_time" json:"cookingTime"` // HH:MM, zero-padded 24h
	MealType            MealType             `yaml:"meal_type" json:"mealType"`
	MenuName            string               `yaml:"menu_name" json:"menuName"`
	GuestCount          int                  `yaml:"guest_count" json:"guestCount"`
	Ingredients         []ProductRequirement `yaml:"ingredients" json:"ingredients"`
	SpecialInstructions string               `yaml:"special_instructions,omitempty" json:"specialInstructions,omitempty"`
}

type Task struct {
	ID                  string               `yaml:"id" json:"id"`
	Type                Type                 `yaml:"type" json:"type"`
	Description         string               `yaml:"description" json:"description"`
	BudgetID            string               `yaml:"budget_id" json:"relatedBudgetId"`
	Role                Role                 `yaml:"role" json:"assignedToRole"`
	AssignedTo          string               `yaml:"assigned_to,omitempty" json:"assignedTo,omitempty"`
	DueDate             time.Time            `yaml:"due_date" json:"dueDate"`
	EstimatedDuration   int                  `yaml:"estimated_duration" json:"estimatedDuration"` // hours
	Status              Status               `yaml:"status" json:"status"`
	Priority            Priority             `yaml:"priority" json:"priority"`
	Dependencies        []Dependency         `yaml:"dependencies,omitempty" json:"dependencies"`
	AutoScheduled       bool                 `yaml:"auto_scheduled" json:"autoScheduled"`
	ProductRequirements []ProductRequirement `yaml:"product_requirements,omitempty" json:"productRequirements,omitempty"`
	CookingSchedule     *CookingSchedule     `yaml:"cooking_schedule,omitempty" json:"cookingSchedule,omitempty"`
	Notes               string               `yaml:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt           time.Time            `yaml:"created_at" json:"createdAt"`
	UpdatedAt           time.Time            `yaml:"updated_at" json:"updatedAt"`
}

// SortForRole filters tasks by role and orders them for the role's work
// queue: priority descending, then due date ascending.
func SortForRole(tasks []*Task, role Role) []*Task {
	var out []*Task
	for _, t := range tasks {
		if t.Role == role {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority.rank() != out[j].Priority.rank() {
			return out[i].Priority.rank() > out[j].Priority.rank()
		}
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}
