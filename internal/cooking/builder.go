// Package cooking builds the cross-budget cooking plan view: timed schedules
// per confirmed event in a window, recomputed on demand and never persisted
// on their own.
package cooking

import (
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/MarianoPoeta/magnus/internal/budget"
	"github.com/MarianoPoeta/magnus/internal/task"
)

// Build assembles the cooking schedules for every confirmed budget whose
// event date falls inside [start, end]. Schedules attached to cooking tasks
// are used as-is; cooking tasks without one get a schedule derived from the
// task; budgets with no cooking tasks at all get a synthesized lunch plan,
// plus a breakfast plan above 30 guests. Output is ordered by event date,
// then cooking time (HH:MM is zero-padded, so string order is time order).
func Build(budgets []*budget.Budget, tasks []*task.Task, start, end time.Time) []*task.CookingSchedule {
	var schedules []*task.CookingSchedule

	for _, b := range budgets {
		if b.Status != budget.StatusConfirmed {
			continue
		}
		if b.EventDate.Before(start) || b.EventDate.After(end) {
			continue
		}

		cookingTasks := cookingTasksFor(b, tasks)
		if len(cookingTasks) == 0 {
			schedules = append(schedules, task.NewBasicSchedule(b, task.MealLunch))
			if b.GuestCount > 30 {
				schedules = append(schedules, task.NewBasicSchedule(b, task.MealBreakfast))
			}
			continue
		}

		for _, t := range cookingTasks {
			if t.CookingSchedule != nil {
				schedules = append(schedules, t.CookingSchedule)
			} else {
				schedules = append(schedules, fromTask(t, b))
			}
		}
	}

	sort.SliceStable(schedules, func(i, j int) bool {
		if !schedules[i].EventDate.Equal(schedules[j].EventDate) {
			return schedules[i].EventDate.Before(schedules[j].EventDate)
		}
		return schedules[i].CookingTime < schedules[j].CookingTime
	})
	return schedules
}

func cookingTasksFor(b *budget.Budget, tasks []*task.Task) []*task.Task {
	var out []*task.Task
	for _, t := range tasks {
		if t.BudgetID == b.ID && t.Type == task.TypeCooking && t.Role == task.RoleCook {
			out = append(out, t)
		}
	}
	return out
}

// fromTask derives a schedule for a cooking task that carries none.
func fromTask(t *task.Task, b *budget.Budget) *task.CookingSchedule {
	ingredients := t.ProductRequirements
	if len(ingredients) == 0 {
		ingredients = task.BasicIngredients(b, task.MealLunch)
	}
	menuName := t.Description
	if menuName == "" {
		menuName = "Menú"
	}
	return &task.CookingSchedule{
		ID:                  ulid.Make().String(),
		EventDate:           b.EventDate,
		CookingTime:         task.CookStartTime(b.EventDate, b.GuestCount),
		MealType:            MealTypeFromDescription(t.Description),
		MenuName:            menuName,
		GuestCount:          b.GuestCount,
		Ingredients:         ingredients,
		SpecialInstructions: t.Notes,
	}
}

// MealTypeFromDescription infers the meal from free text, first match wins:
// breakfast, dinner, snack, then lunch as the default.
func MealTypeFromDescription(description string) task.MealType {
	d := strings.ToLower(description)
	switch {
	case strings.Contains(d, "desayuno") || strings.Contains(d, "breakfast"):
		return task.MealBreakfast
	case strings.Contains(d, "cena") || strings.Contains(d, "dinner"):
		return task.MealDinner
	case strings.Contains(d, "merienda") || strings.Contains(d, "snack"):
		return task.MealSnack
	default:
		return task.MealLunch
	}
}

// IngredientPatch is a partial update for one ingredient; nil fields are
// left untouched.
type IngredientPatch struct {
	ProductName *string  `json:"productName,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	Unit        *string  `json:"unit,omitempty"`
	Category    *string  `json:"category,omitempty"`
	IsPurchased *bool    `json:"isPurchased,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

// UpdateIngredient applies a patch to exactly one ingredient inside exactly
// one schedule and returns the updated slice. Unmatched schedule or
// ingredient ids are no-ops, not errors: the edit surface is forgiving.
func UpdateIngredient(schedules []*task.CookingSchedule, scheduleID, ingredientID string, patch IngredientPatch) []*task.CookingSchedule {
	out := make([]*task.CookingSchedule, len(schedules))
	for i, s := range schedules {
		if s.ID != scheduleID {
			out[i] = s
			continue
		}
		updated := *s
		updated.Ingredients = make([]task.ProductRequirement, len(s.Ingredients))
		copy(updated.Ingredients, s.Ingredients)
		for j := range updated.Ingredients {
			if updated.Ingredients[j].ID != ingredientID {
				continue
			}
			applyPatch(&updated.Ingredients[j], patch)
		}
		out[i] = &updated
	}
	return out
}

func applyPatch(ing *task.ProductRequirement, patch IngredientPatch) {
	if patch.ProductName != nil {
		ing.ProductName = *patch.ProductName
	}
	if patch.Quantity != nil {
		ing.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		ing.Unit = *patch.Unit
	}
	if patch.Category != nil {
		ing.Category = *patch.Category
	}
	if patch.IsPurchased != nil {
		ing.IsPurchased = *patch.IsPurchased
	}
	if patch.Notes != nil {
		ing.Notes = *patch.Notes
	}
}

// ScheduleForDay filters schedules to those on the given calendar day.
func ScheduleForDay(schedules []*task.CookingSchedule, day time.Time) []*task.CookingSchedule {
	y, m, d := day.Date()
	var out []*task.CookingSchedule
	for _, s := range schedules {
		sy, sm, sd := s.EventDate.Date()
		if sy == y && sm == m && sd == d {
			out = append(out, s)
		}
	}
	return out
}

// Upcoming returns at most limit schedules whose combined event date and
// cooking time lie strictly after now, preserving Build's ordering.
func Upcoming(schedules []*task.CookingSchedule, now time.Time, limit int) []*task.CookingSchedule {
	var out []*task.CookingSchedule
	for _, s := range schedules {
		if !cookingInstant(s).After(now) {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// cookingInstant combines the schedule's event date with its HH:MM cooking
// time. A malformed time falls back to the event date itself.
func cookingInstant(s *task.CookingSchedule) time.Time {
	t, err := time.Parse("15:04", s.CookingTime)
	if err != nil {
		return s.EventDate
	}
	y, m, d := s.EventDate.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, s.EventDate.Location())
}
