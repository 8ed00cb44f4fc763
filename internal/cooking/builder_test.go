package cooking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarianoPoeta/magnus/internal/budget"
	"github.com/MarianoPoeta/magnus/internal/task"
)

var (
	windowStart = time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2026, 10, 31, 23, 59, 59, 0, time.UTC)
)

func confirmedBudget(id string, day, guests int) *budget.Budget {
	return &budget.Budget{
		ID:         id,
		ClientName: "Cliente " + id,
		Status:     budget.StatusConfirmed,
		EventDate:  time.Date(2026, 10, day, 20, 0, 0, 0, time.UTC),
		GuestCount: guests,
	}
}

func cookingTask(budgetID, description string) *task.Task {
	return &task.Task{
		ID:          "task-" + budgetID,
		Type:        task.TypeCooking,
		Description: description,
		BudgetID:    budgetID,
		Role:        task.RoleCook,
	}
}

func TestBuildUsesAttachedSchedule(t *testing.T) {
	b := confirmedBudget("b1", 10, 30)
	attached := &task.CookingSchedule{
		ID:          "s1",
		EventDate:   b.EventDate,
		CookingTime: "12:00",
		MealType:    task.MealDinner,
		MenuName:    "Menú degustación",
		GuestCount:  30,
	}
	ct := cookingTask("b1", "Cocinar cena")
	ct.CookingSchedule = attached

	schedules := Build([]*budget.Budget{b}, []*task.Task{ct}, windowStart, windowEnd)
	require.Len(t, schedules, 1)
	assert.Same(t, attached, schedules[0])
}

func TestBuildDerivesScheduleFromTask(t *testing.T) {
	b := confirmedBudget("b1", 10, 30)
	ct := cookingTask("b1", "Cocinar cena de gala")

	schedules := Build([]*budget.Budget{b}, []*task.Task{ct}, windowStart, windowEnd)
	require.Len(t, schedules, 1)

	s := schedules[0]
	assert.Equal(t, task.MealDinner, s.MealType)
	assert.Equal(t, "17:00", s.CookingTime) // 30 guests -> 3h before a 20:00 event
	assert.Equal(t, 30, s.GuestCount)
	assert.NotEmpty(t, s.Ingredients)
}

func TestBuildSynthesizesLunchWhenNoCookingTasks(t *testing.T) {
	b := confirmedBudget("b1", 10, 25)

	schedules := Build([]*budget.Budget{b}, nil, windowStart, windowEnd)
	require.Len(t, schedules, 1)
	assert.Equal(t, task.MealLunch, schedules[0].MealType)
}

func TestBuildSynthesizesBreakfastForLargeEvents(t *testing.T) {
	b := confirmedBudget("b1", 10, 31)

	schedules := Build([]*budget.Budget{b}, nil, windowStart, windowEnd)
	require.Len(t, schedules, 2)

	meals := map[task.MealType]string{}
	for _, s := range schedules {
		meals[s.MealType] = s.CookingTime
	}
	assert.Contains(t, meals, task.MealLunch)
	assert.Equal(t, "07:00", meals[task.MealBreakfast])
}

func TestBuildSkipsUnconfirmedAndOutOfWindow(t *testing.T) {
	draft := confirmedBudget("b1", 10, 25)
	draft.Status = budget.StatusDraft
	outside := confirmedBudget("b2", 10, 25)
	outside.EventDate = windowEnd.AddDate(0, 2, 0)

	schedules := Build([]*budget.Budget{draft, outside}, nil, windowStart, windowEnd)
	assert.Empty(t, schedules)
}

func TestBuildOrdering(t *testing.T) {
	early := confirmedBudget("b1", 5, 10)
	late := confirmedBudget("b2", 20, 10)

	schedules := Build([]*budget.Budget{late, early}, nil, windowStart, windowEnd)
	require.Len(t, schedules, 2)
	assert.True(t, schedules[0].EventDate.Before(schedules[1].EventDate))
}

func TestBuildOrdersByTimeWithinDay(t *testing.T) {
	small := confirmedBudget("b1", 10, 60) // cooks at 16:00
	big := confirmedBudget("b2", 10, 10)   // cooks at 18:00

	schedules := Build([]*budget.Budget{big, small}, nil, windowStart, windowEnd)
	require.Len(t, schedules, 2)
	assert.Equal(t, "16:00", schedules[0].CookingTime)
	assert.Equal(t, "18:00", schedules[1].CookingTime)
}

func TestMealTypeFromDescription(t *testing.T) {
	tests := []struct {
		description string
		want        task.MealType
	}{
		{"Preparar desayuno continental", task.MealBreakfast},
		{"Breakfast service", task.MealBreakfast},
		{"Cocinar cena de gala", task.MealDinner},
		{"Dinner for forty", task.MealDinner},
		{"Merienda infantil", task.MealSnack},
		{"Snack bar", task.MealSnack},
		{"Cocinar para evento", task.MealLunch},
		{"", task.MealLunch},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MealTypeFromDescription(tt.description), tt.description)
	}
}

func TestUpdateIngredient(t *testing.T) {
	schedules := []*task.CookingSchedule{
		{
			ID: "s1",
			Ingredients: []task.ProductRequirement{
				{ID: "i1", ProductName: "Arroz", Quantity: 4},
				{ID: "i2", ProductName: "Pollo", Quantity: 10},
			},
		},
	}

	qty := 6.0
	updated := UpdateIngredient(schedules, "s1", "i1", IngredientPatch{Quantity: &qty})
	require.Len(t, updated, 1)
	assert.Equal(t, 6.0, updated[0].Ingredients[0].Quantity)
	assert.Equal(t, 10.0, updated[0].Ingredients[1].Quantity)

	// Source stays untouched.
	assert.Equal(t, 4.0, schedules[0].Ingredients[0].Quantity)
}

func TestUpdateIngredientUnmatchedIsNoOp(t *testing.T) {
	schedules := []*task.CookingSchedule{
		{ID: "s1", Ingredients: []task.ProductRequirement{{ID: "i1", Quantity: 4}}},
	}

	qty := 9.0
	updated := UpdateIngredient(schedules, "missing", "i1", IngredientPatch{Quantity: &qty})
	assert.Same(t, schedules[0], updated[0])

	updated = UpdateIngredient(schedules, "s1", "missing", IngredientPatch{Quantity: &qty})
	assert.Equal(t, 4.0, updated[0].Ingredients[0].Quantity)
}

func TestScheduleForDay(t *testing.T) {
	day := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)
	schedules := []*task.CookingSchedule{
		{ID: "s1", EventDate: time.Date(2026, 10, 10, 20, 0, 0, 0, time.UTC)},
		{ID: "s2", EventDate: time.Date(2026, 10, 11, 20, 0, 0, 0, time.UTC)},
	}

	out := ScheduleForDay(schedules, day)
	require.Len(t, out, 1)
	assert.Equal(t, "s1", out[0].ID)
}

func TestUpcoming(t *testing.T) {
	now := time.Date(2026, 10, 10, 17, 0, 0, 0, time.UTC)
	schedules := []*task.CookingSchedule{
		{ID: "past", EventDate: time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC), CookingTime: "16:00"},
		{ID: "soon", EventDate: time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC), CookingTime: "18:00"},
		{ID: "tomorrow", EventDate: time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC), CookingTime: "12:00"},
		{ID: "later", EventDate: time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), CookingTime: "12:00"},
	}

	out := Upcoming(schedules, now, 2)
	require.Len(t, out, 2)
	assert.Equal(t, "soon", out[0].ID)
	assert.Equal(t, "tomorrow", out[1].ID)
}

func TestUpcomingNoLimit(t *testing.T) {
	now := time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC)
	schedules := []*task.CookingSchedule{
		{ID: "s1", EventDate: time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC), CookingTime: "12:00"},
		{ID: "s2", EventDate: time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC), CookingTime: "12:00"},
	}

	out := Upcoming(schedules, now, 0)
	assert.Len(t, out, 2)
}
