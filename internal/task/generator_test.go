package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarianoPoeta/magnus/internal/budget"
)

func testBudget(guests int) *budget.Budget {
	return &budget.Budget{
		ID:         "budget-1",
		Name:       "Evento corporativo",
		ClientName: "Acme",
		Status:     budget.StatusConfirmed,
		EventDate:  time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC),
		GuestCount: guests,
	}
}

func TestGenerateSmallEvent(t *testing.T) {
	gen := NewGeneratorWithClock(func() time.Time {
		return time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	})
	b := testBudget(10)

	tasks := gen.Generate(b)
	require.Len(t, tasks, 6)

	wantOrder := []Type{TypeReservation, TypeShopping, TypeDelivery, TypePreparation, TypeCooking, TypeSetup}
	for i, tt := range wantOrder {
		assert.Equal(t, tt, tasks[i].Type)
	}

	for _, task := range tasks {
		assert.Equal(t, b.ID, task.BudgetID)
		assert.Equal(t, StatusTodo, task.Status)
		assert.True(t, task.AutoScheduled)
		assert.NotEmpty(t, task.ID)
		assert.NotEmpty(t, task.Description)

		rule, ok := RuleFor(task.Type)
		require.True(t, ok)
		assert.Equal(t, rule.Role, task.Role)
		assert.Equal(t, rule.DefaultPriority, task.Priority)
		assert.Equal(t, rule.DefaultDuration, task.EstimatedDuration)
		assert.Equal(t, b.EventDate.AddDate(0, 0, -rule.IdealDaysBefore), task.DueDate)
	}
}

func TestGenerateLargeEventAddsNeedTask(t *testing.T) {
	gen := NewGenerator()
	tasks := gen.Generate(testBudget(21))
	require.Len(t, tasks, 7)
	assert.Equal(t, TypeNeed, tasks[6].Type)
}

func TestGenerateShoppingDependencies(t *testing.T) {
	gen := NewGenerator()
	tasks := gen.Generate(testBudget(30))

	byType := make(map[Type]*Task)
	for _, task := range tasks {
		byType[task.Type] = task
	}
	shopping := byType[TypeShopping]
	require.NotNil(t, shopping)

	for _, tt := range []Type{TypeDelivery, TypePreparation, TypeCooking} {
		consumer := byType[tt]
		require.NotNil(t, consumer)
		require.Len(t, consumer.Dependencies, 1, "type %s", tt)
		dep := consumer.Dependencies[0]
		assert.Equal(t, shopping.ID, dep.DependsOnTaskID)
		assert.Equal(t, DependencyRequires, dep.Type)
	}

	assert.Empty(t, byType[TypeReservation].Dependencies)
	assert.Empty(t, byType[TypeSetup].Dependencies)
	assert.Empty(t, byType[TypeNeed].Dependencies)
}

func TestGenerateAttachesRequirementsAndSchedule(t *testing.T) {
	gen := NewGenerator()
	tasks := gen.Generate(testBudget(40))

	var shopping, cooking *Task
	for _, task := range tasks {
		switch task.Type {
		case TypeShopping:
			shopping = task
		case TypeCooking:
			cooking = task
		}
	}
	require.NotNil(t, shopping)
	require.NotNil(t, cooking)
	assert.NotEmpty(t, shopping.ProductRequirements)
	require.NotNil(t, cooking.CookingSchedule)
	assert.Equal(t, MealLunch, cooking.CookingSchedule.MealType)
	assert.Equal(t, 40, cooking.CookingSchedule.GuestCount)
}

func TestGenerateTwiceProducesFreshIDs(t *testing.T) {
	gen := NewGenerator()
	b := testBudget(25)

	first := gen.Generate(b)
	second := gen.Generate(b)
	require.Equal(t, len(first), len(second))

	seen := make(map[string]bool)
	for _, task := range first {
		seen[task.ID] = true
	}
	for i, task := range second {
		assert.False(t, seen[task.ID], "duplicate id across runs")
		assert.Equal(t, first[i].Type, task.Type)
		assert.Equal(t, first[i].Priority, task.Priority)
		assert.Equal(t, first[i].DueDate, task.DueDate)
	}
}

func TestBasicRequirements(t *testing.T) {
	tests := []struct {
		name   string
		guests int
		want   map[string]float64 // product name -> quantity
	}{
		{
			name:   "small event skips ice and napkins",
			guests: 10,
			want: map[string]float64{
				"Bebidas variadas": 15,
				"Platos y vasos desechables": 10,
			},
		},
		{
			name:   "napkins above 15 guests",
			guests: 16,
			want: map[string]float64{
				"Bebidas variadas": 24,
				"Platos y vasos desechables": 16,
				"Servilletas": 2,
			},
		},
		{
			name:   "full set above 20 guests",
			guests: 45,
			want: map[string]float64{
				"Bebidas variadas": 68, // ceil(45 * 1.5)
				"Platos y vasos desechables": 45,
				"Bolsas de hielo": 3, // ceil(45 / 20)
				"Servilletas": 5, // ceil(45 / 10)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqs := BasicRequirements(&budget.Budget{ID: "b", GuestCount: tt.guests, EventDate: time.Now()})
			require.Len(t, reqs, len(tt.want))
			for _, req := range reqs {
				want, ok := tt.want[req.ProductName]
				require.True(t, ok, "unexpected product %q", req.ProductName)
				assert.Equal(t, want, req.Quantity, req.ProductName)
				assert.NotEmpty(t, req.Unit)
				assert.NotEmpty(t, req.Category)
			}
		})
	}
}

func TestBasicRequirementsMonotonic(t *testing.T) {
	// More guests never means less of anything.
	prev := make(map[string]float64)
	for guests := 1; guests <= 120; guests++ {
		reqs := BasicRequirements(&budget.Budget{GuestCount: guests})
		for _, req := range reqs {
			assert.GreaterOrEqual(t, req.Quantity, prev[req.ProductName], "guests=%d product=%s", guests, req.ProductName)
			prev[req.ProductName] = req.Quantity
		}
	}
}

func TestCookStartTime(t *testing.T) {
	event := time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		guests int
		want   string
	}{
		{10, "18:00"},
		{20, "18:00"},
		{21, "17:00"},
		{50, "17:00"},
		{51, "16:00"},
		{60, "16:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CookStartTime(event, tt.guests), "guests=%d", tt.guests)
	}
}

func TestNewBasicSchedule(t *testing.T) {
	b := testBudget(25)

	lunch := NewBasicSchedule(b, MealLunch)
	assert.Equal(t, MealLunch, lunch.MealType)
	assert.Equal(t, "17:00", lunch.CookingTime)
	assert.Equal(t, b.EventDate, lunch.EventDate)
	assert.NotEmpty(t, lunch.Ingredients)

	breakfast := NewBasicSchedule(b, MealBreakfast)
	assert.Equal(t, "07:00", breakfast.CookingTime)
	assert.Equal(t, "Desayuno", breakfast.MenuName)
}

func TestBasicIngredients(t *testing.T) {
	b := testBudget(40)

	lunch := BasicIngredients(b, MealLunch)
	require.Len(t, lunch, 3)
	quantities := make(map[string]float64)
	for _, ing := range lunch {
		quantities[ing.ProductName] = ing.Quantity
	}
	assert.Equal(t, 4.0, quantities["Arroz"])            // ceil(40 * 0.10)
	assert.Equal(t, 10.0, quantities["Pollo"])           // ceil(40 * 0.25)
	assert.Equal(t, 6.0, quantities["Vegetales mixtos"]) // ceil(40 * 0.15)

	breakfast := BasicIngredients(b, MealBreakfast)
	require.Len(t, breakfast, 2)
	quantities = make(map[string]float64)
	for _, ing := range breakfast {
		quantities[ing.ProductName] = ing.Quantity
	}
	assert.Equal(t, 10.0, quantities["Pan tostado"]) // ceil(40 / 4)
	assert.Equal(t, 2.0, quantities["Café"])        // ceil(40 / 20)
}

func TestSortForRole(t *testing.T) {
	due := func(day int) time.Time { return time.Date(2026, 10, day, 0, 0, 0, 0, time.UTC) }
	tasks := []*Task{
		{ID: "a", Role: RoleCook, Priority: PriorityMedium, DueDate: due(3)},
		{ID: "b", Role: RoleLogistics, Priority: PriorityUrgent, DueDate: due(5)},
		{ID: "c", Role: RoleCook, Priority: PriorityUrgent, DueDate: due(4)},
		{ID: "d", Role: RoleCook, Priority: PriorityMedium, DueDate: due(1)},
	}

	sorted := SortForRole(tasks, RoleCook)
	require.Len(t, sorted, 3)
	assert.Equal(t, "c", sorted[0].ID)
	assert.Equal(t, "d", sorted[1].ID)
	assert.Equal(t, "a", sorted[2].ID)
}
