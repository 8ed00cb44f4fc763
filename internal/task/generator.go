package task

import (
	"fmt"
	"math"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/MarianoPoeta/magnus/internal/budget"
)

// Generator derives the operational task set for a confirmed budget. It is
// pure computation: no I/O, no shared state. Inputs must already satisfy
// budget.Validate; the generator does not re-check preconditions.
type Generator struct {
	now func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorWithClock injects a fixed clock for tests.
func NewGeneratorWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Generate produces the ordered task set for one budget: the six base types
// in a fixed sequence, plus a need task for events above 20 guests. Every
// cooking, delivery and preparation task requires the shopping task of the
// same batch. IDs are ULIDs, so repeated runs never collide; regeneration
// appends, it does not replace.
func (g *Generator) Generate(b *budget.Budget) []*Task {
	now := g.now()

	sequence := []Type{TypeReservation, TypeShopping, TypeDelivery, TypePreparation, TypeCooking, TypeSetup}
	if b.GuestCount > 20 {
		sequence = append(sequence, TypeNeed)
	}

	var tasks []*Task
	var shoppingID string
	for _, tt := range sequence {
		rule, _ := ruleFor(tt)
		t := &Task{
			ID:                ulid.Make().String(),
			Type:              tt,
			Description:       describe(tt, b),
			BudgetID:          b.ID,
			Role:              rule.Role,
			DueDate:           b.EventDate.AddDate(0, 0, -rule.IdealDaysBefore),
			EstimatedDuration: rule.DefaultDuration,
			Status:            StatusTodo,
			Priority:          rule.DefaultPriority,
			AutoScheduled:     true,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		switch tt {
		case TypeShopping:
			t.ProductRequirements = BasicRequirements(b)
			shoppingID = t.ID
		case TypeCooking:
			t.CookingSchedule = NewBasicSchedule(b, MealLunch)
		}

		// The sequence places shopping before its consumers, so the
		// dependency target always exists by the time it is referenced.
		if shoppingID != "" && consumesShopping(tt) {
			t.Dependencies = append(t.Dependencies, Dependency{
				ID:              ulid.Make().String(),
				DependsOnTaskID: shoppingID,
				Type:            DependencyRequires,
			})
		}

		tasks = append(tasks, t)
	}
	return tasks
}

func consumesShopping(t Type) bool {
	return t == TypeCooking || t == TypeDelivery || t == TypePreparation
}

func describe(t Type, b *budget.Budget) string {
	client := b.ClientName
	guests := b.GuestCount

	switch t {
	case TypeReservation:
		return fmt.Sprintf("Confirmar reservas para evento de %s (%d invitados)", client, guests)
	case TypeShopping:
		return fmt.Sprintf("Comprar suministros para evento de %s", client)
	case TypeDelivery:
		return fmt.Sprintf("Entregar suministros para evento de %s", client)
	case TypePreparation:
		return fmt.Sprintf("Preparar ingredientes para evento de %s", client)
	case TypeCooking:
		return fmt.Sprintf("Cocinar para evento de %s (%d invitados)", client, guests)
	case TypeSetup:
		return fmt.Sprintf("Montar evento de %s", client)
	case TypeCleanup:
		return fmt.Sprintf("Limpiar después del evento de %s", client)
	case TypeNeed:
		return fmt.Sprintf("Gestionar necesidades especiales para %s", client)
	default:
		return fmt.Sprintf("Tarea para evento de %s", client)
	}
}

// BasicRequirements is the guest-scaled supply heuristic shared by the
// generator and the shopping consolidator fallback. Quantities always round
// up: under-provisioning is worse than over-provisioning.
func BasicRequirements(b *budget.Budget) []ProductRequirement {
	guests := b.GuestCount

	reqs := []ProductRequirement{
		{
			ID:          ulid.Make().String(),
			ProductID:   "beverages",
			ProductName: "Bebidas variadas",
			Quantity:    math.Ceil(float64(guests) * 1.5),
			Unit:        "unidades",
			Category:    "Bebidas",
			Notes:       fmt.Sprintf("Para %d invitados", guests),
		},
		{
			ID:          ulid.Make().String(),
			ProductID:   "disposable-plates",
			ProductName: "Platos y vasos desechables",
			Quantity:    float64(guests),
			Unit:        "sets",
			Category:    "Utensilios",
			Notes:       fmt.Sprintf("Sets completos para %d personas", guests),
		},
	}

	if guests > 20 {
		reqs = append(reqs, ProductRequirement{
			ID:          ulid.Make().String(),
			ProductID:   "ice-bags",
			ProductName: "Bolsas de hielo",
			Quantity:    math.Ceil(float64(guests) / 20),
			Unit:        "bolsas",
			Category:    "Refrigeración",
			Notes:       "Bolsas de 5kg para evento grande",
		})
	}

	if guests > 15 {
		reqs = append(reqs, ProductRequirement{
			ID:          ulid.Make().String(),
			ProductID:   "napkins",
			ProductName: "Servilletas",
			Quantity:    math.Ceil(float64(guests) / 10),
			Unit:        "paquetes",
			Category:    "Utensilios",
			Notes:       "Paquetes de 100 unidades",
		})
	}

	return reqs
}

// CookStartTime applies the fixed lead-time heuristic: cooking starts 4h
// before the event above 50 guests, 3h above 20, otherwise 2h. The result is
// a zero-padded 24h HH:MM string. Not capacity-aware.
func CookStartTime(eventDate time.Time, guests int) string {
	hours := 2
	switch {
	case guests > 50:
		hours = 4
	case guests > 20:
		hours = 3
	}
	return eventDate.Add(-time.Duration(hours) * time.Hour).Format("15:04")
}

// NewBasicSchedule synthesizes a cooking schedule for a budget with no
// richer menu data. Breakfast starts at a fixed early slot; other meals
// derive their start from the event time via CookStartTime.
func NewBasicSchedule(b *budget.Budget, meal MealType) *CookingSchedule {
	cookingTime := CookStartTime(b.EventDate, b.GuestCount)
	menuName := "Menú principal"
	instructions := fmt.Sprintf("Preparar para %d personas. Coordinar con logística para entrega de ingredientes.", b.GuestCount)
	if meal == MealBreakfast {
		cookingTime = "07:00"
		menuName = "Desayuno"
		instructions = fmt.Sprintf("Desayuno ligero para %d personas.", b.GuestCount)
	}

	return &CookingSchedule{
		ID:                  ulid.Make().String(),
		EventDate:           b.EventDate,
		CookingTime:         cookingTime,
		MealType:            meal,
		MenuName:            menuName,
		GuestCount:          b.GuestCount,
		Ingredients:         BasicIngredients(b, meal),
		SpecialInstructions: instructions,
	}
}

// BasicIngredients seeds a guest-scaled ingredient list when a schedule
// carries none. All quantities are ceiling-rounded.
func BasicIngredients(b *budget.Budget, meal MealType) []ProductRequirement {
	guests := float64(b.GuestCount)

	if meal == MealBreakfast {
		return []ProductRequirement{
			{
				ID:          ulid.Make().String(),
				ProductID:   "bread",
				ProductName: "Pan tostado",
				Quantity:    math.Ceil(guests / 4),
				Unit:        "barras",
				Category:    "Panadería",
				Notes:       "Pan integral o blanco",
			},
			{
				ID:          ulid.Make().String(),
				ProductID:   "coffee",
				ProductName: "Café",
				Quantity:    math.Ceil(guests / 20),
				Unit:        "paquetes",
				Category:    "Bebidas calientes",
				Notes:       "Café molido para cafetera",
			},
		}
	}

	return []ProductRequirement{
		{
			ID:          ulid.Make().String(),
			ProductID:   "rice",
			ProductName: "Arroz",
			Quantity:    math.Ceil(guests * 0.10),
			Unit:        "kg",
			Category:    "Granos",
			Notes:       "Arroz blanco de grano largo",
		},
		{
			ID:          ulid.Make().String(),
			ProductID:   "chicken",
			ProductName: "Pollo",
			Quantity:    math.Ceil(guests * 0.25),
			Unit:        "kg",
			Category:    "Carnes",
			Notes:       "Pollo fresco, sin menudencias",
		},
		{
			ID:          ulid.Make().String(),
			ProductID:   "vegetables",
			ProductName: "Vegetales mixtos",
			Quantity:    math.Ceil(guests * 0.15),
			Unit:        "kg",
			Category:    "Verduras",
			Notes:       "Zanahoria, cebolla, pimentón",
		},
	}
}
