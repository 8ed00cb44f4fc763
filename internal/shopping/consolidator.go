// Package shopping builds the cross-budget consolidated shopping view. The
// list is a pure projection over current budget/task state: it is recomputed
// on every read and never persisted.
package shopping

import (
	"fmt"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/MarianoPoeta/magnus/internal/budget"
	"github.com/MarianoPoeta/magnus/internal/task"
)

// Item is one consolidated line of the weekly shopping list. Lines merge on
// (product name, unit) rather than product id, so requirements that share a
// display name collapse into a single human-scannable row even when their
// ids differ. Name collisions therefore merge on purpose.
type Item struct {
	ID                string   `json:"id"`
	ProductName       string   `json:"productName"`
	TotalQuantity     float64  `json:"totalQuantity"`
	Unit              string   `json:"unit"`
	Category          string   `json:"category"`
	BudgetIDs         []string `json:"budgetIds"`
	ClientNames       []string `json:"clientNames"`
	IsPurchased       bool     `json:"isPurchased"`
	PurchasedQuantity float64  `json:"purchasedQuantity"`
	Notes             string   `json:"notes,omitempty"`
}

// Progress summarizes purchase completion over a consolidated list.
type Progress struct {
	Total                int `json:"total"`
	Purchased            int `json:"purchased"`
	PartiallyPurchased   int `json:"partiallyPurchased"`
	Pending              int `json:"pending"`
	CompletionPercentage int `json:"completionPercentage"`
}

// Consolidate merges the shopping requirements of every confirmed budget
// whose event date falls inside [start, end] into one deduplicated list.
// Budgets without requirement-carrying shopping tasks fall back to the
// basic-requirements heuristic so an active event never drops off the list.
// Output ordering is deterministic: category ascending, then product name.
func Consolidate(budgets []*budget.Budget, tasks []*task.Task, start, end time.Time) []*Item {
	items := make(map[string]*Item)
	var order []string

	for _, b := range budgets {
		if b.Status != budget.StatusConfirmed {
			continue
		}
		if b.EventDate.Before(start) || b.EventDate.After(end) {
			continue
		}

		reqs := shoppingRequirements(b, tasks)
		for _, req := range reqs {
			key := req.ProductName + "\x00" + req.Unit
			item, ok := items[key]
			if !ok {
				item = &Item{
					ID:          ulid.Make().String(),
					ProductName: req.ProductName,
					Unit:        req.Unit,
					Category:    req.Category,
					Notes:       req.Notes,
				}
				items[key] = item
				order = append(order, key)
			}

			item.TotalQuantity += req.Quantity
			if req.IsPurchased {
				item.PurchasedQuantity += req.Quantity
			}
			if !containsString(item.BudgetIDs, b.ID) {
				item.BudgetIDs = append(item.BudgetIDs, b.ID)
				item.ClientNames = append(item.ClientNames, b.ClientName)
			}
		}
	}

	out := make([]*Item, 0, len(items))
	for _, key := range order {
		item := items[key]
		item.IsPurchased = item.PurchasedQuantity >= item.TotalQuantity && item.TotalQuantity > 0
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].ProductName < out[j].ProductName
	})
	return out
}

// shoppingRequirements collects every requirement attached to the budget's
// shopping-role tasks, synthesizing the basic heuristic when none exist.
func shoppingRequirements(b *budget.Budget, tasks []*task.Task) []task.ProductRequirement {
	var reqs []task.ProductRequirement
	for _, t := range tasks {
		if t.BudgetID != b.ID || t.Type != task.TypeShopping || t.Role != task.RoleLogistics {
			continue
		}
		reqs = append(reqs, t.ProductRequirements...)
	}
	if len(reqs) == 0 {
		reqs = task.BasicRequirements(b)
	}
	return reqs
}

// UpdateStatus records a purchase against one item of a consolidated list
// and returns the updated list. The aggregate is a projection: the change is
// not written back to the originating task requirements, and the next
// Consolidate call re-derives purchase state from source data.
func UpdateStatus(items []*Item, itemID string, purchasedQuantity float64, purchasedBy string) []*Item {
	out := make([]*Item, len(items))
	for i, item := range items {
		if item.ID != itemID {
			out[i] = item
			continue
		}
		updated := *item
		updated.PurchasedQuantity = purchasedQuantity
		updated.IsPurchased = purchasedQuantity >= updated.TotalQuantity
		attribution := fmt.Sprintf("Comprado por: %s", purchasedBy)
		if updated.Notes != "" {
			updated.Notes = updated.Notes + " | " + attribution
		} else {
			updated.Notes = attribution
		}
		out[i] = &updated
	}
	return out
}

// GroupByCategory partitions items by category. Within each group items keep
// their insertion order; no ordering is guaranteed across groups.
func GroupByCategory(items []*Item) map[string][]*Item {
	groups := make(map[string][]*Item)
	for _, item := range items {
		groups[item.Category] = append(groups[item.Category], item)
	}
	return groups
}

// GetProgress computes completion counters for a consolidated list.
func GetProgress(items []*Item) Progress {
	p := Progress{Total: len(items)}
	for _, item := range items {
		switch {
		case item.IsPurchased:
			p.Purchased++
		case item.PurchasedQuantity > 0:
			p.PartiallyPurchased++
		}
	}
	p.Pending = p.Total - p.Purchased - p.PartiallyPurchased
	if p.Total > 0 {
		p.CompletionPercentage = p.Purchased * 100 / p.Total
	}
	return p
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
