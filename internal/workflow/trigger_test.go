package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarianoPoeta/magnus/internal/budget"
	"github.com/MarianoPoeta/magnus/internal/notification"
	"github.com/MarianoPoeta/magnus/internal/task"
)

func testBudget() *budget.Budget {
	return &budget.Budget{
		ID:         "budget-1",
		ClientName: "Acme",
		Status:     budget.StatusPending,
		EventDate:  time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC),
		GuestCount: 30,
	}
}

func TestFireOnConfirmation(t *testing.T) {
	tr := NewTrigger(task.NewGenerator())

	result, err := tr.Fire(testBudget(), budget.StatusPending, budget.StatusConfirmed)
	require.NoError(t, err)
	assert.True(t, result.Fired())
	assert.NotEmpty(t, result.Tasks)
	assert.NotEmpty(t, result.Notifications)
}

func TestFireIgnoresOtherTransitions(t *testing.T) {
	tests := []struct {
		name     string
		previous budget.Status
		next     budget.Status
	}{
		{"draft to pending", budget.StatusDraft, budget.StatusPending},
		{"pending to rejected", budget.StatusPending, budget.StatusRejected},
		{"confirmed to confirmed", budget.StatusConfirmed, budget.StatusConfirmed},
		{"confirmed to completed", budget.StatusConfirmed, budget.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTrigger(task.NewGenerator())
			result, err := tr.Fire(testBudget(), tt.previous, tt.next)
			require.NoError(t, err)
			assert.False(t, result.Fired())
			assert.Empty(t, result.Tasks)
			assert.Empty(t, result.Notifications)
		})
	}
}

func TestFireOncePerBudget(t *testing.T) {
	tr := NewTrigger(task.NewGenerator())
	b := testBudget()

	first, err := tr.Fire(b, budget.StatusPending, budget.StatusConfirmed)
	require.NoError(t, err)
	assert.True(t, first.Fired())

	// A second crossing of the edge for the same budget stays silent.
	second, err := tr.Fire(b, budget.StatusRejected, budget.StatusConfirmed)
	require.NoError(t, err)
	assert.False(t, second.Fired())
}

func TestFireSeparateBudgetsIndependently(t *testing.T) {
	tr := NewTrigger(task.NewGenerator())

	b1 := testBudget()
	b2 := testBudget()
	b2.ID = "budget-2"

	r1, err := tr.Fire(b1, budget.StatusPending, budget.StatusConfirmed)
	require.NoError(t, err)
	r2, err := tr.Fire(b2, budget.StatusPending, budget.StatusConfirmed)
	require.NoError(t, err)
	assert.True(t, r1.Fired())
	assert.True(t, r2.Fired())
}

func TestFireRejectsInvalidBudget(t *testing.T) {
	tr := NewTrigger(task.NewGenerator())
	b := testBudget()
	b.GuestCount = 0

	_, err := tr.Fire(b, budget.StatusPending, budget.StatusConfirmed)
	assert.Error(t, err)
}

func TestFireNotifiesEachRoleOnce(t *testing.T) {
	tr := NewTrigger(task.NewGenerator())

	result, err := tr.Fire(testBudget(), budget.StatusPending, budget.StatusConfirmed)
	require.NoError(t, err)

	roles := make(map[notification.Role]int)
	for _, n := range result.Notifications {
		roles[n.Role]++
		assert.Equal(t, "budget-1", n.BudgetID)
		assert.Contains(t, n.Text, "Acme")
	}
	assert.Equal(t, 1, roles[notification.RoleLogistics])
	assert.Equal(t, 1, roles[notification.RoleCook])
}
