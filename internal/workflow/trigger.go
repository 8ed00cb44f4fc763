// Package workflow reacts to budget status transitions. The trigger is pure
// function composition: the caller supplies the previous and new status
// atomically, receives generated tasks and notifications as values, and owns
// all persistence and ordering itself.
package workflow

import (
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/MarianoPoeta/magnus/internal/budget"
	"github.com/MarianoPoeta/magnus/internal/notification"
	"github.com/MarianoPoeta/magnus/internal/task"
	"github.com/MarianoPoeta/magnus/pkg/cerr"
)

// Result carries everything a firing produced. Empty (no tasks, no
// notifications) when the observed change was not a real transition into
// confirmed.
type Result struct {
	Tasks         []*task.Task
	Notifications []*notification.Notification
}

// Fired reports whether the trigger generated anything.
func (r *Result) Fired() bool {
	return len(r.Tasks) > 0
}

// Trigger invokes the task generator exactly once per budget transition
// into confirmed. It keeps no other state and performs no I/O; downstream
// persistence failures are the caller's to handle, with no retry here.
type Trigger struct {
	gen *task.Generator

	mu    sync.Mutex
	fired map[string]struct{}
}

func NewTrigger(gen *task.Generator) *Trigger {
	return &Trigger{
		gen:   gen,
		fired: make(map[string]struct{}),
	}
}

// Fire observes one status change. It generates tasks only on the
// non-confirmed -> confirmed edge, at most once per budget: repeated writes
// that do not cross the boundary (confirmed -> confirmed included) return an
// empty result.
func (tr *Trigger) Fire(b *budget.Budget, previous, next budget.Status) (*Result, error) {
	if next != budget.StatusConfirmed || previous == budget.StatusConfirmed {
		return &Result{}, nil
	}
	if err := b.Validate(); err != nil {
		return nil, cerr.NewError(cerr.InvalidArgument, "budget does not satisfy generation preconditions", err)
	}

	tr.mu.Lock()
	if _, done := tr.fired[b.ID]; done {
		tr.mu.Unlock()
		return &Result{}, nil
	}
	tr.fired[b.ID] = struct{}{}
	tr.mu.Unlock()

	tasks := tr.gen.Generate(b)
	return &Result{
		Tasks:         tasks,
		Notifications: notifyRoles(b, tasks),
	}, nil
}

// notifyRoles emits one "tasks generated" notification per role that
// received work, so each team sees only its own inbox entry.
func notifyRoles(b *budget.Budget, tasks []*task.Task) []*notification.Notification {
	counts := make(map[task.Role]int)
	for _, t := range tasks {
		counts[t.Role]++
	}

	now := time.Now()
	var out []*notification.Notification
	for _, role := range []task.Role{task.RoleLogistics, task.RoleCook} {
		n, ok := counts[role]
		if !ok {
			continue
		}
		out = append(out, &notification.Notification{
			ID:        ulid.Make().String(),
			Text:      fmt.Sprintf("Se generaron %d tareas para el evento de %s (%s)", n, b.ClientName, b.EventDate.Format("2006-01-02")),
			Role:      notification.Role(role),
			BudgetID:  b.ID,
			CreatedAt: now,
		})
	}
	return out
}
