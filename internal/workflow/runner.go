package workflow

import (
	"context"
	"strconv"

	"github.com/MarianoPoeta/magnus/internal/budget"
	"github.com/MarianoPoeta/magnus/internal/eventbus"
	"github.com/MarianoPoeta/magnus/internal/notification"
	"github.com/MarianoPoeta/magnus/internal/task"
)

// Runner owns the persistence side of a trigger firing: it appends the
// generated tasks and notifications to their repositories and announces them
// on the event bus. There is no rollback and no retry; the first error
// propagates to the caller of the status write.
type Runner struct {
	trigger          *Trigger
	taskRepo         task.Repository
	notificationRepo notification.Repository
	eventBus         *eventbus.Bus
}

func NewRunner(trigger *Trigger, taskRepo task.Repository, notificationRepo notification.Repository, eventBus *eventbus.Bus) *Runner {
	return &Runner{
		trigger:          trigger,
		taskRepo:         taskRepo,
		notificationRepo: notificationRepo,
		eventBus:         eventBus,
	}
}

// OnBudgetStatusChange satisfies budget.TransitionFunc.
func (r *Runner) OnBudgetStatusChange(ctx context.Context, b *budget.Budget, previous, next budget.Status) error {
	result, err := r.trigger.Fire(b, previous, next)
	if err != nil {
		return err
	}

	r.eventBus.PublishNew(eventbus.EventTypeBudgetStatusChanged, b.ID, string(next), map[string]string{
		"previous_status": string(previous),
	})

	if !result.Fired() {
		return nil
	}

	for _, t := range result.Tasks {
		if err := r.taskRepo.Create(ctx, t); err != nil {
			return err
		}
	}
	r.eventBus.PublishNew(eventbus.EventTypeTasksGenerated, b.ID, strconv.Itoa(len(result.Tasks)), nil)

	for _, n := range result.Notifications {
		if err := r.notificationRepo.Create(ctx, n); err != nil {
			return err
		}
		r.eventBus.PublishNew(eventbus.EventTypeNotificationCreated, n.ID, "", map[string]string{
			"budget_id": b.ID,
			"role":      string(n.Role),
		})
	}
	return nil
}
