package pushnotification

import (
	"context"
	"log/slog"

	"github.com/MarianoPoeta/magnus/internal/eventbus"
	"github.com/MarianoPoeta/magnus/internal/notification"
)

// Dispatcher forwards role-scoped notifications created by the workflow to
// every registered web-push subscription.
type Dispatcher struct {
	eventBus         *eventbus.Bus
	notificationRepo notification.Repository
	sender           *Sender
}

func NewDispatcher(eventBus *eventbus.Bus, notificationRepo notification.Repository, sender *Sender) *Dispatcher {
	return &Dispatcher{
		eventBus:         eventBus,
		notificationRepo: notificationRepo,
		sender:           sender,
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	subID, ch := d.eventBus.Subscribe(256)
	defer d.eventBus.Unsubscribe(subID)

	slog.Info("push notification dispatcher started")
	for {
		select {
		case <-ctx.Done():
			slog.Info("push notification dispatcher stopped")
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if event.Type == eventbus.EventTypeNotificationCreated {
				d.handleNotificationCreated(ctx, event)
			}
		}
	}
}

func (d *Dispatcher) handleNotificationCreated(ctx context.Context, event *eventbus.Event) {
	n, err := d.notificationRepo.Get(ctx, event.ResourceID)
	if err != nil {
		slog.Error("push dispatcher: failed to get notification", "id", event.ResourceID, "error", err)
		return
	}

	var url string
	if n.BudgetID != "" {
		url = "/budgets/" + n.BudgetID
	}

	d.sender.SendToAll(ctx, &NotificationPayload{
		Title: "Magnus: " + string(n.Role),
		Body:  n.Text,
		URL:   url,
		Tag:   n.ID,
	})
}
