package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := New()
	_, ch1 := bus.Subscribe(8)
	_, ch2 := bus.Subscribe(8)

	bus.PublishNew(EventTypeTasksGenerated, "budget-1", "7", nil)

	for _, ch := range []<-chan *Event{ch1, ch2} {
		select {
		case event := <-ch:
			assert.Equal(t, EventTypeTasksGenerated, event.Type)
			assert.Equal(t, "budget-1", event.ResourceID)
			assert.Equal(t, "7", event.Payload)
			assert.NotEmpty(t, event.ID)
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := New()
	id, ch := bus.Subscribe(1)

	bus.Unsubscribe(id)
	_, open := <-ch
	assert.False(t, open)
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	bus := New()
	_, ch := bus.Subscribe(1)

	bus.PublishNew(EventTypeNotificationCreated, "n1", "", nil)
	bus.PublishNew(EventTypeNotificationCreated, "n2", "", nil)

	event := <-ch
	require.Equal(t, "n1", event.ResourceID)
	select {
	case e := <-ch:
		t.Fatalf("expected second event to be dropped, got %s", e.ResourceID)
	default:
	}
}
