package notify

import (
	"testing"
	"time"

	"travia-admin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notification(id, agencyID string) domain.Notification {
	return domain.Notification{
		NotificationID: id,
		AgencyID:       agencyID,
		Title:          "Nueva reserva",
		CreatedAt:      time.Now(),
	}
}

func TestHubRecentMostRecentFirst(t *testing.T) {
	h := NewHub()
	h.Publish(notification("n1", "a1"))
	h.Publish(notification("n2", "a1"))
	h.Publish(notification("n3", "a2"))

	feed := h.Recent("a1")
	require.Len(t, feed, 2)
	assert.Equal(t, "n2", feed[0].NotificationID)
	assert.Equal(t, "n1", feed[1].NotificationID)

	assert.Len(t, h.Recent("a2"), 1)
	assert.Empty(t, h.Recent("unknown"))
}

func TestHubSubscribeDelivers(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("a1")
	defer cancel()

	h.Publish(notification("n1", "a1"))
	h.Publish(notification("other", "a2"))

	select {
	case n := <-ch:
		assert.Equal(t, "n1", n.NotificationID)
	case <-time.After(time.Second):
		t.Fatal("expected a delivery")
	}

	// nothing from the other agency
	select {
	case n := <-ch:
		t.Fatalf("unexpected delivery: %s", n.NotificationID)
	default:
	}
}

func TestHubCancelClosesChannel(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("a1")
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// publishing after cancel must not panic
	h.Publish(notification("n1", "a1"))
}

func TestHubSlowSubscriberIsSkipped(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("a1")
	defer cancel()

	// fill the buffer without draining
	for i := 0; i < 32; i++ {
		h.Publish(notification("n", "a1"))
	}
	// Publish returned; feed still has everything
	assert.Len(t, h.Recent("a1"), 32)
	assert.Len(t, ch, 16)
}
