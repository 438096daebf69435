package notify

import (
	"sync"

	"travia-admin/internal/domain"
)

// Hub fans notifications out to in-memory per-agency feeds and to any
// live stream subscribers. Feeds are most-recent-first and unbounded;
// the process keeps what it has seen since start, the table is the
// durable history.
type Hub struct {
	mu     sync.RWMutex
	feeds  map[string][]domain.Notification
	subs   map[string]map[int]chan domain.Notification
	nextID int
}

func NewHub() *Hub {
	return &Hub{
		feeds: make(map[string][]domain.Notification),
		subs:  make(map[string]map[int]chan domain.Notification),
	}
}

// Publish prepends the notification to its agency feed and delivers it
// to subscribers. Slow subscribers are skipped rather than blocked on.
func (h *Hub) Publish(n domain.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.feeds[n.AgencyID] = append([]domain.Notification{n}, h.feeds[n.AgencyID]...)

	for _, ch := range h.subs[n.AgencyID] {
		select {
		case ch <- n:
		default:
		}
	}
}

// Recent returns a copy of the agency feed, most recent first.
func (h *Hub) Recent(agencyID string) []domain.Notification {
	h.mu.RLock()
	defer h.mu.RUnlock()

	feed := h.feeds[agencyID]
	out := make([]domain.Notification, len(feed))
	copy(out, feed)
	return out
}

// Subscribe registers a live channel for the agency. The returned
// cancel func must be called when the consumer goes away.
func (h *Hub) Subscribe(agencyID string) (<-chan domain.Notification, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[agencyID] == nil {
		h.subs[agencyID] = make(map[int]chan domain.Notification)
	}
	id := h.nextID
	h.nextID++

	ch := make(chan domain.Notification, 16)
	h.subs[agencyID][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[agencyID][id]; ok {
			delete(h.subs[agencyID], id)
			close(sub)
		}
	}
	return ch, cancel
}
