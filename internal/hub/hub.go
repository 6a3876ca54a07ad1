package hub

import (
	"log/slog"
	"sync"

	"github.com/tahmidriaz/scrubdash/internal/model"
)

const subscriberBuffer = 16

// Hub fans out per-cycle snapshots to all subscribers and remembers the
// most recent one for request/response consumers.
type Hub struct {
	mu          sync.RWMutex
	subscribers []chan model.Snapshot
	latest      model.Snapshot
	hasLatest   bool
	dropped     int64
}

// New creates an empty Hub.
func New() *Hub {
	return &Hub{}
}

// Subscribe returns a buffered channel receiving every published
// snapshot. Each subscriber gets its own copy.
func (h *Hub) Subscribe() <-chan model.Snapshot {
	ch := make(chan model.Snapshot, subscriberBuffer)
	h.mu.Lock()
	h.subscribers = append(h.subscribers, ch)
	if h.hasLatest {
		ch <- h.latest // new subscribers start from the current state
	}
	h.mu.Unlock()
	return ch
}

// Latest returns the most recently published snapshot. ok is false
// before the first cycle completes.
func (h *Hub) Latest() (model.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest, h.hasLatest
}

// Dropped returns the total number of snapshots dropped for slow
// subscribers.
func (h *Hub) Dropped() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}

// Publish records snap as the latest state and broadcasts it. If a
// subscriber's channel is full, the snapshot is dropped for that
// subscriber; it will catch up on the next cycle.
func (h *Hub) Publish(snap model.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = snap
	h.hasLatest = true

	for _, ch := range h.subscribers {
		select {
		case ch <- snap:
		default:
			h.dropped++
			slog.Warn("hub: dropped snapshot for slow subscriber", "total_dropped", h.dropped)
		}
	}
}

// Close closes all subscriber channels.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = nil
}
