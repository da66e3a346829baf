package session

import (
	"sync"

	"github.com/claude/eyerest/internal/models"
)

// DefaultBuffer is the per-subscriber event queue length.
const DefaultBuffer = 64

// Hub fans render events out to subscribers. Publish never blocks: a
// subscriber whose queue is full misses the event.
type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	buffer int
}

// NewHub returns a hub whose subscribers queue up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{subs: make(map[*Subscription]struct{}), buffer: buffer}
}

// Subscription is one subscriber's event queue.
type Subscription struct {
	hub     *Hub
	ch      chan models.Event
	dropped int
}

// Subscribe registers a new subscriber. The caller must Close it.
func (h *Hub) Subscribe() *Subscription {
	s := &Subscription{hub: h, ch: make(chan models.Event, h.buffer)}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

// Events is closed when the subscription is closed.
func (s *Subscription) Events() <-chan models.Event {
	return s.ch
}

// Dropped reports how many events were skipped because the queue was full.
func (s *Subscription) Dropped() int {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	return s.dropped
}

// Close unregisters the subscriber and closes its channel. Idempotent.
func (s *Subscription) Close() {
	h := s.hub
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.ch)
	}
}

// Publish delivers ev to every subscriber with room for it.
func (h *Hub) Publish(ev models.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		select {
		case s.ch <- ev:
		default:
			s.dropped++
		}
	}
}

// Subscribers returns the number of registered subscribers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
