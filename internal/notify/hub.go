// Package notify pushes per-user events (due reminders) to live websocket
// subscribers.
package notify

import (
	"sync"
)

const (
	EventReminderDue = "reminder.due"
	EventDashboard   = "dashboard"
)

// Event is the envelope written to subscribers.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

const subscriberBuffer = 16

// Hub fans events out to the subscribers of one user. A subscriber whose
// buffer is full misses the event; publishers never block.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[chan Event]struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan Event]struct{})}
}

// Subscribe registers a new subscriber for userID. The returned cancel func
// unregisters it and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(userID string) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	set, ok := h.subs[userID]
	if !ok {
		set = make(map[chan Event]struct{})
		h.subs[userID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() { h.remove(userID, ch) })
	}
}

func (h *Hub) remove(userID string, ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[userID]
	if !ok {
		return
	}
	if _, ok := set[ch]; !ok {
		return
	}
	delete(set, ch)
	close(ch)
	if len(set) == 0 {
		delete(h.subs, userID)
	}
}

// Publish delivers ev to every subscriber of userID and reports how many
// received it.
func (h *Hub) Publish(userID string, ev Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for ch := range h.subs[userID] {
		select {
		case ch <- ev:
			delivered++
		default:
		}
	}
	return delivered
}

// Subscribers returns the number of live subscriptions for userID.
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}

// Close drops every subscriber; later subscriptions get a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for user, set := range h.subs {
		for ch := range set {
			close(ch)
		}
		delete(h.subs, user)
	}
}
