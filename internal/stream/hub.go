package stream

import (
	"sync"
)

// Change is one record-change notification pushed to live views.
type Change struct {
	Topic   string
	Payload string
}

// Hub fans record-change notifications out to in-process subscribers (chat
// views, admin thread lists). Delivery is best-effort with no cross-topic
// ordering guarantee: a subscriber that cannot keep up has the change
// dropped rather than blocking the writer. Unsubscribing has no effect on
// server-side state.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]chan Change
	buffer int
}

// NewHub creates a hub with the given per-subscriber buffer.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subs:   make(map[string]map[int]chan Change),
		buffer: buffer,
	}
}

// Subscribe registers a subscriber for a topic. The returned cancel function
// removes the subscription and closes the channel; it is safe to call more
// than once.
func (h *Hub) Subscribe(topic string) (<-chan Change, func()) {
	ch := make(chan Change, h.buffer)

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[int]chan Change)
	}
	h.subs[topic][id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[topic], id)
			if len(h.subs[topic]) == 0 {
				delete(h.subs, topic)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish pushes a change to every subscriber of the topic. Slow subscribers
// have the change dropped.
func (h *Hub) Publish(topic, payload string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[topic] {
		select {
		case ch <- Change{Topic: topic, Payload: payload}:
		default:
		}
	}
}

// Subscribers returns the number of live subscriptions on a topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}
