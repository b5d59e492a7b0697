package server

import (
	"sync"

	"github.com/they4kman/prizegrid/game"
	"github.com/they4kman/prizegrid/util/collections"
)

// Event types pushed to websocket subscribers.
const (
	EventCelebrate = "celebrate"
)

// Event is one message of the live feed.
type Event struct {
	Type  string   `json:"type"`
	Box   game.Box `json:"box"`
	Label string   `json:"label"`
}

const subscriberBuffer = 16

// hub fans events out to every subscriber. Slow subscribers miss events
// rather than block the publisher.
type hub struct {
	mu          sync.Mutex
	subscribers collections.Set[chan Event]
}

func newHub() *hub {
	return &hub{subscribers: make(collections.Set[chan Event])}
}

func (h *hub) subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers.Add(ch)
	return ch
}

func (h *hub) unsubscribe(ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers.Remove(ch)
}

// publish returns how many subscribers dropped the event.
func (h *hub) publish(event Event) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	dropped := 0
	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			dropped++
		}
	}
	return dropped
}
