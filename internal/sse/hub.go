// internal/sse/hub.go
//
// Fan-out of session events to server-sent-event subscribers.
//
// Publish is called from a session's event sink, i.e. on the session's own
// execution path, so it never blocks: a subscriber whose buffer is full
// misses the event and is expected to resync from a snapshot.

package sse

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/cosmic-word/internal/game"
)

// BufferSize is the per-subscriber channel capacity.
const BufferSize = 32

// Message is one encoded event ready to be written to a stream.
type Message struct {
	Event string
	Data  []byte
}

// Hub broadcasts messages to its subscribers.
type Hub struct {
	mu      sync.RWMutex
	clients map[chan Message]struct{}
	closed  bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[chan Message]struct{})}
}

// Subscribe registers a new client. The returned cancel func unregisters it
// and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan Message, func()) {
	ch := make(chan Message, BufferSize)
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.clients[ch]; ok {
				delete(h.clients, ch)
				close(ch)
			}
		})
	}
}

// Publish encodes ev and offers it to every subscriber without blocking.
// It has the game.Sink signature.
func (h *Hub) Publish(ev game.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("event", string(ev.Kind())).Msg("encode event")
		return
	}
	h.Send(Message{Event: string(ev.Kind()), Data: data})
}

// Send offers msg to every subscriber without blocking.
func (h *Hub) Send(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	dropped := 0
	for ch := range h.clients {
		select {
		case ch <- msg:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		log.Debug().Str("event", msg.Event).Int("dropped", dropped).Msg("slow sse subscribers")
	}
}

// Close disconnects every subscriber; later subscriptions get a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.clients {
		delete(h.clients, ch)
		close(ch)
	}
}

// Clients returns the number of live subscribers.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
