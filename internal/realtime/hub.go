package realtime

import (
	"sync"
)

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains subscriber connections per token subject and fans analysis
// events out to them.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[Client]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[Client]struct{}),
	}
}

// Register adds a client under a subject.
func (h *Hub) Register(subject string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[subject]; !ok {
		h.subscribers[subject] = make(map[Client]struct{})
	}
	h.subscribers[subject][client] = struct{}{}
}

// Unregister removes a client; if the subject has no more clients, cleans up map.
func (h *Hub) Unregister(subject string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.subscribers[subject]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.subscribers, subject)
		}
	}
}

// Broadcast sends a message to all clients of a subject. Clients whose
// write fails are left for their handler to clean up.
func (h *Hub) Broadcast(subject string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.subscribers[subject] {
		_ = c.Send(message)
	}
}

// Count returns the number of clients registered for subject.
func (h *Hub) Count(subject string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[subject])
}
