package realtime

import (
	"encoding/json"
	"sync"
)

// sendBuffer is the per-connection outbox depth. A consumer that falls this
// far behind starts losing events; the persisted notification row is the
// durable copy.
const sendBuffer = 16

// Client is one live websocket session for a user. The transport goroutine
// drains Outbox and owns the actual connection.
type Client struct {
	userID uint
	send   chan []byte
}

func (c *Client) Outbox() <-chan []byte {
	return c.send
}

// Registry maps a user id to all of their live connections. It is
// process-wide, never persisted, and mutated only by session open/close;
// claim handling only ever reads it.
type Registry struct {
	mu      sync.RWMutex
	clients map[uint]map[*Client]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[uint]map[*Client]struct{}),
	}
}

func (r *Registry) Register(userID uint) *Client {
	client := &Client{
		userID: userID,
		send:   make(chan []byte, sendBuffer),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	set := r.clients[userID]
	if set == nil {
		set = make(map[*Client]struct{})
		r.clients[userID] = set
	}
	set[client] = struct{}{}
	return client
}

// Unregister closes the client's outbox and drops it from the registry.
// Safe to call more than once for the same client.
func (r *Registry) Unregister(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(r.clients, client.userID)
	}
}

// SendToDonor fans the payload out to every live connection registered for
// the user and reports how many received it. No connections is a no-op, and
// a full outbox drops the payload instead of blocking the caller.
func (r *Registry) SendToDonor(userID uint, payload interface{}) int {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	delivered := 0
	for client := range r.clients[userID] {
		select {
		case client.send <- data:
			delivered++
		default:
		}
	}
	return delivered
}
