package websocket

import (
	"log"
	"sync"
)

// Hub maintains the set of active connections and their session rooms, and
// routes outbound events. Callers from service goroutines and reset timers
// reach it concurrently, so access is guarded by a single RWMutex rather
// than a run loop.
type Hub struct {
	mu sync.RWMutex

	// Registered clients by connection ID.
	clients map[string]*Client

	// Session rooms: sessionID -> members.
	sessions map[string]map[*Client]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		sessions: make(map[string]map[*Client]bool),
	}
}

// Register adds a connection to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c.ID] = c
	log.Printf("Client %s registered (total clients: %d)", c.ID, len(h.clients))
}

// Unregister removes a connection from the hub and every session room it
// joined, and closes its send channel. Safe to call more than once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	delete(h.clients, c.ID)

	for sessionID, members := range h.sessions {
		if members[c] {
			delete(members, c)
			if len(members) == 0 {
				delete(h.sessions, sessionID)
			}
		}
	}

	close(c.send)
	log.Printf("Client %s unregistered (remaining clients: %d)", c.ID, len(h.clients))
}

// JoinSession adds the connection to a session room.
func (h *Hub) JoinSession(connID, sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok {
		return
	}
	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[*Client]bool)
	}
	h.sessions[sessionID][c] = true
}

// LeaveSession removes the connection from a session room.
func (h *Hub) LeaveSession(connID, sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok {
		return
	}
	if members, ok := h.sessions[sessionID]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.sessions, sessionID)
		}
	}
}

// SendToConn delivers an event to a single connection.
func (h *Hub) SendToConn(connID, event string, data any) {
	payload, err := encode(event, data)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if c, ok := h.clients[connID]; ok {
		c.deliver(payload)
	}
}

// BroadcastToSession delivers an event to every member of a session room.
func (h *Hub) BroadcastToSession(sessionID, event string, data any) {
	payload, err := encode(event, data)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.sessions[sessionID] {
		c.deliver(payload)
	}
}

// BroadcastToAll delivers an event to every registered connection.
func (h *Hub) BroadcastToAll(event string, data any) {
	payload, err := encode(event, data)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		c.deliver(payload)
	}
}

// Connected reports whether the connection is currently registered.
func (h *Hub) Connected(connID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[connID]
	return ok
}

// ClientCount reports the number of registered connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
