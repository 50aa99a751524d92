// Package events provides a thread-safe websocket broadcast hub for mission
// telemetry, using the idiomatic Go channel-based fan-out pattern. Everything
// it carries is fire-and-forget observability: slow clients are dropped
// rather than allowed to stall the control loop.
package events

import (
	"encoding/json"
	"sync"

	"github.com/teslashibe/go-firebot/internal/log"
)

// Hub maintains the set of active clients and broadcasts telemetry to them.
type Hub struct {
	name string

	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	// Guards client count for read-only access from outside
	mu sync.RWMutex
}

// New creates a new Hub.
func New(name string) *Hub {
	return &Hub{
		name:       name,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop. Call it in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("telemetry client connected", "hub", h.name, "clients", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("telemetry client disconnected", "hub", h.name, "clients", count)

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client buffer full: too slow, drop it
					close(client.send)
					delete(h.clients, client)
					log.Warn("dropped slow telemetry client", "hub", h.name)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast queues raw bytes for delivery to all clients.
// Never blocks: if the hub's own buffer is full the message is dropped.
func (h *Hub) Broadcast(data []byte) {
	select {
	case h.broadcast <- data:
	default:
		log.Warn("telemetry hub buffer full, dropping message", "hub", h.name)
	}
}

// BroadcastJSON encodes v and queues it for delivery to all clients.
func (h *Hub) BroadcastJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Warn("telemetry encode failed", "hub", h.name, "error", err)
		return
	}
	h.Broadcast(data)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
