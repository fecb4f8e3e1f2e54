package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Hub maintains the set of active clients and pushes feed events to them so
// browse views can refresh participant counts without polling
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Watchers mapping (requestID -> clients watching that request)
	watchers map[string]map[*Client]bool

	// Mutex for watchers map
	watchersMux sync.RWMutex

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Outbound feed events for every connected client
	feed chan []byte
}

// NewHub creates a new hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		feed:       make(chan []byte, 64),
		clients:    make(map[*Client]bool),
		watchers:   make(map[string]map[*Client]bool),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)

				// Remove client from all watch lists
				h.watchersMux.Lock()
				for requestID, clients := range h.watchers {
					if _, ok := clients[client]; ok {
						delete(h.watchers[requestID], client)
						if len(h.watchers[requestID]) == 0 {
							delete(h.watchers, requestID)
						}
					}
				}
				h.watchersMux.Unlock()
			}
		case message := <-h.feed:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// watch adds a client to a request's watch list
func (h *Hub) watch(client *Client, requestID string) {
	h.watchersMux.Lock()
	defer h.watchersMux.Unlock()

	if _, ok := h.watchers[requestID]; !ok {
		h.watchers[requestID] = make(map[*Client]bool)
	}
	h.watchers[requestID][client] = true
}

// unwatch removes a client from a request's watch list
func (h *Hub) unwatch(client *Client, requestID string) {
	h.watchersMux.Lock()
	defer h.watchersMux.Unlock()

	if _, ok := h.watchers[requestID]; ok {
		delete(h.watchers[requestID], client)
		if len(h.watchers[requestID]) == 0 {
			delete(h.watchers, requestID)
		}
	}
}

// broadcastToWatchers sends a message to all clients watching a request
func (h *Hub) broadcastToWatchers(requestID string, message []byte) {
	h.watchersMux.RLock()
	defer h.watchersMux.RUnlock()

	if clients, ok := h.watchers[requestID]; ok {
		for client := range clients {
			select {
			case client.send <- message:
			default:
				close(client.send)
				delete(clients, client)
				delete(h.clients, client)
			}
		}
	}
}

// BroadcastFeed sends an event to every connected client
func BroadcastFeed(msgType string, payload interface{}) {
	if hub == nil {
		return
	}

	msg := Message{
		Type:    msgType,
		Payload: payload,
	}

	msgBytes, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal feed event", "type", msgType, "error", err)
		return
	}

	hub.feed <- msgBytes
}

// BroadcastToWatchers sends an event to the clients watching one request
func BroadcastToWatchers(requestID string, msgType string, payload interface{}) {
	if hub == nil {
		return
	}

	msg := Message{
		Type:    msgType,
		Payload: payload,
	}

	msgBytes, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal watcher event", "type", msgType, "error", err)
		return
	}

	hub.broadcastToWatchers(requestID, msgBytes)
}

// Global hub instance
var hub *Hub

// InitHub initializes the global hub
func InitHub() {
	hub = NewHub()
	go hub.Run()
}
