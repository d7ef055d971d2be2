package events

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Event is the wire format pushed to dashboard clients
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
	At      time.Time   `json:"at"`
}

// Event types broadcast by the API layer
const (
	EventPrescriptionCreated   = "prescription.created"
	EventPrescriptionCompleted = "prescription.completed"
	EventInventoryUpdated      = "inventory.updated"
)

// Hub fans events out to connected websocket clients so the doctor and
// pharmacist dashboards refresh without polling.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stop       chan struct{}
	done       chan struct{}

	mu      sync.RWMutex
	stopped bool
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Run starts the hub event loop
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Slow client, drop the event rather than block the hub
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Stop shuts down the hub and closes all client connections
func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		client.Close()
		return
	}
	h.register <- client
}

// Broadcast sends an event to every connected client
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload, At: time.Now()})
	if err != nil {
		log.Printf("ERROR [events.Broadcast] failed to marshal %s event: %v", eventType, err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Printf("ERROR [events.Broadcast] broadcast buffer full, dropping %s event", eventType)
	}
}
