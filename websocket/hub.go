package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Message is one event exchanged with a dashboard client. Subjects identify
// what a client watches: "poll:<id>", "form:<id>", or "nominations".
type Message struct {
	Type      string      `json:"type"`
	Subject   string      `json:"subject,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// MessageHandler handles different types of client messages
type MessageHandler func(*Client, *Message) error

// Hub manages dashboard WebSocket connections and fans live tally updates
// out to clients subscribed to the matching subject.
type Hub struct {
	// Registered clients keyed by connection id
	Clients map[uint64]*Client

	// Subject subscriptions: subject -> set of client ids
	Subscriptions map[string]map[uint64]bool

	// Broadcast channel for tally update events
	Broadcast chan *Message

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	// Message handlers
	MessageHandlers map[string]MessageHandler

	mu sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	hub := &Hub{
		Clients:         make(map[uint64]*Client),
		Subscriptions:   make(map[string]map[uint64]bool),
		Broadcast:       make(chan *Message, 100),
		Register:        make(chan *Client),
		Unregister:      make(chan *Client),
		MessageHandlers: make(map[string]MessageHandler),
	}

	hub.MessageHandlers["subscribe"] = hub.handleSubscribe
	hub.MessageHandlers["unsubscribe"] = hub.handleUnsubscribe
	hub.MessageHandlers["ping"] = hub.handlePing

	return hub
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client.ID] = client
			h.mu.Unlock()
			log.Printf("🔌 Results client registered: ID=%d", client.ID)

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Clients[client.ID]; ok {
				for subject := range h.Subscriptions {
					delete(h.Subscriptions[subject], client.ID)
				}
				delete(h.Clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("🔌 Results client unregistered: ID=%d", client.ID)

		case message := <-h.Broadcast:
			h.broadcastMessage(message)
		}
	}
}

// broadcastMessage sends an update to every client subscribed to its subject
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("❌ Failed to marshal broadcast message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	subscribers := h.Subscriptions[message.Subject]
	for clientID := range subscribers {
		client, ok := h.Clients[clientID]
		if !ok {
			continue
		}
		select {
		case client.Send <- data:
		default:
			// Slow consumer; drop the update rather than block the hub
			log.Printf("⚠️ Dropping update for slow client %d", clientID)
		}
	}
}

// PublishUpdate queues a tally update for subscribers of subject
func (h *Hub) PublishUpdate(subject string, data interface{}) {
	message := &Message{
		Type:      "update",
		Subject:   subject,
		Data:      data,
		Timestamp: time.Now(),
	}
	select {
	case h.Broadcast <- message:
	default:
		log.Printf("⚠️ Broadcast channel full, dropping update for %s", subject)
	}
}

func (h *Hub) handleSubscribe(client *Client, message *Message) error {
	if message.Subject == "" {
		return nil
	}
	h.mu.Lock()
	if h.Subscriptions[message.Subject] == nil {
		h.Subscriptions[message.Subject] = make(map[uint64]bool)
	}
	h.Subscriptions[message.Subject][client.ID] = true
	h.mu.Unlock()

	log.Printf("👁 Client %d subscribed to %s", client.ID, message.Subject)
	return client.SendMessage(&Message{Type: "subscribed", Subject: message.Subject, Timestamp: time.Now()})
}

func (h *Hub) handleUnsubscribe(client *Client, message *Message) error {
	h.mu.Lock()
	if subs, ok := h.Subscriptions[message.Subject]; ok {
		delete(subs, client.ID)
	}
	h.mu.Unlock()
	return nil
}

func (h *Hub) handlePing(client *Client, message *Message) error {
	return client.SendMessage(&Message{Type: "pong", Timestamp: time.Now()})
}
