package hub

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Client is a single subscriber to a room's events. The SSE handler drains it.
type Client chan []byte

// NewClient creates a client with a small buffer so bursts of changes do not
// get dropped while the handler is writing.
func NewClient() Client {
	return make(Client, 8)
}

// Hub fans room events out to the clients watching each room.
type Hub struct {
	rooms map[uint]map[Client]bool
	mu    sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uint]map[Client]bool),
	}
}

// Subscribe adds a client to a room.
func (h *Hub) Subscribe(roomID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[Client]bool)
	}
	h.rooms[roomID][client] = true
}

// Unsubscribe removes a client from a room and closes it.
func (h *Hub) Unsubscribe(roomID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.rooms[roomID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client) // Signals the SSE handler to stop.
			if len(clients) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
}

// Subscribers returns how many clients watch a room.
func (h *Hub) Subscribers(roomID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// Broadcast sends an event to every client in a room.
func (h *Hub) Broadcast(roomID uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[roomID]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).WithField("room_id", roomID).Error("Failed to encode room event")
		return
	}

	for client := range clients {
		// Non-blocking so a slow client cannot stall the hub; it simply
		// misses this event and will catch up on the next one.
		select {
		case client <- messageBytes:
		default:
		}
	}
}
