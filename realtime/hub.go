package realtime

import (
	"encoding/json"
	"sync"

	"github.com/MLR-commits/Intranet_BAcademic/res"
	"go.uber.org/zap"
)

// Message is the envelope pushed to websocket clients
type Message struct {
	Event   string      `json:"event"`
	Title   string      `json:"title,omitempty"`
	Message string      `json:"message,omitempty"`
	Type    string      `json:"type,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Hub tracks connected clients and their room membership. Rooms are keyed
// role:<Role> and user:<id>
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
		rooms:   make(map[string]map[*Client]bool),
		logger:  logger,
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
}

// unregister drops the client from every room, removing rooms left empty
func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	for room, members := range h.rooms {
		if members[client] {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
}

// Join adds the client to a room. Joining twice is a no-op
func (h *Hub) Join(client *Client, room string) {
	if room == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]bool)
		h.rooms[room] = members
	}
	members[client] = true
}

func (h *Hub) Leave(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// RoomSize reports the member count of a room
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// ClientCount reports how many clients are connected
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Emit delivers a message to the members of a room, or to every client
// when room is empty. Slow clients drop the message instead of blocking
// the publisher
func (h *Hub) Emit(room string, message Message) {
	payload, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("Could not encode message", zap.Error(err))
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if room == "" {
		for client := range h.clients {
			select {
			case client.send <- payload:
			default:
			}
		}
		return
	}
	for client := range h.rooms[room] {
		select {
		case client.send <- payload:
		default:
		}
	}
}

// HandleNotify fans a published domain event out to its room
func (h *Hub) HandleNotify(payload res.NotifyAcademic) {
	h.Emit(payload.Room, Message{
		Event:   payload.Event,
		Title:   payload.Title,
		Message: payload.Message,
		Type:    payload.Type,
		Data:    payload.Data,
	})
}
