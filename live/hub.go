// Package live pushes updates to websocket subscribers. Clients join a room
// per match, tournament or booking and receive every update published to it.
package live

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Message is the envelope every room broadcast is wrapped in.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

// Room identifiers.
func MatchRoom(matchID int) string           { return fmt.Sprintf("match:%d", matchID) }
func TournamentRoom(tournamentID int) string { return fmt.Sprintf("tournament:%d", tournamentID) }
func BookingRoom(bookingID int) string       { return fmt.Sprintf("booking:%d", bookingID) }

type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	rooms  map[string]map[*Client]bool
	mu     sync.RWMutex
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run owns the room membership maps. Start it once in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.room]; !ok {
				h.rooms[client.room] = make(map[*Client]bool)
			}
			h.rooms[client.room][client] = true
			h.logger.Debug("websocket client joined", "room", client.room, "clients", len(h.rooms[client.room]))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.room]; ok {
				if _, joined := clients[client]; joined {
					client.closeSend()
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.rooms, client.room)
					}
					h.logger.Debug("websocket client left", "room", client.room)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToRoom publishes a message to every client in the room. Clients
// whose send buffer is full are skipped rather than blocked on.
func (h *Hub) BroadcastToRoom(roomID string, msgType string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[roomID]
	if !ok {
		return
	}

	data, err := json.Marshal(Message{Type: msgType, Payload: payload, RoomID: roomID})
	if err != nil {
		h.logger.Error("failed to marshal websocket message", "room", roomID, "error", err)
		return
	}

	for client := range clients {
		client.mu.Lock()
		if !client.closed {
			select {
			case client.send <- data:
			default:
				h.logger.Warn("websocket client send buffer full, dropping message", "room", roomID)
			}
		}
		client.mu.Unlock()
	}
}
