package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/devakhil7/plyr-sub003/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is served behind CORS; origin checks happen there.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	hub    *live.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// SubscribeMatch streams live score updates for one match.
func (h *WebSocketHandler) SubscribeMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := idParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.subscribe(w, r, live.MatchRoom(matchID))
}

// SubscribeTournament streams bracket and score updates for one tournament.
func (h *WebSocketHandler) SubscribeTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := idParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.subscribe(w, r, live.TournamentRoom(tournamentID))
}

// SubscribeBooking streams the owner's decision for one booking.
func (h *WebSocketHandler) SubscribeBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := idParam(r, "bookingID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.subscribe(w, r, live.BookingRoom(bookingID))
}

func (h *WebSocketHandler) subscribe(w http.ResponseWriter, r *http.Request, room string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "room", room, "error", err)
		return
	}

	client := live.NewClient(h.hub, conn, room)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
