package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/hackathon-system/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS-политика применяется на уровне роутера.
		return true
	},
}

type WebSocketHandler struct {
	hub *realtime.Hub
}

func NewWebSocketHandler(hub *realtime.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// SubscribeEvent подписывает соединение на канал события event-<id>.
func (h *WebSocketHandler) SubscribeEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := urlParamInt(r, "eventID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	h.subscribe(w, r, realtime.EventChannel(eventID))
}

// SubscribeTeam подписывает соединение на канал команды team-<id>.
func (h *WebSocketHandler) SubscribeTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParamInt(r, "teamID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	h.subscribe(w, r, realtime.TeamChannel(teamID))
}

func (h *WebSocketHandler) subscribe(w http.ResponseWriter, r *http.Request, channel string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade websocket connection", "channel", channel, "error", err)
		return
	}

	client := &realtime.Client{
		Hub:     h.hub,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		Channel: channel,
	}
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
