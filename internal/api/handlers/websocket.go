package handlers

import (
	"log"
	"net/http"

	"github.com/dom/rx-portal/internal/events"
	"github.com/dom/rx-portal/internal/service"
	ws "github.com/gorilla/websocket"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

type WebSocketHandler struct {
	hub         *events.Hub
	authService *service.AuthService
}

func NewWebSocketHandler(hub *events.Hub, authService *service.AuthService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		authService: authService,
	}
}

// Handle upgrades an authenticated request to a websocket subscription on
// the event feed. Browsers cannot set headers on websocket requests, so
// the token rides in a query parameter.
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Token required", http.StatusUnauthorized)
		return
	}

	identity, err := h.authService.ValidateToken(token)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := events.NewClient(h.hub, conn, identity)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
