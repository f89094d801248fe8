package handler

import (
	"net/http"

	"github.com/biteflow/restaurant-service/internal/middleware"
	"github.com/biteflow/restaurant-service/internal/websockets"
	"github.com/gorilla/websocket"
)

// WebSocketHandler upgrades admin sessions onto the live feed
type WebSocketHandler struct {
	hub      *websockets.Hub
	upgrader *websocket.Upgrader
}

// NewWebSocketHandler creates a handler that accepts upgrades from allowedOrigins
func NewWebSocketHandler(hub *websockets.Hub, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:      hub,
		upgrader: websockets.NewUpgrader(allowedOrigins),
	}
}

// ServeHTTP runs behind AdminOnly, so the claims are already verified
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	adminEmail := ""
	if claims, ok := middleware.GetClaims(r.Context()); ok {
		adminEmail = claims.Email
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// If upgrading fails, the upgrader has already written the error to the response
		return
	}

	websockets.ServeWs(h.hub, conn, adminEmail)
}
