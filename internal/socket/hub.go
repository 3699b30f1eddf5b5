// server/internal/socket/hub.go
package socket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event is a dashboard notification pushed to connected admins.
type Event struct {
	Type           string    `json:"type"` // e.g. "proof_submitted", "payment_verified"
	TrackingNumber string    `json:"trackingNumber"`
	At             time.Time `json:"at"`
}

// Hub tracks the WebSocket connections of logged-in admins and fans
// dashboard events out to all of them.
type Hub struct {
	clients map[string]*websocket.Conn // keyed by admin email
	mu      sync.RWMutex
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
		logger:  logger,
	}
}

// Register adds a client to the Hub.
func (h *Hub) Register(email string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[email] = conn
	h.logger.Info("websocket client registered", zap.String("email", email))
}

// Unregister removes a client from the Hub.
func (h *Hub) Unregister(email string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[email]; ok {
		delete(h.clients, email)
		h.logger.Info("websocket client unregistered", zap.String("email", email))
	}
}

// Broadcast sends an event to every connected admin. Write failures are
// logged and skipped; a dropped dashboard update is not an error.
func (h *Hub) Broadcast(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Warn("failed to encode dashboard event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for email, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Warn("failed to push dashboard event",
				zap.String("email", email), zap.Error(err))
		}
	}
}
