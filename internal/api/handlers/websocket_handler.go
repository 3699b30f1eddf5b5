// server/internal/api/handlers/websocket_handler.go
package handlers

import (
	"net/http"
	"time"

	"global-track-api-server/internal/auth"
	"global-track-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Maximum wait for a ping from the client before the read loop gives up.
const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler streams dashboard events to logged-in admins. The token
// rides in the query string because browsers cannot set headers on
// WebSocket upgrades.
type WebSocketHandler struct {
	Hub    *socket.Hub
	Logger *zap.Logger
}

func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
		return
	}

	claims := &auth.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return auth.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	if claims.Role != "admin" && claims.Role != "superadmin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Warn("failed to upgrade connection", zap.Error(err))
		return
	}

	h.Hub.Register(claims.Email, conn)
	defer func() {
		h.Hub.Unregister(claims.Email)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.Logger.Warn("unexpected websocket close", zap.Error(err))
			}
			break
		}
	}
}
