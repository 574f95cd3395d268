package realtime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gmi-gj-dev-krushna/employcentric/internal/domain"
)

const eventAuthenticate = "authenticate"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The SPA is served from a different origin in every deployment.
		return true
	},
}

type client struct {
	hub        *Hub
	conn       *websocket.Conn
	endpointID string
	employeeID string
	send       <-chan []byte
	logger     *zap.Logger
}

// ServeWS upgrades the connection and binds it to the hub. The caller
// authenticates with the same JWT the REST API uses, passed as a query
// parameter because browsers cannot set headers on websocket handshakes.
// Admin and HR connections are placed in their broadcast groups
// immediately; the identity group is only joined once the client sends
// its authenticate frame.
func ServeWS(hub *Hub, c *gin.Context) {
	logger := zap.L().Named("realtime.ws")

	tokenString := c.Query("token")
	if tokenString == "" {
		logger.Warn("websocket rejected: missing token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		logger.Warn("websocket rejected: invalid token", zap.Error(err))
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	employeeID, _ := claims["employee_id"].(string)
	role, _ := claims["role"].(string)
	if employeeID == "" || !domain.ValidRole(role) {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	endpointID := uuid.NewString()
	cl := &client{
		hub:        hub,
		conn:       conn,
		endpointID: endpointID,
		employeeID: employeeID,
		send:       hub.Register(endpointID, 256),
		logger:     logger.With(zap.String("endpoint_id", endpointID)),
	}

	switch role {
	case domain.RoleAdmin:
		hub.JoinGroup(endpointID, GroupAdmin)
	case domain.RoleHR:
		hub.JoinGroup(endpointID, GroupHR)
	}

	go cl.writePump()
	go cl.readPump()
}

func (c *client) writePump() {
	defer func() {
		_ = c.conn.Close()
	}()
	for frame := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *client) readPump() {
	defer func() {
		c.hub.Unregister(c.endpointID)
		_ = c.conn.Close()
	}()
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			continue
		}

		// The identity announced by the client is ignored; the group is
		// keyed by the employee id proven during the handshake.
		if frame.Event == eventAuthenticate {
			c.hub.JoinGroup(c.endpointID, c.employeeID)
			c.logger.Debug("endpoint authenticated",
				zap.String("employee_id", c.employeeID),
			)
		}
	}
}

// RegisterRoutes exposes the websocket endpoint.
func RegisterRoutes(r *gin.Engine, hub *Hub) {
	r.GET("/ws", func(c *gin.Context) {
		ServeWS(hub, c)
	})
}
