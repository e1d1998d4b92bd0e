package ws

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/windoze95/saltybytes-planner/internal/logger"
	"github.com/windoze95/saltybytes-planner/internal/middleware"
	"go.uber.org/zap"
)

// SessionHandler manages the WebSocket connections of planner sessions.
type SessionHandler struct {
	Hub       *Hub
	Registry  *Registry
	JwtSecret string
}

// NewSessionHandler returns a new SessionHandler.
func NewSessionHandler(hub *Hub, registry *Registry, jwtSecret string) *SessionHandler {
	return &SessionHandler{
		Hub:       hub,
		Registry:  registry,
		JwtSecret: jwtSecret,
	}
}

// upgrader accepts same-origin pages and localhost during development.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		if u.Host == r.Host {
			return true
		}
		// Allow localhost for development
		return strings.HasPrefix(origin, "http://localhost:") || origin == "http://localhost"
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// HandleSession upgrades an HTTP request to the WebSocket of a planner session.
// The page authenticates with the session token it was served, passed in the
// "token" query parameter.
func (h *SessionHandler) HandleSession(c *gin.Context) {
	log := logger.FromContext(c)

	sessionID := c.Param("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "session_id is required"})
		return
	}

	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "token query parameter is required"})
		return
	}
	claims, err := middleware.ParseSessionToken(h.JwtSecret, tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}
	if claims.SessionID != sessionID {
		c.JSON(http.StatusForbidden, gin.H{"message": "token does not match session"})
		return
	}

	session, err := h.Registry.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Session expired, please reload the page"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to open session"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed",
			zap.String("session_id", sessionID),
			zap.String("client_id", claims.ClientID),
			zap.Error(err),
		)
		return
	}

	client := &Client{
		Hub:      h.Hub,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		RoomID:   sessionID,
		ClientID: claims.ClientID,
	}
	h.Hub.Register <- client
	h.greet(client, session)

	log.Info("planner session connected",
		zap.String("session_id", sessionID),
		zap.String("client_id", claims.ClientID),
	)

	go client.WritePump()
	go client.ReadPump(func(_ *Client, data []byte) {
		session.Submit(data)
	})
}

// greet confirms the connection and sends the controls that depend on the
// restored planner.
func (h *SessionHandler) greet(client *Client, session *Session) {
	shell := session.Shell()
	client.Send <- connectedMessage(session.ID, shell.HasKey)
	if msg, err := encode(MsgTypePatches, PatchesPayload{Patches: session.StartupPatches()}); err == nil {
		client.Send <- msg
	}
}
