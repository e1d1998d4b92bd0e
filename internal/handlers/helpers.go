package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/saltybytes-planner/internal/util"
	"github.com/windoze95/saltybytes-planner/internal/ws"
)

// sessionForClient looks up the session named in the path and checks it belongs to
// the calling client. On failure the response is already written.
func sessionForClient(c *gin.Context, registry *ws.Registry) (*ws.Session, bool) {
	clientID, err := util.GetClientIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}

	session, err := registry.Get(c.Param("session_id"))
	if err != nil {
		if errors.Is(err, ws.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session expired, please reload the page"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	if session.ClientID != clientID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Session belongs to another client"})
		return nil, false
	}
	return session, true
}

// imageContentType maps an accepted image file name to its content type.
func imageContentType(filename string) (ext, contentType string, ok bool) {
	ext = strings.ToLower(filepath.Ext(filename))
	contentType, ok = allowedImageTypes[ext]
	return ext, contentType, ok
}
