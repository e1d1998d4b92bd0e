package util

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// GetClientIDFromContext gets the planner client ID set by the identity middleware.
func GetClientIDFromContext(c *gin.Context) (string, error) {
	val, ok := c.Get("client_id")
	if !ok {
		return "", errors.New("no client ID information")
	}

	clientID, ok := val.(string)
	if !ok || clientID == "" {
		return "", errors.New("client ID information is of the wrong type")
	}

	return clientID, nil
}
