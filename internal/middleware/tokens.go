package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/windoze95/saltybytes-planner/internal/config"
	"github.com/windoze95/saltybytes-planner/internal/logger"
	"go.uber.org/zap"
)

// ClientCookie holds the signed client identity. It scopes the persisted planner the
// way browser storage would; it is not a login.
const ClientCookie = "planner_client"

// Token types.
const (
	TokenTypeClient  = "client"
	TokenTypeSession = "session"
)

// Token lifetimes.
const (
	ClientTokenTTL  = 365 * 24 * time.Hour
	SessionTokenTTL = 24 * time.Hour
)

// SessionClaims identify a planner session and the client that opened it.
type SessionClaims struct {
	SessionID string
	ClientID  string
}

// IssueClientToken signs a client identity token.
func IssueClientToken(secret, clientID string, ttl time.Duration) (string, error) {
	return sign(secret, jwt.MapClaims{
		"client_id": clientID,
		"exp":       time.Now().Add(ttl).Unix(),
		"iat":       time.Now().Unix(),
		"type":      TokenTypeClient,
	})
}

// IssueSessionToken signs the token a page presents when opening its WebSocket.
func IssueSessionToken(secret, sessionID, clientID string, ttl time.Duration) (string, error) {
	return sign(secret, jwt.MapClaims{
		"session_id": sessionID,
		"client_id":  clientID,
		"exp":        time.Now().Add(ttl).Unix(),
		"iat":        time.Now().Unix(),
		"type":       TokenTypeSession,
	})
}

func sign(secret string, claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// parseToken verifies an HS256 token and checks its type claim.
func parseToken(secret, tokenString, wantType string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != wantType {
		return nil, errors.New("invalid token type")
	}
	return claims, nil
}

// ParseClientToken returns the client id of a client identity token.
func ParseClientToken(secret, tokenString string) (string, error) {
	claims, err := parseToken(secret, tokenString, TokenTypeClient)
	if err != nil {
		return "", err
	}
	clientID, ok := claims["client_id"].(string)
	if !ok || clientID == "" {
		return "", errors.New("invalid client_id in token")
	}
	return clientID, nil
}

// ParseSessionToken verifies a session token.
func ParseSessionToken(secret, tokenString string) (SessionClaims, error) {
	claims, err := parseToken(secret, tokenString, TokenTypeSession)
	if err != nil {
		return SessionClaims{}, err
	}
	sessionID, _ := claims["session_id"].(string)
	clientID, _ := claims["client_id"].(string)
	if sessionID == "" || clientID == "" {
		return SessionClaims{}, errors.New("invalid session claims in token")
	}
	return SessionClaims{SessionID: sessionID, ClientID: clientID}, nil
}

// ClientIdentity reads the client cookie and sets "client_id" in the context. A
// missing or invalid cookie gets a fresh client id and a new cookie.
func ClientIdentity(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(ClientCookie); err == nil {
			if clientID, err := ParseClientToken(cfg.EnvVars.JwtSecretKey, cookie); err == nil {
				c.Set("client_id", clientID)
				c.Next()
				return
			}
		}

		clientID := uuid.New().String()
		token, err := IssueClientToken(cfg.EnvVars.JwtSecretKey, clientID, ClientTokenTTL)
		if err != nil {
			logger.FromContext(c).Error("failed to sign client token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to identify client"})
			c.Abort()
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(ClientCookie, token, int(ClientTokenTTL.Seconds()), "/", "", c.Request.TLS != nil, true)
		c.Set("client_id", clientID)
		c.Next()
	}
}
