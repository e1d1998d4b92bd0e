package logger

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger *zap.Logger
	once         sync.Once
)

// Init initializes the global logger. In development mode, it uses a
// human-readable console encoder; in production, it uses JSON.
func Init(isDev bool) {
	once.Do(func() {
		var cfg zap.Config
		if isDev {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			cfg = zap.NewProductionConfig()
		}

		var err error
		globalLogger, err = cfg.Build()
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
	})
}

// Get returns the global logger singleton. If Init has not been called,
// it falls back to a no-op logger.
func Get() *zap.Logger {
	if globalLogger == nil {
		return zap.NewNop()
	}
	return globalLogger
}

// WithSession returns a child logger tagged with a planner session and its client.
func WithSession(sessionID, clientID string) *zap.Logger {
	return Get().With(zap.String("session_id", sessionID), zap.String("client_id", clientID))
}

// FromContext returns a child logger tagged with the request id and, once the
// identity middleware ran, the planner client.
func FromContext(c *gin.Context) *zap.Logger {
	var fields []zap.Field
	if id := c.GetString("request_id"); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if id := c.GetString("client_id"); id != "" {
		fields = append(fields, zap.String("client_id", id))
	}
	return Get().With(fields...)
}

// RequestIDMiddleware stores a request id in the gin context under "request_id" and
// sets the X-Request-ID response header. A UUID sent by a proxy in X-Request-ID is
// kept; anything else is replaced by a new one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Sync flushes any buffered log entries. Should be called before the
// application exits.
func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}
