package middleware

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/saltybytes-planner/internal/util"
	"golang.org/x/time/rate"
)

// limiterInfo is a struct that holds a rate limiter and the last time it was seen,
// in Unix nanoseconds.
type limiterInfo struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

func newLimiterInfo(rps int) *limiterInfo {
	info := &limiterInfo{limiter: rate.NewLimiter(rate.Limit(rps), rps)}
	info.touch()
	return info
}

func (l *limiterInfo) touch() {
	l.lastSeen.Store(time.Now().UnixNano())
}

func (l *limiterInfo) idle() time.Duration {
	return time.Since(time.Unix(0, l.lastSeen.Load()))
}

// RateLimitByIP applies rate limiting to requests per IP address.
func RateLimitByIP(rps int, cleanupInterval time.Duration, expiration time.Duration) gin.HandlerFunc {
	return rateLimitBy(func(c *gin.Context) string { return c.ClientIP() }, rps, cleanupInterval, expiration)
}

// RateLimitByClient applies rate limiting per planner client, falling back to the IP
// address before ClientIdentity ran.
func RateLimitByClient(rps int, cleanupInterval time.Duration, expiration time.Duration) gin.HandlerFunc {
	return rateLimitBy(func(c *gin.Context) string {
		if clientID, err := util.GetClientIDFromContext(c); err == nil {
			return "client:" + clientID
		}
		return c.ClientIP()
	}, rps, cleanupInterval, expiration)
}

func rateLimitBy(key func(*gin.Context) string, rps int, cleanupInterval time.Duration, expiration time.Duration) gin.HandlerFunc {
	var limiters sync.Map

	// Cleanup goroutine
	go func() {
		for range time.Tick(cleanupInterval) {
			limiters.Range(func(key, value interface{}) bool {
				if value.(*limiterInfo).idle() > expiration {
					limiters.Delete(key)
				}
				return true
			})
		}
	}()

	return func(c *gin.Context) {
		actual, _ := limiters.LoadOrStore(key(c), newLimiterInfo(rps))

		info := actual.(*limiterInfo)
		info.touch()

		if !info.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}
