package ws

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/windoze95/saltybytes-planner/internal/logger"
	"github.com/windoze95/saltybytes-planner/internal/metrics"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned for an unknown or expired session id.
var ErrSessionNotFound = errors.New("session not found")

// Registry holds the live sessions and drops those left idle.
type Registry struct {
	deps Deps
	idle time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry returns an empty Registry creating sessions with deps.
func NewRegistry(deps Deps, idle time.Duration) *Registry {
	return &Registry{
		deps:     deps,
		idle:     idle,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session for a client.
func (r *Registry) Create(clientID string) (*Session, error) {
	s, err := NewSession(uuid.New().String(), clientID, r.deps)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	n := len(r.sessions)
	r.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	logger.Get().Info("session created", zap.String("session_id", s.ID), zap.String("client_id", clientID))
	return s, nil
}

// Get returns a live session and marks it as used.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok || s.Closed() {
		return nil, ErrSessionNotFound
	}
	s.touch()
	return s, nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Expire closes every session idle since before now minus the idle timeout and
// returns how many were dropped. Sessions with an open socket are kept.
func (r *Registry) Expire(now time.Time) int {
	cutoff := now.Add(-r.idle)

	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		if s.LastSeen().After(cutoff) {
			continue
		}
		if r.deps.Hub != nil && r.deps.Hub.ClientCount(id) > 0 {
			continue
		}
		expired = append(expired, s)
		delete(r.sessions, id)
	}
	n := len(r.sessions)
	r.mu.Unlock()

	for _, s := range expired {
		s.Close()
		logger.Get().Info("session expired", zap.String("session_id", s.ID), zap.String("client_id", s.ClientID))
	}
	metrics.ActiveSessions.Set(float64(n))
	return len(expired)
}

// Run expires idle sessions every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			r.Expire(now)
		case <-ctx.Done():
			return
		}
	}
}

// CloseAll closes every session.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	metrics.ActiveSessions.Set(0)
}
