package service

import (
	"strings"

	"github.com/windoze95/saltybytes-planner/internal/models"
	"github.com/windoze95/saltybytes-planner/internal/state"
)

// SaveKey switches to a new user key. Bookmarks belong to the old key and are cleared.
// An empty key or the key already in use is rejected.
func (s *PlannerService) SaveKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" || key == s.State.UserKey {
		return &ValidationError{Message: "the key is empty or already in use"}
	}
	return s.replaceKey(key)
}

// DeleteKey forgets the user key and clears the bookmarks.
func (s *PlannerService) DeleteKey() error {
	return s.replaceKey("")
}

func (s *PlannerService) replaceKey(key string) error {
	if err := s.persist(state.KeyBookmarks, []models.Recipe{}); err != nil {
		return err
	}
	if err := s.persist(state.KeyUserKey, key); err != nil {
		return err
	}
	s.State.UserKey = key
	s.State.Bookmarks = []models.Recipe{}
	s.State.Recipe.Bookmarked = false
	s.details = make(map[string]models.Recipe)
	return nil
}
