package service

import (
	"github.com/windoze95/saltybytes-planner/internal/models"
	"github.com/windoze95/saltybytes-planner/internal/state"
	"go.uber.org/zap"
)

// AddBookmark appends r to the bookmarks. A recipe already bookmarked is left alone.
func (s *PlannerService) AddBookmark(r models.Recipe) error {
	if s.State.IsBookmarked(r.ID) {
		return nil
	}
	bookmarks := s.bookmarksWith(r)
	if err := s.persist(state.KeyBookmarks, bookmarks); err != nil {
		return err
	}

	s.State.Bookmarks = bookmarks
	if r.ID == s.State.Recipe.ID {
		s.State.Recipe.Bookmarked = true
	}
	s.log.Debug("bookmark added", zap.String("recipe_id", r.ID))
	return nil
}

// bookmarksWith returns a copy of the bookmarks with r appended.
func (s *PlannerService) bookmarksWith(r models.Recipe) []models.Recipe {
	saved := r.Clone()
	saved.Bookmarked = true

	bookmarks := make([]models.Recipe, 0, len(s.State.Bookmarks)+1)
	bookmarks = append(bookmarks, s.State.Bookmarks...)
	return append(bookmarks, saved)
}

// DeleteBookmark removes the bookmark with the given id. Unknown ids are ignored.
func (s *PlannerService) DeleteBookmark(id string) error {
	idx := s.State.BookmarkIndex(id)
	if idx < 0 {
		return nil
	}

	bookmarks := make([]models.Recipe, 0, len(s.State.Bookmarks)-1)
	bookmarks = append(bookmarks, s.State.Bookmarks[:idx]...)
	bookmarks = append(bookmarks, s.State.Bookmarks[idx+1:]...)
	if err := s.persist(state.KeyBookmarks, bookmarks); err != nil {
		return err
	}

	s.State.Bookmarks = bookmarks
	if id == s.State.Recipe.ID {
		s.State.Recipe.Bookmarked = false
	}
	s.log.Debug("bookmark deleted", zap.String("recipe_id", id))
	return nil
}

// ToggleBookmark bookmarks the current recipe, or removes it when already bookmarked.
func (s *PlannerService) ToggleBookmark() error {
	if !s.State.HasRecipe() {
		return errNoRecipe
	}
	if s.State.Recipe.Bookmarked {
		return s.DeleteBookmark(s.State.Recipe.ID)
	}
	return s.AddBookmark(s.State.Recipe)
}
