package service

import (
	"fmt"

	"github.com/windoze95/saltybytes-planner/internal/models"
	"github.com/windoze95/saltybytes-planner/internal/state"
	"go.uber.org/zap"
)

// UpdateWeeklyPlan places a dragged payload on day. A recipe drag replaces the day's
// recipe. A day swap gives the source day the target's current recipe and the target
// the recipe carried in the payload, which may be stale if the plan changed since
// the drag started. An empty payload changes and persists nothing.
func (s *PlannerService) UpdateWeeklyPlan(day int, payload models.DragPayload) error {
	if !models.ValidDay(day) {
		return &ValidationError{Message: fmt.Sprintf("day %d is not in the weekly plan", day)}
	}
	if payload.IsEmpty() {
		return nil
	}

	plan := s.State.WeeklyPlan.Clone()
	switch payload.Kind {
	case models.DragRecipe:
		plan.Slot(day).Recipe = payload.Recipe.Clone()
	case models.DragDaySwap:
		target := plan.Slot(day).Recipe
		plan.Slot(payload.Day).Recipe = target
		plan.Slot(day).Recipe = payload.Recipe.Clone()
	}

	if err := s.persist(state.KeyWeeklyPlan, plan); err != nil {
		return err
	}
	s.State.WeeklyPlan = plan
	s.log.Debug("weekly plan updated", zap.Int("day", day), zap.String("kind", string(payload.Kind)))
	return nil
}

// AssignCurrentRecipe puts the displayed recipe on day.
func (s *PlannerService) AssignCurrentRecipe(day int) error {
	if !s.State.HasRecipe() {
		return errNoRecipe
	}
	return s.UpdateWeeklyPlan(day, models.RecipeDrag(s.State.Recipe))
}

// EmptyDay clears the recipe of one day.
func (s *PlannerService) EmptyDay(day int) error {
	if !models.ValidDay(day) {
		return &ValidationError{Message: fmt.Sprintf("day %d is not in the weekly plan", day)}
	}
	plan := s.State.WeeklyPlan.Clone()
	plan.Slot(day).Recipe = models.Recipe{}
	if err := s.persist(state.KeyWeeklyPlan, plan); err != nil {
		return err
	}
	s.State.WeeklyPlan = plan
	return nil
}

// ClearWeeklyPlan empties every day and drops the persisted plan.
func (s *PlannerService) ClearWeeklyPlan() error {
	if err := s.Store.Remove(s.ClientID, state.KeyWeeklyPlan); err != nil {
		return fmt.Errorf("failed to remove weekly plan: %w", err)
	}
	s.State.WeeklyPlan = models.NewWeeklyPlan()
	return nil
}
