package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/windoze95/saltybytes-planner/internal/logger"
	"github.com/windoze95/saltybytes-planner/internal/models"
	"github.com/windoze95/saltybytes-planner/internal/remote"
	"github.com/windoze95/saltybytes-planner/internal/repository"
	"github.com/windoze95/saltybytes-planner/internal/state"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PlannerService runs the State Operations of one session against its State.
// It is not safe for concurrent use; the owning session serializes calls.
type PlannerService struct {
	State     *state.State
	Store     repository.SnapshotRepo
	ClientID  string
	Recipes   remote.RecipeProvider
	Nutrition remote.NutritionProvider

	log *zap.Logger
	// details caches full recipes fetched for sorting, keyed by id. It belongs to
	// the current user key and is dropped when the key changes.
	details map[string]models.Recipe
}

// NewPlannerService is the constructor function for initializing a new PlannerService.
func NewPlannerService(st *state.State, store repository.SnapshotRepo, clientID string, recipes remote.RecipeProvider, nutrition remote.NutritionProvider) *PlannerService {
	return &PlannerService{
		State:     st,
		Store:     store,
		ClientID:  clientID,
		Recipes:   recipes,
		Nutrition: nutrition,
		log:       logger.Get().With(zap.String("client_id", clientID)),
		details:   make(map[string]models.Recipe),
	}
}

// Init overlays the persisted key, bookmarks and weekly plan onto the state.
// Absent keys keep their defaults; a corrupt blob is logged and ignored.
func (s *PlannerService) Init() error {
	if raw, ok, err := s.snapshot(state.KeyUserKey); err != nil {
		return err
	} else if ok {
		var key string
		if s.decode(state.KeyUserKey, raw, &key) {
			s.State.UserKey = key
		}
	}

	if raw, ok, err := s.snapshot(state.KeyBookmarks); err != nil {
		return err
	} else if ok {
		var bookmarks []models.Recipe
		if s.decode(state.KeyBookmarks, raw, &bookmarks) {
			s.State.Bookmarks = bookmarks
		}
	}

	if raw, ok, err := s.snapshot(state.KeyWeeklyPlan); err != nil {
		return err
	} else if ok {
		var plan models.WeeklyPlan
		if s.decode(state.KeyWeeklyPlan, raw, &plan) {
			s.State.WeeklyPlan = plan
		}
	}
	return nil
}

func (s *PlannerService) snapshot(key string) (string, bool, error) {
	raw, err := s.Store.Get(s.ClientID, key)
	if err != nil {
		var nf repository.NotFoundError
		if errors.As(err, &nf) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return raw, true, nil
}

func (s *PlannerService) decode(key, raw string, v interface{}) bool {
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.log.Warn("ignoring unreadable snapshot", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *PlannerService) persist(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.Store.Set(s.ClientID, key, string(data)); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

// LoadRecipe fetches a recipe and makes it the current one.
func (s *PlannerService) LoadRecipe(ctx context.Context, id string) error {
	r, err := s.Recipes.GetRecipe(ctx, id, s.State.UserKey)
	if err != nil {
		return err
	}
	s.details[r.ID] = r.Clone()
	r.Bookmarked = s.State.IsBookmarked(id)
	s.State.SetRecipe(r)
	s.log.Debug("recipe loaded", zap.String("recipe_id", id))
	return nil
}

// LoadSearchResults replaces the results with those matching query and rewinds to page 1.
func (s *PlannerService) LoadSearchResults(ctx context.Context, query string) error {
	results, err := s.Recipes.Search(ctx, query, s.State.UserKey)
	if err != nil {
		return err
	}
	s.State.Search.Query = query
	s.State.Search.Results = results
	s.State.Search.Page = 1
	s.log.Debug("search loaded", zap.String("query", query), zap.Int("results", len(results)))
	return nil
}

// GetPage returns one page of results and remembers it as current.
func (s *PlannerService) GetPage(page int) []models.RecipeSummary {
	return s.State.Page(page)
}

// CurrentPage returns the remembered page of results.
func (s *PlannerService) CurrentPage() []models.RecipeSummary {
	return s.State.Page(s.State.Search.Page)
}

// SortResults orders every result by cooking time or by ingredient count, ascending.
// Details missing from the cache are fetched concurrently; one failed fetch fails
// the sort and leaves the results as they were.
func (s *PlannerService) SortResults(ctx context.Context, byCookingTime bool) error {
	results := s.State.Search.Results
	if len(results) == 0 {
		return nil
	}

	details := make([]models.Recipe, len(results))
	g, gctx := errgroup.WithContext(ctx)
	for i, summary := range results {
		if cached, ok := s.details[summary.ID]; ok {
			details[i] = cached
			continue
		}
		i, id := i, summary.ID
		g.Go(func() error {
			r, err := s.Recipes.GetRecipe(gctx, id, s.State.UserKey)
			if err != nil {
				return err
			}
			details[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sorted := make([]models.RecipeSummary, len(details))
	for i, d := range details {
		s.details[d.ID] = d
		sorted[i] = d.Summary()
		sorted[i].CookingTime = d.CookingTime
		sorted[i].IngredientCount = len(d.Ingredients)
	}
	sort.SliceStable(sorted, func(a, b int) bool {
		if byCookingTime {
			return sorted[a].CookingTime < sorted[b].CookingTime
		}
		return sorted[a].IngredientCount < sorted[b].IngredientCount
	})

	s.State.Search.Results = sorted
	s.State.Search.Page = 1
	return nil
}

// UpdateServings rescales every ingredient quantity to n servings. It does nothing
// without a current recipe or for n < 1.
func (s *PlannerService) UpdateServings(n int) {
	if !s.State.HasRecipe() || n < 1 {
		return
	}
	r := s.State.Recipe.Clone()
	if r.Servings > 0 {
		for i, ing := range r.Ingredients {
			if ing.Quantity == nil {
				continue
			}
			q := *ing.Quantity * float64(n) / float64(r.Servings)
			r.Ingredients[i].Quantity = &q
		}
	}
	r.Servings = n
	s.State.SetRecipe(r)
}
