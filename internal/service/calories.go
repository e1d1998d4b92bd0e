package service

import (
	"context"
	"math"
	"strings"

	"github.com/windoze95/saltybytes-planner/internal/models"
	"github.com/windoze95/saltybytes-planner/internal/remote"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// EstimateCaloriesPerServing resolves the current recipe's ingredients with the
// nutrition API, looks up each resolved ingredient concurrently and returns the total
// calories divided by servings, rounded up. Unresolved ingredients are skipped.
func (s *PlannerService) EstimateCaloriesPerServing(ctx context.Context) (int, error) {
	if !s.State.HasRecipe() {
		return 0, errNoRecipe
	}
	r := s.State.Recipe
	if r.Servings < 1 {
		return 0, &ValidationError{Message: "the recipe has no servings"}
	}

	req := remote.AnalyzeRequest{
		Title:       r.Title,
		Servings:    r.Servings,
		Ingredients: make([]string, len(r.Ingredients)),
	}
	for i, ing := range r.Ingredients {
		req.Ingredients[i] = ingredientPhrase(ing)
	}

	resolved, err := s.Nutrition.AnalyzeRecipe(ctx, req)
	if err != nil {
		return 0, err
	}

	calories := make([]float64, len(resolved))
	g, gctx := errgroup.WithContext(ctx)
	for i, ing := range resolved {
		if ing.ID == 0 {
			continue
		}
		i, ing := i, ing
		g.Go(func() error {
			c, ok, err := s.Nutrition.IngredientCalories(gctx, ing.ID, ing.Amount)
			if err != nil {
				return err
			}
			if ok {
				calories[i] = c
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total float64
	for _, c := range calories {
		total += c
	}
	perServing := int(math.Ceil(total / float64(r.Servings)))
	s.log.Debug("calories estimated", zap.String("recipe_id", r.ID), zap.Int("per_serving", perServing))
	return perServing, nil
}

// ingredientPhrase renders an ingredient the way the analysis API parses it,
// e.g. "2 cups of flour". A missing quantity is sent as 1.
func ingredientPhrase(ing models.Ingredient) string {
	q := "1"
	if ing.Quantity != nil {
		q = formatAmount(*ing.Quantity)
	}
	phrase := q + " " + ing.Unit + " of  " + ing.Description
	return strings.TrimSpace(strings.ReplaceAll(phrase, "  ", " "))
}
