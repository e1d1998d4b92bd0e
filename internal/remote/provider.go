package remote

import (
	"context"

	"github.com/windoze95/saltybytes-planner/internal/models"
)

// RecipeProvider is the recipe API. key is the user's API key, sent only when non-empty.
type RecipeProvider interface {
	GetRecipe(ctx context.Context, id, key string) (models.Recipe, error)
	Search(ctx context.Context, query, key string) ([]models.RecipeSummary, error)
	CreateRecipe(ctx context.Context, payload NewRecipe, key string) (models.Recipe, error)
}

// NutritionProvider is the nutrition analysis API.
type NutritionProvider interface {
	AnalyzeRecipe(ctx context.Context, req AnalyzeRequest) ([]ResolvedIngredient, error)
	// IngredientCalories returns the calories of amount of the ingredient. ok is false
	// when the profile has no Calories nutrient.
	IngredientCalories(ctx context.Context, id int, amount float64) (calories float64, ok bool, err error)
}

// NewRecipe is the body of a recipe upload.
type NewRecipe struct {
	Title       string              `json:"title"`
	SourceURL   string              `json:"source_url"`
	ImageURL    string              `json:"image_url"`
	Publisher   string              `json:"publisher"`
	CookingTime int                 `json:"cooking_time"`
	Servings    int                 `json:"servings"`
	Ingredients []models.Ingredient `json:"ingredients"`
}

// AnalyzeRequest is the body sent to resolve a recipe's ingredients.
type AnalyzeRequest struct {
	Title        string   `json:"title"`
	Servings     int      `json:"servings"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
}

// ResolvedIngredient is an ingredient matched to a canonical id. ID is zero when the
// API could not match it.
type ResolvedIngredient struct {
	ID     int
	Amount float64
	Unit   string
}
