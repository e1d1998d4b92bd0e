package testutil

import (
	"fmt"

	"github.com/windoze95/saltybytes-planner/internal/models"
)

// TestRecipe creates a test recipe with four servings and realistic ingredients.
func TestRecipe() models.Recipe {
	return models.Recipe{
		ID:          "5ed6604591c37cdc054bc886",
		Title:       "Spicy Chicken and Pepper Jack Pizza",
		Publisher:   "My Baking Addiction",
		SourceURL:   "http://www.mybakingaddiction.com/spicy-chicken-and-pepper-jack-pizza-recipe/",
		Image:       "http://forkify-api.herokuapp.com/images/FlatBread21of1a180.jpg",
		Servings:    4,
		CookingTime: 45,
		Ingredients: []models.Ingredient{
			{Quantity: models.Float(2), Unit: "cups", Description: "flour"},
			{Quantity: models.Float(0.5), Unit: "tsp", Description: "salt"},
			{Quantity: nil, Unit: "", Description: "Pepper jack cheese"},
		},
	}
}

// TestRecipeWithID returns TestRecipe with a different id and title.
func TestRecipeWithID(id string) models.Recipe {
	r := TestRecipe()
	r.ID = id
	r.Title = "Recipe " + id
	return r
}

// TestSummaries creates n search results with ids r1..rn.
func TestSummaries(n int) []models.RecipeSummary {
	out := make([]models.RecipeSummary, n)
	for i := range out {
		out[i] = models.RecipeSummary{
			ID:        fmt.Sprintf("r%d", i+1),
			Title:     fmt.Sprintf("Pizza %d", i+1),
			Publisher: "Test Kitchen",
			Image:     fmt.Sprintf("http://img/%d.jpg", i+1),
		}
	}
	return out
}
