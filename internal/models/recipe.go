package models

// Recipe is the full detail record of a dish as the planner holds it.
type Recipe struct {
	ID          string       `json:"id,omitempty"`
	Title       string       `json:"title,omitempty"`
	Publisher   string       `json:"publisher,omitempty"`
	SourceURL   string       `json:"sourceUrl,omitempty"`
	Image       string       `json:"image,omitempty"`
	Servings    int          `json:"servings,omitempty"`
	CookingTime int          `json:"cookingTime,omitempty"`
	Ingredients []Ingredient `json:"ingredients,omitempty"`
	// Key is only set on user-submitted recipes.
	Key        string `json:"key,omitempty"`
	Bookmarked bool   `json:"bookmarked,omitempty"`
}

// IsZero reports whether r is the empty sentinel meaning "no recipe".
func (r Recipe) IsZero() bool {
	return r.ID == "" && r.Title == "" && len(r.Ingredients) == 0
}

// UserGenerated reports whether the recipe was uploaded with a user key.
func (r Recipe) UserGenerated() bool {
	return r.Key != ""
}

// Clone returns a deep copy of r.
func (r Recipe) Clone() Recipe {
	dup := r
	if r.Ingredients != nil {
		dup.Ingredients = make([]Ingredient, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			dup.Ingredients[i] = ing.Clone()
		}
	}
	return dup
}

// Summary returns the list-view subset of r.
func (r Recipe) Summary() RecipeSummary {
	return RecipeSummary{
		ID:        r.ID,
		Title:     r.Title,
		Publisher: r.Publisher,
		Image:     r.Image,
		Key:       r.Key,
	}
}

// Ingredient is one line of a recipe. Quantity is nil when the source had none.
type Ingredient struct {
	Quantity    *float64 `json:"quantity"`
	Unit        string   `json:"unit"`
	Description string   `json:"description"`
}

// Clone returns a copy of ing that does not share the quantity pointer.
func (ing Ingredient) Clone() Ingredient {
	if ing.Quantity != nil {
		q := *ing.Quantity
		ing.Quantity = &q
	}
	return ing
}

// Amount returns the quantity or zero when absent.
func (ing Ingredient) Amount() float64 {
	if ing.Quantity == nil {
		return 0
	}
	return *ing.Quantity
}

// Float returns a pointer to v, for building ingredients.
func Float(v float64) *float64 {
	return &v
}

// RecipeSummary is the abbreviated recipe shown in result and bookmark lists.
// CookingTime and IngredientCount are only filled after a sort fetched full details.
type RecipeSummary struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Publisher       string `json:"publisher"`
	Image           string `json:"image"`
	Key             string `json:"key,omitempty"`
	CookingTime     int    `json:"cookingTime,omitempty"`
	IngredientCount int    `json:"ingredientCount,omitempty"`
}
