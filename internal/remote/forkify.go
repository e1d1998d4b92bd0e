package remote

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/windoze95/saltybytes-planner/internal/models"
)

// ForkifyClient implements RecipeProvider against the forkify v2 recipes endpoint.
type ForkifyClient struct {
	baseURL   string
	transport *Transport
}

// NewForkifyClient creates a client. baseURL is the recipes collection URL.
func NewForkifyClient(baseURL string, timeout time.Duration) *ForkifyClient {
	return &ForkifyClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		transport: NewTransport("recipes", timeout),
	}
}

type forkifyRecipe struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Publisher   string              `json:"publisher"`
	SourceURL   string              `json:"source_url"`
	ImageURL    string              `json:"image_url"`
	Servings    int                 `json:"servings"`
	CookingTime int                 `json:"cooking_time"`
	Ingredients []models.Ingredient `json:"ingredients"`
	Key         string              `json:"key,omitempty"`
}

func (r forkifyRecipe) toRecipe() models.Recipe {
	return models.Recipe{
		ID:          r.ID,
		Title:       r.Title,
		Publisher:   r.Publisher,
		SourceURL:   r.SourceURL,
		Image:       r.ImageURL,
		Servings:    r.Servings,
		CookingTime: r.CookingTime,
		Ingredients: r.Ingredients,
		Key:         r.Key,
	}
}

type recipeEnvelope struct {
	Data struct {
		Recipe forkifyRecipe `json:"recipe"`
	} `json:"data"`
}

type searchEnvelope struct {
	Data struct {
		Recipes []forkifyRecipe `json:"recipes"`
	} `json:"data"`
}

func (c *ForkifyClient) endpoint(path string, params url.Values, key string) string {
	if key != "" {
		params.Set("key", key)
	}
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// GetRecipe fetches the full recipe with the given id.
func (c *ForkifyClient) GetRecipe(ctx context.Context, id, key string) (models.Recipe, error) {
	var env recipeEnvelope
	if err := c.transport.Do(ctx, http.MethodGet, c.endpoint("/"+url.PathEscape(id), url.Values{}, key), nil, &env); err != nil {
		return models.Recipe{}, err
	}
	return env.Data.Recipe.toRecipe(), nil
}

// Search returns the summaries matching query.
func (c *ForkifyClient) Search(ctx context.Context, query, key string) ([]models.RecipeSummary, error) {
	var env searchEnvelope
	params := url.Values{}
	params.Set("search", query)
	if err := c.transport.Do(ctx, http.MethodGet, c.endpoint("", params, key), nil, &env); err != nil {
		return nil, err
	}
	results := make([]models.RecipeSummary, 0, len(env.Data.Recipes))
	for _, r := range env.Data.Recipes {
		results = append(results, models.RecipeSummary{
			ID:        r.ID,
			Title:     r.Title,
			Publisher: r.Publisher,
			Image:     r.ImageURL,
			Key:       r.Key,
		})
	}
	return results, nil
}

// CreateRecipe uploads a recipe and returns it with its server-assigned id.
func (c *ForkifyClient) CreateRecipe(ctx context.Context, payload NewRecipe, key string) (models.Recipe, error) {
	var env recipeEnvelope
	if err := c.transport.Do(ctx, http.MethodPost, c.endpoint("", url.Values{}, key), payload, &env); err != nil {
		return models.Recipe{}, err
	}
	return env.Data.Recipe.toRecipe(), nil
}
