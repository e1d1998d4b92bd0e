package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// SpoonacularClient implements NutritionProvider. Calls share one rate limiter so a
// calorie fan-out stays within the account's request rate.
type SpoonacularClient struct {
	baseURL   string
	apiKey    string
	transport *Transport
	limiter   *rate.Limiter
}

// NewSpoonacularClient creates a client allowing rps calls per second. rps <= 0 disables throttling.
func NewSpoonacularClient(baseURL, apiKey string, timeout time.Duration, rps int) *SpoonacularClient {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), rps)
	}
	return &SpoonacularClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		transport: NewTransport("nutrition", timeout),
		limiter:   limiter,
	}
}

type analyzeResponse struct {
	ExtendedIngredients []struct {
		ID       int `json:"id"`
		Measures struct {
			Metric struct {
				Amount   float64 `json:"amount"`
				UnitLong string  `json:"unitLong"`
			} `json:"metric"`
		} `json:"measures"`
	} `json:"extendedIngredients"`
}

type ingredientInfoResponse struct {
	Nutrition struct {
		Nutrients []struct {
			Title  string  `json:"title"`
			Name   string  `json:"name"`
			Amount float64 `json:"amount"`
		} `json:"nutrients"`
	} `json:"nutrition"`
}

// AnalyzeRecipe resolves each ingredient line to an ingredient id and metric amount.
func (c *SpoonacularClient) AnalyzeRecipe(ctx context.Context, req AnalyzeRequest) ([]ResolvedIngredient, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("nutrition rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	var resp analyzeResponse
	if err := c.transport.Do(ctx, http.MethodPost, c.baseURL+"/recipes/analyze?"+params.Encode(), req, &resp); err != nil {
		return nil, err
	}

	resolved := make([]ResolvedIngredient, 0, len(resp.ExtendedIngredients))
	for _, ing := range resp.ExtendedIngredients {
		resolved = append(resolved, ResolvedIngredient{
			ID:     ing.ID,
			Amount: ing.Measures.Metric.Amount,
			Unit:   ing.Measures.Metric.UnitLong,
		})
	}
	return resolved, nil
}

// IngredientCalories fetches the nutrient profile of amount of ingredient id.
func (c *SpoonacularClient) IngredientCalories(ctx context.Context, id int, amount float64) (float64, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, false, fmt.Errorf("nutrition rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	params.Set("apiKey", c.apiKey)
	u := fmt.Sprintf("%s/food/ingredients/%d/information?%s", c.baseURL, id, params.Encode())

	var resp ingredientInfoResponse
	if err := c.transport.Do(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return 0, false, err
	}
	for _, n := range resp.Nutrition.Nutrients {
		if n.Title == "Calories" || n.Name == "Calories" {
			return n.Amount, true, nil
		}
	}
	return 0, false, nil
}
