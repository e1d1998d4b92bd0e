package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	goaway "github.com/TwiN/go-away"
	"github.com/asaskevich/govalidator"
	"github.com/windoze95/saltybytes-planner/internal/config"
	"github.com/windoze95/saltybytes-planner/internal/models"
	"github.com/windoze95/saltybytes-planner/internal/remote"
	"github.com/windoze95/saltybytes-planner/internal/state"
	"go.uber.org/zap"
)

const wrongIngredientFormat = "Wrong ingredient format! Please, use proper format."

// UploadRecipe validates the form, creates the recipe remotely under the current key,
// makes it the current recipe and bookmarks it. Invalid input fails before any request.
func (s *PlannerService) UploadRecipe(ctx context.Context, form models.UploadForm) error {
	payload, err := ValidateUpload(form)
	if err != nil {
		return err
	}

	r, err := s.Recipes.CreateRecipe(ctx, payload, s.State.UserKey)
	if err != nil {
		return err
	}

	bookmarks := s.State.Bookmarks
	if !s.State.IsBookmarked(r.ID) {
		bookmarks = s.bookmarksWith(r)
		if err := s.persist(state.KeyBookmarks, bookmarks); err != nil {
			return err
		}
	}

	r.Bookmarked = true
	s.State.SetRecipe(r)
	s.State.Bookmarks = bookmarks
	s.log.Info("recipe uploaded", zap.String("recipe_id", r.ID))
	return nil
}

// ValidateUpload turns the raw form into an upload body.
func ValidateUpload(form models.UploadForm) (remote.NewRecipe, error) {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return remote.NewRecipe{}, &ValidationError{Message: "Title is required"}
	}
	publisher := strings.TrimSpace(form.Publisher)

	profanityDetector := goaway.NewProfanityDetector().WithSanitizeLeetSpeak(true).WithSanitizeSpecialCharacters(true).WithSanitizeAccents(false)
	if profanityDetector.IsProfane(title) || profanityDetector.IsProfane(publisher) {
		return remote.NewRecipe{}, &ValidationError{Message: "Title or publisher contains inappropriate language"}
	}

	sourceURL := strings.TrimSpace(form.SourceURL)
	if !govalidator.IsURL(sourceURL) {
		return remote.NewRecipe{}, &ValidationError{Message: "Source URL must be a valid URL"}
	}
	image := strings.TrimSpace(form.Image)
	if !govalidator.IsURL(image) {
		return remote.NewRecipe{}, &ValidationError{Message: "Image must be a valid URL"}
	}

	cookingTime, err := strconv.Atoi(strings.TrimSpace(form.CookingTime))
	if err != nil || cookingTime < 0 {
		return remote.NewRecipe{}, &ValidationError{Message: "Cooking time must be a whole number of minutes"}
	}
	servings, err := strconv.Atoi(strings.TrimSpace(form.Servings))
	if err != nil || servings < 1 {
		return remote.NewRecipe{}, &ValidationError{Message: "Servings must be a positive whole number"}
	}

	ingredients, err := parseIngredientRows(form.Ingredients)
	if err != nil {
		return remote.NewRecipe{}, err
	}

	return remote.NewRecipe{
		Title:       title,
		SourceURL:   sourceURL,
		ImageURL:    image,
		Publisher:   publisher,
		CookingTime: cookingTime,
		Servings:    servings,
		Ingredients: ingredients,
	}, nil
}

func parseIngredientRows(rows []models.IngredientRow) ([]models.Ingredient, error) {
	if len(rows) == 0 {
		return nil, &ValidationError{Message: "Add at least one ingredient"}
	}
	if len(rows) > config.MaxIngredientRows {
		return nil, &ValidationError{Message: fmt.Sprintf("A recipe can have at most %d ingredients", config.MaxIngredientRows)}
	}

	ingredients := make([]models.Ingredient, 0, len(rows))
	for _, row := range rows {
		description := strings.TrimSpace(row.Description)
		if description == "" {
			return nil, &ValidationError{Message: wrongIngredientFormat}
		}

		var quantity *float64
		if q := strings.TrimSpace(row.Quantity); q != "" {
			v, err := strconv.ParseFloat(q, 64)
			if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
				return nil, &ValidationError{Message: wrongIngredientFormat}
			}
			quantity = &v
		}

		ingredients = append(ingredients, models.Ingredient{
			Quantity:    quantity,
			Unit:        strings.TrimSpace(row.Unit),
			Description: description,
		})
	}
	return ingredients, nil
}
