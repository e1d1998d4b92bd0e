package models

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// UploadForm is the add-recipe form as submitted. Values are kept raw so the service
// can report precise validation errors.
type UploadForm struct {
	Title       string          `json:"title"`
	SourceURL   string          `json:"sourceUrl"`
	Image       string          `json:"image"`
	Publisher   string          `json:"publisher"`
	CookingTime string          `json:"cookingTime"`
	Servings    string          `json:"servings"`
	Ingredients []IngredientRow `json:"ingredients"`
}

// IngredientRow is one ingredient line of the upload form.
type IngredientRow struct {
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
}

// Field name prefixes used by the add-recipe form inputs.
const (
	fieldQuantity    = "ingredient-q-"
	fieldUnit        = "ingredient-u-"
	fieldDescription = "ingredient-d-"
)

// ParseUploadValues collects a posted form into an UploadForm. Ingredient inputs are
// named ingredient-{q,u,d}-N and become rows ordered by N.
func ParseUploadValues(values url.Values) UploadForm {
	form := UploadForm{
		Title:       values.Get("title"),
		SourceURL:   values.Get("sourceUrl"),
		Image:       values.Get("image"),
		Publisher:   values.Get("publisher"),
		CookingTime: values.Get("cookingTime"),
		Servings:    values.Get("servings"),
	}

	rows := make(map[int]*IngredientRow)
	row := func(n int) *IngredientRow {
		r, ok := rows[n]
		if !ok {
			r = &IngredientRow{}
			rows[n] = r
		}
		return r
	}

	for name := range values {
		var prefix string
		switch {
		case strings.HasPrefix(name, fieldQuantity):
			prefix = fieldQuantity
		case strings.HasPrefix(name, fieldUnit):
			prefix = fieldUnit
		case strings.HasPrefix(name, fieldDescription):
			prefix = fieldDescription
		default:
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(name, prefix))
		if err != nil || n < 1 {
			continue
		}
		v := values.Get(name)
		switch prefix {
		case fieldQuantity:
			row(n).Quantity = v
		case fieldUnit:
			row(n).Unit = v
		case fieldDescription:
			row(n).Description = v
		}
	}

	indexes := make([]int, 0, len(rows))
	for n := range rows {
		indexes = append(indexes, n)
	}
	sort.Ints(indexes)
	for _, n := range indexes {
		form.Ingredients = append(form.Ingredients, *rows[n])
	}
	return form
}
