// Package state holds the Application State of one planner session. A State is an
// explicit container owned by its session; nothing here is global.
package state

import "github.com/windoze95/saltybytes-planner/internal/models"

// DefaultResultsPerPage is the search page size when none is configured.
const DefaultResultsPerPage = 10

// Keys of the flat persisted store.
const (
	KeyUserKey    = "key"
	KeyBookmarks  = "bookmarks"
	KeyWeeklyPlan = "calendar"
)

// Search is the last submitted query and its full result set.
type Search struct {
	Query          string
	Results        []models.RecipeSummary
	Page           int
	ResultsPerPage int
}

// State is the mutable record every State Operation works on.
type State struct {
	Recipe models.Recipe
	// IngredientAmounts parallels Recipe.Ingredients with the serving-adjusted quantities.
	IngredientAmounts []float64
	Search            Search
	Bookmarks         []models.Recipe
	WeeklyPlan        models.WeeklyPlan
	UserKey           string
}

// New returns a State with every field at its default.
func New(resultsPerPage int) *State {
	if resultsPerPage <= 0 {
		resultsPerPage = DefaultResultsPerPage
	}
	return &State{
		Search: Search{
			Page:           1,
			ResultsPerPage: resultsPerPage,
		},
		WeeklyPlan: models.NewWeeklyPlan(),
	}
}

// HasRecipe reports whether a recipe is currently displayed.
func (s *State) HasRecipe() bool {
	return !s.Recipe.IsZero()
}

// SetRecipe makes r the current recipe and rebuilds IngredientAmounts alongside it.
func (s *State) SetRecipe(r models.Recipe) {
	s.Recipe = r
	s.IngredientAmounts = make([]float64, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		s.IngredientAmounts[i] = ing.Amount()
	}
}

// Page returns results in [(page-1)*size, page*size) and remembers page as current.
// Out of range pages yield an empty slice; pages below 1 are not remembered.
func (s *State) Page(page int) []models.RecipeSummary {
	if page < 1 {
		return []models.RecipeSummary{}
	}
	s.Search.Page = page
	size := s.Search.ResultsPerPage
	start := (page - 1) * size
	end := page * size
	if start < 0 || start >= len(s.Search.Results) {
		return []models.RecipeSummary{}
	}
	if end > len(s.Search.Results) {
		end = len(s.Search.Results)
	}
	out := make([]models.RecipeSummary, end-start)
	copy(out, s.Search.Results[start:end])
	return out
}

// NumPages is the number of result pages for the current search.
func (s *State) NumPages() int {
	size := s.Search.ResultsPerPage
	if size <= 0 {
		return 0
	}
	return (len(s.Search.Results) + size - 1) / size
}

// BookmarkIndex returns the position of id in Bookmarks or -1.
func (s *State) BookmarkIndex(id string) int {
	for i, b := range s.Bookmarks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// IsBookmarked reports whether id is bookmarked.
func (s *State) IsBookmarked(id string) bool {
	return s.BookmarkIndex(id) >= 0
}
