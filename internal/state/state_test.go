package state

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/windoze95/saltybytes-planner/internal/models"
)

func summaries(n int) []models.RecipeSummary {
	out := make([]models.RecipeSummary, n)
	for i := range out {
		out[i] = models.RecipeSummary{ID: fmt.Sprintf("r%d", i+1), Title: fmt.Sprintf("Pizza %d", i+1)}
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	s := New(0)
	if s.Search.Page != 1 {
		t.Errorf("Page = %d, want 1", s.Search.Page)
	}
	if s.Search.ResultsPerPage != DefaultResultsPerPage {
		t.Errorf("ResultsPerPage = %d, want %d", s.Search.ResultsPerPage, DefaultResultsPerPage)
	}
	if s.HasRecipe() {
		t.Error("fresh state should have no recipe")
	}
	if !s.WeeklyPlan.Valid() {
		t.Error("fresh plan should be valid")
	}
}

func TestPage_PizzaScenario(t *testing.T) {
	s := New(10)
	s.Search.Results = summaries(23)

	p1 := s.Page(1)
	if len(p1) != 10 || p1[0].ID != "r1" || p1[9].ID != "r10" {
		t.Errorf("page 1 = %v", p1)
	}
	p3 := s.Page(3)
	if len(p3) != 3 || p3[0].ID != "r21" || p3[2].ID != "r23" {
		t.Errorf("page 3 = %v", p3)
	}
	if s.Search.Page != 3 {
		t.Errorf("current page = %d, want 3", s.Search.Page)
	}
	if p4 := s.Page(4); len(p4) != 0 {
		t.Errorf("page 4 should be empty, got %d items", len(p4))
	}
	if s.NumPages() != 3 {
		t.Errorf("NumPages = %d, want 3", s.NumPages())
	}
}

func TestPage_OutOfRangeNeverPanics(t *testing.T) {
	s := New(10)
	for _, p := range []int{-5, 0, 1, 2, 100} {
		if got := s.Page(p); len(got) != 0 {
			t.Errorf("Page(%d) on empty results = %d items", p, len(got))
		}
	}
	s.Search.Results = summaries(5)
	if got := s.Page(0); len(got) != 0 {
		t.Errorf("Page(0) = %d items, want 0", len(got))
	}
}

func TestPage_BelowOneKeepsCurrentPage(t *testing.T) {
	s := New(10)
	s.Search.Results = summaries(25)
	s.Page(2)
	for _, p := range []int{0, -3} {
		s.Page(p)
		if s.Search.Page != 2 {
			t.Errorf("after Page(%d) Search.Page = %d, want 2", p, s.Search.Page)
		}
	}
}

func TestPage_ConcatenationRebuildsResults(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 20, 37} {
		s := New(10)
		s.Search.Results = summaries(n)
		var all []models.RecipeSummary
		for p := 1; p <= s.NumPages(); p++ {
			page := s.Page(p)
			if len(page) > s.Search.ResultsPerPage {
				t.Fatalf("n=%d page %d has %d items", n, p, len(page))
			}
			all = append(all, page...)
		}
		if n == 0 {
			if len(all) != 0 {
				t.Errorf("n=0 produced %d items", len(all))
			}
			continue
		}
		if !reflect.DeepEqual(all, s.Search.Results) {
			t.Errorf("n=%d pages do not rebuild results", n)
		}
	}
}

func TestSetRecipe_AmountsFollowIngredients(t *testing.T) {
	s := New(10)
	s.SetRecipe(models.Recipe{
		ID: "x",
		Ingredients: []models.Ingredient{
			{Quantity: models.Float(2), Unit: "cups", Description: "flour"},
			{Quantity: nil, Description: "salt"},
		},
	})
	want := []float64{2, 0}
	if !reflect.DeepEqual(s.IngredientAmounts, want) {
		t.Errorf("IngredientAmounts = %v, want %v", s.IngredientAmounts, want)
	}
}

func TestBookmarkIndex(t *testing.T) {
	s := New(10)
	s.Bookmarks = []models.Recipe{{ID: "a"}, {ID: "b"}}
	if s.BookmarkIndex("b") != 1 {
		t.Errorf("BookmarkIndex(b) = %d", s.BookmarkIndex("b"))
	}
	if s.IsBookmarked("c") {
		t.Error("c should not be bookmarked")
	}
}
