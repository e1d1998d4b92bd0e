package render

import (
	"fmt"
	"strconv"
	"time"

	"github.com/windoze95/saltybytes-planner/internal/config"
	"github.com/windoze95/saltybytes-planner/internal/models"
)

// Container selectors of the page shell.
const (
	SelRecipe     = ".recipe"
	SelResults    = ".results"
	SelBookmarks  = ".bookmarks__list"
	SelPagination = ".pagination"
	SelCalendar   = ".calendar"
	SelShopping   = ".shopping__list"
	SelCalories   = ".calories__api"
	SelDialogue   = ".dialogue__window"
	SelKeyNotice  = ".key__child__notes"
	SelUpload     = ".add-recipe-window"

	SelToolbar     = ".floating__buttons"
	SelOverlay     = ".overlay"
	SelSortTime    = ".btn--sort--time"
	SelSortIngs    = ".btn--sort--ings"
	SelKeyButton   = ".nav__btn--get-Key"
	SelDeleteKey   = ".btn-delete-key"
	SelKeyWindow   = ".key__window"
	SelConfirmKey  = ".confirm__window"
	SelExtraWindow = ".modal__window"
)

// PreviewList is a list of recipe previews with the displayed recipe highlighted.
type PreviewList struct {
	Items    []models.RecipeSummary
	ActiveID string
}

// BookmarkList builds the preview list of the bookmarks.
func BookmarkList(bookmarks []models.Recipe, activeID string) PreviewList {
	items := make([]models.RecipeSummary, len(bookmarks))
	for i, b := range bookmarks {
		items[i] = b.Summary()
	}
	return PreviewList{Items: items, ActiveID: activeID}
}

type previewItem struct {
	models.RecipeSummary
	Active bool
}

func (l PreviewList) items() []previewItem {
	out := make([]previewItem, len(l.Items))
	for i, it := range l.Items {
		out[i] = previewItem{RecipeSummary: it, Active: it.ID == l.ActiveID}
	}
	return out
}

// Pagination is the current page and the number of pages of a search.
type Pagination struct {
	Page     int
	NumPages int
}

type pageButton struct {
	Page      int
	Direction string
	Arrow     string
}

type paginationData struct {
	Prev     *pageButton
	Next     *pageButton
	NumPages int
}

func (p Pagination) data() paginationData {
	d := paginationData{NumPages: p.NumPages}
	prev := &pageButton{Page: p.Page - 1, Direction: "prev", Arrow: "arrow-left"}
	next := &pageButton{Page: p.Page + 1, Direction: "next", Arrow: "arrow-right"}
	switch {
	case p.NumPages <= 1:
	case p.Page == 1:
		d.Next = next
	case p.Page == p.NumPages:
		d.Prev = prev
	case p.Page > 1 && p.Page < p.NumPages:
		d.Prev, d.Next = prev, next
	}
	return d
}

// NewRecipeView renders the recipe detail.
func NewRecipeView(msgs *config.Messages) *Surface[models.Recipe] {
	return NewSurface(SelRecipe,
		func(r models.Recipe) (string, error) { return execute("recipe", r) },
		func(r models.Recipe) bool { return r.IsZero() },
		msgs.Views.RecipeError, "")
}

// NewResultsView renders one page of search results.
func NewResultsView(msgs *config.Messages) *Surface[PreviewList] {
	return NewSurface(SelResults,
		func(l PreviewList) (string, error) { return execute("previews", l.items()) },
		func(l PreviewList) bool { return len(l.Items) == 0 },
		msgs.Views.NoResults, "")
}

// NewBookmarksView renders the bookmark list.
func NewBookmarksView(msgs *config.Messages) *Surface[PreviewList] {
	return NewSurface(SelBookmarks,
		func(l PreviewList) (string, error) { return execute("previews", l.items()) },
		func(l PreviewList) bool { return len(l.Items) == 0 },
		msgs.Views.NoBookmarks, "")
}

// NewPaginationView renders the page buttons. A single page renders nothing.
func NewPaginationView() *Surface[Pagination] {
	return NewSurface(SelPagination,
		func(p Pagination) (string, error) { return execute("pagination", p.data()) },
		nil, "", "")
}

// NewCalendarView renders the seven days of the weekly plan.
func NewCalendarView(msgs *config.Messages) *Surface[models.WeeklyPlan] {
	return NewSurface(SelCalendar,
		func(p models.WeeklyPlan) (string, error) { return execute("calendar", p) },
		nil, msgs.Views.CalendarNoRecipe, "")
}

// NewShoppingListView renders the shopping list lines.
func NewShoppingListView() *Surface[[]string] {
	return NewSurface(SelShopping,
		func(lines []string) (string, error) { return execute("shopping-list", lines) },
		nil, "", "")
}

// NewCaloriesView renders the calories-per-serving readout.
func NewCaloriesView(msgs *config.Messages) *Surface[int] {
	return NewSurface(SelCalories,
		func(calories int) (string, error) {
			text, err := msgs.Render(msgs.Dialogue.CaloriesResult, map[string]interface{}{"Calories": calories})
			if err != nil {
				return "", err
			}
			return execute("calories", text)
		},
		nil, msgs.Dialogue.CaloriesNoRecipe, msgs.Dialogue.CaloriesSuccess)
}

// NewDialogueView is the transient notification window. It only shows status markup.
func NewDialogueView(msgs *config.Messages) *Surface[string] {
	return NewSurface(SelDialogue,
		func(msg string) (string, error) {
			return execute("status", statusData{Class: "message", Icon: "smile", Message: msg})
		},
		nil, msgs.Dialogue.ShoppingNoRecipe, msgs.Dialogue.ShoppingListSuccess)
}

type keyNotice struct {
	Notice  string
	Current string
	None    string
	Key     string
}

// NewKeyView renders the key notification for the current key, or the no-key notice.
func NewKeyView(msgs *config.Messages) *Surface[string] {
	return NewSurface(SelKeyNotice,
		func(key string) (string, error) {
			n := keyNotice{Notice: msgs.Key.Notice, None: msgs.Key.None, Key: key}
			if key != "" {
				current, err := msgs.Render(msgs.Key.Current, map[string]interface{}{"Key": key})
				if err != nil {
					return "", err
				}
				n.Current = current
			}
			return execute("key-notice", n)
		},
		nil, msgs.Key.Rejected, msgs.Key.Saved)
}

type uploadFormData struct {
	Rows      []int
	CanAdd    bool
	CanRemove bool
}

// NewUploadView renders the add-recipe form with the given number of ingredient rows,
// clamped to the configured limits.
func NewUploadView(msgs *config.Messages) *Surface[int] {
	return NewSurface(SelUpload,
		func(rows int) (string, error) {
			rows = ClampRows(rows)
			d := uploadFormData{
				Rows:      make([]int, rows),
				CanAdd:    rows < config.MaxIngredientRows,
				CanRemove: rows > config.MinIngredientRows,
			}
			for i := range d.Rows {
				d.Rows[i] = i + 1
			}
			return execute("upload-form", d)
		},
		nil, "", msgs.Dialogue.UploadSuccess)
}

// ClampRows bounds an ingredient row count to the form limits.
func ClampRows(rows int) int {
	if rows < config.MinIngredientRows {
		return config.MinIngredientRows
	}
	if rows > config.MaxIngredientRows {
		return config.MaxIngredientRows
	}
	return rows
}

// Views bundles every surface of one page.
type Views struct {
	Recipe     *Surface[models.Recipe]
	Results    *Surface[PreviewList]
	Bookmarks  *Surface[PreviewList]
	Pagination *Surface[Pagination]
	Calendar   *Surface[models.WeeklyPlan]
	Shopping   *Surface[[]string]
	Calories   *Surface[int]
	Dialogue   *Surface[string]
	Key        *Surface[string]
	Upload     *Surface[int]
}

// NewViews creates the surfaces of a page using msgs for their fixed texts.
func NewViews(msgs *config.Messages) *Views {
	return &Views{
		Recipe:     NewRecipeView(msgs),
		Results:    NewResultsView(msgs),
		Bookmarks:  NewBookmarksView(msgs),
		Pagination: NewPaginationView(),
		Calendar:   NewCalendarView(msgs),
		Shopping:   NewShoppingListView(),
		Calories:   NewCaloriesView(msgs),
		Dialogue:   NewDialogueView(msgs),
		Key:        NewKeyView(msgs),
		Upload:     NewUploadView(msgs),
	}
}

// DaySelector matches the cell of one weekly-plan day.
func DaySelector(day int) string {
	return fmt.Sprintf(`.calendar__day[data-day="%d"]`, day)
}

// SortButtons shows the sort buttons when there are results and hides them otherwise.
func SortButtons(visible bool) []Patch {
	return []Patch{
		classPatch(SelSortTime, "btn--small btn--sort btn--sort--time", !visible),
		classPatch(SelSortIngs, "btn--small btn--sort btn--sort--ings", !visible),
	}
}

// KeyControls colors the key button red and hides the delete button when no key is used.
func KeyControls(hasKey bool) []Patch {
	color := "#f9f5f3"
	if !hasKey {
		color = "#e65e5e"
	}
	return []Patch{
		{Op: OpAttrs, Target: SelKeyButton, Attrs: map[string]string{"style": "background-color: " + color}},
		classPatch(SelDeleteKey, "btn btn-delete-key", !hasKey),
	}
}

// ShowDialogue makes the notification window visible. The browser hides it again
// after autoHide.
func ShowDialogue(autoHide time.Duration) Patch {
	return Patch{Op: OpAttrs, Target: SelDialogue, Attrs: map[string]string{
		"class":         "dialogue__window",
		"style":         "opacity: 1",
		"data-autohide": strconv.FormatInt(autoHide.Milliseconds(), 10),
	}}
}

// CloseModal hides a modal window and the page overlay.
func CloseModal(selector, class string) []Patch {
	return []Patch{
		classPatch(selector, class, true),
		classPatch(SelOverlay, "overlay", true),
	}
}

func classPatch(selector, class string, hidden bool) Patch {
	if hidden {
		class += " hidden"
	}
	return Patch{Op: OpAttrs, Target: selector, Attrs: map[string]string{"class": class}}
}
