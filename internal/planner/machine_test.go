package planner

import (
	"errors"
	"testing"

	"github.com/windoze95/saltybytes-planner/internal/config"
	"github.com/windoze95/saltybytes-planner/internal/models"
	"github.com/windoze95/saltybytes-planner/internal/render"
)

type dropCall struct {
	day     int
	payload models.DragPayload
}

func newTestMachine(t *testing.T) (*Machine, *render.Surface[models.WeeklyPlan], *[]dropCall) {
	t.Helper()
	plan := models.NewWeeklyPlan()
	plan.Slot(2).Recipe = models.Recipe{ID: "r2", Title: "Soup", Image: "https://x/soup.jpg"}
	cal := render.NewCalendarView(config.DefaultMessages())
	if _, err := cal.Render(plan); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	var calls []dropCall
	m := New(cal, func(day int, payload models.DragPayload) ([]render.Patch, error) {
		calls = append(calls, dropCall{day: day, payload: payload})
		return []render.Patch{{Op: render.OpReplace, Target: render.SelCalendar}}, nil
	})
	return m, cal, &calls
}

func wantState(t *testing.T, m *Machine, kind Kind, day int) {
	t.Helper()
	if got := m.State(); got.Kind != kind || (kind != Idle && got.Day != day) {
		t.Errorf("state = %v(%d), want %v(%d)", got.Kind, got.Day, kind, day)
	}
}

func toolbarPatch(patches []render.Patch) *render.Patch {
	for i := range patches {
		if patches[i].Target == render.SelToolbar {
			return &patches[i]
		}
	}
	return nil
}

func TestDoubleClick_SelectReselectDeselect(t *testing.T) {
	m, cal, _ := newTestMachine(t)

	patches, err := m.DoubleClick(3, 120, 40)
	if err != nil {
		t.Fatalf("DoubleClick error: %v", err)
	}
	wantState(t, m, Selected, 3)
	tb := toolbarPatch(patches)
	if tb == nil || tb.Attrs["style"] != "left: 120px; top: 40px; display: inline-flex" {
		t.Errorf("toolbar patch = %+v", tb)
	}
	if s, _ := cal.Find(render.DaySelector(3)).Attr("style"); s != "background-color: "+SelectedColor {
		t.Errorf("day 3 style = %q", s)
	}

	m.DoubleClick(5, 10, 10)
	wantState(t, m, Selected, 5)
	if s, _ := cal.Find(render.DaySelector(3)).Attr("style"); s != "background-color: "+DefaultColor {
		t.Errorf("previous day style = %q", s)
	}

	patches, _ = m.DoubleClick(5, 10, 10)
	wantState(t, m, Idle, 0)
	if tb := toolbarPatch(patches); tb == nil || tb.Attrs["style"] != "display: none" {
		t.Errorf("toolbar should hide, got %+v", tb)
	}
}

func TestDoubleClick_OutsideDaysIgnored(t *testing.T) {
	m, _, _ := newTestMachine(t)
	if patches, _ := m.DoubleClick(0, 1, 1); patches != nil {
		t.Errorf("patches = %+v", patches)
	}
	wantState(t, m, Idle, 0)
}

func TestClick_CancelsSelectionUnlessOnSelectedDay(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.DoubleClick(4, 0, 0)

	if patches := m.Click(4); patches != nil {
		t.Errorf("click on selected day should keep selection, got %+v", patches)
	}
	wantState(t, m, Selected, 4)

	if patches := m.Click(0); toolbarPatch(patches) == nil {
		t.Error("click outside should hide the toolbar")
	}
	wantState(t, m, Idle, 0)

	m.DoubleClick(4, 0, 0)
	m.Click(6)
	wantState(t, m, Idle, 0)

	if patches := m.Click(0); patches != nil {
		t.Errorf("idle click should do nothing, got %+v", patches)
	}
}

func TestDragStart_PayloadAndToolbar(t *testing.T) {
	m, _, _ := newTestMachine(t)
	m.DoubleClick(2, 0, 0)

	data, patches, err := m.DragStart(2)
	if err != nil {
		t.Fatalf("DragStart error: %v", err)
	}
	payload, err := models.ParseDragPayload(data)
	if err != nil {
		t.Fatalf("payload does not parse: %v", err)
	}
	if payload.Kind != models.DragDaySwap || payload.Day != 2 || payload.Recipe.ID != "r2" {
		t.Errorf("payload = %+v", payload)
	}
	if toolbarPatch(patches) == nil {
		t.Error("drag start should hide the toolbar")
	}
	wantState(t, m, Selected, 2)

	if _, _, err := m.DragStart(9); err == nil {
		t.Error("day 9 should fail")
	}
}

func TestDragOver_OnlyOneDayShowsPrompt(t *testing.T) {
	m, cal, _ := newTestMachine(t)
	day2 := cal.InnerOf(render.DaySelector(2))
	day3 := cal.InnerOf(render.DaySelector(3))

	if _, err := m.DragOver(2); err != nil {
		t.Fatalf("DragOver error: %v", err)
	}
	wantState(t, m, DraggingOver, 2)
	if got := cal.InnerOf(render.DaySelector(2)); got != "Drop Recipe to Day 2" {
		t.Errorf("day 2 = %q", got)
	}

	if patches, _ := m.DragOver(2); patches != nil {
		t.Errorf("repeated dragover should be quiet, got %+v", patches)
	}

	m.DragOver(3)
	wantState(t, m, DraggingOver, 3)
	if got := cal.InnerOf(render.DaySelector(2)); got != day2 {
		t.Errorf("day 2 not restored: %q", got)
	}
	if got := cal.InnerOf(render.DaySelector(3)); got != "Drop Recipe to Day 3" {
		t.Errorf("day 3 = %q", got)
	}

	m.DragOver(0)
	wantState(t, m, Idle, 0)
	if got := cal.InnerOf(render.DaySelector(3)); got != day3 {
		t.Errorf("day 3 not restored: %q", got)
	}
	if s, _ := cal.Find(render.DaySelector(3)).Attr("style"); s != "background-color: "+DefaultColor {
		t.Errorf("day 3 style = %q", s)
	}
}

func TestDrop_HandsPayloadToDropFunc(t *testing.T) {
	m, cal, calls := newTestMachine(t)
	day5 := cal.InnerOf(render.DaySelector(5))
	data, _, _ := m.DragStart(2)

	m.DragOver(5)
	patches, err := m.Drop(data)
	if err != nil {
		t.Fatalf("Drop error: %v", err)
	}
	wantState(t, m, Idle, 0)
	if len(*calls) != 1 || (*calls)[0].day != 5 || (*calls)[0].payload.Day != 2 {
		t.Fatalf("drop calls = %+v", *calls)
	}
	if last := patches[len(patches)-1]; last.Op != render.OpReplace {
		t.Errorf("DropFunc patches should come last, got %+v", last)
	}
	if got := cal.InnerOf(render.DaySelector(5)); got != day5 {
		t.Errorf("day 5 not restored: %q", got)
	}
}

func TestDrop_UnparsablePayloadRestoresOnly(t *testing.T) {
	m, cal, calls := newTestMachine(t)
	day2 := cal.InnerOf(render.DaySelector(2))

	m.DragOver(2)
	patches, err := m.Drop([]byte("garbage"))
	if err != nil {
		t.Fatalf("Drop error: %v", err)
	}
	if len(*calls) != 0 {
		t.Errorf("DropFunc called %d times", len(*calls))
	}
	if len(patches) != 2 || patches[0].Op != render.OpInner || patches[0].HTML != day2 {
		t.Errorf("patches = %+v", patches)
	}
	wantState(t, m, Idle, 0)
}

func TestDrop_WithoutDragOverDoesNothing(t *testing.T) {
	m, _, calls := newTestMachine(t)
	data, _, _ := m.DragStart(2)
	if patches, err := m.Drop(data); patches != nil || err != nil {
		t.Errorf("patches = %+v, err = %v", patches, err)
	}
	if len(*calls) != 0 {
		t.Error("DropFunc should not run")
	}
}

func TestDrop_PropagatesDropFuncError(t *testing.T) {
	cal := render.NewCalendarView(config.DefaultMessages())
	cal.Render(models.NewWeeklyPlan())
	boom := errors.New("persist failed")
	m := New(cal, func(int, models.DragPayload) ([]render.Patch, error) { return nil, boom })

	m.DragOver(1)
	payload, _ := models.RecipeDrag(models.Recipe{ID: "x", Title: "X"}).Encode()
	patches, err := m.Drop(payload)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
	if len(patches) != 2 {
		t.Errorf("restore patches = %+v", patches)
	}
}

func TestDragAbort(t *testing.T) {
	m, cal, calls := newTestMachine(t)
	day4 := cal.InnerOf(render.DaySelector(4))
	m.DragOver(4)
	if _, err := m.DragAbort(); err != nil {
		t.Fatalf("DragAbort error: %v", err)
	}
	wantState(t, m, Idle, 0)
	if cal.InnerOf(render.DaySelector(4)) != day4 {
		t.Error("abort should restore the saved markup")
	}
	if len(*calls) != 0 {
		t.Error("abort must not mutate the plan")
	}
	if patches, _ := m.DragAbort(); patches != nil {
		t.Errorf("second abort = %+v", patches)
	}
}
