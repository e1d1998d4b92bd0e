// Package planner tracks selection and drag-over state across the seven day cells
// of the weekly plan and turns pointer events into DOM patches.
package planner

import (
	"fmt"

	"github.com/windoze95/saltybytes-planner/internal/models"
	"github.com/windoze95/saltybytes-planner/internal/render"
)

// Background colors of a day cell.
const (
	DefaultColor  = "#f9f5f3"
	SelectedColor = "#d3c7c3"
	DragOverColor = "#918581"
)

// Kind is the state the machine is in.
type Kind int

// Machine states.
const (
	Idle Kind = iota
	Selected
	DraggingOver
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Selected:
		return "selected"
	case DraggingOver:
		return "dragging_over"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// State is the current state and, unless Idle, the day it refers to.
type State struct {
	Kind Kind
	Day  int
}

// Calendar is the rendered weekly plan the machine reads and patches.
type Calendar interface {
	Data() models.WeeklyPlan
	InnerOf(selector string) string
	SetInner(selector, markup string) (render.Patch, error)
	SetAttr(selector, key, val string) render.Patch
}

// DropFunc places a dropped payload on day and returns the patches that show the result.
type DropFunc func(day int, payload models.DragPayload) ([]render.Patch, error)

// Machine is the interaction state of one weekly-plan widget. It is not safe for
// concurrent use.
type Machine struct {
	cal   Calendar
	drop  DropFunc
	state State
	// saved is the inner markup of the dragged-over day before the drop prompt replaced it.
	saved string
}

// New returns an Idle machine over cal. drop is called for every parsable drop.
func New(cal Calendar, drop DropFunc) *Machine {
	return &Machine{cal: cal, drop: drop}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// SelectedDay returns the selected day, if any.
func (m *Machine) SelectedDay() (int, bool) {
	if m.state.Kind != Selected {
		return 0, false
	}
	return m.state.Day, true
}

// DoubleClick selects day and shows the toolbar at (x, y). Double clicking the
// selected day again deselects it.
func (m *Machine) DoubleClick(day, x, y int) ([]render.Patch, error) {
	if !models.ValidDay(day) {
		return nil, nil
	}
	patches, err := m.restore()
	if err != nil {
		return nil, err
	}
	patches = append(patches, m.cal.SetAttr(".calendar__day", "style", background(DefaultColor)))

	if m.state.Kind == Selected && m.state.Day == day {
		m.state = State{Kind: Idle}
		return append(patches, hideToolbar()), nil
	}

	m.state = State{Kind: Selected, Day: day}
	return append(patches,
		showToolbar(x, y),
		m.cal.SetAttr(render.DaySelector(day), "style", background(SelectedColor)),
	), nil
}

// Click handles a click anywhere on the page; day is 0 when the click was outside
// every day. Any click not on the selected day cancels the selection.
func (m *Machine) Click(day int) []render.Patch {
	if m.state.Kind != Selected || m.state.Day == day {
		return nil
	}
	return m.Deselect()
}

// Deselect drops the selection and hides the toolbar.
func (m *Machine) Deselect() []render.Patch {
	if m.state.Kind == Selected {
		m.state = State{Kind: Idle}
	}
	return []render.Patch{
		m.cal.SetAttr(".calendar__day", "style", background(DefaultColor)),
		hideToolbar(),
	}
}

// DragStart hides the toolbar and returns the drag payload for day's slot. The state
// does not change.
func (m *Machine) DragStart(day int) ([]byte, []render.Patch, error) {
	if !models.ValidDay(day) {
		return nil, nil, fmt.Errorf("day %d is not in the weekly plan", day)
	}
	plan := m.cal.Data()
	data, err := models.DaySwapDrag(*plan.Slot(day)).Encode()
	if err != nil {
		return nil, nil, err
	}
	return data, []render.Patch{hideToolbar()}, nil
}

// DragOver tracks the day under a drag; day is 0 outside every day. Only one day
// shows the drop prompt at a time.
func (m *Machine) DragOver(day int) ([]render.Patch, error) {
	if !models.ValidDay(day) {
		return m.restore()
	}
	if m.state.Kind == DraggingOver && m.state.Day == day {
		return nil, nil
	}

	patches, err := m.restore()
	if err != nil {
		return nil, err
	}
	sel := render.DaySelector(day)
	m.saved = m.cal.InnerOf(sel)
	prompt, err := m.cal.SetInner(sel, fmt.Sprintf("Drop Recipe to Day %d", day))
	if err != nil {
		return nil, err
	}
	m.state = State{Kind: DraggingOver, Day: day}
	return append(patches, prompt, m.cal.SetAttr(sel, "style", background(DragOverColor))), nil
}

// Drop restores the dragged-over day and hands the payload to the DropFunc. An
// unparsable payload only restores the day.
func (m *Machine) Drop(raw []byte) ([]render.Patch, error) {
	if m.state.Kind != DraggingOver {
		return nil, nil
	}
	day := m.state.Day
	patches, err := m.restore()
	if err != nil {
		return nil, err
	}

	payload, err := models.ParseDragPayload(raw)
	if err != nil {
		return patches, nil
	}
	more, err := m.drop(day, payload)
	return append(patches, more...), err
}

// DragAbort puts back the dragged-over day when a drag ends without a drop.
func (m *Machine) DragAbort() ([]render.Patch, error) {
	return m.restore()
}

// Reset forgets all state after the calendar was rendered again.
func (m *Machine) Reset() {
	m.state = State{Kind: Idle}
	m.saved = ""
}

func (m *Machine) restore() ([]render.Patch, error) {
	if m.state.Kind != DraggingOver {
		return nil, nil
	}
	sel := render.DaySelector(m.state.Day)
	inner, err := m.cal.SetInner(sel, m.saved)
	if err != nil {
		return nil, err
	}
	m.state = State{Kind: Idle}
	m.saved = ""
	return []render.Patch{inner, m.cal.SetAttr(sel, "style", background(DefaultColor))}, nil
}

func background(color string) string {
	return "background-color: " + color
}

func showToolbar(x, y int) render.Patch {
	return render.Patch{Op: render.OpAttrs, Target: render.SelToolbar, Attrs: map[string]string{
		"class": "floating__buttons",
		"style": fmt.Sprintf("left: %dpx; top: %dpx; display: inline-flex", x, y),
	}}
}

func hideToolbar() render.Patch {
	return render.Patch{Op: render.OpAttrs, Target: render.SelToolbar, Attrs: map[string]string{
		"class": "floating__buttons hidden",
		"style": "display: none",
	}}
}
