package models

import (
	"encoding/json"
	"fmt"
)

// DragKind discriminates what a drag gesture carries.
type DragKind string

// DragKind values.
const (
	DragRecipe  DragKind = "recipe"   // a recipe dragged from the detail view
	DragDaySwap DragKind = "day_swap" // a weekly-plan day dragged to another day
)

// DragPayload is the data attached to a drag gesture. Day is only set for DragDaySwap.
type DragPayload struct {
	Kind   DragKind `json:"kind"`
	Day    int      `json:"day,omitempty"`
	Recipe Recipe   `json:"recipe"`
}

// RecipeDrag builds the payload for dragging a recipe.
func RecipeDrag(r Recipe) DragPayload {
	return DragPayload{Kind: DragRecipe, Recipe: r.Clone()}
}

// DaySwapDrag builds the payload for dragging a day of the plan.
func DaySwapDrag(slot DaySlot) DragPayload {
	return DragPayload{Kind: DragDaySwap, Day: slot.Day, Recipe: slot.Recipe.Clone()}
}

// IsEmpty reports whether the payload carries no recipe to place.
// A day swap from an empty day is not empty: it moves the target's recipe back.
func (d DragPayload) IsEmpty() bool {
	switch d.Kind {
	case DragRecipe:
		return d.Recipe.IsZero()
	case DragDaySwap:
		return !ValidDay(d.Day)
	default:
		return true
	}
}

// Encode serializes the payload for the browser's drag data.
func (d DragPayload) Encode() ([]byte, error) {
	return json.Marshal(d)
}

// ParseDragPayload decodes raw drag data. It fails on malformed JSON or an unknown kind.
func ParseDragPayload(data []byte) (DragPayload, error) {
	var d DragPayload
	if err := json.Unmarshal(data, &d); err != nil {
		return DragPayload{}, fmt.Errorf("unparsable drag payload: %w", err)
	}
	switch d.Kind {
	case DragRecipe:
	case DragDaySwap:
		if !ValidDay(d.Day) {
			return DragPayload{}, fmt.Errorf("drag payload day %d out of range", d.Day)
		}
	default:
		return DragPayload{}, fmt.Errorf("unknown drag payload kind %q", d.Kind)
	}
	return d, nil
}
