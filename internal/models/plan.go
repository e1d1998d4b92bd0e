package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DaysInPlan is the fixed size of the weekly plan.
const DaysInPlan = 7

// DaySlot assigns a recipe to one weekday. A zero Recipe means the day is empty.
type DaySlot struct {
	Day    int    `json:"day"`
	Recipe Recipe `json:"recipe"`
}

// Empty reports whether no recipe is assigned to the slot.
func (s DaySlot) Empty() bool {
	return s.Recipe.IsZero()
}

// WeeklyPlan always holds exactly seven slots ordered by day.
type WeeklyPlan [DaysInPlan]DaySlot

// NewWeeklyPlan returns a plan with seven empty days.
func NewWeeklyPlan() WeeklyPlan {
	var p WeeklyPlan
	for i := range p {
		p[i] = DaySlot{Day: i + 1}
	}
	return p
}

// ValidDay reports whether day is in 1..7.
func ValidDay(day int) bool {
	return day >= 1 && day <= DaysInPlan
}

// Slot returns the slot for day. It panics on an invalid day, callers check ValidDay.
func (p *WeeklyPlan) Slot(day int) *DaySlot {
	return &p[day-1]
}

// Valid reports whether the plan's day numbers are 1..7 in order.
func (p WeeklyPlan) Valid() bool {
	for i, s := range p {
		if s.Day != i+1 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the plan.
func (p WeeklyPlan) Clone() WeeklyPlan {
	dup := p
	for i := range dup {
		dup[i].Recipe = p[i].Recipe.Clone()
	}
	return dup
}

// MarshalJSON encodes the plan as an array of slots where an empty day carries `{}`.
func (p WeeklyPlan) MarshalJSON() ([]byte, error) {
	return json.Marshal([DaysInPlan]DaySlot(p))
}

// UnmarshalJSON decodes an array of exactly seven slots.
func (p *WeeklyPlan) UnmarshalJSON(data []byte) error {
	var slots []DaySlot
	if err := json.Unmarshal(data, &slots); err != nil {
		return err
	}
	if len(slots) != DaysInPlan {
		return fmt.Errorf("weekly plan has %d days, want %d", len(slots), DaysInPlan)
	}
	var plan WeeklyPlan
	copy(plan[:], slots)
	if !plan.Valid() {
		return errors.New("weekly plan days are out of order")
	}
	*p = plan
	return nil
}
