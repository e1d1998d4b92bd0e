package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	shoppingSheet = "Shopping List"
	planSheet     = "Weekly Plan"
)

// ExportWorkbook writes the shopping list of the current recipe and the weekly plan
// to an .xlsx workbook.
func (s *PlannerService) ExportWorkbook() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", shoppingSheet); err != nil {
		return nil, err
	}
	if err := s.writeShoppingSheet(f); err != nil {
		return nil, fmt.Errorf("failed to write shopping list: %w", err)
	}

	if _, err := f.NewSheet(planSheet); err != nil {
		return nil, err
	}
	if err := s.writePlanSheet(f); err != nil {
		return nil, fmt.Errorf("failed to write weekly plan: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *PlannerService) writeShoppingSheet(f *excelize.File) error {
	sw, err := f.NewStreamWriter(shoppingSheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", []interface{}{s.State.Recipe.Title}); err != nil {
		return err
	}
	lines, _ := s.ShoppingList()
	for i, line := range lines {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, []interface{}{line}); err != nil {
			return err
		}
	}
	return sw.Flush()
}

func (s *PlannerService) writePlanSheet(f *excelize.File) error {
	sw, err := f.NewStreamWriter(planSheet)
	if err != nil {
		return err
	}
	header := []interface{}{"Day", "Recipe", "Publisher", "Cooking time", "Servings", "Source"}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, slot := range s.State.WeeklyPlan {
		row := []interface{}{fmt.Sprintf("Day %d", slot.Day)}
		if !slot.Empty() {
			r := slot.Recipe
			row = append(row, r.Title, r.Publisher, r.CookingTime, r.Servings, r.SourceURL)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return sw.Flush()
}
