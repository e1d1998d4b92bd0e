package service

import (
	"fmt"
	"strconv"
	"strings"
)

// ShoppingList returns one line per ingredient of the current recipe using the
// serving-adjusted amounts. ok is false when no recipe is displayed.
func (s *PlannerService) ShoppingList() (lines []string, ok bool) {
	if !s.State.HasRecipe() {
		return nil, false
	}
	lines = make([]string, 0, len(s.State.Recipe.Ingredients))
	for i, ing := range s.State.Recipe.Ingredients {
		line := "Item: " + strings.ToUpper(ing.Description)
		if i < len(s.State.IngredientAmounts) && s.State.IngredientAmounts[i] != 0 {
			amount := strings.TrimSpace(formatAmount(s.State.IngredientAmounts[i]) + " " + ing.Unit)
			line += fmt.Sprintf("   (amount: %s)", amount)
		}
		lines = append(lines, line)
	}
	return lines, true
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
