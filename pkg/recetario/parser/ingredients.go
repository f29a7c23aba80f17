package parser

import (
	"strings"

	"github.com/ukaji3/recetario-go/pkg/recetario/models"
)

// isStopRow reports an item text that closes the table (totals).
func isStopRow(key string, stopTokens []string) bool {
	for _, t := range stopTokens {
		if strings.Contains(key, t) {
			return true
		}
	}
	return false
}

// ExtractIngredients reads ingredient rows from just below the header until
// the first empty item cell, the first stop-token row or the block end. It
// returns the ingredients and the row where reading stopped.
func ExtractIngredients(m *Matrix, b Block, cols ColumnMap, p *Policy) ([]models.Ingredient, int) {
	var out []models.Ingredient
	r := b.Start
	for ; r < b.End; r++ {
		item := m.At(r, cols.Item)
		name := item.Trimmed()
		if name == "" {
			break
		}
		if isStopRow(item.Key(), p.StopTokens) {
			break
		}

		ing := models.Ingredient{
			Name:     name,
			Unit:     p.DefaultUnit,
			Quantity: p.Quantities.NormalizeCell(m.At(r, cols.Quantity)),
		}
		if cols.Unit >= 0 {
			ing.Unit = m.At(r, cols.Unit).Trimmed()
		}
		if cols.Cost >= 0 {
			if c := m.At(r, cols.Cost); !c.IsEmpty() {
				if _, ok := ParseQuantity(c.Text, p.Quantities.DotGrouping); ok || c.Numeric {
					ing.Cost = p.Quantities.NormalizeCell(c)
				}
			}
		}
		out = append(out, ing)
	}
	return out, r
}
