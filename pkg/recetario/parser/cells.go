package parser

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Cell is one resolved matrix value.
type Cell struct {
	// Text is the raw cell text ("" for blanks).
	Text string
	// Number holds the value of numeric cells.
	Number float64
	// Numeric is set when the stored cell is a number.
	Numeric bool
	// Filled is set when the value was copied in by merge resolution.
	Filled bool
}

// TextCell returns a text cell.
func TextCell(s string) Cell {
	return Cell{Text: s}
}

// NumberCell returns a numeric cell.
func NumberCell(v float64) Cell {
	return Cell{Text: strconv.FormatFloat(v, 'f', -1, 64), Number: v, Numeric: true}
}

// IsEmpty reports a true blank.
func (c Cell) IsEmpty() bool {
	return c.Text == "" && !c.Numeric
}

// Trimmed returns the cell text without surrounding whitespace.
func (c Cell) Trimmed() string {
	return strings.TrimSpace(c.Text)
}

// Key returns the normalized cell text.
func (c Cell) Key() string {
	return NormalizeKey(c.Text)
}

// parseValue types a raw cell value using its stored cell type. Numbers are
// only recognized for cells stored as numbers, so text like "21.053" in a
// string cell is left for the quantity normalizer to interpret.
func parseValue(raw string, ct excelize.CellType) Cell {
	switch ct {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return Cell{Text: raw, Number: v, Numeric: true}
		}
	}
	return Cell{Text: raw}
}
