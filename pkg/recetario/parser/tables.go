package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Span is an inclusive 0-based column range.
type Span struct {
	First int
	Last  int
}

// Empty reports an unset span.
func (s Span) Empty() bool { return s.Last < s.First }

// Widen grows the span by n columns on each side, clamped at column 0.
func (s Span) Widen(n int) Span {
	if s.Empty() || n <= 0 {
		return s
	}
	first := s.First - n
	if first < 0 {
		first = 0
	}
	return Span{First: first, Last: s.Last + n}
}

// HeaderSpan returns the column range of the table whose header is row r:
// the role columns of cols, grown over adjacent non-empty header cells. A
// blank column or a cell opening a narrative section ends the table, so a
// "Preparación" column beside the header stays outside it. sections may be
// nil.
func HeaderSpan(m *Matrix, r int, cols ColumnMap, sections *SectionPolicy) Span {
	if cols.Item < 0 {
		return Span{First: 0, Last: -1}
	}
	span := Span{First: cols.Item, Last: cols.Item}
	for _, c := range []int{cols.Unit, cols.Quantity, cols.Cost} {
		if c < 0 {
			continue
		}
		if c < span.First {
			span.First = c
		}
		if c > span.Last {
			span.Last = c
		}
	}
	extends := func(c int) bool {
		cell := m.At(r, c)
		if cell.IsEmpty() {
			return false
		}
		if sections != nil {
			if _, ok := sections.Label(cell.Key()); ok {
				return false
			}
		}
		return true
	}
	for span.First > 0 && extends(span.First-1) {
		span.First--
	}
	for span.Last+1 < m.Cols && extends(span.Last+1) {
		span.Last++
	}
	return span
}

// TableRange converts a header row, the row where ingredient extraction
// stopped (exclusive) and the header span to an A1 range such as "B5:E12".
func TableRange(headerRow, stopRow int, span Span) (string, error) {
	if span.Empty() {
		return "", fmt.Errorf("empty column span")
	}
	last := stopRow - 1
	if last < headerRow {
		last = headerRow
	}
	start, err := excelize.CoordinatesToCellName(span.First+1, headerRow+1)
	if err != nil {
		return "", err
	}
	end, err := excelize.CoordinatesToCellName(span.Last+1, last+1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s", start, end), nil
}
