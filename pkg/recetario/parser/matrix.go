package parser

import (
	"github.com/xuri/excelize/v2"
)

// Matrix is a dense rows x cols grid of cells for one sheet, stored as a
// flat index-addressed slice.
type Matrix struct {
	Rows  int
	Cols  int
	cells []Cell
}

// NewMatrix allocates an empty matrix.
func NewMatrix(rows, cols int) *Matrix {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Matrix{Rows: rows, Cols: cols, cells: make([]Cell, rows*cols)}
}

// FromStrings builds a text matrix, padding short rows with blanks.
func FromStrings(rows [][]string) *Matrix {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	m := NewMatrix(len(rows), cols)
	for r, row := range rows {
		for c, v := range row {
			m.cells[r*cols+c] = Cell{Text: v}
		}
	}
	return m
}

func (m *Matrix) inside(r, c int) bool {
	return r >= 0 && c >= 0 && r < m.Rows && c < m.Cols
}

// At returns the cell at (r, c); outside the grid it returns a blank.
func (m *Matrix) At(r, c int) Cell {
	if !m.inside(r, c) {
		return Cell{}
	}
	return m.cells[r*m.Cols+c]
}

// Set stores a cell; writes outside the grid are ignored.
func (m *Matrix) Set(r, c int, cell Cell) {
	if m.inside(r, c) {
		m.cells[r*m.Cols+c] = cell
	}
}

// Row returns row r as a slice view into the grid.
func (m *Matrix) Row(r int) []Cell {
	if r < 0 || r >= m.Rows {
		return nil
	}
	return m.cells[r*m.Cols : (r+1)*m.Cols]
}

// MergeRange is a merged rectangle in 0-based inclusive coordinates.
type MergeRange struct {
	R1, C1, R2, C2 int
}

// ResolveMerges copies the top-left value of each range into the empty
// cells of the range. Non-empty cells are never overwritten.
func (m *Matrix) ResolveMerges(ranges []MergeRange) {
	for _, mr := range ranges {
		v := m.At(mr.R1, mr.C1)
		if v.IsEmpty() {
			continue
		}
		v.Filled = true
		for r := mr.R1; r <= mr.R2; r++ {
			for c := mr.C1; c <= mr.C2; c++ {
				if r == mr.R1 && c == mr.C1 {
					continue
				}
				if m.At(r, c).IsEmpty() {
					m.Set(r, c, v)
				}
			}
		}
	}
}

// BuildMatrix reads one sheet into a typed matrix with merges resolved.
// Missing merge metadata leaves the matrix as read.
func BuildMatrix(f *excelize.File, sheetName string) (*Matrix, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	merges := readMerges(f, sheetName)
	m := FromStrings(rows)
	m = m.grow(merges)

	for r, row := range rows {
		for c, raw := range row {
			if raw == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				continue
			}
			ct, err := f.GetCellType(sheetName, axis)
			if err != nil {
				continue
			}
			m.Set(r, c, parseValue(raw, ct))
		}
	}

	m.ResolveMerges(merges)
	return m, nil
}

// grow extends the matrix so every merge range fits.
func (m *Matrix) grow(merges []MergeRange) *Matrix {
	rows, cols := m.Rows, m.Cols
	for _, mr := range merges {
		if mr.R2+1 > rows {
			rows = mr.R2 + 1
		}
		if mr.C2+1 > cols {
			cols = mr.C2 + 1
		}
	}
	if rows == m.Rows && cols == m.Cols {
		return m
	}
	out := NewMatrix(rows, cols)
	for r := 0; r < m.Rows; r++ {
		copy(out.cells[r*cols:r*cols+m.Cols], m.Row(r))
	}
	return out
}

func readMerges(f *excelize.File, sheetName string) []MergeRange {
	cells, err := f.GetMergeCells(sheetName)
	if err != nil {
		return nil
	}
	var out []MergeRange
	for _, mc := range cells {
		c1, r1, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			continue
		}
		c2, r2, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			continue
		}
		if r2 < r1 {
			r1, r2 = r2, r1
		}
		if c2 < c1 {
			c1, c2 = c2, c1
		}
		out = append(out, MergeRange{R1: r1 - 1, C1: c1 - 1, R2: r2 - 1, C2: c2 - 1})
	}
	return out
}
