package recetario

import (
	"fmt"

	"github.com/ukaji3/recetario-go/pkg/recetario/models"
	"github.com/ukaji3/recetario-go/pkg/recetario/parser"
)

// blockState carries what the first pass learned about one block.
type blockState struct {
	block       parser.Block
	span        parser.Span
	cols        parser.ColumnMap
	title       parser.Title
	ingredients []models.Ingredient
	stop        int
	valid       bool
}

// start is the first row owned by the block, its title row when one was found.
func (s blockState) start() int {
	if s.title.Found {
		return s.title.Row
	}
	return s.block.HeaderRow
}

// parseSheet turns one sheet matrix into recipes plus a report of what was
// skipped and why.
func parseSheet(sheetName string, m *parser.Matrix, p *parser.Policy) ([]models.Recipe, models.SheetReport) {
	report := models.SheetReport{Sheet: sheetName}

	headers := parser.FindHeaderRows(m, p.Columns)
	for _, h := range headers {
		report.HeaderRows = append(report.HeaderRows, h+1)
	}
	if len(headers) == 0 {
		report.Skips = append(report.Skips, models.Skip{Sheet: sheetName, Reason: models.SkipNoHeaderRows})
		return nil, report
	}

	blocks := parser.Segment(headers, m.Rows)
	states := make([]blockState, len(blocks))

	// Titles of a block never come from rows the previous table consumed.
	floor := 0
	for i, b := range blocks {
		st := &states[i]
		st.block = b
		st.stop = b.Start

		cols, ok := parser.MapColumns(parser.NormalizeRow(m.Row(b.HeaderRow)), p.Columns)
		if !ok {
			report.Skips = append(report.Skips, models.Skip{Sheet: sheetName, Row: b.HeaderRow + 1, Reason: models.SkipColumnsUnresolved})
			floor = st.stop
			continue
		}
		st.cols = cols
		st.span = parser.HeaderSpan(m, b.HeaderRow, cols, &p.Sections)
		st.title = parser.ResolveTitle(m, b.HeaderRow, floor, st.span, p.Title)
		st.ingredients, st.stop = parser.ExtractIngredients(m, b, cols, p)
		floor = st.stop
		if len(st.ingredients) == 0 {
			report.Skips = append(report.Skips, models.Skip{Sheet: sheetName, Row: b.HeaderRow + 1, Reason: models.SkipNoIngredients})
			continue
		}
		st.valid = true
	}

	var recipes []models.Recipe
	for i, st := range states {
		if !st.valid {
			continue
		}
		next := -1
		if i+1 < len(states) {
			next = states[i+1].start()
		}
		w := parser.MetadataWindow(st.start(), st.stop, next, m.Rows, p.Sidecar.Tail)
		col := parser.SidecarColumn(m, st.span, st.cols, w, p.Sidecar)
		n := parser.ExtractMetadata(m, col, w, &p.Sections)

		r := models.Recipe{
			ID:          fmt.Sprintf("%s::%d", sheetName, st.block.HeaderRow+1),
			Family:      sheetName,
			Name:        st.title.Text,
			Ingredients: st.ingredients,
			Description: n.Description,
			Preparation: n.Preparation,
			Plating:     n.Plating,
			HeaderRow:   st.block.HeaderRow + 1,
		}
		if !st.title.Found {
			r.Name = parser.SyntheticTitle(sheetName, st.block.Ordinal, p.Title)
			r.SyntheticTitle = true
		}
		if rng, err := parser.TableRange(st.block.HeaderRow, st.stop, st.span); err == nil {
			r.SourceRange = rng
		}
		recipes = append(recipes, r)
	}

	report.Recipes = len(recipes)
	if len(recipes) == 0 {
		report.Skips = append(report.Skips, models.Skip{Sheet: sheetName, Reason: models.SkipNoValidBlocks})
	}
	return recipes, report
}
