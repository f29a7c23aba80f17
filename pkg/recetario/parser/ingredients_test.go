package parser

import "testing"

func TestExtractIngredients(t *testing.T) {
	p := DefaultPolicy()
	m := FromStrings([][]string{
		{"Ingrediente", "Unidad", "Cantidad", "Costo"},
		{"Harina de maíz", "g", "1.000", "2.500"},
		{" Sal ", "", "0,5", "n/a"},
		{"TOTAL RECETA", "", "", "2500"},
		{"Queso", "g", "100", ""},
	})

	cols, ok := MapColumns(NormalizeRow(m.Row(0)), p.Columns)
	if !ok {
		t.Fatalf("MapColumns failed")
	}
	b := Segment([]int{0}, m.Rows)[0]

	got, stop := ExtractIngredients(m, b, cols, p)
	if stop != 3 {
		t.Errorf("Expected to stop at the total row, got %d", stop)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 ingredients, got %d: %+v", len(got), got)
	}

	if got[0].Name != "Harina de maíz" || got[0].Unit != "g" || got[0].Quantity != "1000" || got[0].Cost != "2500" {
		t.Errorf("Unexpected first ingredient %+v", got[0])
	}
	if got[1].Name != "Sal" || got[1].Unit != "" || got[1].Quantity != "0.5" || got[1].Cost != "" {
		t.Errorf("Unexpected second ingredient %+v", got[1])
	}
}

func TestExtractIngredientsEmptyFirstRow(t *testing.T) {
	p := DefaultPolicy()
	m := FromStrings([][]string{
		{"Ingrediente", "Cantidad"},
		{"", "3"},
		{"Huevo", "2"},
	})
	cols, _ := MapColumns(NormalizeRow(m.Row(0)), p.Columns)
	b := Segment([]int{0}, m.Rows)[0]

	got, stop := ExtractIngredients(m, b, cols, p)
	if len(got) != 0 {
		t.Errorf("Expected no ingredients, got %+v", got)
	}
	if stop != b.Start {
		t.Errorf("Expected stop at block start %d, got %d", b.Start, stop)
	}
}

func TestExtractIngredientsDefaultUnit(t *testing.T) {
	p := DefaultPolicy()
	p.DefaultUnit = "und"
	m := FromStrings([][]string{
		{"Insumo", "Cant"},
		{"Huevo", "2"},
	})
	m.Set(1, 1, NumberCell(2))
	cols, _ := MapColumns(NormalizeRow(m.Row(0)), p.Columns)
	b := Segment([]int{0}, m.Rows)[0]

	got, _ := ExtractIngredients(m, b, cols, p)
	if len(got) != 1 || got[0].Unit != "und" || got[0].Quantity != "2" {
		t.Errorf("Expected one ingredient with the default unit, got %+v", got)
	}
}

func TestExtractIngredientsBlockEnd(t *testing.T) {
	p := DefaultPolicy()
	m := FromStrings([][]string{
		{"Ingrediente", "Cant"},
		{"Arroz", "1"},
		{"Ingrediente", "Cant"},
		{"Frijol", "2"},
	})
	headers := FindHeaderRows(m, p.Columns)
	blocks := Segment(headers, m.Rows)
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}
	cols, _ := MapColumns(NormalizeRow(m.Row(0)), p.Columns)

	got, stop := ExtractIngredients(m, blocks[0], cols, p)
	if len(got) != 1 || got[0].Name != "Arroz" || stop != 2 {
		t.Errorf("Expected the first block to end at the next header, got %+v stop %d", got, stop)
	}
}
