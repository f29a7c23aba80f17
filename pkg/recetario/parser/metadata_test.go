package parser

import "testing"

func TestExtractMetadataPreparationLabel(t *testing.T) {
	m := FromStrings([][]string{
		{"Arepa"},
		{"Ingrediente", "Und", "Cant", "", "Preparación: saltear la cebolla"},
		{"Cebolla", "g", "50", "", "agregar el caldo"},
	})
	p := DefaultPolicy()

	n := ExtractMetadata(m, 4, Window{Start: 0, End: m.Rows}, &p.Sections)
	if n.Preparation != "saltear la cebolla\nagregar el caldo" {
		t.Errorf("Unexpected preparation %q", n.Preparation)
	}
	if n.Description != "" || n.Plating != "" {
		t.Errorf("Expected only preparation, got %+v", n)
	}
}

func TestExtractMetadataSections(t *testing.T) {
	m := FromStrings([][]string{
		{"Descripción de carta: Arepa rellena"},
		{"con queso"},
		{"PROCESO DE ELABORACIÓN"},
		{"Amasar"},
		{""},
		{"Emplatado: plato llano"},
		{""},
		{"Preparación: fuera de la ventana"},
	})
	m.Set(4, 0, NumberCell(42))
	m.Set(6, 0, Cell{Text: "Preparación: copia de una celda combinada", Filled: true})
	p := DefaultPolicy()

	n := ExtractMetadata(m, 0, Window{Start: 0, End: 7}, &p.Sections)
	if n.Description != "Arepa rellena\ncon queso" {
		t.Errorf("Unexpected description %q", n.Description)
	}
	if n.Preparation != "Amasar" {
		t.Errorf("Unexpected preparation %q", n.Preparation)
	}
	if n.Plating != "plato llano" {
		t.Errorf("Unexpected plating %q", n.Plating)
	}
}

func TestExtractMetadataPlaceholder(t *testing.T) {
	p := DefaultPolicy()
	m := FromStrings([][]string{{"Ingrediente", "Cant"}})

	n := ExtractMetadata(m, -1, Window{Start: 0, End: 1}, &p.Sections)
	if n.Preparation != p.Sections.Placeholder {
		t.Errorf("Expected placeholder, got %q", n.Preparation)
	}
}

func TestStripLabel(t *testing.T) {
	p := DefaultPolicy()
	sm := newSectionMachine(&p.Sections)
	tests := []struct {
		input    string
		expected string
	}{
		{"Preparación: saltear la cebolla", "saltear la cebolla"},
		{"MONTAJE - servir caliente", "servir caliente"},
		{"Decoración", ""},
		{"Proceso técnico del plato: hornear 20 min", "hornear 20 min"},
		{"Instrucciones: paso 1: lavar", "paso 1: lavar"},
	}

	for _, tt := range tests {
		if got := sm.stripLabel(tt.input); got != tt.expected {
			t.Errorf("stripLabel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSectionLabel(t *testing.T) {
	p := DefaultPolicy()
	sm := newSectionMachine(&p.Sections)
	tests := []struct {
		input string
		want  Section
		ok    bool
	}{
		{"preparacion: x", SectionPreparation, true},
		{"carta", SectionDescription, true},
		{"presentacion final", SectionPlating, true},
		{"procesar la carne", SectionNone, false},
		{"la preparacion", SectionNone, false},
	}

	for _, tt := range tests {
		got, ok := sm.label(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("label(%q) = %v, %v, want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMetadataWindow(t *testing.T) {
	tests := []struct {
		name                              string
		start, tableEnd, next, rows, tail int
		want                              Window
	}{
		{"next block caps", 2, 10, 12, 50, 30, Window{2, 12}},
		{"tail", 2, 10, -1, 50, 30, Window{2, 40}},
		{"matrix end", 2, 10, -1, 20, 30, Window{2, 20}},
		{"never negative", 5, 3, 4, 50, 0, Window{5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MetadataWindow(tt.start, tt.tableEnd, tt.next, tt.rows, tt.tail); got != tt.want {
				t.Errorf("MetadataWindow = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSidecarColumn(t *testing.T) {
	m := FromStrings([][]string{
		{"Ingrediente", "Und", "Cant", "", "", ""},
		{"Harina", "g", "200", "", "", "Amasar"},
	})
	m.Set(1, 3, NumberCell(12))
	m.Set(1, 4, Cell{Text: "Amasar", Filled: true})
	cols := ColumnMap{Item: 0, Unit: 1, Quantity: 2, Cost: -1}
	span := HeaderSpan(m, 0, cols, nil)
	w := Window{Start: 0, End: m.Rows}

	tests := []struct {
		name string
		p    SidecarPolicy
		want int
	}{
		{"auto skips numbers and merge copies", SidecarPolicy{Mode: SidecarAuto, SearchWidth: 4}, 5},
		{"auto out of reach", SidecarPolicy{Mode: SidecarAuto, SearchWidth: 2}, -1},
		{"absolute", SidecarPolicy{Mode: SidecarAbsolute, Column: 7}, 7},
		{"absolute on a table column", SidecarPolicy{Mode: SidecarAbsolute, Column: 2}, -1},
		{"relative", SidecarPolicy{Mode: SidecarRelative, Offset: 4}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SidecarColumn(m, span, cols, w, tt.p); got != tt.want {
				t.Errorf("SidecarColumn = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSidecarLabelInHeaderRow(t *testing.T) {
	m := FromStrings([][]string{
		{"Ingrediente", "Und", "Cant", "Preparación"},
		{"Harina", "g", "200", "Amasar la masa"},
		{"Agua", "ml", "120", "Hornear 20 minutos"},
	})
	p := DefaultPolicy()
	cols := ColumnMap{Item: 0, Unit: 1, Quantity: 2, Cost: -1}
	span := HeaderSpan(m, 0, cols, &p.Sections)
	w := Window{Start: 0, End: m.Rows}

	col := SidecarColumn(m, span, cols, w, p.Sidecar)
	if col != 3 {
		t.Fatalf("SidecarColumn = %d, want 3 (span %+v)", col, span)
	}
	n := ExtractMetadata(m, col, w, &p.Sections)
	if n.Preparation != "Amasar la masa\nHornear 20 minutos" {
		t.Errorf("Unexpected preparation %q", n.Preparation)
	}
}
