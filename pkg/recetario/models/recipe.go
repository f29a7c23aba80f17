package models

// Ingredient is one row of a recipe table.
type Ingredient struct {
	// Name is the item text, never empty.
	Name string `json:"name"`
	// Unit is the unit text (may be empty).
	Unit string `json:"unit"`
	// Quantity is the canonical numeric text.
	Quantity string `json:"quantity"`
	// Cost is the canonical line cost when the table has a cost column.
	Cost string `json:"cost,omitempty"`
}

// Recipe is one recipe block extracted from a family sheet.
type Recipe struct {
	// ID is stable across re-parses of the same document.
	ID string `json:"id"`
	// Family is the owning sheet name.
	Family string `json:"family"`
	// Name is the resolved title.
	Name string `json:"name"`
	// SyntheticTitle is set when no title was found above the table.
	SyntheticTitle bool `json:"synthetic_title,omitempty"`
	// Ingredients is the ordered ingredient list (at least one).
	Ingredients []Ingredient `json:"ingredients"`
	// Description is the menu description, if any.
	Description string `json:"description,omitempty"`
	// Preparation is the process text; a placeholder when the sheet has none.
	Preparation string `json:"preparation"`
	// Plating is the plating/service text, if any.
	Plating string `json:"plating,omitempty"`
	// HeaderRow is the 1-based row of the table header.
	HeaderRow int `json:"header_row"`
	// SourceRange is the A1 range covering the header and ingredient rows.
	SourceRange string `json:"source_range,omitempty"`
}
