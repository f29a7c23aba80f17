package models

// Family groups the recipes found on one sheet.
type Family struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Recipes is the ordered recipe list (workbook row order).
	Recipes []Recipe `json:"recipes"`
}
