// Package models defines the records produced by recipe extraction.
package models

// Cookbook is the workbook-level result of one extraction.
type Cookbook struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Families is the ordered family list (sorted by name).
	Families []Family `json:"families"`
	// Reports holds per-sheet diagnostics, in workbook order.
	Reports []SheetReport `json:"reports,omitempty"`
}

// RecipeCount returns the total number of recipes across all families.
func (c *Cookbook) RecipeCount() int {
	n := 0
	for _, f := range c.Families {
		n += len(f.Recipes)
	}
	return n
}

// FindRecipe looks a recipe up by id.
func FindRecipe(families []Family, id string) (Recipe, bool) {
	for _, f := range families {
		for _, r := range f.Recipes {
			if r.ID == id {
				return r, true
			}
		}
	}
	return Recipe{}, false
}
