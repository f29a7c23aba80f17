package models

// SkipReason explains why a sheet or block produced no output.
type SkipReason string

const (
	// SkipDeniedSheet marks a sheet whose normalized name is deny-listed.
	SkipDeniedSheet SkipReason = "denied_sheet"
	// SkipSheetUnreadable marks a sheet whose cells could not be read.
	SkipSheetUnreadable SkipReason = "sheet_unreadable"
	// SkipNoHeaderRows marks a sheet without any ingredient-table header.
	SkipNoHeaderRows SkipReason = "no_header_rows"
	// SkipNoValidBlocks marks a sheet whose blocks all got dropped.
	SkipNoValidBlocks SkipReason = "no_valid_blocks"
	// SkipColumnsUnresolved marks a block missing its item or quantity column.
	SkipColumnsUnresolved SkipReason = "columns_unresolved"
	// SkipNoIngredients marks a block with zero retained ingredient rows.
	SkipNoIngredients SkipReason = "no_ingredients"
)

// Skip records one silently excluded sheet or block.
type Skip struct {
	// Sheet is the sheet name.
	Sheet string `json:"sheet"`
	// Row is the 1-based header row of a skipped block (0 for sheet-level skips).
	Row int `json:"row,omitempty"`
	// Reason is the exclusion reason.
	Reason SkipReason `json:"reason"`
}

// SheetReport summarizes what extraction did with one sheet.
type SheetReport struct {
	// Sheet is the sheet name.
	Sheet string `json:"sheet"`
	// HeaderRows lists detected header rows (1-based).
	HeaderRows []int `json:"header_rows,omitempty"`
	// Recipes is the number of recipes emitted for the sheet.
	Recipes int `json:"recipes"`
	// Skips lists excluded blocks, or the sheet itself.
	Skips []Skip `json:"skips,omitempty"`
}
