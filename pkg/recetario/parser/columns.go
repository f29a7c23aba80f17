package parser

// ColumnMap maps canonical roles to 0-based columns; -1 means unresolved.
type ColumnMap struct {
	Item     int
	Unit     int
	Quantity int
	Cost     int
}

// findCol returns the first column matched by the first matcher that
// matches anything, skipping taken columns.
func findCol(norm []string, list []Matcher, taken map[int]bool) int {
	for _, m := range list {
		for c, v := range norm {
			if taken[c] {
				continue
			}
			if m.Match(v) {
				return c
			}
		}
	}
	return -1
}

// MapColumns resolves the roles of a normalized header row. It reports
// false when the item or quantity column is missing.
func MapColumns(norm []string, v Vocabulary) (ColumnMap, bool) {
	taken := make(map[int]bool, 4)
	cm := ColumnMap{Item: -1, Unit: -1, Quantity: -1, Cost: -1}

	cm.Item = findCol(norm, v.Item, taken)
	if cm.Item < 0 {
		return cm, false
	}
	taken[cm.Item] = true

	cm.Quantity = findCol(norm, v.Quantity, taken)
	if cm.Quantity < 0 {
		return cm, false
	}
	taken[cm.Quantity] = true

	if cm.Unit = findCol(norm, v.Unit, taken); cm.Unit >= 0 {
		taken[cm.Unit] = true
	}
	cm.Cost = findCol(norm, v.Cost, taken)
	return cm, true
}
