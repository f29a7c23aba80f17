package parser

// matchesAny reports whether the normalized value v matches any matcher.
func matchesAny(v string, list []Matcher) bool {
	for _, m := range list {
		if m.Match(v) {
			return true
		}
	}
	return false
}

// NormalizeRow normalizes every cell of a row.
func NormalizeRow(row []Cell) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = c.Key()
	}
	return out
}

// IsHeaderRow reports whether a normalized row labels an ingredient table:
// some cell names the item role and some cell names the unit or the
// quantity role.
func IsHeaderRow(norm []string, v Vocabulary) bool {
	hasItem, hasUnitOrQty := false, false
	for _, s := range norm {
		if s == "" {
			continue
		}
		if !hasItem && matchesAny(s, v.Item) {
			hasItem = true
		}
		if !hasUnitOrQty && (matchesAny(s, v.Unit) || matchesAny(s, v.Quantity)) {
			hasUnitOrQty = true
		}
		if hasItem && hasUnitOrQty {
			return true
		}
	}
	return false
}

// FindHeaderRows returns the 0-based indices of every header row, in order.
func FindHeaderRows(m *Matrix, v Vocabulary) []int {
	var rows []int
	for r := 0; r < m.Rows; r++ {
		if IsHeaderRow(NormalizeRow(m.Row(r)), v) {
			rows = append(rows, r)
		}
	}
	return rows
}
