package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Title is the resolved name of a recipe block.
type Title struct {
	Text string
	// Row is the 0-based row holding the title, or the header row when
	// nothing was found.
	Row   int
	Found bool
}

// substringBanLen is the shortest banned token also matched inside words.
// Shorter tokens ("und", "cant", "total") ban whole words and their plurals.
const substringBanLen = 6

// isBannedWord reports w equal to b or to its plural ("totales", "costos").
func isBannedWord(w, b string) bool {
	if w == b {
		return true
	}
	rest, ok := strings.CutPrefix(w, b)
	return ok && (rest == "s" || rest == "es")
}

// isBannedTitle reports table vocabulary, pure numbers and other labels
// that must never be taken as a recipe name.
func isBannedTitle(key string, banned []string) bool {
	if key == "" || !HasLetters(key) {
		return true
	}
	ws := words(key)
	for _, b := range banned {
		for _, w := range ws {
			if isBannedWord(w, b) {
				return true
			}
		}
		if utf8.RuneCountInString(b) >= substringBanLen && strings.Contains(key, b) {
			return true
		}
	}
	return false
}

// titleCandidate reports whether a cell may name a recipe.
func titleCandidate(c Cell, p TitlePolicy) (string, bool) {
	if c.Numeric {
		return "", false
	}
	t := c.Trimmed()
	if utf8.RuneCountInString(t) < p.MinLength || !HasLetters(t) {
		return "", false
	}
	if isBannedTitle(NormalizeKey(t), p.Banned) {
		return "", false
	}
	return t, true
}

// ResolveTitle scans upward from the header row for the recipe name. The
// scan covers at most p.ScanRows rows, never goes above floor and only
// looks at the columns of span. The longest candidate of the nearest row
// with any candidate wins.
func ResolveTitle(m *Matrix, headerRow, floor int, span Span, p TitlePolicy) Title {
	lowest := headerRow - p.ScanRows
	if lowest < floor {
		lowest = floor
	}
	if lowest < 0 {
		lowest = 0
	}
	span = span.Widen(p.ColumnMargin)
	for r := headerRow - 1; r >= lowest; r-- {
		best := ""
		for c := span.First; c <= span.Last; c++ {
			t, ok := titleCandidate(m.At(r, c), p)
			if !ok {
				continue
			}
			if utf8.RuneCountInString(t) > utf8.RuneCountInString(best) {
				best = t
			}
		}
		if best != "" {
			return Title{Text: best, Row: r, Found: true}
		}
	}
	return Title{Row: headerRow}
}

// SyntheticTitle names a block that has no title of its own.
func SyntheticTitle(sheetName string, ordinal int, p TitlePolicy) string {
	return fmt.Sprintf(p.Untitled, sheetName, ordinal)
}
