package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks after compatibility decomposition
// (e.g. "Preparación" -> "Preparacion").
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// isInvisible reports soft hyphens, zero-width characters and BOMs.
func isInvisible(r rune) bool {
	switch r {
	case '\u00AD', '\u200B', '\u200C', '\u200D', '\u2060', '\uFEFF':
		return true
	}
	return false
}

// NormalizeKey lower-cases s, strips accents and invisible characters and
// collapses whitespace. All vocabulary matching works on normalized text.
func NormalizeKey(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	s = strings.Map(func(r rune) rune {
		if isInvisible(r) {
			return -1
		}
		return r
	}, s)
	// strings.Fields splits on NBSP and the other unicode spaces as well.
	return strings.Join(strings.Fields(s), " ")
}

// HasLetters reports whether s contains at least one letter.
func HasLetters(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// words splits normalized text into letter/digit runs.
func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
