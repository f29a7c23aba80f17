package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	leadingNumber = regexp.MustCompile(`^[+-]?(\d[\d.,]*|[.,]\d+)`)
	fraction      = regexp.MustCompile(`^([+-]?\d+)\s*/\s*(\d+)`)
	mixedFraction = regexp.MustCompile(`^(\d+)\s+(\d+)\s*/\s*(\d+)`)
)

// ParseQuantity interprets numeric text whose decimal and thousands
// separators are ambiguous. Trailing text after the leading number
// ("500 gr") is ignored. It reports false for text without a number.
func ParseQuantity(raw string, dotGrouping string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if m := mixedFraction.FindStringSubmatch(s); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		num, _ := strconv.ParseFloat(m[2], 64)
		den, _ := strconv.ParseFloat(m[3], 64)
		if den == 0 {
			return 0, false
		}
		return whole + num/den, true
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00A0', '\u202F', '\'':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, false
	}

	if m := fraction.FindStringSubmatch(s); m != nil {
		num, err1 := strconv.ParseFloat(m[1], 64)
		den, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil || den == 0 {
			return 0, false
		}
		return num / den, true
	}

	s = leadingNumber.FindString(s)
	if s == "" {
		return 0, false
	}
	s, ok := canonicalSeparators(s, dotGrouping)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// canonicalSeparators rewrites s so that "." is the only (decimal)
// separator left.
func canonicalSeparators(s, dotGrouping string) (string, bool) {
	commas := strings.Count(s, ",")
	dots := strings.Count(s, ".")

	switch {
	case commas > 0 && dots > 0:
		// The later separator is the decimal one.
		dec, thou := ".", ","
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			dec, thou = ",", "."
		}
		s = strings.ReplaceAll(s, thou, "")
		if strings.Count(s, dec) > 1 {
			return "", false
		}
		return strings.Replace(s, dec, ".", 1), true

	case commas > 0:
		if commas > 1 {
			return strings.ReplaceAll(s, ",", ""), true
		}
		return strings.Replace(s, ",", ".", 1), true

	case dots > 0:
		last := strings.LastIndex(s, ".")
		tail := len(s) - last - 1
		intPart := strings.TrimLeft(s[:strings.Index(s, ".")], "+-")
		grouped := tail == 3 && dotGrouping != DotDecimal && intPart != "" && !strings.HasPrefix(intPart, "0")
		if grouped {
			return strings.ReplaceAll(s, ".", ""), true
		}
		if dots > 1 {
			return "", false
		}
		return s, true
	}
	return s, true
}

// FormatQuantity renders v rounded to precision decimals without trailing
// zeros.
func FormatQuantity(v float64, precision int) string {
	scale := math.Pow10(precision)
	v = math.Round(v*scale) / scale
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Normalize turns raw quantity text into canonical text. Unparseable input
// yields "0", or the trimmed input when KeepUnparsed is set.
func (q QuantityPolicy) Normalize(raw string) string {
	v, ok := ParseQuantity(raw, q.DotGrouping)
	if !ok {
		if q.KeepUnparsed {
			return strings.TrimSpace(raw)
		}
		return "0"
	}
	return FormatQuantity(v, q.Precision)
}

// NormalizeCell normalizes a matrix cell. Numeric cells skip separator
// guessing entirely.
func (q QuantityPolicy) NormalizeCell(c Cell) string {
	if c.Numeric {
		return FormatQuantity(c.Number, q.Precision)
	}
	return q.Normalize(c.Text)
}
