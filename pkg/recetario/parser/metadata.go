package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Section is the state of the narrative scanner.
type Section int

const (
	SectionNone Section = iota
	SectionDescription
	SectionPreparation
	SectionPlating
)

func (s Section) String() string {
	switch s {
	case SectionDescription:
		return "description"
	case SectionPreparation:
		return "preparation"
	case SectionPlating:
		return "plating"
	}
	return "none"
}

// Narrative holds the sidecar text of one recipe.
type Narrative struct {
	Description string
	Preparation string
	Plating     string
}

// Window is a half-open row range [Start, End).
type Window struct {
	Start int
	End   int
}

// MetadataWindow bounds the sidecar scan of a block: from start (the title
// row, or the header row) to tail rows past the table end, never reaching
// the next block's start or past the matrix.
func MetadataWindow(start, tableEnd, nextStart, rows, tail int) Window {
	end := tableEnd + tail
	if nextStart >= 0 && end > nextStart {
		end = nextStart
	}
	if end > rows {
		end = rows
	}
	if end < start {
		end = start
	}
	return Window{Start: start, End: end}
}

// SidecarColumn picks the narrative column for a block, or -1 if none.
func SidecarColumn(m *Matrix, span Span, cols ColumnMap, w Window, p SidecarPolicy) int {
	col := -1
	switch p.Mode {
	case SidecarAbsolute:
		col = p.Column
	case SidecarRelative:
		col = cols.Item + p.Offset
	default:
		for c := span.Last + 1; c <= span.Last+p.SearchWidth; c++ {
			if columnHasText(m, c, w) {
				return c
			}
		}
		return -1
	}
	if col < 0 || col == cols.Item || col == cols.Quantity || col == cols.Unit || col == cols.Cost {
		return -1
	}
	return col
}

func columnHasText(m *Matrix, c int, w Window) bool {
	for r := w.Start; r < w.End; r++ {
		cell := m.At(r, c)
		if !cell.Filled && !cell.Numeric && HasLetters(cell.Text) {
			return true
		}
	}
	return false
}

// sectionMachine accumulates fragments per section. Labels switch state;
// unlabeled text goes to the current section, and to preparation when no
// label has been seen.
type sectionMachine struct {
	policy *SectionPolicy
	state  Section
	parts  map[Section][]string
}

func newSectionMachine(p *SectionPolicy) *sectionMachine {
	return &sectionMachine{policy: p, parts: make(map[Section][]string)}
}

func (sm *sectionMachine) feed(text string) {
	if sec, ok := sm.label(NormalizeKey(text)); ok {
		sm.state = sec
		if rest := sm.stripLabel(text); rest != "" {
			sm.parts[sec] = append(sm.parts[sec], rest)
		}
		return
	}
	if sm.state == SectionNone {
		sm.state = SectionPreparation
	}
	sm.parts[sm.state] = append(sm.parts[sm.state], strings.TrimSpace(text))
}

func (sm *sectionMachine) text(s Section) string {
	return strings.TrimSpace(strings.Join(sm.parts[s], "\n"))
}

// Label returns the section whose keyword starts the normalized text key as
// a whole word.
func (p *SectionPolicy) Label(key string) (Section, bool) {
	for _, l := range []struct {
		sec      Section
		keywords []string
	}{
		{SectionDescription, p.Description},
		{SectionPreparation, p.Preparation},
		{SectionPlating, p.Plating},
	} {
		for _, kw := range l.keywords {
			if hasWordPrefix(key, kw) {
				return l.sec, true
			}
		}
	}
	return SectionNone, false
}

func (sm *sectionMachine) label(key string) (Section, bool) {
	return sm.policy.Label(key)
}

func hasWordPrefix(s, prefix string) bool {
	if !strings.HasPrefix(s, prefix) {
		return false
	}
	next, _ := utf8.DecodeRuneInString(s[len(prefix):])
	return next == utf8.RuneError || !unicode.IsLetter(next)
}

func (sm *sectionMachine) isLabelWord(w string) bool {
	for _, list := range [][]string{sm.policy.Description, sm.policy.Preparation, sm.policy.Plating, sm.policy.Fillers} {
		for _, v := range list {
			if w == v {
				return true
			}
		}
	}
	return false
}

// stripLabel drops the section label from a cell: everything up to a colon
// when only label words precede it, otherwise the leading label words.
func (sm *sectionMachine) stripLabel(text string) string {
	if i := strings.Index(text, ":"); i >= 0 {
		ws := words(NormalizeKey(text[:i]))
		all := len(ws) > 0
		for _, w := range ws {
			if !sm.isLabelWord(w) {
				all = false
				break
			}
		}
		if all {
			return strings.TrimSpace(text[i+1:])
		}
	}
	rest := text
	for {
		rest = strings.TrimLeft(rest, " \t\r\n:-\u2013.")
		end := strings.IndexFunc(rest, unicode.IsSpace)
		word := rest
		if end >= 0 {
			word = rest[:end]
		}
		if word == "" {
			return ""
		}
		if !sm.isLabelWord(NormalizeKey(strings.Trim(word, ":-\u2013.,;"))) {
			return strings.TrimSpace(rest)
		}
		rest = rest[len(word):]
	}
}

// ExtractMetadata runs the section machine down the sidecar column inside
// the window. Merge-filled copies and numbers are ignored. An empty
// preparation becomes the policy placeholder.
func ExtractMetadata(m *Matrix, col int, w Window, p *SectionPolicy) Narrative {
	sm := newSectionMachine(p)
	if col >= 0 {
		for r := w.Start; r < w.End; r++ {
			c := m.At(r, col)
			if c.Filled || c.Numeric {
				continue
			}
			if t := c.Trimmed(); t != "" {
				sm.feed(t)
			}
		}
	}
	n := Narrative{
		Description: sm.text(SectionDescription),
		Preparation: sm.text(SectionPreparation),
		Plating:     sm.text(SectionPlating),
	}
	if n.Preparation == "" {
		n.Preparation = p.Placeholder
	}
	return n
}
