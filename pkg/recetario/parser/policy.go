package parser

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Matcher tests one normalized header cell. Exactly one field is set.
type Matcher struct {
	// Token matches when a whole word of the cell equals the value.
	Token string `yaml:"token,omitempty"`
	// Contains matches on substring.
	Contains string `yaml:"contains,omitempty"`
	// Regex matches with a regular expression.
	Regex string `yaml:"regex,omitempty"`

	re *regexp.Regexp
}

// specificity orders matchers: token, contains, regex.
func (m Matcher) specificity() int {
	switch {
	case m.Token != "":
		return 0
	case m.Contains != "":
		return 1
	default:
		return 2
	}
}

// Match reports whether the normalized cell text v matches.
func (m Matcher) Match(v string) bool {
	if v == "" {
		return false
	}
	switch {
	case m.Token != "":
		for _, w := range words(v) {
			if w == m.Token {
				return true
			}
		}
		return false
	case m.Contains != "":
		return strings.Contains(v, m.Contains)
	case m.re != nil:
		return m.re.MatchString(v)
	}
	return false
}

// Vocabulary lists the matchers for each canonical column role.
type Vocabulary struct {
	Item     []Matcher `yaml:"item"`
	Unit     []Matcher `yaml:"unit"`
	Quantity []Matcher `yaml:"quantity"`
	Cost     []Matcher `yaml:"cost"`
}

// TitlePolicy bounds the upward title scan.
type TitlePolicy struct {
	ScanRows     int      `yaml:"scan_rows"`
	MinLength    int      `yaml:"min_length"`
	ColumnMargin int      `yaml:"column_margin"`
	Banned       []string `yaml:"banned"`
	// Untitled is a fmt format taking the sheet name and block ordinal.
	Untitled string `yaml:"untitled"`
}

// Sidecar column modes.
const (
	SidecarAuto     = "auto"
	SidecarAbsolute = "absolute"
	SidecarRelative = "relative"
)

// SidecarPolicy locates the narrative column next to a recipe table.
type SidecarPolicy struct {
	Mode string `yaml:"mode"`
	// Column is the 0-based column for absolute mode.
	Column int `yaml:"column"`
	// Offset is added to the item column in relative mode.
	Offset int `yaml:"offset"`
	// SearchWidth is how many columns right of the header auto mode tries.
	SearchWidth int `yaml:"search_width"`
	// Tail is how many rows past the table end the window extends.
	Tail int `yaml:"tail"`
}

// SectionPolicy holds the label keywords of each narrative section.
type SectionPolicy struct {
	Description []string `yaml:"description"`
	Preparation []string `yaml:"preparation"`
	Plating     []string `yaml:"plating"`
	// Fillers are label words dropped after a keyword ("de", "la", ...).
	Fillers []string `yaml:"fillers"`
	// Placeholder replaces an empty preparation.
	Placeholder string `yaml:"placeholder"`
}

// Dot grouping policies for dot-only quantities.
const (
	DotThousands = "thousands"
	DotDecimal   = "decimal"
)

// QuantityPolicy configures the quantity normalizer.
type QuantityPolicy struct {
	DotGrouping  string `yaml:"dot_grouping"`
	Precision    int    `yaml:"precision"`
	KeepUnparsed bool   `yaml:"keep_unparsed"`
}

// Policy is the single configurable set of extraction heuristics.
type Policy struct {
	Columns      Vocabulary     `yaml:"columns"`
	StopTokens   []string       `yaml:"stop_tokens"`
	DefaultUnit  string         `yaml:"default_unit"`
	Title        TitlePolicy    `yaml:"title"`
	Sidecar      SidecarPolicy  `yaml:"sidecar"`
	Sections     SectionPolicy  `yaml:"sections"`
	Quantities   QuantityPolicy `yaml:"quantities"`
	DeniedSheets []string       `yaml:"denied_sheets"`

	compiled bool
}

// DefaultPolicy returns the built-in Spanish recipe-sheet heuristics.
func DefaultPolicy() *Policy {
	p := &Policy{
		Columns: Vocabulary{
			Item: []Matcher{
				{Contains: "ingrediente"},
				{Contains: "insumo"},
				{Regex: "art.?culo"},
			},
			Unit: []Matcher{
				{Token: "und"},
				{Contains: "unidad"},
				{Contains: "u. medida"},
				{Contains: "u medida"},
				{Contains: "medida"},
			},
			Quantity: []Matcher{
				{Contains: "cant"},
				{Contains: "cantidad"},
				{Contains: "unidades netas"},
				{Contains: "unidades"},
			},
			Cost: []Matcher{
				{Contains: "costo"},
				{Contains: "coste"},
				{Contains: "precio"},
				{Contains: "valor"},
			},
		},
		StopTokens: []string{"total"},
		Title: TitlePolicy{
			ScanRows:  15,
			MinLength: 3,
			Banned: []string{
				"analisis", "receta", "costo", "coste", "subtotal", "total", "margen", "ganancia",
				"ingrediente", "ingredientes", "articulo", "unidad", "unidades", "und", "cant",
				"cantidad", "netas", "descripcion", "carta", "proceso", "elaboracion",
				"preparacion", "emplatado", "montaje", "foto", "insumo", "insumos",
			},
			Untitled: "%s (BLOQUE %d)",
		},
		Sidecar: SidecarPolicy{
			Mode:        SidecarAuto,
			SearchWidth: 4,
			Tail:        30,
		},
		Sections: SectionPolicy{
			Description: []string{"descripcion", "carta"},
			Preparation: []string{"preparacion", "proceso", "instrucciones", "elaboracion"},
			Plating:     []string{"emplatado", "montaje", "decoracion", "presentacion"},
			Fillers:     []string{"de", "del", "la", "el", "los", "las", "y", "carta", "elaboracion", "plato", "servicio", "tecnico"},
			Placeholder: "Consultar procesos técnicos en matriz.",
		},
		Quantities: QuantityPolicy{
			DotGrouping: DotThousands,
			Precision:   3,
		},
		DeniedSheets: []string{"config", "dashboard", "parametros", "resumen"},
	}
	if err := p.Compile(); err != nil {
		panic(err)
	}
	return p
}

// LoadPolicy reads a YAML policy. Fields absent from the file keep their
// default values.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy: %w", err)
	}
	return ParsePolicy(data)
}

// ParsePolicy decodes a YAML policy on top of DefaultPolicy.
func ParsePolicy(data []byte) (*Policy, error) {
	p := DefaultPolicy()
	p.compiled = false
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decode policy: %w", err)
	}
	if err := p.Compile(); err != nil {
		return nil, err
	}
	return p, nil
}

// Compile validates the policy, compiles regex matchers and orders each
// role's matchers by specificity. It is idempotent.
func (p *Policy) Compile() error {
	if p.compiled {
		return nil
	}
	for _, role := range []struct {
		name string
		list []Matcher
	}{
		{"item", p.Columns.Item},
		{"unit", p.Columns.Unit},
		{"quantity", p.Columns.Quantity},
		{"cost", p.Columns.Cost},
	} {
		if err := compileMatchers(role.list); err != nil {
			return fmt.Errorf("policy columns.%s: %w", role.name, err)
		}
	}
	if len(p.Columns.Item) == 0 || len(p.Columns.Quantity) == 0 {
		return errors.New("policy: item and quantity vocabularies must not be empty")
	}
	switch p.Sidecar.Mode {
	case SidecarAuto, SidecarAbsolute, SidecarRelative:
	case "":
		p.Sidecar.Mode = SidecarAuto
	default:
		return fmt.Errorf("policy: unknown sidecar mode %q", p.Sidecar.Mode)
	}
	switch p.Quantities.DotGrouping {
	case DotThousands, DotDecimal:
	case "":
		p.Quantities.DotGrouping = DotThousands
	default:
		return fmt.Errorf("policy: unknown dot grouping %q", p.Quantities.DotGrouping)
	}
	if p.Quantities.Precision < 0 {
		return fmt.Errorf("policy: negative quantity precision %d", p.Quantities.Precision)
	}
	if p.Title.ScanRows < 0 || p.Title.MinLength < 0 || p.Title.ColumnMargin < 0 {
		return errors.New("policy: title bounds must not be negative")
	}
	if p.Title.Untitled == "" {
		p.Title.Untitled = "%s (BLOQUE %d)"
	}
	p.StopTokens = normalizeAll(p.StopTokens)
	p.Title.Banned = normalizeAll(p.Title.Banned)
	p.Sections.Description = normalizeAll(p.Sections.Description)
	p.Sections.Preparation = normalizeAll(p.Sections.Preparation)
	p.Sections.Plating = normalizeAll(p.Sections.Plating)
	p.Sections.Fillers = normalizeAll(p.Sections.Fillers)
	p.DeniedSheets = normalizeAll(p.DeniedSheets)
	p.compiled = true
	return nil
}

// IsDeniedSheet reports whether a sheet name is on the deny list.
func (p *Policy) IsDeniedSheet(name string) bool {
	n := NormalizeKey(name)
	for _, d := range p.DeniedSheets {
		if n == d {
			return true
		}
	}
	return false
}

func compileMatchers(list []Matcher) error {
	for i := range list {
		m := &list[i]
		set := 0
		for _, v := range []string{m.Token, m.Contains, m.Regex} {
			if v != "" {
				set++
			}
		}
		if set != 1 {
			return fmt.Errorf("matcher %d: exactly one of token, contains, regex is required", i)
		}
		m.Token = NormalizeKey(m.Token)
		m.Contains = NormalizeKey(m.Contains)
		if m.Regex != "" {
			re, err := regexp.Compile(m.Regex)
			if err != nil {
				return fmt.Errorf("matcher %d: %w", i, err)
			}
			m.re = re
		}
	}
	sort.SliceStable(list, func(a, b int) bool {
		return list[a].specificity() < list[b].specificity()
	})
	return nil
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := NormalizeKey(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}
