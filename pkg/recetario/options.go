// Package recetario extracts recipe families from loosely structured
// spreadsheet workbooks.
package recetario

import (
	"github.com/ukaji3/recetario-go/pkg/recetario/parser"
	"go.uber.org/zap"
)

// Options configures extraction behavior.
type Options struct {
	// Policy holds the extraction heuristics. If nil, parser.DefaultPolicy is used.
	Policy *parser.Policy
	// Logger receives skip diagnostics and a per-parse summary.
	// If nil, logging is disabled.
	Logger *zap.Logger
	// IncludeReports specifies whether per-sheet reports are returned.
	// If nil, defaults to true.
	IncludeReports *bool
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Policy: parser.DefaultPolicy(),
	}
}

// ShouldIncludeReports returns whether to include per-sheet reports.
func (o Options) ShouldIncludeReports() bool {
	if o.IncludeReports != nil {
		return *o.IncludeReports
	}
	return true
}

func (o Options) policy() (*parser.Policy, error) {
	if o.Policy == nil {
		return parser.DefaultPolicy(), nil
	}
	if err := o.Policy.Compile(); err != nil {
		return nil, err
	}
	return o.Policy, nil
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
