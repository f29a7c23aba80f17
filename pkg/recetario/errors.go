package recetario

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrDocumentUnreadable indicates the input cannot be opened or decoded as xlsx.
var ErrDocumentUnreadable = errors.New("document unreadable")

// ExtractionError represents a failure confined to one sheet.
type ExtractionError struct {
	SheetName string
	Component string // "matrix"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}

func unreadable(err error) error {
	return fmt.Errorf("%w: %v", ErrDocumentUnreadable, err)
}
