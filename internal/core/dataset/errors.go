package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds surfaced by the stamping pipeline. Callers match them with errors.Is.
var (
	ErrFileNotFound  = errors.New("dataset file not found")
	ErrParse         = errors.New("malformed dataset")
	ErrMissingColumn = errors.New("missing column")
	ErrWrite         = errors.New("dataset not writable")
)

// ParseError describes why a dataset could not be read as a table.
type ParseError struct {
	Path string
	Line int // 0 when unknown
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ErrParse so callers don't need errors.As for the common case.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// MissingColumnError names the column that was required and what the header actually had.
type MissingColumnError struct {
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found (available: %s)", e.Column, strings.Join(e.Available, ", "))
}

func (e *MissingColumnError) Is(target error) bool { return target == ErrMissingColumn }
