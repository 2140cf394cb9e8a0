// Package seqerr holds the two error kinds shared by the analysis packages.
// Degenerate records are never errors; they become zero-valued reports.
package seqerr

import (
	"errors"
	"fmt"
)

// ParseError reports input that could not be decoded as text.
type ParseError struct {
	Source string // file name or "<input>"
	Offset int    // byte offset of the first bad byte, -1 if unknown
	Reason string
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("parse %s: %s at byte %d", e.Source, e.Reason, e.Offset)
	}
	return fmt.Sprintf("parse %s: %s", e.Source, e.Reason)
}

// ValidationError reports a caller supplied parameter that cannot be used.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// Invalid is shorthand for building a *ValidationError.
func Invalid(field string, value any, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// IsParse reports whether err wraps a *ParseError.
func IsParse(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
