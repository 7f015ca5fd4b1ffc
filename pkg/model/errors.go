package model

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat marks catalog rows whose days and times cannot be represented.
	ErrFormat = errors.New("invalid catalog format")
	// ErrInputGrouping marks catalogs whose rows for one course are not contiguous.
	ErrInputGrouping = errors.New("invalid catalog grouping")
)

// FormatError describes a catalog row that does not parse into meeting blocks.
type FormatError struct {
	Row    int
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %q: %s", e.Row, e.Value, e.Reason)
	}
	return fmt.Sprintf("%q: %s", e.Value, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// InputGroupingError is returned when a course code shows up again after rows
// of a different course, which would silently split it into two entities.
type InputGroupingError struct {
	CourseCode string
	FirstRow   int
	Row        int
	Reason     string
}

func (e *InputGroupingError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("row %d: course %s already appeared at row %d and its rows must be contiguous", e.Row, e.CourseCode, e.FirstRow)
}

func (e *InputGroupingError) Unwrap() error {
	return ErrInputGrouping
}
