package dataset

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrColumnNotFound        = errors.New("column not found")
	ErrColumnIndexOutOfRange = errors.New("column index out of range")
	ErrSectionNotFound       = errors.New("metadata section not found")
)

// ColumnNotFoundError reports a column label missing from a data table.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found", e.Column)
}

func (e *ColumnNotFoundError) Is(target error) bool {
	return target == ErrColumnNotFound
}

// ColumnIndexOutOfRangeError reports a zero-based column position outside [0, Count).
type ColumnIndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *ColumnIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("column index %d out of range [0, %d)", e.Index, e.Count)
}

func (e *ColumnIndexOutOfRangeError) Is(target error) bool {
	return target == ErrColumnIndexOutOfRange
}

// SectionNotFoundError reports a request for an unknown metadata section.
type SectionNotFoundError struct {
	Section Section
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("metadata section %q not found (want %q or %q)", string(e.Section), SectionHeader, SectionColumnHeaders)
}

func (e *SectionNotFoundError) Is(target error) bool {
	return target == ErrSectionNotFound
}
