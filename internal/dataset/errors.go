package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDataUnavailable = errors.New("dataset unavailable")
	ErrSchemaMismatch  = errors.New("dataset schema mismatch")
	ErrNotLoaded       = errors.New("datasets not loaded yet")
	ErrEmptyWorkbook   = errors.New("workbook has no rows")
)

// SchemaError lists the required columns a workbook lacks.
type SchemaError struct {
	Dataset string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s is missing columns %s", ErrSchemaMismatch, e.Dataset, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaMismatch
}

// RowError reports a cell that could not be parsed. Row is the 1-based
// spreadsheet row, so the header is row 1.
type RowError struct {
	Dataset string
	Row     int
	Column  string
	Value   string
	Err     error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s row %d: invalid %s %q: %v", e.Dataset, e.Row, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
