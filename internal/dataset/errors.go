package dataset

import (
	"errors"
	"fmt"
)

// ErrMissingColumn is wrapped by LoadError when a required column is absent
var ErrMissingColumn = errors.New("missing required column")

// ErrEmptyStore is wrapped by LoadError when the local store holds no records
var ErrEmptyStore = errors.New("no records stored (run 'bikereport import' first)")

// LoadError represents a failure to read the source dataset
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// TransformError represents a cell that cannot be used by an aggregation
type TransformError struct {
	Column string
	Row    int // 1-based data row, 0 when the whole column is at fault
	Value  string
	Reason string
}

func (e *TransformError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("column %q row %d: %s (value %q)", e.Column, e.Row, e.Reason, e.Value)
}
