package pipeline

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSelection = errors.New("unknown selection")
	ErrTooFewEntities   = errors.New("at least 2 entities must be compared")
	ErrTooManyEntities  = errors.New("at most 3 entities can be compared")
	ErrTooManyPinned    = errors.New("at most 2 pinned entities are supported")
	ErrNoValues         = errors.New("no values to derive axis bounds from")
	ErrInvalidStep      = errors.New("axis step must be positive")
)

// SelectionError reports a label that is not part of an axis' option set.
type SelectionError struct {
	Axis  string
	Label string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("%s: %q is not a valid %s", ErrUnknownSelection, e.Label, e.Axis)
}

func (e *SelectionError) Unwrap() error {
	return ErrUnknownSelection
}
