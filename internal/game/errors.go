package game

import "errors"

// Failure kinds. None of them ends a match: the caller logs and skips.
var (
	ErrMissingReference = errors.New("missing reference")
	ErrInvalidState     = errors.New("invalid state")
	ErrEmptyCollection  = errors.New("empty collection")
)

// errorKind returns the sim-log key for a wrapped failure.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrMissingReference):
		return "missing_reference"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrEmptyCollection):
		return "empty_collection"
	default:
		return "error"
	}
}
