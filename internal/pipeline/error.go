package pipeline

import "fmt"

// Stage names the phase of an aggregation run that failed.
type Stage string

const (
	// StageDiscover is the initial directory listing of the root.
	StageDiscover Stage = "discover"

	// StageResolve is the concurrent per-directory resolution phase.
	StageResolve Stage = "resolve"
)

// Error is returned when an aggregation run as a whole cannot produce
// a snapshot. It wraps the underlying transport or remote error.
type Error struct {
	Stage Stage
	Err   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("aggregation failed during %s: %v", e.Stage, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}
