package logistic

import (
	"errors"
	"fmt"
)

// Domain errors for map iteration.
var (
	// ErrNotConverged indicates the iteration cap was reached before the
	// stopping predicate held.
	ErrNotConverged = errors.New("logistic: iteration cap reached before convergence")

	// ErrInvalidState indicates an iterate became NaN or Inf.
	ErrInvalidState = errors.New("logistic: invalid state (NaN or Inf detected)")

	// ErrEmptyParameters indicates a scan was requested with no parameter values.
	ErrEmptyParameters = errors.New("logistic: no parameter values to scan")

	// ErrCanceled indicates the scan was interrupted.
	ErrCanceled = errors.New("logistic: scan canceled by context")
)

// ConvergenceError wraps ErrNotConverged with the state of the truncated run.
type ConvergenceError struct {
	A          float64
	Iterations int
	Last       float64
	Previous   float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("a=%g: %d iterations, |%.6g - %.6g| still above tolerance: %v",
		e.A, e.Iterations, e.Last, e.Previous, ErrNotConverged)
}

func (e *ConvergenceError) Unwrap() error {
	return ErrNotConverged
}
