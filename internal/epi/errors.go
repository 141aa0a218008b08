package epi

import (
	"errors"
	"fmt"
)

// Domain errors for solver operations.
var (
	// ErrInvalidTimes indicates an empty or non-increasing output-time sequence.
	ErrInvalidTimes = errors.New("epi: output times must be non-empty and strictly increasing")

	// ErrNegativeState indicates an initial state with a negative compartment.
	ErrNegativeState = errors.New("epi: initial state has negative compartment")

	// ErrUnstable indicates a state component became NaN or Inf during integration.
	ErrUnstable = errors.New("epi: numerical instability (non-finite state)")

	// ErrMissingParameter indicates a required model coefficient was not set.
	ErrMissingParameter = errors.New("epi: required parameter missing")

	// ErrParameterBounds indicates a parameter value outside its valid range.
	ErrParameterBounds = errors.New("epi: parameter out of valid bounds")

	// ErrStepTooSmall indicates the adaptive timestep fell below its minimum.
	ErrStepTooSmall = errors.New("epi: adaptive timestep below minimum")

	// ErrDimensionMismatch indicates a state of the wrong length for the system.
	ErrDimensionMismatch = errors.New("epi: state dimension does not match system")
)

// SolveError wraps a solver failure with the last valid time reached.
type SolveError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}
