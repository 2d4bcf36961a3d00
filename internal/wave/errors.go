package wave

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrDimensionMismatch indicates inconsistent shapes between the basis,
	// the input field and the time grid.
	ErrDimensionMismatch = errors.New("wave: dimension mismatch")

	// ErrUnsupportedMethod indicates an unrecognized solver method tag.
	ErrUnsupportedMethod = errors.New("wave: unsupported solver method")

	// ErrNonFinite indicates a solve produced NaN or Inf values.
	ErrNonFinite = errors.New("wave: non-finite value in solution")

	// ErrStepTooSmall indicates the adaptive timestep fell below its minimum.
	ErrStepTooSmall = errors.New("wave: adaptive timestep below minimum")

	// ErrNonUniformGrid indicates a non-uniform time grid was supplied to a
	// solver that requires constant spacing.
	ErrNonUniformGrid = errors.New("wave: time grid is not uniformly spaced")

	// ErrParameterBounds indicates a model parameter outside its valid range.
	ErrParameterBounds = errors.New("wave: parameter out of valid bounds")
)

// ModeError wraps a per-mode solve failure with the offending mode index.
type ModeError struct {
	Mode int
	Err  error
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("mode %d: %v", e.Mode, e.Err)
}

func (e *ModeError) Unwrap() error {
	return e.Err
}
