// Package solver implements the per-mode temporal solvers of the wave model.
//
// Each spatial eigenmode evolves independently as a forced, damped oscillator.
// Two interchangeable strategies solve the same linear system:
//
//   - [ODE]: direct adaptive Runge-Kutta integration with dense output
//   - [Fourier]: closed-form transfer function applied in the frequency domain
//
// For a linear, time-invariant system on a uniform grid the two agree within
// numerical tolerance.
package solver

import (
	"fmt"

	"github.com/san-kum/neurowave/internal/wave"
)

// Solver computes one mode's activity series from its forcing series. The
// returned series is sampled exactly on the input grid.
type Solver interface {
	Solve(coeffs []float64, times wave.TimeGrid, lambda float64, p wave.Params) ([]float64, error)
}

// New returns the solver for the given method tag.
func New(m wave.Method) (Solver, error) {
	switch m {
	case wave.MethodODE:
		return NewODE(), nil
	case wave.MethodFourier:
		return NewFourier(), nil
	default:
		return nil, fmt.Errorf("%w: %s", wave.ErrUnsupportedMethod, m)
	}
}
