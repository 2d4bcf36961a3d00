package solver

import (
	"fmt"

	"github.com/san-kum/neurowave/internal/integrators"
	"github.com/san-kum/neurowave/internal/wave"
)

// DefaultTolerance is the local error tolerance of the adaptive integrator.
const DefaultTolerance = 1e-8

// ODE solves a mode by direct integration of the oscillator equation with an
// adaptive Dormand-Prince scheme, sampling the dense output on the input grid.
type ODE struct {
	// Tol is the local error tolerance per integration step.
	Tol float64

	integ *integrators.RK45
}

func NewODE() *ODE {
	return &ODE{Tol: DefaultTolerance, integ: integrators.NewRK45()}
}

// oscillator is one mode's forced damped oscillator with state (a, a'):
//
//	a'' = gamma^2 * (c(t) - (2/gamma)*a' - a*stiffness)
//
// where c(t) interpolates the forcing series and stiffness = 1 + r^2*lambda.
type oscillator struct {
	gamma     float64
	stiffness float64
	times     []float64
	forcing   []float64
}

func (o *oscillator) Dim() int { return 2 }

func (o *oscillator) Derive(x wave.State, t float64) wave.State {
	c := interpAt(o.times, o.forcing, t)
	g2 := o.gamma * o.gamma
	return wave.State{
		x[1],
		g2*(c-x[0]*o.stiffness) - 2*o.gamma*x[1],
	}
}

func (s *ODE) Solve(coeffs []float64, times wave.TimeGrid, lambda float64, p wave.Params) ([]float64, error) {
	if len(coeffs) != len(times) {
		return nil, fmt.Errorf("%w: %d coefficients for %d times",
			wave.ErrDimensionMismatch, len(coeffs), len(times))
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := times.Validate(); err != nil {
		return nil, err
	}

	sys := &oscillator{
		gamma:     p.Gamma,
		stiffness: p.Stiffness(lambda),
		times:     times,
		forcing:   coeffs,
	}

	// initial condition: activity matches the forcing, at rest
	x0 := wave.State{coeffs[0], 0}

	states, err := s.integ.Integrate(sys, x0, times, s.Tol)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(times))
	for i, st := range states {
		out[i] = st[0]
	}
	return out, nil
}
