package wave

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Default model parameters for cortical activity simulation.
const (
	DefaultGamma       = 116.0 // damping rate gamma_s, 1/s
	DefaultLengthScale = 30.0  // spatial length scale r_s, mm
)

// dtTol is the relative tolerance applied when checking a grid for uniform
// spacing.
const dtTol = 1e-9

// Params holds the wave model parameters. Both values must be strictly
// positive for a stable, physically meaningful system.
type Params struct {
	Gamma       float64 // damping rate gamma_s
	LengthScale float64 // spatial length scale r_s
}

func DefaultParams() Params {
	return Params{Gamma: DefaultGamma, LengthScale: DefaultLengthScale}
}

func (p Params) Validate() error {
	if p.Gamma <= 0 {
		return fmt.Errorf("%w: gamma_s must be positive, got %g", ErrParameterBounds, p.Gamma)
	}
	if p.LengthScale <= 0 {
		return fmt.Errorf("%w: r_s must be positive, got %g", ErrParameterBounds, p.LengthScale)
	}
	return nil
}

// Stiffness returns 1 + r_s^2*lambda, the factor by which an eigenvalue
// stiffens a mode's oscillator.
func (p Params) Stiffness(lambda float64) float64 {
	return 1 + p.LengthScale*p.LengthScale*lambda
}

// TimeGrid is the sequence of sample times of a simulation, strictly
// increasing.
type TimeGrid []float64

// Span returns a uniform grid of n samples covering [t0, t1].
func Span(t0, t1 float64, n int) TimeGrid {
	g := make(TimeGrid, n)
	floats.Span(g, t0, t1)
	return g
}

func (g TimeGrid) Validate() error {
	if len(g) < 2 {
		return fmt.Errorf("%w: need at least 2 samples, got %d", ErrDimensionMismatch, len(g))
	}
	for i := 1; i < len(g); i++ {
		if g[i] <= g[i-1] {
			return fmt.Errorf("time grid not strictly increasing at index %d", i)
		}
	}
	return nil
}

// Dt returns the uniform sample spacing. A grid whose spacing varies beyond a
// small relative tolerance fails with ErrNonUniformGrid: a non-uniform grid
// silently corrupts the frequency axis of the Fourier solver.
func (g TimeGrid) Dt() (float64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	dt := (g[len(g)-1] - g[0]) / float64(len(g)-1)
	for i := 1; i < len(g); i++ {
		if math.Abs(g[i]-g[i-1]-dt) > dtTol*math.Max(1, math.Abs(dt)) {
			return 0, fmt.Errorf("%w: spacing %g at index %d, expected %g",
				ErrNonUniformGrid, g[i]-g[i-1], i, dt)
		}
	}
	return dt, nil
}

// Duration returns the time spanned by the grid.
func (g TimeGrid) Duration() float64 {
	if len(g) == 0 {
		return 0
	}
	return g[len(g)-1] - g[0]
}

// Method selects the per-mode solver strategy.
type Method int

const (
	MethodODE Method = iota // direct adaptive integration of the oscillator ODE
	MethodFourier           // closed-form transfer function in the frequency domain
)

func (m Method) String() string {
	switch m {
	case MethodODE:
		return "ode"
	case MethodFourier:
		return "fourier"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod maps a method name to its tag. Unknown names fail with
// ErrUnsupportedMethod.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ode":
		return MethodODE, nil
	case "fourier":
		return MethodFourier, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
	}
}

// State is the state vector of an ODE system.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is an autonomous-in-structure ODE system dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	Dim() int
}
