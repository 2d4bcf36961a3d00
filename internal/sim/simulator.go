// Package sim orchestrates a full wave-model simulation: projection of the
// input onto the eigenbasis, independent per-mode temporal solves, and
// reconstruction of the spatiotemporal activity field.
package sim

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/neurowave/internal/basis"
	"github.com/san-kum/neurowave/internal/solver"
	"github.com/san-kum/neurowave/internal/wave"
)

type Config struct {
	Method wave.Method
	Params wave.Params

	// Workers bounds the per-mode solve parallelism; 0 uses all CPUs.
	Workers int

	// Tolerance is the ODE local error tolerance; 0 keeps the solver default.
	Tolerance float64
}

func DefaultConfig() Config {
	return Config{
		Method: wave.MethodODE,
		Params: wave.DefaultParams(),
	}
}

// Simulator runs the wave model against a fixed eigenbasis. A run is a pure
// function of its inputs; no state survives between calls.
type Simulator struct {
	basis *basis.Basis
	cfg   Config
}

func New(b *basis.Basis, cfg Config) (*Simulator, error) {
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	// fail fast on an unknown method tag
	if _, err := solver.New(cfg.Method); err != nil {
		return nil, err
	}
	return &Simulator{basis: b, cfg: cfg}, nil
}

// Run simulates the activity field driven by input (vertices x T) over the
// given time grid, returning a field of the same shape. Modes are solved
// independently in parallel; the first per-mode failure aborts the whole run
// rather than returning a partially valid field.
func (s *Simulator) Run(ctx context.Context, input *mat.Dense, times wave.TimeGrid) (*mat.Dense, error) {
	v, t := input.Dims()
	if v != s.basis.NumVertices() {
		return nil, fmt.Errorf("%w: input has %d rows, basis has %d vertices",
			wave.ErrDimensionMismatch, v, s.basis.NumVertices())
	}
	if t != len(times) {
		return nil, fmt.Errorf("%w: input has %d columns, time grid has %d samples",
			wave.ErrDimensionMismatch, t, len(times))
	}
	if err := times.Validate(); err != nil {
		return nil, err
	}

	coeffs, err := s.basis.Project(input)
	if err != nil {
		return nil, err
	}

	m := s.basis.NumModes()
	series := mat.NewDense(m, t, nil)
	errs := make([]error, m)

	ParallelFor(m, 1, s.cfg.Workers, func(start, end int) {
		// each chunk owns its solver: the ODE path carries scratch state
		sol, err := s.newSolver()
		if err != nil {
			errs[start] = err
			return
		}
		row := make([]float64, t)
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				errs[i] = ctx.Err()
				return
			}
			mat.Row(row, i, coeffs)
			out, err := sol.Solve(row, times, s.basis.Eigenvalues[i], s.cfg.Params)
			if err != nil {
				errs[i] = &wave.ModeError{Mode: i, Err: err}
				return
			}
			series.SetRow(i, out)
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return s.basis.Reconstruct(series)
}

func (s *Simulator) newSolver() (solver.Solver, error) {
	sol, err := solver.New(s.cfg.Method)
	if err != nil {
		return nil, err
	}
	if ode, ok := sol.(*solver.ODE); ok && s.cfg.Tolerance > 0 {
		ode.Tol = s.cfg.Tolerance
	}
	return sol, nil
}
