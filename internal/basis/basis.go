// Package basis holds the spatial eigenbasis of the simulated surface and the
// linear-algebra steps that move fields between vertex space and mode space.
package basis

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/neurowave/internal/wave"
)

// Basis is a fixed eigenbasis of a surface operator: one spatial eigenmode
// per column of Modes, with the matching eigenvalue at the same index. It is
// treated as immutable for the lifetime of a simulation.
type Basis struct {
	Modes       *mat.Dense // vertices x modes
	Eigenvalues []float64
}

func New(modes *mat.Dense, eigenvalues []float64) (*Basis, error) {
	v, m := modes.Dims()
	if m > v {
		return nil, fmt.Errorf("%w: %d modes exceed %d vertices", wave.ErrDimensionMismatch, m, v)
	}
	if len(eigenvalues) != m {
		return nil, fmt.Errorf("%w: %d eigenvalues for %d modes",
			wave.ErrDimensionMismatch, len(eigenvalues), m)
	}
	return &Basis{Modes: modes, Eigenvalues: eigenvalues}, nil
}

func (b *Basis) NumVertices() int {
	v, _ := b.Modes.Dims()
	return v
}

func (b *Basis) NumModes() int {
	_, m := b.Modes.Dims()
	return m
}

// Project maps a vertices x T field onto the eigenbasis, returning the
// modes x T coefficient series by least squares. Time ordering is preserved
// column for column.
func (b *Basis) Project(field *mat.Dense) (*mat.Dense, error) {
	v, _ := field.Dims()
	if v != b.NumVertices() {
		return nil, fmt.Errorf("%w: field has %d rows, basis has %d vertices",
			wave.ErrDimensionMismatch, v, b.NumVertices())
	}
	var coeffs mat.Dense
	if err := coeffs.Solve(b.Modes, field); err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	return &coeffs, nil
}

// Reconstruct recombines a modes x T coefficient series into a vertices x T
// field: Modes * series.
func (b *Basis) Reconstruct(series *mat.Dense) (*mat.Dense, error) {
	m, _ := series.Dims()
	if m != b.NumModes() {
		return nil, fmt.Errorf("%w: series has %d rows, basis has %d modes",
			wave.ErrDimensionMismatch, m, b.NumModes())
	}
	var field mat.Dense
	field.Mul(b.Modes, series)
	return &field, nil
}
