package basis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Harmonic returns a synthetic eigenbasis of cosine modes on the unit line
// with Neumann boundaries: mode k has eigenvalue (k*pi)^2. Useful for demos
// and tests that need a basis without external mesh data.
func Harmonic(vertices, modes int) (*Basis, error) {
	x := make([]float64, vertices)
	floats.Span(x, 0, 1)

	data := mat.NewDense(vertices, modes, nil)
	eigenvalues := make([]float64, modes)
	for k := 0; k < modes; k++ {
		kpi := float64(k) * math.Pi
		eigenvalues[k] = kpi * kpi
		for i := 0; i < vertices; i++ {
			if k == 0 {
				data.Set(i, k, 1)
			} else {
				data.Set(i, k, math.Sqrt2*math.Cos(kpi*x[i]))
			}
		}
	}
	return New(data, eigenvalues)
}
