package solver

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/neurowave/internal/wave"
)

// Fourier solves a mode through the closed-form frequency response of the
// damped oscillator. The forcing is zero-padded onto an extended grid (no
// forcing before the window starts), multiplied by the transfer function in
// the frequency domain, and transformed back.
type Fourier struct{}

func NewFourier() *Fourier {
	return &Fourier{}
}

func (s *Fourier) Solve(coeffs []float64, times wave.TimeGrid, lambda float64, p wave.Params) ([]float64, error) {
	if len(coeffs) != len(times) {
		return nil, fmt.Errorf("%w: %d coefficients for %d times",
			wave.ErrDimensionMismatch, len(coeffs), len(times))
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	dt, err := times.Dt()
	if err != nil {
		return nil, err
	}

	// Work relative to the window start: shifting the forcing shifts the
	// response, so the transform always sees a window beginning at zero no
	// matter where times[0] sits. Doubling the grid keeps the circular
	// convolution's wrap-around clear of the output samples.
	n := 2*len(times) - 1
	zero := len(times) - 1

	// causal zero-padding: no forcing before the window starts
	padded := make([]float64, n)
	copy(padded[zero:], coeffs)

	spec := fft.FFTReal(padded)

	// Zero-centered angular frequency axis with spacing 2*pi/(n*dt); centered
	// index j holds frequency (j - n/2)*dw, which maps onto standard DFT
	// ordering by a rotation of n/2. The inverse transform reconstructs with
	// e^{+iwt}, so the damping term enters with a positive imaginary part and
	// the poles sit in the upper half-plane.
	dw := 2 * math.Pi / (float64(n) * dt)
	g := p.Gamma
	k := p.Stiffness(lambda)
	half := n / 2
	for j := 0; j < n; j++ {
		w := dw * float64(j-half)
		h := complex(g*g, 0) / complex(g*g*k-w*w, 2*w*g)
		spec[(j-half+n)%n] *= h
	}

	inv := fft.IFFT(spec)

	// discard the padding before the window; the imaginary residue is
	// numerical noise
	out := make([]float64, len(times))
	for i := range out {
		out[i] = real(inv[zero+i])
	}
	return out, nil
}
