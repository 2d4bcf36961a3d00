// Package analysis provides frequency analysis of simulated activity traces.
package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the one-sided magnitude spectrum of a uniformly
// sampled signal. Bin i corresponds to frequency i/(N*dt).
func PowerSpectrum(signal []float64) []float64 {
	spec := fft.FFTReal(signal)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantFrequency returns the frequency (in 1/time units of dt) of the
// strongest nonzero-frequency component of the signal.
func DominantFrequency(signal []float64, dt float64) float64 {
	ps := PowerSpectrum(signal)
	if len(ps) < 2 {
		return 0
	}
	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	return float64(best) / (float64(len(signal)) * dt)
}
