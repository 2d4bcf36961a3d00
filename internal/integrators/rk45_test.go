package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/neurowave/internal/wave"
)

type harmonicOscillator struct{}

func (h *harmonicOscillator) Dim() int { return 2 }

func (h *harmonicOscillator) Derive(x wave.State, t float64) wave.State {
	return wave.State{x[1], -x[0]}
}

func (h *harmonicOscillator) Energy(x wave.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

// blowup diverges in finite time: x' = x^2 reaches infinity at t = 1/x0.
type blowup struct{}

func (b *blowup) Dim() int { return 1 }

func (b *blowup) Derive(x wave.State, t float64) wave.State {
	return wave.State{x[0] * x[0]}
}

func TestRK45_Step(t *testing.T) {
	integrator := NewRK45()
	sys := &harmonicOscillator{}
	x := wave.State{1.0, 0.0}
	dt := 0.01

	for i := 0; i < 1000; i++ {
		x = integrator.Step(sys, x, float64(i)*dt, dt)
	}

	if !x.IsValid() {
		t.Error("RK45 produced invalid state")
	}
}

func TestRK45_EnergyConservation(t *testing.T) {
	integrator := NewRK45()
	sys := &harmonicOscillator{}
	x0 := wave.State{1.0, 0.0}

	initialEnergy := sys.Energy(x0)
	x := x0.Clone()
	dt := 0.01

	for i := 0; i < 10000; i++ {
		x = integrator.Step(sys, x, float64(i)*dt, dt)
	}

	drift := math.Abs(sys.Energy(x)-initialEnergy) / initialEnergy
	if drift > 1e-6 {
		t.Errorf("RK45 energy drift too high: %e", drift)
	}
}

func TestRK45_StepAdaptive(t *testing.T) {
	integrator := NewRK45()
	sys := &harmonicOscillator{}

	x, newDt, err := integrator.StepAdaptive(sys, wave.State{1.0, 0.0}, 0, 0.1, 1e-8)
	if err != nil {
		t.Fatalf("StepAdaptive returned error: %v", err)
	}
	if !x.IsValid() {
		t.Error("StepAdaptive produced invalid state")
	}
	if newDt <= 0 {
		t.Errorf("StepAdaptive returned invalid dt: %f", newDt)
	}
}

func TestRK45_DenseOutput(t *testing.T) {
	integrator := NewRK45()
	sys := &harmonicOscillator{}

	// x(t) = cos(t) for x0 = (1, 0)
	times := make([]float64, 101)
	for i := range times {
		times[i] = 0.1 * float64(i)
	}

	states, err := integrator.Integrate(sys, wave.State{1.0, 0.0}, times, 1e-8)
	if err != nil {
		t.Fatalf("Integrate failed: %v", err)
	}
	if len(states) != len(times) {
		t.Fatalf("expected %d samples, got %d", len(times), len(states))
	}

	maxErr := 0.0
	for i, tm := range times {
		maxErr = math.Max(maxErr, math.Abs(states[i][0]-math.Cos(tm)))
	}
	if maxErr > 1e-5 {
		t.Errorf("dense output error too high: %e", maxErr)
	}
}

func TestRK45_DenseOutput_CoarseGrid(t *testing.T) {
	integrator := NewRK45()
	sys := &harmonicOscillator{}

	// output grid far coarser than any stable internal step
	times := []float64{0, 2.5, 5, 7.5, 10}
	states, err := integrator.Integrate(sys, wave.State{1.0, 0.0}, times, 1e-9)
	if err != nil {
		t.Fatalf("Integrate failed: %v", err)
	}
	for i, tm := range times {
		if math.Abs(states[i][0]-math.Cos(tm)) > 1e-6 {
			t.Errorf("t=%g: got %g, want %g", tm, states[i][0], math.Cos(tm))
		}
	}
}

func TestRK45_Integrate_Divergence(t *testing.T) {
	integrator := NewRK45()
	times := []float64{0, 1, 2}

	_, err := integrator.Integrate(&blowup{}, wave.State{1.0}, times, 1e-8)
	if err == nil {
		t.Fatal("expected error for diverging system")
	}
	if !errors.Is(err, wave.ErrStepTooSmall) && !errors.Is(err, wave.ErrNonFinite) {
		t.Errorf("expected step-underflow or non-finite error, got %v", err)
	}
}

func TestRK45_VsRK4_Accuracy(t *testing.T) {
	rk4 := NewRK4()
	rk45 := NewRK45()
	sys := &harmonicOscillator{}

	x4 := wave.State{1.0, 0.0}
	x45 := wave.State{1.0, 0.0}
	dt := 0.1

	for i := 0; i < 100; i++ {
		x4 = rk4.Step(sys, x4, float64(i)*dt, dt)
		x45 = rk45.Step(sys, x45, float64(i)*dt, dt)
	}

	t.Logf("RK4 final: [%.6f, %.6f]", x4[0], x4[1])
	t.Logf("RK45 final: [%.6f, %.6f]", x45[0], x45[1])

	e4 := sys.Energy(x4)
	e45 := sys.Energy(x45)
	if math.Abs(e45-0.5) > math.Abs(e4-0.5) {
		t.Log("Warning: RK45 not more accurate than RK4 for this case")
	}
}
