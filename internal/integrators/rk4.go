package integrators

import "github.com/san-kum/neurowave/internal/wave"

// RK4 is a fixed-step fourth-order Runge-Kutta integrator, kept as a
// deterministic cross-check for the adaptive scheme. Not safe for concurrent
// use: scratch buffers are reused between steps.
type RK4 struct {
	k1, k2, k3, k4 wave.State
	scratch        wave.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(wave.State, n)
		r.k2 = make(wave.State, n)
		r.k3 = make(wave.State, n)
		r.k4 = make(wave.State, n)
		r.scratch = make(wave.State, n)
	}
}

func (r *RK4) Step(sys wave.System, x wave.State, t, dt float64) wave.State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, sys.Derive(x, t))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	copy(r.k2, sys.Derive(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	copy(r.k3, sys.Derive(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	copy(r.k4, sys.Derive(r.scratch, t+dt))

	result := make(wave.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
