package integrators

import (
	"fmt"
	"math"

	"github.com/san-kum/neurowave/internal/wave"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0

	// dense output coefficients
	d1 = -12715105075.0 / 11282082432.0
	d3 = 87487479700.0 / 32700410799.0
	d4 = -10690763975.0 / 1880347072.0
	d5 = 701980252875.0 / 199316789632.0
	d6 = -1453857185.0 / 822651844.0
	d7 = 69997945.0 / 29380423.0
)

// RK45 is an adaptive Dormand-Prince integrator with a fifth-order embedded
// error estimate and fourth-order dense output.
type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

// Dense is the continuous extension of one accepted step over [T, T+Dt].
type Dense struct {
	T, Dt float64
	cont  [5]wave.State
}

// Eval interpolates the solution at time t, which must lie within the step.
func (d *Dense) Eval(t float64) wave.State {
	theta := (t - d.T) / d.Dt
	theta1 := 1 - theta
	n := len(d.cont[0])
	out := make(wave.State, n)
	for i := 0; i < n; i++ {
		out[i] = d.cont[0][i] + theta*(d.cont[1][i]+theta1*(d.cont[2][i]+theta*(d.cont[3][i]+theta1*d.cont[4][i])))
	}
	return out
}

func (r *RK45) Step(sys wave.System, x wave.State, t, dt float64) wave.State {
	newX, _, _ := r.StepAdaptive(sys, x, t, dt, 1e-6)
	return newX
}

// StepAdaptive performs one step and suggests the next step size from the
// embedded error estimate. The step is always taken; callers that need
// accept/reject control use StepDense.
func (r *RK45) StepAdaptive(sys wave.System, x wave.State, t, dt, tol float64) (wave.State, float64, error) {
	xNew, errMax := r.stages(sys, x, t, dt, nil)
	return xNew, dt * r.stepScale(errMax/tol), nil
}

// StepDense performs one trial step. When the error estimate exceeds the
// tolerance the step is rejected: accepted is false, dense is nil and dtNext
// is the reduced retry step. On acceptance dense interpolates over [t, t+dt].
func (r *RK45) StepDense(sys wave.System, x wave.State, t, dt, tol float64) (xNew wave.State, dense *Dense, dtNext float64, accepted bool) {
	d := &Dense{T: t, Dt: dt}
	xNew, errMax := r.stages(sys, x, t, dt, d)
	errRatio := errMax / tol
	dtNext = dt * r.stepScale(errRatio)
	if errRatio > 1 {
		return nil, nil, dtNext, false
	}
	return xNew, d, dtNext, true
}

// stages runs the seven Dormand-Prince stages, filling dense output
// coefficients into d when given. It returns the fifth-order solution and the
// scaled error estimate.
func (r *RK45) stages(sys wave.System, x wave.State, t, dt float64, d *Dense) (wave.State, float64) {
	n := len(x)

	k1 := sys.Derive(x, t)

	x2 := make(wave.State, n)
	for i := 0; i < n; i++ {
		x2[i] = x[i] + dt*b21*k1[i]
	}
	k2 := sys.Derive(x2, t+a2*dt)

	x3 := make(wave.State, n)
	for i := 0; i < n; i++ {
		x3[i] = x[i] + dt*(b31*k1[i]+b32*k2[i])
	}
	k3 := sys.Derive(x3, t+a3*dt)

	x4 := make(wave.State, n)
	for i := 0; i < n; i++ {
		x4[i] = x[i] + dt*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4 := sys.Derive(x4, t+a4*dt)

	x5 := make(wave.State, n)
	for i := 0; i < n; i++ {
		x5[i] = x[i] + dt*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5 := sys.Derive(x5, t+a5*dt)

	x6 := make(wave.State, n)
	for i := 0; i < n; i++ {
		x6[i] = x[i] + dt*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6 := sys.Derive(x6, t+dt)

	xNew := make(wave.State, n)
	for i := 0; i < n; i++ {
		xNew[i] = x[i] + dt*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}

	k7 := sys.Derive(xNew, t+dt)

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := dt * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		scale := math.Abs(x[i]) + math.Abs(dt*k1[i]) + 1e-10
		errMax = math.Max(errMax, math.Abs(errEst)/scale)
	}

	if d != nil {
		d.cont[0] = x.Clone()
		ydiff := make(wave.State, n)
		bspl := make(wave.State, n)
		c4th := make(wave.State, n)
		c5th := make(wave.State, n)
		for i := 0; i < n; i++ {
			ydiff[i] = xNew[i] - x[i]
			bspl[i] = dt*k1[i] - ydiff[i]
			c4th[i] = ydiff[i] - dt*k7[i] - bspl[i]
			c5th[i] = dt * (d1*k1[i] + d3*k3[i] + d4*k4[i] + d5*k5[i] + d6*k6[i] + d7*k7[i])
		}
		d.cont[1] = ydiff
		d.cont[2] = bspl
		d.cont[3] = c4th
		d.cont[4] = c5th
	}

	return xNew, errMax
}

func (r *RK45) stepScale(errRatio float64) float64 {
	if errRatio > 1 {
		return math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25))
	}
	if errRatio > 0 {
		return math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
	}
	return r.maxScale
}

// Integrate advances sys from times[0] to the final grid time, sampling the
// dense solution exactly at every entry of times. The step size adapts to
// hold the local error near tol; the requested output times never constrain
// the internal step.
func (r *RK45) Integrate(sys wave.System, x0 wave.State, times []float64, tol float64) ([]wave.State, error) {
	if len(times) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 output times", wave.ErrDimensionMismatch)
	}

	out := make([]wave.State, len(times))
	out[0] = x0.Clone()

	t := times[0]
	tEnd := times[len(times)-1]
	dt := times[1] - times[0]
	minStep := (tEnd - t) * 1e-13
	next := 1

	x := x0.Clone()
	for next < len(times) {
		if t+dt > tEnd {
			dt = tEnd - t
		}

		xNew, dense, dtNext, accepted := r.StepDense(sys, x, t, dt, tol)
		if !accepted {
			if dtNext < minStep {
				return nil, fmt.Errorf("%w: dt=%g at t=%g", wave.ErrStepTooSmall, dtNext, t)
			}
			dt = dtNext
			continue
		}
		if !xNew.IsValid() {
			return nil, fmt.Errorf("%w: at t=%g", wave.ErrNonFinite, t+dt)
		}

		edge := t + dt + 1e-12*math.Abs(dt)
		for next < len(times) && times[next] <= edge {
			s := dense.Eval(times[next])
			if !s.IsValid() {
				return nil, fmt.Errorf("%w: at t=%g", wave.ErrNonFinite, times[next])
			}
			out[next] = s
			next++
		}

		x = xNew
		t += dt
		dt = dtNext
	}

	return out, nil
}
