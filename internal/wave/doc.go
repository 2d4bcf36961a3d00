// Package wave provides the core types for eigenmode wave simulation of
// cortical activity.
//
// The package defines the shared vocabulary of the simulation pipeline:
//
//   - [TimeGrid]: strictly increasing sample times of a simulation
//   - [Params]: damping rate and spatial length scale of the wave model
//   - [Method]: solver strategy selection (ODE or Fourier)
//   - [State] and [System]: primitives consumed by the numerical integrators
//
// # Model
//
// Each spatial eigenmode with eigenvalue lambda evolves as a forced, damped
// oscillator:
//
//	a'' = gamma^2 * (c(t) - (2/gamma)*a' - a*(1 + r^2*lambda))
//
// where c(t) is the external forcing projected onto the mode. The solvers in
// package solver integrate this equation either directly or through its
// closed-form transfer function.
package wave
