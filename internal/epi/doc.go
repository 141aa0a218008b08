// Package epi provides core primitives for compartmental epidemic
// simulation.
//
// The package defines the fundamental interfaces and types for numerical
// integration of epidemic ODE systems (dX/dt = f(X, t)):
//
//   - [State]: compartment vector (S, E, I, R, D)
//   - [System]: interface for the rate function
//   - [Integrator]: numerical stepping interface
//   - [Metric]: summary statistic collected along a run
//
// # Example
//
//	dyn := model.NewSEIRD(params, model.NewConstantBeta(params.Beta0))
//	solver := solve.New(dyn, integrators.NewRK4())
//	traj, _ := solver.Run(ctx, x0, times, opts)
//
// # Thread Safety
//
// State values and System implementations are immutable during a run.
// Independent solver calls share no state and may run concurrently.
package epi
