// Package dynamo provides core simulation primitives for ODE systems.
//
// The package defines the fundamental interfaces and types used to
// integrate ordinary differential equations of the form dX/dt = f(X, t):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE right-hand sides
//   - [Integrator]: fixed-step numerical integrator
//   - [AdaptiveIntegrator]: error-controlled integrator
//   - [Metric]: observer that reduces a trajectory to a number
//
// # Example
//
//	model, _ := pbtk.NewModel(chem, physiology.Default())
//	s := sim.New(model, integrators.NewRK45())
//	result, _ := s.Run(ctx, pbtk.InitialState(), dynamo.DefaultConfig())
//
// # Thread Safety
//
// Integrators and metrics keep scratch state and are NOT thread-safe.
// Build one per goroutine; [ParallelFor] splits independent work.
package dynamo
