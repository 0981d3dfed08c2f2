package sim

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/fbio/internal/dynamo"
)

type Simulator struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
	metrics    []dynamo.Metric
}

func New(dyn dynamo.System, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]dynamo.Metric, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric) { s.metrics = append(s.metrics, m) }

// counted tallies right-hand-side evaluations.
type counted struct {
	dynamo.System
	n int
}

func (c *counted) Derive(x dynamo.State, t float64) dynamo.State {
	c.n++
	return c.System.Derive(x, t)
}

// Grid returns the uniform reporting grid of n points on [0, duration].
func Grid(duration float64, n int) []float64 {
	grid := make([]float64, n)
	floats.Span(grid, 0, duration)
	grid[n-1] = duration
	return grid
}

// Run integrates from x0 at t=0 to cfg.Duration, reporting the state at each
// point of the uniform grid. With an adaptive integrator the solver takes as
// many internal steps as the tolerance demands between grid points; otherwise
// it takes one fixed step per grid interval.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := s.validateConfig(x0, cfg); err != nil {
		return nil, err
	}

	grid := Grid(cfg.Duration, cfg.GridPoints)
	result := &dynamo.Result{
		Metrics: make(map[string]float64),
	}
	if cfg.KeepTrajectory {
		result.States = make([]dynamo.State, 0, len(grid))
		result.Times = make([]float64, 0, len(grid))
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	dyn := &counted{System: s.dyn}
	x := x0.Clone()
	dt := cfg.InitialDt
	if dt <= 0 {
		dt = grid[1] - grid[0]
	}

	s.record(result, x, grid[0], cfg)

	for i := 1; i < len(grid); i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		var err error
		x, dt, err = s.advance(dyn, x, grid[i-1], grid[i], dt, cfg, &result.Stats)
		if err != nil {
			result.Stats.Evaluations = dyn.n
			return result, err
		}

		s.record(result, x, grid[i], cfg)
	}

	result.Final = x
	result.Stats.Evaluations = dyn.n
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) record(result *dynamo.Result, x dynamo.State, t float64, cfg dynamo.Config) {
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	if cfg.KeepTrajectory {
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}
}

// advance carries x from t0 to t1 and returns the step size to try next.
func (s *Simulator) advance(dyn dynamo.System, x dynamo.State, t0, t1, dt float64, cfg dynamo.Config, stats *dynamo.Stats) (dynamo.State, float64, error) {
	adaptive, ok := s.integrator.(dynamo.AdaptiveIntegrator)
	if !cfg.Adaptive || !ok {
		newX := s.integrator.Step(dyn, x, t0, t1-t0)
		stats.Steps++
		if cfg.ValidateState && !newX.IsValid() {
			return x, dt, &dynamo.SimulationError{Step: stats.Steps, Time: t0, State: newX, Wrapped: dynamo.ErrInvalidState}
		}
		return newX, dt, nil
	}

	t := t0
	eps := 1e-12 * math.Max(1, math.Abs(t1))
	for t1-t > eps {
		if cfg.MaxSteps > 0 && stats.Steps+stats.Rejected >= cfg.MaxSteps {
			return x, dt, &dynamo.SimulationError{Step: stats.Steps, Time: t, State: x, Wrapped: dynamo.ErrMaxSteps}
		}

		h := dt
		truncated := false
		if t+h >= t1 {
			h = t1 - t
			truncated = true
		}

		newX, next, accepted := adaptive.StepAdaptive(dyn, x, t, h, cfg.Tolerance)
		if !accepted {
			stats.Rejected++
			if next < cfg.MinDt {
				return x, next, &dynamo.SimulationError{Step: stats.Steps, Time: t, State: x, Wrapped: dynamo.ErrStepTooSmall}
			}
			dt = next
			continue
		}

		if cfg.ValidateState && !newX.IsValid() {
			return x, dt, &dynamo.SimulationError{Step: stats.Steps, Time: t, State: newX, Wrapped: dynamo.ErrInvalidState}
		}

		stats.Steps++
		x = newX
		if truncated {
			t = t1
			// A short closing step says little about the natural step size.
			dt = math.Max(dt, next)
		} else {
			t += h
			dt = next
		}
	}

	return x, dt, nil
}

func (s *Simulator) validateConfig(x0 dynamo.State, cfg dynamo.Config) error {
	if !(cfg.Duration > 0) || math.IsInf(cfg.Duration, 1) {
		return fmt.Errorf("duration must be positive and finite, got %f", cfg.Duration)
	}
	if cfg.GridPoints < 2 {
		return fmt.Errorf("grid must have at least 2 points, got %d", cfg.GridPoints)
	}
	if cfg.Adaptive && (cfg.Tolerance.Rel <= 0 && cfg.Tolerance.Abs <= 0) {
		return fmt.Errorf("tolerance must be positive for adaptive stepping")
	}
	if len(x0) != s.dyn.StateDim() {
		return fmt.Errorf("initial state has %d entries, system has %d: %w", len(x0), s.dyn.StateDim(), dynamo.ErrDimensionMismatch)
	}
	return nil
}
