package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/fbio/internal/dynamo"
	"github.com/san-kum/fbio/internal/integrators"
)

type testDynamics struct{}

func (t *testDynamics) Derive(x dynamo.State, time float64) dynamo.State {
	return dynamo.State{-x[0]}
}

func (t *testDynamics) StateDim() int { return 1 }

// stiffDecay forces the adaptive stepper to shrink far below the grid spacing.
type stiffDecay struct{ k float64 }

func (s *stiffDecay) Derive(x dynamo.State, time float64) dynamo.State {
	return dynamo.State{-s.k * x[0]}
}

func (s *stiffDecay) StateDim() int { return 1 }

type nanDynamics struct{}

func (n *nanDynamics) Derive(x dynamo.State, time float64) dynamo.State {
	return dynamo.State{math.NaN()}
}

func (n *nanDynamics) StateDim() int { return 1 }

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(x dynamo.State, time float64) {
	t.count++
	t.sum += x[0]
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

func smallConfig() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.Duration = 1.0
	cfg.GridPoints = 11
	return cfg
}

func TestSimulatorRun(t *testing.T) {
	s := New(&testDynamics{}, integrators.NewRK45())

	result, err := s.Run(context.Background(), dynamo.State{1.0}, smallConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 {
		t.Errorf("expected 11 states, got %d", len(result.States))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}
	if result.Times[10] != 1.0 {
		t.Errorf("expected last grid time 1.0, got %v", result.Times[10])
	}

	expected := math.Exp(-1.0)
	if math.Abs(result.Final[0]-expected) > 1e-6 {
		t.Errorf("expected final state ~%.8f, got %.8f", expected, result.Final[0])
	}
	if result.Stats.Evaluations == 0 || result.Stats.Steps < 10 {
		t.Errorf("unexpected stats %+v", result.Stats)
	}
}

func TestSimulatorFixedStep(t *testing.T) {
	s := New(&testDynamics{}, integrators.NewRK4())
	cfg := smallConfig()
	cfg.GridPoints = 101

	result, err := s.Run(context.Background(), dynamo.State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Stats.Steps != 100 {
		t.Errorf("expected one step per grid interval, got %d", result.Stats.Steps)
	}
	if math.Abs(result.Final[0]-math.Exp(-1)) > 1e-8 {
		t.Errorf("final state %.10f too far from exp(-1)", result.Final[0])
	}
}

func TestSimulatorSubsteps(t *testing.T) {
	s := New(&stiffDecay{k: 200}, integrators.NewRK45())
	cfg := smallConfig()

	result, err := s.Run(context.Background(), dynamo.State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Stats.Steps <= cfg.GridPoints-1 {
		t.Errorf("expected internal sub-steps, got %d steps", result.Stats.Steps)
	}
	if math.Abs(result.Final[0]) > 1e-8 {
		t.Errorf("expected decayed state, got %e", result.Final[0])
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(&testDynamics{}, integrators.NewRK45())

	tests := []struct {
		name string
		x0   dynamo.State
		mut  func(*dynamo.Config)
	}{
		{"zero duration", dynamo.State{1}, func(c *dynamo.Config) { c.Duration = 0 }},
		{"negative duration", dynamo.State{1}, func(c *dynamo.Config) { c.Duration = -1 }},
		{"NaN duration", dynamo.State{1}, func(c *dynamo.Config) { c.Duration = math.NaN() }},
		{"infinite duration", dynamo.State{1}, func(c *dynamo.Config) { c.Duration = math.Inf(1) }},
		{"single grid point", dynamo.State{1}, func(c *dynamo.Config) { c.GridPoints = 1 }},
		{"no tolerance", dynamo.State{1}, func(c *dynamo.Config) { c.Tolerance = dynamo.Tolerance{} }},
		{"wrong dimension", dynamo.State{1, 2}, func(c *dynamo.Config) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig()
			tt.mut(&cfg)
			if _, err := s.Run(context.Background(), tt.x0, cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorMaxSteps(t *testing.T) {
	s := New(&stiffDecay{k: 200}, integrators.NewRK45())
	cfg := smallConfig()
	cfg.MaxSteps = 5

	_, err := s.Run(context.Background(), dynamo.State{1.0}, cfg)
	if !errors.Is(err, dynamo.ErrMaxSteps) {
		t.Fatalf("expected ErrMaxSteps, got %v", err)
	}
	var simErr *dynamo.SimulationError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected *SimulationError, got %T", err)
	}
}

func TestSimulatorStepTooSmall(t *testing.T) {
	s := New(&nanDynamics{}, integrators.NewRK45())

	_, err := s.Run(context.Background(), dynamo.State{1.0}, smallConfig())
	if !errors.Is(err, dynamo.ErrStepTooSmall) {
		t.Fatalf("expected ErrStepTooSmall, got %v", err)
	}
}

func TestSimulatorInvalidStateFixedStep(t *testing.T) {
	s := New(&nanDynamics{}, integrators.NewRK4())

	_, err := s.Run(context.Background(), dynamo.State{1.0}, smallConfig())
	if !errors.Is(err, dynamo.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestSimulatorCanceled(t *testing.T) {
	s := New(&testDynamics{}, integrators.NewRK45())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Run(ctx, dynamo.State{1.0}, smallConfig()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSimulatorMetrics(t *testing.T) {
	s := New(&testDynamics{}, integrators.NewRK45())

	metric := &testMetric{}
	s.AddMetric(metric)

	result, err := s.Run(context.Background(), dynamo.State{1.0}, smallConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != 11 {
		t.Errorf("expected 11 observations, got %d", metric.count)
	}
}

func TestGrid(t *testing.T) {
	g := Grid(24, 10000)
	if len(g) != 10000 || g[0] != 0 || g[len(g)-1] != 24 {
		t.Fatalf("unexpected grid ends: len=%d first=%v last=%v", len(g), g[0], g[len(g)-1])
	}
}
