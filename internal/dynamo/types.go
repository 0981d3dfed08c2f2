package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// Tolerance bounds the local error of an adaptive step per component as
// Abs + Rel*|x|.
type Tolerance struct {
	Rel float64 `yaml:"rel" json:"rel"`
	Abs float64 `yaml:"abs" json:"abs"`
}

// AdaptiveIntegrator takes one error-controlled step. It reports whether the
// step was accepted and the step size to try next; a rejected step leaves x
// untouched.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x State, t, dt float64, tol Tolerance) (State, float64, bool)
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Config struct {
	Duration       float64
	GridPoints     int
	Tolerance      Tolerance
	InitialDt      float64
	MinDt          float64
	MaxSteps       int
	Adaptive       bool
	ValidateState  bool
	KeepTrajectory bool
}

func DefaultConfig() Config {
	return Config{
		Duration:       24.0,
		GridPoints:     10000,
		Tolerance:      Tolerance{Rel: 1e-6, Abs: 1e-10},
		MinDt:          1e-12,
		MaxSteps:       5_000_000,
		Adaptive:       true,
		ValidateState:  true,
		KeepTrajectory: true,
	}
}

// Stats counts the work done by one run.
type Stats struct {
	Steps       int `json:"steps"`
	Rejected    int `json:"rejected"`
	Evaluations int `json:"evaluations"`
}

type Result struct {
	States  []State
	Times   []float64
	Final   State
	Metrics map[string]float64
	Stats   Stats
}
