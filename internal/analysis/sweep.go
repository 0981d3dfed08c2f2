package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/fbio/internal/dynamo"
	"github.com/san-kum/fbio/internal/pbtk"
	"github.com/san-kum/fbio/internal/physiology"
)

var ErrUnknownParameter = errors.New("analysis: unknown sweep parameter")

type Parameter string

const (
	Lumen  Parameter = "lumen"
	Liver  Parameter = "liver"
	Wall   Parameter = "wall"
	Papp   Parameter = "papp"
	LogKow Parameter = "log_kow"
)

var parameters = map[Parameter]func(c *pbtk.Chemical, v float64){
	Lumen: func(c *pbtk.Chemical, v float64) {
		for i := range c.LumenClearance {
			c.LumenClearance[i] *= v
		}
	},
	Liver:  func(c *pbtk.Chemical, v float64) { c.LiverClearance *= v },
	Wall:   func(c *pbtk.Chemical, v float64) { c.WallClearance *= v },
	Papp:   func(c *pbtk.Chemical, v float64) { c.Papp *= v },
	LogKow: func(c *pbtk.Chemical, v float64) { c.LogKow = v },
}

func ParseParameter(s string) (Parameter, error) {
	p := Parameter(s)
	if _, ok := parameters[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownParameter, s)
	}
	return p, nil
}

func Parameters() []string {
	names := make([]string, 0, len(parameters))
	for p := range parameters {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return names
}

// Apply returns a copy of chem with p set from v.
func Apply(chem pbtk.Chemical, p Parameter, v float64) (pbtk.Chemical, error) {
	fn, ok := parameters[p]
	if !ok {
		return chem, fmt.Errorf("%w: %q", ErrUnknownParameter, p)
	}
	fn(&chem, v)
	return chem, nil
}

// Logspace returns n values spaced evenly in log between lo and hi.
func Logspace(lo, hi float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	return floats.LogSpan(make([]float64, n), lo, hi)
}

type Point struct {
	Value float64
	Fbio  float64
	Err   error
}

type Sweep struct {
	Param  Parameter
	Values []float64
}

// Run evaluates every value of the sweep. Per-point failures are reported in
// Point.Err; only an unknown parameter or a canceled context fails the sweep.
// Integrators keep scratch state, so newIntegrator is called once per point;
// nil selects the default.
func (s Sweep) Run(ctx context.Context, base pbtk.Chemical, phys physiology.Physiology, opts pbtk.Options, newIntegrator func() dynamo.Integrator) ([]Point, error) {
	if _, ok := parameters[s.Param]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, s.Param)
	}

	opts.Metrics = nil
	opts.KeepTrajectory = false

	points := make([]Point, len(s.Values))
	dynamo.ParallelFor(len(s.Values), 1, func(start, end int) {
		for i := start; i < end; i++ {
			v := s.Values[i]
			points[i] = Point{Value: v}

			chem, _ := Apply(base, s.Param, v)
			o := opts
			o.Integrator = nil
			if newIntegrator != nil {
				o.Integrator = newIntegrator()
			}

			out, err := pbtk.Evaluate(ctx, chem, phys, o)
			if err != nil {
				points[i].Err = err
				continue
			}
			points[i].Fbio = out.Fbio
		}
	})

	if err := ctx.Err(); err != nil {
		return points, err
	}
	return points, nil
}
