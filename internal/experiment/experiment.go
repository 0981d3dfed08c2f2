// Package experiment turns a run file into a configured evaluation.
package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/fbio/internal/config"
	"github.com/san-kum/fbio/internal/dynamo"
	"github.com/san-kum/fbio/internal/pbtk"
)

type Experiment struct {
	cfg     *config.Config
	opts    pbtk.Options
	metrics []dynamo.Metric
}

// New validates cfg and resolves its integrator against r.
func New(r *Registry, cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	integ, err := r.GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	ms := r.DefaultMetrics()
	opts := cfg.Options()
	opts.Integrator = integ
	opts.Metrics = ms

	return &Experiment{cfg: cfg, opts: opts, metrics: ms}, nil
}

// KeepTrajectory asks the run to retain every grid point.
func (e *Experiment) KeepTrajectory(keep bool) {
	e.opts.KeepTrajectory = keep
}

func (e *Experiment) Metrics() []dynamo.Metric { return e.metrics }

func (e *Experiment) Run(ctx context.Context) (*pbtk.Outcome, error) {
	out, err := pbtk.Evaluate(ctx, e.cfg.Chemical, e.cfg.Individual(), e.opts)
	if err != nil {
		return nil, fmt.Errorf("experiment %q: %w", e.cfg.Chemical.Name, err)
	}
	return out, nil
}
