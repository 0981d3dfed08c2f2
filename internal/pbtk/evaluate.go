package pbtk

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/fbio/internal/dynamo"
	"github.com/san-kum/fbio/internal/integrators"
	"github.com/san-kum/fbio/internal/ivive"
	"github.com/san-kum/fbio/internal/physiology"
	"github.com/san-kum/fbio/internal/sim"
)

const (
	DefaultHorizon    = 24.0 // h
	DefaultGridPoints = 10000
)

type Options struct {
	Horizon    float64
	GridPoints int
	Tolerance  dynamo.Tolerance
	MaxSteps   int

	// Integrator defaults to adaptive RK45 when nil.
	Integrator dynamo.Integrator

	KeepTrajectory bool
	Metrics        []dynamo.Metric
}

func DefaultOptions() Options {
	cfg := dynamo.DefaultConfig()
	return Options{
		Horizon:    DefaultHorizon,
		GridPoints: DefaultGridPoints,
		Tolerance:  cfg.Tolerance,
		MaxSteps:   cfg.MaxSteps,
	}
}

func (o Options) config() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	cfg.Duration = o.Horizon
	cfg.GridPoints = o.GridPoints
	cfg.Tolerance = o.Tolerance
	cfg.MaxSteps = o.MaxSteps
	cfg.KeepTrajectory = o.KeepTrajectory
	return cfg
}

type Outcome struct {
	Chemical Chemical
	Model    *Model
	Factors  Factors
	Fbio     float64
	Result   *dynamo.Result
}

// Evaluate derives the model parameters for chem, integrates the PBTK system
// over opts.Horizon and extracts the bioavailability at the final time.
func Evaluate(ctx context.Context, chem Chemical, phys physiology.Physiology, opts Options) (*Outcome, error) {
	model, err := NewModel(chem, phys)
	if err != nil {
		return nil, err
	}

	log := logrus.WithField("chemical", chem.Name)
	log.WithFields(logrus.Fields{
		"k_liver2plasma": model.Coefficients.Liver,
		"k_wall2plasma":  model.Coefficients.Wall,
		"k_rest2plasma":  model.Coefficients.Rest,
		"r_blood2plasma": model.Coefficients.Blood,
		"fup":            model.Coefficients.Fup,
		"k_abs":          model.Absorption.Kabs,
		"cl_liver":       model.Clearances.Liver,
		"cl_wall":        model.Clearances.Wall,
	}).Debug("derived model parameters")

	integ := opts.Integrator
	if integ == nil {
		integ = integrators.NewRK45()
	}

	s := sim.New(model, integ)
	for _, m := range opts.Metrics {
		s.AddMetric(m)
	}

	result, err := s.Run(ctx, InitialState(), opts.config())
	if err != nil {
		return nil, fmt.Errorf("integrating %q: %w", chem.Name, err)
	}

	factors, err := Extract(result.Final)
	if err != nil {
		return nil, fmt.Errorf("chemical %q: %w", chem.Name, err)
	}

	out := &Outcome{
		Chemical: chem,
		Model:    model,
		Factors:  factors,
		Fbio:     factors.Fbio(),
		Result:   result,
	}

	log.WithFields(logrus.Fields{
		"fbio":        out.Fbio,
		"horizon":     opts.Horizon,
		"steps":       result.Stats.Steps,
		"rejected":    result.Stats.Rejected,
		"evaluations": result.Stats.Evaluations,
	}).Info("bioavailability computed")

	return out, nil
}

// Fbio evaluates one compound for the standard 70 kg individual with the
// default solver settings. assay is "microsome" or "hepatocyte".
func Fbio(ctx context.Context, name string, lumen1, lumen2, lumen3, liver, wall, logKow, mw float64, assay string, papp, horizon float64) (float64, error) {
	a, err := ivive.ParseAssay(assay)
	if err != nil {
		return 0, err
	}

	chem := Chemical{
		Name:            name,
		LumenClearance:  [3]float64{lumen1, lumen2, lumen3},
		LiverClearance:  liver,
		WallClearance:   wall,
		LogKow:          logKow,
		MolecularWeight: mw,
		Assay:           a,
		Papp:            papp,
	}

	opts := DefaultOptions()
	opts.Horizon = horizon

	out, err := Evaluate(ctx, chem, physiology.Default(), opts)
	if err != nil {
		return 0, err
	}
	return out.Fbio, nil
}
