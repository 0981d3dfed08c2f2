package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/fbio/internal/analysis"
	"github.com/san-kum/fbio/internal/config"
	"github.com/san-kum/fbio/internal/dynamo"
	"github.com/san-kum/fbio/internal/experiment"
	"github.com/san-kum/fbio/internal/metrics"
	"github.com/san-kum/fbio/internal/pbtk"
	"github.com/san-kum/fbio/internal/report"
	"github.com/san-kum/fbio/internal/storage"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runEvaluation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(experiment.NewRegistry(), cfg)
	if err != nil {
		return err
	}
	exp.KeepTrajectory(!noSave)

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	out, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Println(report.Summary(out, metrics.PeakTimes(exp.Metrics())))
	fmt.Printf("completed in %v\n", elapsed)

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.NewMetadata(cfg, out), out.Result)
	if err != nil {
		return err
	}
	logrus.WithField("run", runID).Info("run stored")
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tCHEMICAL\tASSAY\tLOGKOW\tPAPP")
	for _, name := range config.ListPresets() {
		c := config.GetPreset(name).Chemical
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3g\t%.3g\n", name, c.Name, c.Assay, c.LogKow, c.Papp)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCHEMICAL\tTIME\tHORIZON\tINTEG\tFBIO")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fh\t%s\t%.6f\n",
			run.ID,
			run.Chemical.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Horizon,
			run.Integrator,
			run.Fbio,
		)
	}

	return w.Flush()
}

var plotted = []struct {
	index   int
	caption string
}{
	{pbtk.CWall, "gut wall concentration"},
	{pbtk.CLiver, "liver concentration"},
	{pbtk.CRest, "rest of body concentration"},
	{pbtk.CumLiverToRest, "cumulative liver output"},
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("chemical: %s\n", meta.Chemical.Name)
	fmt.Printf("samples: %d over %.1fh\n\n", len(states), times[len(times)-1])

	lumen := make([]float64, len(states))
	for i, x := range states {
		lumen[i] = x[pbtk.LumenSeg1] + x[pbtk.LumenSeg2] + x[pbtk.LumenSeg3]
	}
	series := [][]float64{lumen}
	captions := []string{"amount in lumen"}

	for _, p := range plotted {
		data := make([]float64, len(states))
		for i, x := range states {
			if p.index < len(x) {
				data[i] = x[p.index]
			}
		}
		series = append(series, data)
		captions = append(captions, p.caption)
	}

	for i, data := range series {
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(captions[i]),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if outFile == "" {
		return storage.WriteJSON(os.Stdout, *meta, states, times)
	}
	if err := storage.ExportJSON(outFile, *meta, states, times); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}

func exportXLSX(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = filepath.Base(runID) + ".xlsx"
	}
	if err := storage.ExportXLSX(path, *meta, states, times); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	param, err := analysis.ParseParameter(sweepParam)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, analysis.Parameters())
	}
	if sweepPoints < 1 {
		return fmt.Errorf("--points must be at least 1")
	}

	registry := experiment.NewRegistry()
	if _, err := registry.GetIntegrator(cfg.Integrator); err != nil {
		return err
	}
	newIntegrator := func() dynamo.Integrator {
		integ, _ := registry.GetIntegrator(cfg.Integrator)
		return integ
	}

	var values []float64
	switch {
	case sweepPoints == 1:
		values = []float64{sweepFrom}
	case sweepLinear:
		values = floats.Span(make([]float64, sweepPoints), sweepFrom, sweepTo)
	default:
		if !(sweepFrom > 0 && sweepTo > 0) {
			return fmt.Errorf("logarithmic sweep needs positive bounds, use --linear")
		}
		values = analysis.Logspace(sweepFrom, sweepTo, sweepPoints)
	}

	ctx, cancel := signalContext()
	defer cancel()

	sw := analysis.Sweep{Param: param, Values: values}
	points, err := sw.Run(ctx, cfg.Chemical, cfg.Individual(), cfg.Options(), newIntegrator)
	if err != nil {
		return err
	}

	fmt.Println(report.SweepTable(param, points))
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	names := args
	if len(names) == 0 {
		names = registry.ListIntegrators()
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("comparing integrators for %s (horizon=%.1fh, grid=%d)\n\n", cfg.Chemical.Name, cfg.Horizon, cfg.GridPoints)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFBIO\tDIFF\tSTEPS\tREJECTED\tEVALS\tTIME")

	var reference float64
	haveReference := false
	for _, name := range names {
		c := *cfg
		c.Integrator = name

		exp, err := experiment.New(registry, &c)
		if err != nil {
			return err
		}

		start := time.Now()
		out, err := exp.Run(ctx)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\t\t\t\n", name, err)
			continue
		}
		elapsed := time.Since(start)

		if !haveReference {
			reference, haveReference = out.Fbio, true
		}
		st := out.Result.Stats
		fmt.Fprintf(w, "%s\t%.9f\t%.2e\t%d\t%d\t%d\t%v\n",
			name, out.Fbio, out.Fbio-reference, st.Steps, st.Rejected, st.Evaluations, elapsed)
	}

	return w.Flush()
}
