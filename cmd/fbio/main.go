package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string

	configFile string
	preset     string
	noSave     bool

	// chemical overrides
	chemName   string
	lumen      []float64
	liver      float64
	wall       float64
	logKow     float64
	molWeight  float64
	assay      string
	papp       float64
	bodyWeight float64

	// solver overrides
	horizon    float64
	gridPoints int
	integrator string
	rtol       float64
	atol       float64

	// sweep
	sweepParam  string
	sweepFrom   float64
	sweepTo     float64
	sweepPoints int
	sweepLinear bool

	outFile string
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "fbio",
		Short:        "oral bioavailability from a PBTK model",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", envOr("FBIO_DATA_DIR", ".fbio"), "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", envOr("FBIO_LOG_LEVEL", "warn"), "log level (trace, debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "evaluate Fbio for one chemical",
		Args:  cobra.NoArgs,
		RunE:  runEvaluation,
	}
	addModelFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available chemical presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot tissue concentrations of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportXLSXCmd := &cobra.Command{
		Use:   "export-xlsx [run_id]",
		Short: "export run data to an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  exportXLSX,
	}
	exportXLSXCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.xlsx)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "scan Fbio over one input parameter",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addModelFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "liver", "parameter to vary (lumen, liver, wall, papp, log_kow)")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.1, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 10, "last value")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 9, "number of values")
	sweepCmd.Flags().BoolVar(&sweepLinear, "linear", false, "space values linearly instead of logarithmically")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same chemical",
		RunE:  compareIntegrators,
	}
	addModelFlags(compareCmd)

	rootCmd.AddCommand(runCmd, presetsCmd, listCmd, plotCmd, exportJSONCmd, exportXLSXCmd, sweepCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "chemical preset (default dehp when no config is given)")

	f.StringVar(&chemName, "name", "", "chemical name")
	f.Float64SliceVar(&lumen, "lumen", nil, "lumen clearances for the three segments")
	f.Float64Var(&liver, "liver", 0, "liver intrinsic clearance")
	f.Float64Var(&wall, "wall", 0, "gut wall intrinsic clearance")
	f.Float64Var(&logKow, "log-kow", 0, "octanol:water partition coefficient (log10)")
	f.Float64Var(&molWeight, "mw", 0, "molecular weight (g/mol)")
	f.StringVar(&assay, "assay", "", "liver assay (microsome, hepatocyte)")
	f.Float64Var(&papp, "papp", 0, "Caco-2 apparent permeability (cm/s)")
	f.Float64Var(&bodyWeight, "body-weight", 0, "body weight (kg)")

	f.Float64Var(&horizon, "horizon", 0, "simulated time (h)")
	f.IntVar(&gridPoints, "grid", 0, "output grid points")
	f.StringVar(&integrator, "integrator", "", "integrator (euler, rk4, rk45)")
	f.Float64Var(&rtol, "rtol", 0, "relative tolerance for adaptive stepping")
	f.Float64Var(&atol, "atol", 0, "absolute tolerance for adaptive stepping")
}
