package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/fbio/internal/config"
	"github.com/san-kum/fbio/internal/ivive"
)

const defaultPreset = "dehp"

// resolveConfig layers the run configuration: preset, then config file,
// then any flag set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	name := preset
	if name == "" && configFile == "" {
		name = defaultPreset
	}

	cfg := config.DefaultConfig()
	if name != "" {
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	chem := &cfg.Chemical

	if flags.Changed("name") {
		chem.Name = chemName
	}
	if flags.Changed("lumen") {
		if len(lumen) != len(chem.LumenClearance) {
			return fmt.Errorf("--lumen needs %d values, got %d", len(chem.LumenClearance), len(lumen))
		}
		copy(chem.LumenClearance[:], lumen)
	}
	if flags.Changed("liver") {
		chem.LiverClearance = liver
	}
	if flags.Changed("wall") {
		chem.WallClearance = wall
	}
	if flags.Changed("log-kow") {
		chem.LogKow = logKow
	}
	if flags.Changed("mw") {
		chem.MolecularWeight = molWeight
	}
	if flags.Changed("assay") {
		a, err := ivive.ParseAssay(assay)
		if err != nil {
			return err
		}
		chem.Assay = a
	}
	if flags.Changed("papp") {
		chem.Papp = papp
	}
	if flags.Changed("body-weight") {
		cfg.Physiology.BodyWeight = bodyWeight
	}
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if flags.Changed("grid") {
		cfg.GridPoints = gridPoints
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("rtol") {
		cfg.Tolerance.Rel = rtol
	}
	if flags.Changed("atol") {
		cfg.Tolerance.Abs = atol
	}
	return nil
}
