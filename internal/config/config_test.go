package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/fbio/internal/ivive"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "rk45", cfg.Integrator)
	assert.Equal(t, 24.0, cfg.Horizon)
	assert.Equal(t, 10000, cfg.GridPoints)
	assert.Equal(t, 70.0, cfg.Physiology.BodyWeight)
	assert.Equal(t, 1e-6, cfg.Tolerance.Rel)
}

func TestParse(t *testing.T) {
	data := []byte(`
chemical:
  name: DEHP
  lumen_clearance: [10.4, 15.6, 15.6]
  liver_clearance: 30.1
  wall_clearance: 219.6
  log_kow: 7.43
  molecular_weight: 390.6
  assay: hepatocyte
  papp: 2.1e-6
horizon: 48
physiology:
  body_weight: 60
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "DEHP", cfg.Chemical.Name)
	assert.Equal(t, [3]float64{10.4, 15.6, 15.6}, cfg.Chemical.LumenClearance)
	assert.Equal(t, ivive.Hepatocyte, cfg.Chemical.Assay)
	assert.Equal(t, 48.0, cfg.Horizon)
	assert.Equal(t, 60.0, cfg.Physiology.BodyWeight)
	// untouched keys keep their defaults
	assert.Equal(t, 10000, cfg.GridPoints)
	assert.Equal(t, "rk45", cfg.Integrator)
	require.NoError(t, cfg.Validate())
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse([]byte("# nothing yet\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParse_Strict(t *testing.T) {
	_, err := Parse([]byte("horizn: 48\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("chemical:\n  assay: s9\n"))
	assert.ErrorIs(t, err, ivive.ErrUnknownAssay)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := GetPreset("dehp-hepatocyte")
	require.NotNil(t, cfg)
	cfg.GridPoints = 500

	require.NoError(t, Save(path, cfg))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "assay: hepatocyte")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chemical:\n  papp: 1.0e-5\nhorizon: 48\n"), 0644))

	base := GetPreset("dehp")
	cfg, err := LoadOver(path, base)
	require.NoError(t, err)

	assert.Equal(t, 1e-5, cfg.Chemical.Papp)
	assert.Equal(t, 48.0, cfg.Horizon)
	assert.Equal(t, "DEHP", cfg.Chemical.Name)
	assert.Equal(t, 30.1, cfg.Chemical.LiverClearance)
	assert.Equal(t, 2.1e-6, base.Chemical.Papp)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"preset", func(*Config) {}, true},
		{"zero horizon", func(c *Config) { c.Horizon = 0 }, false},
		{"NaN horizon", func(c *Config) { c.Horizon = math.NaN() }, false},
		{"infinite horizon", func(c *Config) { c.Horizon = math.Inf(1) }, false},
		{"one grid point", func(c *Config) { c.GridPoints = 1 }, false},
		{"zero body weight", func(c *Config) { c.Physiology.BodyWeight = 0 }, false},
		{"zero papp", func(c *Config) { c.Chemical.Papp = 0 }, false},
		{"no assay", func(c *Config) { c.Chemical.Assay = ivive.AssayUnknown }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetPreset("dehp")
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("dehp")
	require.NotNil(t, cfg)
	assert.Equal(t, "DEHP", cfg.Chemical.Name)
	assert.Equal(t, ivive.Microsome, cfg.Chemical.Assay)

	// copies are independent of the table
	cfg.Horizon = 1
	assert.Equal(t, 24.0, GetPreset("dehp").Horizon)
}

func TestGetPreset_NotFound(t *testing.T) {
	assert.Nil(t, GetPreset("nonexistent"))
}

func TestListPresets(t *testing.T) {
	assert.Equal(t, []string{"dehp", "dehp-hepatocyte", "inert"}, ListPresets())
}

func TestOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Horizon = 12
	cfg.GridPoints = 100
	cfg.Tolerance.Rel = 1e-8

	opts := cfg.Options()
	assert.Equal(t, 12.0, opts.Horizon)
	assert.Equal(t, 100, opts.GridPoints)
	assert.Equal(t, 1e-8, opts.Tolerance.Rel)
	assert.Nil(t, opts.Integrator)

	phys := cfg.Individual()
	assert.Equal(t, 70.0, phys.BodyWeight)
	assert.InDelta(t, 0.0245*70, phys.VLiver, 1e-12)
}
