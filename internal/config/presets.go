package config

import (
	"sort"

	"github.com/san-kum/fbio/internal/ivive"
	"github.com/san-kum/fbio/internal/pbtk"
)

func dehp() pbtk.Chemical {
	return pbtk.Chemical{
		Name:            "DEHP",
		LumenClearance:  [3]float64{10.4, 15.6, 15.6},
		LiverClearance:  30.1,
		WallClearance:   219.6,
		LogKow:          7.43,
		MolecularWeight: 390.6,
		Assay:           ivive.Microsome,
		Papp:            2.1e-6,
	}
}

func withAssay(c pbtk.Chemical, a ivive.Assay) pbtk.Chemical {
	c.Assay = a
	return c
}

func preset(chem pbtk.Chemical) *Config {
	cfg := DefaultConfig()
	cfg.Chemical = chem
	return cfg
}

// inert has no metabolism at all, so its Fbio is just the absorbed fraction.
func inert() pbtk.Chemical {
	return pbtk.Chemical{
		Name:   "inert",
		LogKow: 1,
		Assay:  ivive.Microsome,
		Papp:   1e-4,
	}
}

// dehp-hepatocyte reads the DEHP clearances as hepatocyte data, for
// comparing the two scalings.
var Presets = map[string]*Config{
	"dehp":            preset(dehp()),
	"dehp-hepatocyte": preset(withAssay(dehp(), ivive.Hepatocyte)),
	"inert":           preset(inert()),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
