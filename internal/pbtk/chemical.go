package pbtk

import (
	"fmt"

	"github.com/san-kum/fbio/internal/absorption"
	"github.com/san-kum/fbio/internal/ivive"
)

// Chemical describes a compound by its in-vitro and physicochemical data.
// Clearances are µL/min/mg protein (or per million cells for hepatocytes).
type Chemical struct {
	Name            string      `yaml:"name" json:"name"`
	LumenClearance  [3]float64  `yaml:"lumen_clearance" json:"lumen_clearance"`
	LiverClearance  float64     `yaml:"liver_clearance" json:"liver_clearance"`
	WallClearance   float64     `yaml:"wall_clearance" json:"wall_clearance"`
	LogKow          float64     `yaml:"log_kow" json:"log_kow"`
	MolecularWeight float64     `yaml:"molecular_weight" json:"molecular_weight"`
	Assay           ivive.Assay `yaml:"assay" json:"assay"`
	Papp            float64     `yaml:"papp" json:"papp"` // cm/s, Caco-2
}

// Validate rejects inputs the model cannot evaluate. Physical plausibility
// (e.g. negative clearances) is the caller's concern.
func (c Chemical) Validate() error {
	if !c.Assay.Valid() {
		return fmt.Errorf("chemical %q: %w", c.Name, ivive.ErrUnknownAssay)
	}
	if !(c.Papp > 0) {
		return fmt.Errorf("chemical %q: %w: got %g", c.Name, absorption.ErrNonPositivePermeability, c.Papp)
	}
	return nil
}

func (c Chemical) iviveInput() ivive.Input {
	return ivive.Input{
		Name:   c.Name,
		Lumen:  c.LumenClearance,
		Liver:  c.LiverClearance,
		Wall:   c.WallClearance,
		LogKow: c.LogKow,
		Assay:  c.Assay,
	}
}
