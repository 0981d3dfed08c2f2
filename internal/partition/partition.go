// Package partition derives tissue:plasma partition coefficients and the
// plasma unbound fraction from a compound's octanol-water partition
// coefficient using a tissue-composition model.
package partition

import (
	"math"

	"github.com/san-kum/fbio/internal/physiology"
)

// Water holds the partition coefficients between water and each tissue
// constituent.
type Water struct {
	Lipid        float64
	Protein      float64
	Phospholipid float64
	Albumin      float64
}

func WaterPartitions(logKow float64) Water {
	protein := math.Pow(10, 0.73*logKow-0.39)
	return Water{
		Lipid:        math.Pow(10, logKow),
		Protein:      protein,
		Phospholipid: math.Pow(10, 1.01*logKow+0.12),
		Albumin:      protein,
	}
}

// TissueWater is the tissue:water partition coefficient of a tissue with
// composition c.
func TissueWater(c physiology.Composition, w Water) float64 {
	return c.Water +
		c.NeutralLipid*w.Lipid +
		c.Phospholipid*w.Phospholipid +
		c.Albumin*w.Albumin +
		c.Protein*w.Protein
}

// Coefficients are tissue:plasma ratios unless the field says otherwise.
type Coefficients struct {
	Water Water

	PlasmaWater float64 // plasma:water
	BloodWater  float64 // blood:water

	Liver  float64
	Wall   float64
	Muscle float64
	Lung   float64
	Brain  float64
	Kidney float64
	Rest   float64
	Blood  float64

	Fup float64
}

// BloodToPlasma is the blood:plasma concentration ratio.
func (c Coefficients) BloodToPlasma() float64 {
	return c.Blood
}

func Compute(logKow float64, phys physiology.Physiology) Coefficients {
	w := WaterPartitions(logKow)
	ts := phys.Tissues

	plasma := TissueWater(ts.Plasma, w)
	blood := TissueWater(ts.Blood, w)
	kidney := TissueWater(ts.Kidney, w)

	c := Coefficients{
		Water:       w,
		PlasmaWater: plasma,
		BloodWater:  blood,
		Liver:       TissueWater(ts.Liver, w) / plasma,
		Wall:        TissueWater(ts.Wall, w) / plasma,
		Muscle:      TissueWater(ts.Muscle, w) / plasma,
		Lung:        TissueWater(ts.Lung, w) / plasma,
		Brain:       TissueWater(ts.Brain, w) / plasma,
		Blood:       blood / plasma,
	}
	// Kidney is normalized by itself, not by plasma, so it is always 1.
	c.Kidney = kidney / kidney
	// Unbound fraction uses the blood composition.
	c.Fup = ts.Blood.Water / blood
	c.Rest = RestAverage(c, phys.RestWeights)
	return c
}

// RestAverage lumps muscle, lung, brain and kidney into the rest-of-body
// coefficient.
func RestAverage(c Coefficients, w physiology.RestWeights) float64 {
	return (w.Muscle*c.Muscle + w.Lung*c.Lung + w.Brain*c.Brain + w.Kidney*c.Kidney) / w.Sum()
}
