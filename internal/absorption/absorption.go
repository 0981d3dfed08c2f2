// Package absorption converts Caco-2 apparent permeability into an intestinal
// absorption rate constant and a renal reabsorption efficiency.
package absorption

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/fbio/internal/physiology"
)

var ErrNonPositivePermeability = errors.New("absorption: permeability must be positive")

const (
	// Papp at half-maximal renal reabsorption, cm/s.
	reabsorptionPapp50 = 34.4e-6
	reabsorptionHill   = 2.7

	secondsPerHour = 3600.0
)

type Rates struct {
	Papp         float64 // cm/s
	Peff         float64 // cm/s
	Kabs         float64 // 1/h
	Reabsorption float64 // fraction
}

// EffectivePermeability maps Caco-2 Papp to human jejunal Peff.
func EffectivePermeability(papp float64) float64 {
	return math.Pow(10, 0.2940*math.Log10(papp)-2.4209)
}

// AbsorptionRate treats the intestine as a cylinder of the given radius (cm).
func AbsorptionRate(peff, radius float64) float64 {
	return 2 * peff / radius * secondsPerHour
}

func Reabsorption(papp, qgfr float64) float64 {
	p := math.Pow(papp, reabsorptionHill)
	return (1 - 0.06/qgfr) * p / (math.Pow(reabsorptionPapp50, reabsorptionHill) + p)
}

func Compute(papp float64, phys physiology.Physiology) (Rates, error) {
	if !(papp > 0) {
		return Rates{}, fmt.Errorf("%w: got %g", ErrNonPositivePermeability, papp)
	}
	peff := EffectivePermeability(papp)
	return Rates{
		Papp:         papp,
		Peff:         peff,
		Kabs:         AbsorptionRate(peff, phys.IntestinalRadius),
		Reabsorption: Reabsorption(papp, phys.QGFR),
	}, nil
}
