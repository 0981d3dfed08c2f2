package pbtk

import (
	"errors"
	"fmt"

	"github.com/san-kum/fbio/internal/dynamo"
)

var ErrUndefinedBioavailability = errors.New("pbtk: bioavailability undefined (zero transfer into compartment)")

// Factors decomposes Fbio into the fraction of wall inflow that came from
// the lumen, the fraction of liver inflow that came from the wall, and the
// cumulative amount the liver returned to the systemic circulation.
type Factors struct {
	FromGut     float64 `json:"from_gut"`
	FromWall    float64 `json:"from_wall"`
	LiverOutput float64 `json:"liver_output"`
}

func (f Factors) Fbio() float64 {
	return f.FromGut * f.FromWall * f.LiverOutput
}

func Extract(final dynamo.State) (Factors, error) {
	if len(final) != NumStates {
		return Factors{}, fmt.Errorf("final state has %d entries: %w", len(final), dynamo.ErrDimensionMismatch)
	}

	wallIn := final[CumLumenToWall] + final[CumRestToWall]
	liverIn := final[CumWallToLiver] + final[CumRestToLiver]
	if wallIn == 0 {
		return Factors{}, fmt.Errorf("%w: wall", ErrUndefinedBioavailability)
	}
	if liverIn == 0 {
		return Factors{}, fmt.Errorf("%w: liver", ErrUndefinedBioavailability)
	}

	return Factors{
		FromGut:     final[CumLumenToWall] / wallIn,
		FromWall:    final[CumWallToLiver] / liverIn,
		LiverOutput: final[CumLiverToRest],
	}, nil
}
