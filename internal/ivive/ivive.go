// Package ivive scales in-vitro intrinsic clearances to whole-organ in-vivo
// clearances (in-vitro to in-vivo extrapolation).
//
// Liver clearance is scaled through one of two assay variants, [Microsomal]
// or [HepatocyteScaling]. The microsomal unbound fraction is computed for
// every compound regardless of variant because gut-wall clearance always
// uses it.
package ivive

import (
	"fmt"
	"math"

	"github.com/san-kum/fbio/internal/partition"
	"github.com/san-kum/fbio/internal/physiology"
)

const (
	// LumenConversion takes µL/min to mL/h.
	LumenConversion = 0.001 * 60

	MicrosomalProteinPerGramLiver = 62.9
	HepatocytesPerGramLiver       = 110.0
	MicrosomalProteinPerGramWall  = 3.9

	// HepatocyteVolumeRatio is the cell:medium volume ratio of the assay.
	HepatocyteVolumeRatio = 0.5

	assayPlasmaBinding = 1.0
)

// LumenSegments overrides the lumen enzyme abundance for compounds with
// several known lumen metabolic pathways. Unlisted compounds use 1.
var LumenSegments = map[string]int{
	"DEHP": 3,
}

func LumenSegmentCount(name string) int {
	if n, ok := LumenSegments[name]; ok {
		return n
	}
	return 1
}

// MicrosomalAssay is the composition of a microsomal incubation: buffer with
// 1 mg/mL protein and its associated phospholipid.
func MicrosomalAssay() physiology.Composition {
	protein := 1.0 / 1000
	phospholipid := 0.35 * protein
	return physiology.Composition{
		Water:        1 - protein - phospholipid,
		Phospholipid: phospholipid,
		Protein:      protein,
	}
}

// MicrosomalUnbound is the unbound fraction in a microsomal incubation.
func MicrosomalUnbound(w partition.Water) float64 {
	assay := MicrosomalAssay()
	return assay.Water / partition.TissueWater(assay, w)
}

// HepatocyteUnbound is the unbound fraction in a hepatocyte incubation.
func HepatocyteUnbound(logKow float64) float64 {
	return 1 / (1 + 125*HepatocyteVolumeRatio*math.Pow(10, 0.072*logKow*logKow+0.067*logKow-1.126))
}

// liverScaling is one assay variant's recipe for in-vivo liver clearance.
type liverScaling interface {
	// invivo returns L/h given Cl_int and liver mass in g.
	invivo(clint, liverMass float64) float64
	unbound() float64
}

type Microsomal struct {
	FuMic float64
}

func (m Microsomal) invivo(clint, liverMass float64) float64 {
	return clint * MicrosomalProteinPerGramLiver * liverMass * 60 / 1e6 * assayPlasmaBinding / m.FuMic
}

func (m Microsomal) unbound() float64 { return m.FuMic }

type HepatocyteScaling struct {
	FubHep float64
}

func (h HepatocyteScaling) invivo(clint, liverMass float64) float64 {
	return clint * HepatocytesPerGramLiver * liverMass * 60 / 1e6 * assayPlasmaBinding / h.FubHep
}

func (h HepatocyteScaling) unbound() float64 { return h.FubHep }

type Input struct {
	Name   string
	Lumen  [3]float64
	Liver  float64
	Wall   float64
	LogKow float64
	Assay  Assay
}

type Clearances struct {
	Assay         Assay
	LumenSegments int

	// Lumen holds per-segment metabolic rate constants, 1/h.
	Lumen [3]float64

	FuMic        float64
	LiverUnbound float64 // unbound fraction of the assay used for liver scaling

	LiverInVivo float64 // L/h
	WallInVivo  float64 // L/h

	// Liver and Wall already include plasma binding (× fup).
	Liver float64
	Wall  float64

	LiverHalfLife float64 // h
	WallHalfLife  float64 // h
}

func Scale(in Input, coeff partition.Coefficients, phys physiology.Physiology) (Clearances, error) {
	fuMic := MicrosomalUnbound(coeff.Water)

	var variant liverScaling
	switch in.Assay {
	case Microsome:
		variant = Microsomal{FuMic: fuMic}
	case Hepatocyte:
		variant = HepatocyteScaling{FubHep: HepatocyteUnbound(in.LogKow)}
	default:
		return Clearances{}, fmt.Errorf("%w: %v", ErrUnknownAssay, in.Assay)
	}

	n := LumenSegmentCount(in.Name)
	out := Clearances{
		Assay:         in.Assay,
		LumenSegments: n,
		FuMic:         fuMic,
		LiverUnbound:  variant.unbound(),
	}
	for i, cl := range in.Lumen {
		// Content volume appears in numerator and denominator and cancels.
		out.Lumen[i] = cl * LumenConversion * float64(n)
	}

	out.LiverInVivo = variant.invivo(in.Liver, phys.MLiver)
	out.WallInVivo = in.Wall * MicrosomalProteinPerGramWall * phys.MWall * 60 / 1e6 * assayPlasmaBinding / fuMic

	out.LiverHalfLife = HalfLife(out.LiverInVivo, phys.VLiver)
	out.WallHalfLife = HalfLife(out.WallInVivo, phys.VWall)

	out.Liver = out.LiverInVivo * coeff.Fup
	out.Wall = out.WallInVivo * coeff.Fup
	return out, nil
}

// HalfLife returns ln2 / (cl / v) in hours, +Inf for zero clearance.
func HalfLife(cl, v float64) float64 {
	if cl == 0 {
		return math.Inf(1)
	}
	return math.Ln2 / (cl / v)
}
