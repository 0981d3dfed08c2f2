package pbtk

import (
	"github.com/san-kum/fbio/internal/absorption"
	"github.com/san-kum/fbio/internal/dynamo"
	"github.com/san-kum/fbio/internal/ivive"
	"github.com/san-kum/fbio/internal/partition"
	"github.com/san-kum/fbio/internal/physiology"
)

// Model is the gut-liver PBTK right-hand side. All parameters are derived
// once in NewModel; Derive is a pure function of the state.
type Model struct {
	Physiology   physiology.Physiology
	Coefficients partition.Coefficients
	Absorption   absorption.Rates
	Clearances   ivive.Clearances
}

func NewModel(chem Chemical, phys physiology.Physiology) (*Model, error) {
	if err := chem.Validate(); err != nil {
		return nil, err
	}

	coeff := partition.Compute(chem.LogKow, phys)
	rates, err := absorption.Compute(chem.Papp, phys)
	if err != nil {
		return nil, err
	}
	cl, err := ivive.Scale(chem.iviveInput(), coeff, phys)
	if err != nil {
		return nil, err
	}

	return &Model{
		Physiology:   phys,
		Coefficients: coeff,
		Absorption:   rates,
		Clearances:   cl,
	}, nil
}

func (m *Model) StateDim() int { return NumStates }

// Fluxes are the instantaneous mass transfer rates (dose fraction per hour).
type Fluxes struct {
	Lumen       [3]float64 // net rate of change of each lumen segment
	LumenToWall float64
	RestToWall  float64
	WallToLiver float64
	RestToLiver float64
	LiverToRest float64
	WallToMet   float64
	LiverToMet  float64
	RestToUrine float64
	Feces       float64 // transit out of the last segment
}

func (m *Model) Fluxes(x dynamo.State) Fluxes {
	p := m.Physiology
	k := m.Coefficients
	rb := k.BloodToPlasma()
	kabs := m.Absorption.Kabs
	kt := p.TransitRate
	kl := m.Clearances.Lumen

	var f Fluxes
	f.Lumen[0] = -kabs*x[LumenSeg1] - kt*x[LumenSeg1] - kl[0]*x[LumenSeg1]
	f.Lumen[1] = kt*x[LumenSeg1] - kt*x[LumenSeg2] - kabs*x[LumenSeg2] - kl[1]*x[LumenSeg2]
	f.Lumen[2] = kt*x[LumenSeg2] - kt*x[LumenSeg3] - kabs*x[LumenSeg3] - kl[2]*x[LumenSeg3]
	f.Feces = kt * x[LumenSeg3]

	f.LumenToWall = kabs * (x[LumenSeg1] + x[LumenSeg2] + x[LumenSeg3])
	f.RestToWall = p.QPortal * rb / k.Rest * x[CRest]
	f.WallToLiver = p.QPortal * rb / k.Wall * x[CWall]
	f.RestToLiver = p.QLiver * rb / k.Rest * x[CRest]
	f.LiverToRest = (p.QLiver + p.QPortal) * rb / k.Liver * x[CLiver]
	f.WallToMet = m.Clearances.Wall * rb / k.Wall * x[CWall]
	f.LiverToMet = m.Clearances.Liver * rb / k.Liver * x[CLiver]
	f.RestToUrine = p.QGFR * k.Fup * (1 - m.Absorption.Reabsorption) / k.Rest * x[CRest]
	return f
}

func (m *Model) Derive(x dynamo.State, t float64) dynamo.State {
	f := m.Fluxes(x)
	p := m.Physiology

	dx := make(dynamo.State, NumStates)
	dx[LumenSeg1] = f.Lumen[0]
	dx[LumenSeg2] = f.Lumen[1]
	dx[LumenSeg3] = f.Lumen[2]
	dx[CWall] = (f.LumenToWall + f.RestToWall - f.WallToLiver - f.WallToMet) / p.VWall
	dx[CLiver] = (f.WallToLiver + f.RestToLiver - f.LiverToRest - f.LiverToMet) / p.VLiver
	dx[CRest] = (f.LiverToRest - f.RestToLiver - f.RestToWall - f.RestToUrine) / p.VRest
	dx[CumLumenToWall] = f.LumenToWall
	dx[CumRestToWall] = f.RestToWall
	dx[CumWallToLiver] = f.WallToLiver
	dx[CumRestToLiver] = f.RestToLiver
	dx[CumLiverToRest] = f.LiverToRest
	return dx
}

// AbsorbedFraction is the dose fraction that reaches the gut wall when lumen
// metabolism is absent and the horizon is long.
func (m *Model) AbsorbedFraction() float64 {
	kt := m.Physiology.TransitRate
	pass := kt / (kt + m.Absorption.Kabs)
	return 1 - pass*pass*pass
}

// Amounts converts the tissue concentrations of x to amounts.
func (m *Model) Amounts(x dynamo.State) (wall, liver, rest float64) {
	p := m.Physiology
	return x[CWall] * p.VWall, x[CLiver] * p.VLiver, x[CRest] * p.VRest
}
