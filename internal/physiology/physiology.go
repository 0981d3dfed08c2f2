// Package physiology holds the population-average anatomy and tissue
// composition used by the bioavailability model.
//
// A [Physiology] is a plain value built once by [Standard] and passed
// explicitly to every calculator. Volumes are in L, masses in g, flows in L/h.
package physiology

import "math"

const (
	DefaultBodyWeight = 70.0 // kg

	IntestinalRadius      = 1.75  // cm
	SmallIntestineTransit = 4.0   // h
	LumenSegments         = 3
	LumenContentVolume    = 260.0 // mL
)

// Composition is the fractional volume decomposition of a tissue.
type Composition struct {
	Water        float64 `yaml:"water" json:"water"`
	NeutralLipid float64 `yaml:"neutral_lipid" json:"neutral_lipid"`
	Phospholipid float64 `yaml:"phospholipid" json:"phospholipid"`
	Albumin      float64 `yaml:"albumin" json:"albumin"`
	Protein      float64 `yaml:"protein" json:"protein"`
}

type Tissues struct {
	Liver  Composition
	Plasma Composition
	Wall   Composition
	Muscle Composition
	Lung   Composition
	Brain  Composition
	Kidney Composition
	Blood  Composition
}

// RestWeights are the relative contributions of each tissue to the lumped
// rest-of-body partition coefficient.
type RestWeights struct {
	Muscle float64
	Lung   float64
	Brain  float64
	Kidney float64
}

func (w RestWeights) Sum() float64 {
	return w.Muscle + w.Lung + w.Brain + w.Kidney
}

type Physiology struct {
	BodyWeight float64

	IntestinalRadius float64
	TransitRate      float64 // 1/h, per lumen segment
	LumenVolume      float64

	QCardiac float64
	QPortal  float64
	QLiver   float64
	QRest    float64
	QGFR     float64

	VWall  float64
	VLiver float64
	VRest  float64

	MLiver float64
	MWall  float64

	Tissues     Tissues
	RestWeights RestWeights
}

// StandardTissues returns the reference adult tissue compositions.
func StandardTissues() Tissues {
	return Tissues{
		Liver:  Composition{Water: 0.73, NeutralLipid: 0.019, Phospholipid: 0.046, Albumin: 0.0019, Protein: 0.17},
		Plasma: Composition{Water: 0.96, NeutralLipid: 0.0015, Phospholipid: 0.0008, Albumin: 0.029, Protein: 0.015},
		Wall:   Composition{Water: 0.7969, NeutralLipid: 0.04347, Phospholipid: 0.01953, Albumin: 0.001056, Protein: 0.135},
		Muscle: Composition{Water: 0.788, NeutralLipid: 0.0043, Phospholipid: 0.0045, Albumin: 0.0013, Protein: 0.17},
		Lung:   Composition{Water: 0.84, NeutralLipid: 0.0102, Phospholipid: 0.0098, Albumin: 0.0054, Protein: 0.055},
		Brain:  Composition{Water: 0.79, NeutralLipid: 0.043, Phospholipid: 0.067, Albumin: 0.00004, Protein: 0.08},
		Kidney: Composition{Water: 0.78, NeutralLipid: 0.012, Phospholipid: 0.035, Albumin: 0.0024, Protein: 0.16},
		Blood:  Composition{Water: 0.81, NeutralLipid: 0.0013, Phospholipid: 0.0022, Albumin: 0.016, Protein: 0.16},
	}
}

// Standard builds the reference individual scaled to bodyWeight kg. Flows
// scale allometrically with BW^0.75, volumes linearly; organ masses are fixed.
func Standard(bodyWeight float64) Physiology {
	qc := 13.88 * math.Pow(bodyWeight, 0.75)
	return Physiology{
		BodyWeight: bodyWeight,

		IntestinalRadius: IntestinalRadius,
		TransitRate:      LumenSegments / SmallIntestineTransit,
		LumenVolume:      LumenContentVolume,

		QCardiac: qc,
		QPortal:  0.2054 * qc,
		QLiver:   0.05359 * qc,
		QRest:    0.7221 * qc,
		QGFR:     0.30998 * math.Pow(bodyWeight, 0.75),

		VWall:  0.0089 * bodyWeight,
		VLiver: 0.0245 * bodyWeight,
		VRest:  0.788 * bodyWeight,

		MLiver: 1800,
		MWall:  623,

		Tissues: StandardTissues(),
		RestWeights: RestWeights{
			Muscle: 0.3842,
			Lung:   0.007235,
			Brain:  0.01931,
			Kidney: 0.00419,
		},
	}
}

func Default() Physiology {
	return Standard(DefaultBodyWeight)
}
