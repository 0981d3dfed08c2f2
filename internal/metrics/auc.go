package metrics

import "github.com/san-kum/fbio/internal/dynamo"

// AUC integrates one state component over the observed samples with the
// trapezoid rule. Samples need not be evenly spaced.
type AUC struct {
	name    string
	index   int
	area    float64
	lastT   float64
	lastV   float64
	samples int
}

func NewAUC(name string, index int) *AUC {
	return &AUC{name: name, index: index}
}

func (a *AUC) Name() string { return a.name }

func (a *AUC) Observe(x dynamo.State, t float64) {
	if a.index >= len(x) {
		return
	}
	v := x[a.index]
	if a.samples > 0 {
		a.area += 0.5 * (v + a.lastV) * (t - a.lastT)
	}
	a.lastT, a.lastV = t, v
	a.samples++
}

func (a *AUC) Value() float64 { return a.area }

func (a *AUC) Reset() {
	a.area, a.lastT, a.lastV = 0, 0, 0
	a.samples = 0
}
