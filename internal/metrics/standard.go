package metrics

import (
	"strings"

	"github.com/san-kum/fbio/internal/dynamo"
	"github.com/san-kum/fbio/internal/pbtk"
)

var tissues = []struct {
	name  string
	index int
}{
	{"wall", pbtk.CWall},
	{"liver", pbtk.CLiver},
	{"rest", pbtk.CRest},
}

// Standard returns Cmax and AUC observers for each tissue compartment plus a
// positivity check over the whole state.
func Standard() []dynamo.Metric {
	out := make([]dynamo.Metric, 0, 2*len(tissues)+1)
	for _, ts := range tissues {
		out = append(out,
			NewPeak("cmax_"+ts.name, ts.index),
			NewAUC("auc_"+ts.name, ts.index),
		)
	}
	return append(out, NewPositivity(1e-9))
}

// PeakTimes reports Tmax for every Peak in ms, keyed by "tmax_<tissue>".
func PeakTimes(ms []dynamo.Metric) map[string]float64 {
	out := make(map[string]float64)
	for _, m := range ms {
		if p, ok := m.(*Peak); ok {
			out["tmax_"+strings.TrimPrefix(p.Name(), "cmax_")] = p.At()
		}
	}
	return out
}
