package metrics

import (
	"math"

	"github.com/san-kum/fbio/internal/dynamo"
)

// Peak tracks the maximum of one state component and when it occurred.
type Peak struct {
	name  string
	index int
	max   float64
	at    float64
	seen  bool
}

func NewPeak(name string, index int) *Peak {
	return &Peak{name: name, index: index}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x dynamo.State, t float64) {
	if p.index >= len(x) {
		return
	}
	v := x[p.index]
	if !p.seen || v > p.max {
		p.max, p.at, p.seen = v, t, true
	}
}

// Value is Cmax, or NaN when nothing was observed.
func (p *Peak) Value() float64 {
	if !p.seen {
		return math.NaN()
	}
	return p.max
}

// At is Tmax.
func (p *Peak) At() float64 { return p.at }

func (p *Peak) Reset() {
	p.max, p.at, p.seen = 0, 0, false
}
