package metrics

import (
	"math"

	"github.com/san-kum/dpend/internal/sim"
)

// Flips counts how often the second arm passes over the top. Angles are
// never wrapped, so a flip is a change of the revolution index
// round(θ/2π) between consecutive frames.
type Flips struct {
	name    string
	count   int
	last    float64
	samples int
}

func NewFlips() *Flips {
	return &Flips{name: "flips"}
}

func (f *Flips) Name() string { return f.name }

func (f *Flips) Observe(fr sim.Frame) {
	rev := math.Round(fr.State.Arm2.Angle / (2 * math.Pi))
	if math.IsNaN(rev) || math.IsInf(rev, 0) {
		return
	}
	if f.samples > 0 && rev != f.last {
		f.count += int(math.Abs(rev - f.last))
	}
	f.last = rev
	f.samples++
}

func (f *Flips) Value() float64 {
	return float64(f.count)
}

func (f *Flips) Reset() {
	f.count = 0
	f.last = 0
	f.samples = 0
}
