package sim

import (
	"math"

	"github.com/san-kum/dpend/internal/pendulum"
)

// Frame is what one Step produces, tagged with the caller's frame index.
type Frame struct {
	Index  int
	Time   float64
	Joint1 pendulum.Position
	Joint2 pendulum.Position
	State  pendulum.State
}

// IsFinite reports whether both joint positions are finite numbers.
func (f Frame) IsFinite() bool {
	for _, v := range []float64{f.Joint1.X, f.Joint1.Y, f.Joint2.X, f.Joint2.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

type Result struct {
	Frames      []Frame
	Metrics     map[string]float64
	EnergyDrift float64
}
