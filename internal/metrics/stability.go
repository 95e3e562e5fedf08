package metrics

import (
	"github.com/san-kum/dpend/internal/sim"
)

// Stability is the fraction of frames whose joint positions stayed finite.
// A finite far joint is always within l1+l2 of the pivot, so finiteness is
// the only way a frame can fail.
type Stability struct {
	name       string
	violations int
	samples    int
}

func NewStability() *Stability {
	return &Stability{name: "stability"}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f sim.Frame) {
	s.samples++
	if !f.IsFinite() {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
