package sim

import (
	"context"
	"math"
	"sync"
)

// Ensemble runs independent simulators side by side, one goroutine each.
// A Simulator is never shared between goroutines.
type Ensemble struct {
	sims []*Simulator
}

func NewEnsemble(sims ...*Simulator) *Ensemble {
	return &Ensemble{sims: sims}
}

func (e *Ensemble) Len() int { return len(e.sims) }

// Run runs every member for the same number of frames. Results keep the
// member order.
func (e *Ensemble) Run(ctx context.Context, frames int) ([]*Result, error) {
	results := make([]*Result, len(e.sims))
	errs := make([]error, len(e.sims))

	var wg sync.WaitGroup
	for i, s := range e.sims {
		wg.Add(1)
		go func(idx int, s *Simulator) {
			defer wg.Done()
			results[idx], errs[idx] = s.Run(ctx, frames)
		}(i, s)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Divergence returns, per frame, the distance between the far joints of two
// runs. It is the usual way to show sensitivity to initial conditions.
func Divergence(a, b *Result) []float64 {
	n := len(a.Frames)
	if len(b.Frames) < n {
		n = len(b.Frames)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		pa, pb := a.Frames[i].Joint2, b.Frames[i].Joint2
		dx, dy := pa.X-pb.X, pa.Y-pb.Y
		out[i] = math.Hypot(dx, dy)
	}
	return out
}
