package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/dpend/internal/pendulum"
	"github.com/san-kum/dpend/internal/sim"
)

var (
	ErrInvalidSteps        = errors.New("analysis: steps must be positive")
	ErrInvalidPerturbation = errors.New("analysis: perturbation must be non-zero and finite")
)

// renormThreshold keeps the perturbed copy in the linear regime.
const renormThreshold = 1e-4

// separation is the Euclidean distance between two states in
// (θ1, θ2, ω1, ω2) space.
func separation(a, b pendulum.State) float64 {
	d := []float64{
		a.Arm1.Angle - b.Arm1.Angle,
		a.Arm2.Angle - b.Arm2.Angle,
		a.Arm1.AngularVelocity - b.Arm1.AngularVelocity,
		a.Arm2.AngularVelocity - b.Arm2.AngularVelocity,
	}
	sum := 0.0
	for _, v := range d {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// pullBack moves p towards ref so that their separation is scaled by k.
func pullBack(ref, p pendulum.State, k float64) pendulum.State {
	p.Arm1.Angle = ref.Arm1.Angle + (p.Arm1.Angle-ref.Arm1.Angle)*k
	p.Arm2.Angle = ref.Arm2.Angle + (p.Arm2.Angle-ref.Arm2.Angle)*k
	p.Arm1.AngularVelocity = ref.Arm1.AngularVelocity + (p.Arm1.AngularVelocity-ref.Arm1.AngularVelocity)*k
	p.Arm2.AngularVelocity = ref.Arm2.AngularVelocity + (p.Arm2.AngularVelocity-ref.Arm2.AngularVelocity)*k
	return p
}

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method. A copy of st with θ1 shifted by
// perturbation is stepped next to st; whenever the separation grows past
// renormThreshold its log growth is accumulated and the copy is pulled back.
//
// λ ≈ Σ ln(|δx_k| / |δx_0|) / T
func LyapunovExponent(st pendulum.State, dt float64, steps int, perturbation float64) (float64, error) {
	if steps <= 0 {
		return 0, fmt.Errorf("%w, got %d", ErrInvalidSteps, steps)
	}
	d0 := math.Abs(perturbation)
	if !(d0 > 0) || math.IsInf(d0, 1) {
		return 0, fmt.Errorf("%w, got %v", ErrInvalidPerturbation, perturbation)
	}

	ref, err := sim.New(st, dt)
	if err != nil {
		return 0, err
	}

	pst := st
	pst.Arm1.Angle += perturbation
	pert, err := sim.New(pst, dt)
	if err != nil {
		return 0, err
	}

	sumLog := 0.0
	for i := 0; i < steps; i++ {
		ref.Step()
		pert.Step()

		x, xp := ref.State(), pert.State()
		sep := separation(x, xp)

		if sep > 0 && (sep > renormThreshold || i == steps-1) {
			sumLog += math.Log(sep / d0)
			if pert, err = sim.New(pullBack(x, xp, d0/sep), dt); err != nil {
				return 0, err
			}
		}
	}

	return sumLog / (float64(steps) * dt), nil
}
