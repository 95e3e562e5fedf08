package sim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/dpend/internal/pendulum"
)

// DefaultDt is the default time step in seconds.
const DefaultDt = 0.02

var (
	ErrInvalidDt     = errors.New("sim: dt must be positive and finite")
	ErrInvalidFrames = errors.New("sim: frame count must be positive")
)

// Simulator advances a double pendulum with a fixed time step. It owns its
// state; the only ways to change it are Step and Reset.
type Simulator struct {
	state     pendulum.State
	initial   pendulum.State
	dt        float64
	metrics   []Metric
	observers []Observer
}

func New(state pendulum.State, dt float64) (*Simulator, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}
	if !ValidDt(dt) {
		return nil, fmt.Errorf("%w, got %v", ErrInvalidDt, dt)
	}
	return &Simulator{
		state:     state,
		initial:   state,
		dt:        dt,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}, nil
}

// ValidDt reports whether dt is usable as a time step.
func ValidDt(dt float64) bool {
	return dt > 0 && !math.IsInf(dt, 1)
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// State returns a copy of the current state.
func (s *Simulator) State() pendulum.State { return s.state }

func (s *Simulator) Dt() float64 { return s.dt }

// Elapsed is the simulated time shown for the given frame index.
func (s *Simulator) Elapsed(frame int) float64 {
	return float64(frame) * s.dt
}

// Accelerations returns the angular accelerations of both arms for the
// given state, from the Lagrangian of two point masses on massless rods.
//
// The shared denominator l*(2m1 + m2 - m2*cos(2θ1 - 2θ2)) is at least
// 2*l*m1, so it only gets close to zero when m1 is tiny compared to m2.
// Such configurations blow up and the result is returned as is.
func Accelerations(st pendulum.State) (a1, a2 float64) {
	m1, m2 := st.Arm1.Mass, st.Arm2.Mass
	l1, l2 := st.Arm1.Length, st.Arm2.Length
	t1, t2 := st.Arm1.Angle, st.Arm2.Angle
	w1, w2 := st.Arm1.AngularVelocity, st.Arm2.AngularVelocity
	g := st.Gravity

	delta := t1 - t2
	sinD, cosD := math.Sin(delta), math.Cos(delta)
	den := 2*m1 + m2 - m2*math.Cos(2*t1-2*t2)

	num1 := -g*(2*m1+m2)*math.Sin(t1) -
		m2*g*math.Sin(t1-2*t2) -
		2*sinD*m2*(w2*w2*l2+w1*w1*l1*cosD)
	a1 = num1 / (l1 * den)

	num2 := w1*w1*l1*(m1+m2) +
		g*(m1+m2)*math.Cos(t1) +
		w2*w2*l2*m2*cosD
	a2 = 2 * sinD * num2 / (l2 * den)

	return a1, a2
}

// Step advances the state by one dt and returns the new joint positions.
// Both accelerations are taken from the old state, velocities are updated
// first and the angles then move with the updated velocities. Angles are
// not wrapped.
func (s *Simulator) Step() (pendulum.Position, pendulum.Position) {
	a1, a2 := Accelerations(s.state)
	arm1, arm2 := &s.state.Arm1, &s.state.Arm2

	arm1.AngularAcceleration = a1
	arm2.AngularAcceleration = a2

	arm1.AngularVelocity += a1 * s.dt
	arm2.AngularVelocity += a2 * s.dt

	arm1.Angle += arm1.AngularVelocity * s.dt
	arm2.Angle += arm2.AngularVelocity * s.dt

	return s.state.Joints()
}

// Reset puts the pendulum back to its initial angles and velocities and
// clears the accelerations.
func (s *Simulator) Reset() {
	s.state = s.initial
	s.state.Arm1.AngularAcceleration = 0
	s.state.Arm2.AngularAcceleration = 0
}

func (s *Simulator) frame(index int) Frame {
	j1, j2 := s.Step()
	return Frame{
		Index:  index,
		Time:   s.Elapsed(index),
		Joint1: j1,
		Joint2: j2,
		State:  s.state,
	}
}

// Run steps the simulator frames times, recording every frame and feeding
// the registered metrics and observers.
func (s *Simulator) Run(ctx context.Context, frames int) (*Result, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidFrames, frames)
	}

	result := &Result{
		Frames:  make([]Frame, 0, frames),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	initialEnergy := s.state.Energy()

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		f := s.frame(i)
		for _, m := range s.metrics {
			m.Observe(f)
		}
		for _, obs := range s.observers {
			obs.OnFrame(f)
		}
		result.Frames = append(result.Frames, f)
	}

	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(s.state.Energy()-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps the simulator until frames have been produced or fn
// returns false. Nothing is recorded.
func (s *Simulator) RunWithCallback(ctx context.Context, frames int, fn func(Frame) bool) error {
	if frames <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidFrames, frames)
	}

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !fn(s.frame(i)) {
			return nil
		}
	}

	return nil
}
