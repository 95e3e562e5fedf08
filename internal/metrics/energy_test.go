package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/dpend/internal/pendulum"
	"github.com/san-kum/dpend/internal/sim"
)

func restFrame(t *testing.T) sim.Frame {
	t.Helper()
	st, err := pendulum.New(pendulum.NewArm(1, 1, 0), pendulum.NewArm(1, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	j1, j2 := st.Joints()
	return sim.Frame{Joint1: j1, Joint2: j2, State: st}
}

func TestEnergyMean(t *testing.T) {
	m := NewEnergy()
	f := restFrame(t)

	m.Observe(f)
	m.Observe(f)

	expected := -pendulum.DefaultGravity * 3
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDriftAtRest(t *testing.T) {
	m := NewEnergyDrift()
	f := restFrame(t)

	for i := 0; i < 5; i++ {
		m.Observe(f)
	}

	if m.Value() != 0 {
		t.Errorf("expected no drift at rest, got %f", m.Value())
	}
	if m.Current() != f.State.Energy() {
		t.Errorf("expected current %f, got %f", f.State.Energy(), m.Current())
	}
}

func TestEnergyDriftOverRun(t *testing.T) {
	st, _ := pendulum.New(pendulum.NewArm(1, 1, 0.5), pendulum.NewArm(1, 1, 0.3))
	s, _ := sim.New(st, 0.001)
	drift := NewEnergyDrift()
	s.AddMetric(drift)

	result, err := s.Run(context.Background(), 5000)
	if err != nil {
		t.Fatal(err)
	}

	v := result.Metrics["energy_drift"]
	if v <= 0 {
		t.Error("explicit Euler should show some drift")
	}
	if v > 0.05 {
		t.Errorf("drift %f larger than expected", v)
	}
	if result.EnergyDrift > 0.05 {
		t.Errorf("end-to-end drift %f larger than expected", result.EnergyDrift)
	}
}

func TestStability(t *testing.T) {
	m := NewStability()
	f := restFrame(t)

	m.Observe(f)
	if m.Value() != 1 {
		t.Errorf("expected stable, got %f", m.Value())
	}

	f.Joint2.X = math.NaN()
	m.Observe(f)
	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}

	f.Joint2.X = 0
	f.Joint1.Y = math.Inf(1)
	m.Observe(f)
	m.Observe(restFrame(t))
	if m.Value() != 0.5 {
		t.Errorf("expected 0.5 after an infinite frame, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 1 {
		t.Error("expected 1 after reset")
	}
}

func TestFlips(t *testing.T) {
	m := NewFlips()
	f := restFrame(t)

	for _, angle := range []float64{0, 2, 3.5, 6, 7, 3, math.NaN(), -4} {
		f.State.Arm2.Angle = angle
		m.Observe(f)
	}

	// revolution index: 0 0 1 1 1 0 (NaN skipped) -1
	if m.Value() != 3 {
		t.Errorf("expected 3 flips, got %f", m.Value())
	}
}

func TestDefaults(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range Defaults() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 metrics, got %d", len(seen))
	}
}
