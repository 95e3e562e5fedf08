package sim

import (
	"context"
	"testing"
)

func TestEnsembleMatchesSerial(t *testing.T) {
	a, _ := New(classicState(t), DefaultDt)
	b, _ := New(classicState(t), DefaultDt)

	results, err := NewEnsemble(a, b).Run(context.Background(), 200)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	for i, d := range Divergence(results[0], results[1]) {
		if d != 0 {
			t.Fatalf("frame %d: identical runs diverged by %g", i, d)
		}
	}
}

func TestEnsembleDivergence(t *testing.T) {
	st := classicState(t)
	a, _ := New(st, DefaultDt)
	st.Arm2.Angle += 1e-6
	b, _ := New(st, DefaultDt)

	results, err := NewEnsemble(a, b).Run(context.Background(), 500)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}

	div := Divergence(results[0], results[1])
	if len(div) != 500 {
		t.Fatalf("expected 500 samples, got %d", len(div))
	}
	if div[0] == 0 {
		t.Error("perturbed run should differ from the first frame")
	}
	if div[len(div)-1] <= div[0] {
		t.Errorf("expected divergence to grow: first %g, last %g", div[0], div[len(div)-1])
	}
}
