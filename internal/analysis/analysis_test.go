package analysis

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/san-kum/dpend/internal/pendulum"
	"github.com/san-kum/dpend/internal/sim"
)

func TestPowerSpectrumPeak(t *testing.T) {
	n := 256
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 8 * float64(i) / float64(n))
	}

	ps := PowerSpectrum(data)
	if len(ps) != n/2 {
		t.Fatalf("expected %d bins, got %d", n/2, len(ps))
	}

	peak := 0
	for i := range ps {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	if peak != 8 {
		t.Errorf("expected peak at bin 8, got %d", peak)
	}
}

func TestFFTArbitraryLength(t *testing.T) {
	data := []float64{1, 1, 1, 1, 1, 1}
	out := FFT(data)
	if len(out) != 6 {
		t.Fatalf("expected 6 bins, got %d", len(out))
	}
	if math.Abs(real(out[0])-6) > 1e-9 {
		t.Errorf("dc bin = %v, want 6", out[0])
	}
	for k := 1; k < len(out); k++ {
		if cmplx.Abs(out[k]) > 1e-9 {
			t.Errorf("bin %d = %v, want 0", k, out[k])
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct{ in, want int }{{0, 0}, {1, 1}, {5, 4}, {1000, 512}, {1024, 1024}}
	for _, tt := range tests {
		if got := len(Truncate(make([]float64, tt.in))); got != tt.want {
			t.Errorf("Truncate(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDominantFrequency(t *testing.T) {
	dt := 0.01
	data := make([]float64, 1000)
	for i := range data {
		data[i] = 3 + math.Cos(2*math.Pi*2.5*float64(i)*dt)
	}

	f := DominantFrequency(data, dt)
	// 512 samples at 100 Hz: bin width ≈ 0.195 Hz
	if math.Abs(f-2.5) > 0.2 {
		t.Errorf("expected ~2.5 Hz, got %f", f)
	}
}

func TestLyapunovSign(t *testing.T) {
	chaotic, _ := pendulum.New(pendulum.NewArm(1, 1, 3.0), pendulum.NewArm(1, 1, 3.0))
	gentle, _ := pendulum.New(pendulum.NewArm(1, 1, 0.05), pendulum.NewArm(1, 1, 0.05))

	lc, err := LyapunovExponent(chaotic, 0.001, 20000, 1e-8)
	if err != nil {
		t.Fatal(err)
	}
	lg, err := LyapunovExponent(gentle, 0.001, 20000, 1e-8)
	if err != nil {
		t.Fatal(err)
	}

	if lc <= 0 {
		t.Errorf("expected positive exponent for chaotic start, got %f", lc)
	}
	if lg >= lc {
		t.Errorf("expected gentle exponent %f below chaotic %f", lg, lc)
	}
}

func TestLyapunovInvalidInput(t *testing.T) {
	st, _ := pendulum.New(pendulum.NewArm(1, 1, 0.1), pendulum.NewArm(1, 1, 0.1))

	tests := []struct {
		name         string
		dt           float64
		steps        int
		perturbation float64
		wantErr      error
	}{
		{"zero dt", 0, 10, 1e-8, sim.ErrInvalidDt},
		{"zero steps", 0.01, 0, 1e-8, ErrInvalidSteps},
		{"negative steps", 0.01, -5, 1e-8, ErrInvalidSteps},
		{"zero perturbation", 0.01, 10, 0, ErrInvalidPerturbation},
		{"NaN perturbation", 0.01, 10, math.NaN(), ErrInvalidPerturbation},
		{"infinite perturbation", 0.01, 10, math.Inf(-1), ErrInvalidPerturbation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LyapunovExponent(st, tt.dt, tt.steps, tt.perturbation); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := LyapunovExponent(st, 0.01, 10, -1e-8); err != nil {
		t.Errorf("negative perturbation rejected: %v", err)
	}
}
