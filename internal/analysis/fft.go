package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT returns the discrete Fourier transform of a real series. Any length
// is accepted; power-of-two lengths take the radix-2 path.
func FFT(data []float64) []complex128 {
	return fft.FFTReal(data)
}

func PowerSpectrum(data []float64) []float64 {
	spectrum := FFT(data)
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// Truncate returns the longest power-of-two prefix of data.
func Truncate(data []float64) []float64 {
	n := 1
	for n*2 <= len(data) {
		n *= 2
	}
	if len(data) == 0 {
		return data
	}
	return data[:n]
}

// DominantFrequency returns the strongest non-zero frequency in Hz of a
// series sampled every dt seconds. The mean is removed first.
func DominantFrequency(data []float64, dt float64) float64 {
	data = Truncate(data)
	n := len(data)
	if n < 4 {
		return 0
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centred := make([]float64, n)
	for i, v := range data {
		centred[i] = v - mean
	}

	ps := PowerSpectrum(centred)
	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	return float64(best) / (float64(n) * dt)
}
