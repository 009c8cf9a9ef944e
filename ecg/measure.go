package ecg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Amplitude returns the largest peak-to-peak amplitude of x over windows of
// window seconds. With critical points (for example R peaks) the windows
// are centred on them and zero-padded to full width at the signal edges;
// otherwise they slide over x with 50% overlap. The window is rounded to
// an even number of samples.
func Amplitude(x []float64, fs, window float64, criticalPoints []int) (float64, error) {
	half := int(math.RoundToEven(window*fs)) / 2
	if half < 1 {
		return 0, fmt.Errorf("%w: %g s at %g Hz", ErrInvalidWindow, window, fs)
	}
	width := 2 * half

	ampl := 0.0
	if criticalPoints != nil {
		for _, p := range criticalPoints {
			lo := min(max(p-half, 0), len(x))
			hi := max(min(p+half, len(x)), lo)
			seg := EnsureLength(x[lo:hi], width)
			ampl = math.Max(ampl, floats.Max(seg)-floats.Min(seg))
		}
		return ampl, nil
	}

	for idx := 0; idx < len(x)/half-1; idx++ {
		seg := x[idx*half : idx*half+width]
		ampl = math.Max(ampl, floats.Max(seg)-floats.Min(seg))
	}
	return ampl, nil
}

// EnsureLength returns a copy of x with exactly n samples: the central n
// samples when x is longer, otherwise x zero-padded on both sides with the
// extra sample, if any, on the right.
func EnsureLength(x []float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	if len(x) >= n {
		start := (len(x) - n) / 2
		copy(out, x[start:start+n])
		return out
	}
	copy(out[(n-len(x))/2:], x)
	return out
}

// PhasorTransform maps each sample to atan2(x, rv). Small rv makes the
// transform sensitive to low-amplitude waves such as P waves.
func PhasorTransform(x []float64, rv float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Atan2(v, rv)
	}
	return out
}
