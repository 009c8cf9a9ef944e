package outlier

import (
	"fmt"
	"math"
)

// FlatLines marks every sample that belongs to a run of at least window
// consecutive samples all within tolerance of the run's first sample. It
// returns the mask and the marked proportion of x.
func FlatLines(x []float64, window int, tolerance float64) ([]bool, float64, error) {
	if window < 1 {
		return nil, 0, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}

	n := len(x)
	mask := make([]bool, n)
	if n < window {
		return mask, 0, nil
	}

	tol := math.Abs(tolerance)
	for start := 0; start <= n-window; start++ {
		flat := true
		for k := 1; k < window; k++ {
			if !(math.Abs(x[start]-x[start+k]) <= tol) {
				flat = false
				break
			}
		}
		if flat {
			for k := range window {
				mask[start+k] = true
			}
		}
	}

	marked := 0
	for _, m := range mask {
		if m {
			marked++
		}
	}
	return mask, float64(marked) / float64(n), nil
}

// RemoveSpikes replaces every sample after the first whose magnitude
// exceeds limit with its (already repaired) predecessor.
func RemoveSpikes(x []float64, limit float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	for k := 1; k < len(out); k++ {
		if math.Abs(x[k]) > limit {
			out[k] = out[k-1]
		}
	}
	return out
}
