package peaks

import "fmt"

// Prominences returns the topographic prominence of each peak: its height
// above the higher of the two lowest points reached before the signal
// rises above the peak on either side. A wlen greater than one restricts
// the search to wlen/2 samples on each side; zero searches the whole
// signal.
func Prominences(x []float64, peaks []int, wlen int) ([]float64, error) {
	if wlen == 1 || wlen < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, wlen)
	}
	for _, p := range peaks {
		if p < 0 || p >= len(x) {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrPeakOutOfRange, p, len(x))
		}
	}
	return prominences(x, peaks, wlen), nil
}

func prominences(x []float64, peaks []int, wlen int) []float64 {
	out := make([]float64, len(peaks))
	for k, p := range peaks {
		lo, hi := 0, len(x)-1
		if wlen >= 2 {
			lo = max(p-wlen/2, lo)
			hi = min(p+wlen/2, hi)
		}

		leftMin := x[p]
		for i := p; i >= lo && x[i] <= x[p]; i-- {
			leftMin = min(leftMin, x[i])
		}

		rightMin := x[p]
		for i := p; i <= hi && x[i] <= x[p]; i++ {
			rightMin = min(rightMin, x[i])
		}

		out[k] = x[p] - max(leftMin, rightMin)
	}
	return out
}
