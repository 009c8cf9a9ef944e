package ecg

import (
	"math"
	"sort"
)

// percentile returns the p-th percentile of x (0 <= p <= 100) with linear
// interpolation between closest ranks (position p/100*(n-1) in the sorted
// data). Empty input yields NaN.
func percentile(x []float64, p float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}

	s := append([]float64(nil), x...)
	sort.Float64s(s)

	pos := p / 100 * float64(len(s)-1)
	lo := int(math.Floor(pos))
	if lo >= len(s)-1 {
		return s[len(s)-1]
	}

	frac := pos - float64(lo)
	return s[lo] + frac*(s[lo+1]-s[lo])
}
