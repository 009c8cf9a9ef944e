// Package outlier detects and repairs isolated artefacts in sampled
// signals: Hampel filtering, flat-line detection and spike removal.
package outlier

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
)

var (
	// ErrInvalidRadius is returned for Hampel radii below 1.
	ErrInvalidRadius = errors.New("outlier: radius must be >= 1")
	// ErrInvalidWindow is returned for flat-line windows below 1.
	ErrInvalidWindow = errors.New("outlier: window must be >= 1")
	// ErrNonFinite is returned when the input contains +Inf or -Inf.
	ErrNonFinite = errors.New("outlier: infinite sample")
	// ErrInvalidImpl is returned for unknown Hampel implementations.
	ErrInvalidImpl = errors.New("outlier: invalid hampel implementation")
)

// madScale converts a median absolute deviation into a Gaussian standard
// deviation estimate.
const madScale = 1.4826

// Impl selects the Hampel implementation.
type Impl int

const (
	// HampelReference recomputes both medians from scratch in every window.
	HampelReference Impl = iota
	// HampelFast keeps the window sorted while it slides and reads the
	// absolute deviation median off a merge of its two halves.
	HampelFast
)

func (i Impl) String() string {
	switch i {
	case HampelReference:
		return "reference"
	case HampelFast:
		return "fast"
	default:
		return fmt.Sprintf("Impl(%d)", int(i))
	}
}

// Hampel replaces every sample that deviates from the median of the 2r+1
// samples centred on it by more than nSigmas robust standard deviations
// with that median. Samples closer than radius to either end are left
// alone, as are windows whose median absolute deviation is zero. NaN
// samples are skipped when taking the medians and are never replaced. It
// returns the filtered copy and the replaced indices in increasing order.
func Hampel(x []float64, radius int, nSigmas float64, impl Impl) ([]float64, []int, error) {
	if radius < 1 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidRadius, radius)
	}
	hasNaN := false
	for i, v := range x {
		if math.IsInf(v, 0) {
			return nil, nil, fmt.Errorf("%w: index %d", ErrNonFinite, i)
		}
		hasNaN = hasNaN || math.IsNaN(v)
	}

	switch impl {
	case HampelReference:
		out, idx := hampelReference(x, radius, nSigmas)
		return out, idx, nil
	case HampelFast:
		// the sorted sliding window cannot hold NaN
		if hasNaN {
			out, idx := hampelReference(x, radius, nSigmas)
			return out, idx, nil
		}
		out, idx := hampelFast(x, radius, nSigmas)
		return out, idx, nil
	default:
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidImpl, impl)
	}
}

func hampelReference(x []float64, r int, nSigmas float64) ([]float64, []int) {
	out := slices.Clone(x)
	outliers := []int{}

	w := make([]float64, 0, 2*r+1)
	dev := make([]float64, 0, 2*r+1)
	for i := r; i < len(x)-r; i++ {
		w = w[:0]
		for _, v := range x[i-r : i+r+1] {
			if !math.IsNaN(v) {
				w = append(w, v)
			}
		}
		if len(w) == 0 || math.IsNaN(x[i]) {
			continue
		}
		slices.Sort(w)
		med := sortedMedian(w)

		dev = dev[:0]
		for _, v := range w {
			dev = append(dev, math.Abs(v-med))
		}
		slices.Sort(dev)
		s := madScale * sortedMedian(dev)

		if s > 0 && math.Abs(x[i]-med) > nSigmas*s {
			out[i] = med
			outliers = append(outliers, i)
		}
	}
	return out, outliers
}

// sortedMedian returns the median of a sorted non-empty slice, averaging
// the middle pair for even lengths.
func sortedMedian(v []float64) float64 {
	m := len(v) / 2
	if len(v)%2 == 0 {
		return 0.5 * (v[m-1] + v[m])
	}
	return v[m]
}

func hampelFast(x []float64, r int, nSigmas float64) ([]float64, []int) {
	out := slices.Clone(x)
	outliers := []int{}
	if len(x) < 2*r+1 {
		return out, outliers
	}

	w := slices.Clone(x[:2*r+1])
	slices.Sort(w)

	for i := r; ; i++ {
		med := w[r]
		s := madScale * deviationMedian(w, r)
		if s > 0 && math.Abs(x[i]-med) > nSigmas*s {
			out[i] = med
			outliers = append(outliers, i)
		}

		if i+r+1 >= len(x) {
			break
		}
		slide(w, x[i-r], x[i+r+1])
	}
	return out, outliers
}

// deviationMedian returns the median of |w[k] - w[mid]| for a sorted
// window of 2*mid+1 samples. The deviations of the lower half increase
// leftwards and those of the upper half rightwards, so the median is the
// mid-th element of their merge.
func deviationMedian(w []float64, mid int) float64 {
	med := w[mid]
	lo, hi := mid-1, mid+1
	d := 0.0 // the median itself contributes the first zero
	for range mid {
		dl, dh := math.Inf(1), math.Inf(1)
		if lo >= 0 {
			dl = med - w[lo]
		}
		if hi < len(w) {
			dh = w[hi] - med
		}
		if dl <= dh {
			d = dl
			lo--
		} else {
			d = dh
			hi++
		}
	}
	return d
}

// slide removes old from the sorted window w and inserts v.
func slide(w []float64, old, v float64) {
	i := sort.SearchFloat64s(w, old)
	copy(w[i:], w[i+1:])
	w = w[:len(w)-1]

	j := sort.SearchFloat64s(w, v)
	w = w[:len(w)+1]
	copy(w[j+1:], w[j:])
	w[j] = v
}
