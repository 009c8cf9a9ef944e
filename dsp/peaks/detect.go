// Package peaks locates local extrema in one-dimensional sequences.
//
// Detect reports indices of samples that rise above their neighbours,
// optionally filtered by height, neighbour threshold, minimum spacing and
// prominence. Inputs are never modified.
package peaks

import (
	"errors"
	"math"
	"sort"

	"go.uber.org/zap"
)

var (
	// ErrInvalidEdge is returned for unknown plateau handling modes.
	ErrInvalidEdge = errors.New("peaks: invalid edge mode")
	// ErrInvalidDistance is returned for a minimum distance below 1.
	ErrInvalidDistance = errors.New("peaks: minimum distance must be >= 1")
	// ErrInvalidWindow is returned for prominence windows of 1 or less.
	ErrInvalidWindow = errors.New("peaks: prominence window must be > 1")
	// ErrPeakOutOfRange is returned by Prominences for indices outside x.
	ErrPeakOutOfRange = errors.New("peaks: peak index out of range")
)

// Detect returns the ascending indices of the peaks of x.
//
// Candidates are samples where the first difference changes sign (see
// Edge). Samples that are NaN, or next to a NaN, are never peaks. The
// filters then run in order: border (i in [mpd, n-mpd)), minimum height,
// side thresholds, minimum distance, window maximum and prominence.
// A side threshold passes when the largest drop from the peak to any of
// the mpd samples on that side reaches it. Inputs shorter than three
// samples yield no peaks.
func Detect(x []float64, opts ...Option) ([]int, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	n := len(x)
	if n < 3 {
		return []int{}, nil
	}

	data := make([]float64, n)
	copy(data, x)
	minHeight := cfg.minHeight
	if cfg.valleys {
		for i := range data {
			data[i] = -data[i]
		}
		minHeight = -minHeight
	}

	excluded := make([]bool, n)
	for i, v := range data {
		if math.IsNaN(v) {
			data[i] = math.Inf(1)
			for j := max(i-1, 0); j <= min(i+1, n-1); j++ {
				excluded[j] = true
			}
		}
	}

	mpd := cfg.minDistance
	log := cfg.logger

	ind := candidates(data, cfg.edge)
	log.Debug("peak candidates", zap.Int("count", len(ind)), zap.Stringer("edge", cfg.edge))

	ind = keep(ind, func(i int) bool {
		return !excluded[i] && i >= mpd && i < n-mpd
	})

	if cfg.hasMinHeight {
		ind = keep(ind, func(i int) bool { return data[i] >= minHeight })
	}

	left := cfg.leftThreshold
	if left <= 0 {
		left = cfg.threshold
	}
	right := cfg.rightThreshold
	if right <= 0 {
		right = cfg.threshold
	}
	if left > 0 && right > 0 {
		ind = keep(ind, func(i int) bool {
			return maxDrop(data, i, -1, mpd) >= left && maxDrop(data, i, 1, mpd) >= right
		})
	}
	log.Debug("peaks after height and threshold", zap.Int("count", len(ind)))

	if len(ind) > 0 && mpd > 1 {
		ind = suppress(data, ind, mpd, cfg.keepEqual)
	}

	ind = keep(ind, func(i int) bool {
		return data[i] == windowMax(data, i-mpd, i+mpd+1)
	})

	if cfg.hasProminence && len(ind) > 0 {
		prom := prominences(data, ind, cfg.window)
		out := ind[:0]
		for k, i := range ind {
			if prom[k] >= cfg.prominence {
				out = append(out, i)
			}
		}
		ind = out
	}

	log.Debug("peaks detected", zap.Int("count", len(ind)), zap.Int("mpd", mpd))

	return ind, nil
}

// DetectValleys is Detect on the negated signal.
func DetectValleys(x []float64, opts ...Option) ([]int, error) {
	return Detect(x, append(opts, WithValleys())...)
}

// candidates returns the sign-change indices of data for the edge mode,
// treating the difference beyond either end as zero.
func candidates(data []float64, edge Edge) []int {
	n := len(data)
	ind := make([]int, 0, n/2)
	for i := range n {
		l, r := 0.0, 0.0
		if i > 0 {
			l = data[i] - data[i-1]
		}
		if i < n-1 {
			r = data[i+1] - data[i]
		}

		var ok bool
		switch edge {
		case EdgeRising:
			ok = l > 0 && r <= 0
		case EdgeFalling:
			ok = l >= 0 && r < 0
		case EdgeBoth:
			ok = (l > 0 && r <= 0) || (l >= 0 && r < 0)
		case EdgeNone:
			ok = l > 0 && r < 0
		}
		if ok {
			ind = append(ind, i)
		}
	}
	return ind
}

// maxDrop returns the largest data[i]-data[i+dir*k] for k in [1, mpd].
func maxDrop(data []float64, i, dir, mpd int) float64 {
	drop := math.Inf(-1)
	for k := 1; k <= mpd; k++ {
		drop = math.Max(drop, data[i]-data[i+dir*k])
	}
	return drop
}

// suppress visits candidates from the highest down and removes every
// other candidate within mpd samples of a kept one. Among equal heights
// the later index is visited first.
func suppress(data []float64, ind []int, mpd int, keepEqual bool) []int {
	order := append([]int(nil), ind...)
	sort.SliceStable(order, func(a, b int) bool { return data[order[a]] < data[order[b]] })
	for a, b := 0, len(order)-1; a < b; a, b = a+1, b-1 {
		order[a], order[b] = order[b], order[a]
	}

	deleted := make([]bool, len(order))
	for k, i := range order {
		if deleted[k] {
			continue
		}
		for m, j := range order {
			if m == k || j < i-mpd || j > i+mpd {
				continue
			}
			if keepEqual && !(data[i] > data[j]) {
				continue
			}
			deleted[m] = true
		}
	}

	out := make([]int, 0, len(order))
	for k, i := range order {
		if !deleted[k] {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

func windowMax(data []float64, lo, hi int) float64 {
	m := math.Inf(-1)
	for _, v := range data[max(lo, 0):min(hi, len(data))] {
		m = math.Max(m, v)
	}
	return m
}

func keep(ind []int, pred func(int) bool) []int {
	out := ind[:0]
	for _, i := range ind {
		if pred(i) {
			out = append(out, i)
		}
	}
	return out
}
