// Package rr summarises beat-to-beat (RR) intervals.
package rr

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats holds RR interval statistics. Intervals are in milliseconds.
type Stats struct {
	Count     int
	Mean      float64
	Std       float64 // population standard deviation
	RMSSD     float64 // root mean square of successive differences
	Min       float64
	Max       float64
	HeartRate float64 // beats per minute from Mean
}

// Intervals converts ascending beat positions (sample indices) into RR
// intervals in milliseconds. Fewer than two beats yield no intervals.
func Intervals(beats []int, fs float64) []float64 {
	if len(beats) < 2 || fs <= 0 {
		return []float64{}
	}
	out := make([]float64, len(beats)-1)
	for i := range out {
		out[i] = float64(beats[i+1]-beats[i]) * 1000 / fs
	}
	return out
}

// Calculate summarises intervals. An empty input yields zero counts and
// NaN statistics.
func Calculate(intervals []float64) Stats {
	if len(intervals) == 0 {
		nan := math.NaN()
		return Stats{Mean: nan, Std: nan, RMSSD: nan, Min: nan, Max: nan, HeartRate: nan}
	}

	mean, std := stat.PopMeanStdDev(intervals, nil)
	s := Stats{
		Count:     len(intervals),
		Mean:      mean,
		Std:       std,
		RMSSD:     math.NaN(),
		Min:       floats.Min(intervals),
		Max:       floats.Max(intervals),
		HeartRate: math.NaN(),
	}

	if mean > 0 {
		s.HeartRate = 60000 / mean
	}

	if len(intervals) > 1 {
		diffs := make([]float64, len(intervals)-1)
		for i := range diffs {
			diffs[i] = intervals[i+1] - intervals[i]
		}
		s.RMSSD = math.Sqrt(floats.Dot(diffs, diffs) / float64(len(diffs)))
	}

	return s
}
