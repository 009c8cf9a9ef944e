package ecg

import (
	"math"
	"testing"
)

// rPeaks returns the R-wave sample positions of testutil.SyntheticECG.
func rPeaks(fs int, bpm float64, n int) []int {
	period := float64(fs) * 60 / bpm
	var out []int
	for k := 0; ; k++ {
		r := int(math.Round((float64(k) + 0.32) * period))
		if r >= n {
			return out
		}
		out = append(out, r)
	}
}

func requireNearBeats(t *testing.T, got, truth []int, tol int) {
	t.Helper()
	if len(got) == 0 {
		t.Fatal("no beats detected")
	}
	for _, b := range got {
		best := math.MaxInt
		for _, r := range truth {
			best = min(best, abs(b-r))
		}
		if best > tol {
			t.Fatalf("beat %d is %d samples from the nearest R wave (tolerance %d)", b, best, tol)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

type recordingSink struct {
	stages []string
}

func (r *recordingSink) Observe(stage string, data []float64) {
	r.stages = append(r.stages, stage)
}
