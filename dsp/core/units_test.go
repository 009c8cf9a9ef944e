package core

import (
	"math"
	"testing"
)

func TestSecondsToSamples(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		fs      int
		want    int
	}{
		{name: "step at 500 Hz", seconds: 0.1, fs: 500, want: 50},
		{name: "radius at 250 Hz", seconds: 0.3, fs: 250, want: 75},
		{name: "truncates", seconds: 0.1, fs: 125, want: 12},
		{name: "zero rate", seconds: 1, fs: 0, want: 0},
		{name: "negative duration", seconds: -1, fs: 500, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SecondsToSamples(tt.seconds, tt.fs); got != tt.want {
				t.Fatalf("SecondsToSamples(%v, %d) = %d, want %d", tt.seconds, tt.fs, got, tt.want)
			}
		})
	}
}

func TestLinearPowerToDB(t *testing.T) {
	if got := LinearPowerToDB(100); math.Abs(got-20) > 1e-12 {
		t.Fatalf("LinearPowerToDB(100) = %v, want 20", got)
	}
	if !math.IsInf(LinearPowerToDB(0), -1) {
		t.Fatal("expected -Inf for zero power")
	}
	if !math.IsNaN(LinearPowerToDB(-1)) {
		t.Fatal("expected NaN for negative power")
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct{ in, want int }{
		{in: -3, want: 1},
		{in: 0, want: 1},
		{in: 1, want: 1},
		{in: 5, want: 8},
		{in: 64, want: 64},
		{in: 65, want: 128},
	}
	for _, tt := range tests {
		if got := NextPowerOfTwo(tt.in); got != tt.want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
