package ecg

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ecg/internal/testutil"
)

func TestAmplitude(t *testing.T) {
	x := []float64{0, 0, 3, 0, 0, 0, -1, 0}
	tests := []struct {
		name   string
		points []int
		want   float64
	}{
		{name: "sliding", want: 3},
		{name: "around dip", points: []int{6}, want: 1},
		{name: "around peak", points: []int{2}, want: 3},
		{name: "left edge", points: []int{0}, want: 0},
		{name: "outside", points: []int{20}, want: 0},
		{name: "empty", points: []int{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Amplitude(x, 10, 0.4, tt.points)
			if err != nil {
				t.Fatalf("Amplitude() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("Amplitude() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAmplitudeWindowTooSmall(t *testing.T) {
	_, err := Amplitude([]float64{1, 2, 3}, 10, 0.1, nil)
	if !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("err = %v, want ErrInvalidWindow", err)
	}
}

func TestEnsureLength(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		n    int
		want []float64
	}{
		{name: "crop", x: []float64{1, 2, 3, 4, 5}, n: 3, want: []float64{2, 3, 4}},
		{name: "pad", x: []float64{1, 2}, n: 5, want: []float64{0, 1, 2, 0, 0}},
		{name: "same", x: []float64{1, 2}, n: 2, want: []float64{1, 2}},
		{name: "empty", x: nil, n: 2, want: []float64{0, 0}},
		{name: "zero length", x: []float64{1, 2}, n: 0, want: []float64{}},
		{name: "negative length", x: []float64{1, 2}, n: -3, want: []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.RequireSliceNearlyEqual(t, EnsureLength(tt.x, tt.n), tt.want, 0)
		})
	}
}

func TestPhasorTransform(t *testing.T) {
	got := PhasorTransform([]float64{1, -1, 0}, 1)
	testutil.RequireSliceNearlyEqual(t, got, []float64{math.Pi / 4, -math.Pi / 4, 0}, 1e-15)
}
