package conv

import (
	"errors"
	"math"
	"testing"
)

func TestDirect(t *testing.T) {
	tests := []struct {
		name     string
		a        []float64
		b        []float64
		expected []float64
	}{
		{
			name:     "simple 3x3",
			a:        []float64{1, 2, 3},
			b:        []float64{1, 1, 1},
			expected: []float64{1, 3, 6, 5, 3},
		},
		{
			name:     "impulse",
			a:        []float64{1, 2, 3, 4, 5},
			b:        []float64{1},
			expected: []float64{1, 2, 3, 4, 5},
		},
		{
			name:     "delayed impulse",
			a:        []float64{1, 2, 3, 4, 5},
			b:        []float64{0, 0, 1},
			expected: []float64{0, 0, 1, 2, 3, 4, 5},
		},
		{
			name:     "vector path",
			a:        []float64{1, 2, 1},
			b:        []float64{1, 0, 0, 0, 2},
			expected: []float64{1, 2, 1, 0, 2, 4, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Direct(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertClose(t, result, tt.expected, 1e-10)
		})
	}
}

func TestDirectErrors(t *testing.T) {
	_, err := Direct([]float64{}, []float64{1, 2})
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}

	_, err = Direct([]float64{1, 2}, []float64{})
	if !errors.Is(err, ErrEmptyKernel) {
		t.Errorf("expected ErrEmptyKernel, got %v", err)
	}

	_, err = ConvolveMode(nil, []float64{1}, ModeSame)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestConvolveMode(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{1, 1, 1}

	tests := []struct {
		mode Mode
		want []float64
	}{
		{ModeFull, []float64{1, 3, 6, 9, 12, 9, 5}},
		{ModeSame, []float64{3, 6, 9, 12, 9}},
		{ModeValid, []float64{6, 9, 12}},
	}

	for _, tt := range tests {
		got, err := ConvolveMode(a, b, tt.mode)
		if err != nil {
			t.Fatalf("mode %d: %v", tt.mode, err)
		}
		assertClose(t, got, tt.want, 1e-12)
	}
}

func TestOverlapAddMatchesDirect(t *testing.T) {
	signal := make([]float64, 700)
	for i := range signal {
		signal[i] = math.Sin(2*math.Pi*float64(i)/37) + 0.1*float64(i%5)
	}
	kernel := make([]float64, 101)
	for i := range kernel {
		kernel[i] = 1 / float64(len(kernel))
	}

	want, err := Direct(signal, kernel)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Convolve(signal, kernel)
	if err != nil {
		t.Fatal(err)
	}
	assertClose(t, got, want, 1e-9)

	oa, err := NewOverlapAdd(kernel, 128)
	if err != nil {
		t.Fatal(err)
	}
	got, err = oa.Process(signal)
	if err != nil {
		t.Fatal(err)
	}
	assertClose(t, got, want, 1e-9)
}

func TestNewOverlapAddEmptyKernel(t *testing.T) {
	if _, err := NewOverlapAdd(nil, 0); !errors.Is(err, ErrEmptyKernel) {
		t.Fatalf("expected ErrEmptyKernel, got %v", err)
	}
}

func BenchmarkConvolveDirect(b *testing.B) {
	signal := make([]float64, 5000)
	kernel := make([]float64, 31)
	for i := range kernel {
		kernel[i] = 1
	}

	for range b.N {
		_, _ = Convolve(signal, kernel)
	}
}

func assertClose(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, expected %d", len(got), len(want))
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Fatalf("result[%d] = %v, expected %v", i, got[i], want[i])
		}
	}
}
