package window

import (
	"math"
	"testing"
)

func TestGenerateKnownValues(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		size int
		opts []Option
		want []float64
	}{
		{name: "rectangular", typ: TypeRectangular, size: 3, want: []float64{1, 1, 1}},
		{name: "hann", typ: TypeHann, size: 5, want: []float64{0, 0.5, 1, 0.5, 0}},
		{name: "hann periodic", typ: TypeHann, size: 4, opts: []Option{WithPeriodic()}, want: []float64{0, 0.5, 1, 0.5}},
		{name: "hamming", typ: TypeHamming, size: 3, want: []float64{0.08, 1, 0.08}},
		{name: "blackman", typ: TypeBlackman, size: 3, want: []float64{0, 1, 0}},
		{name: "triangle", typ: TypeTriangle, size: 3, want: []float64{0.5, 1, 0.5}},
		{name: "bartlett", typ: TypeTriangle, size: 5, opts: []Option{WithBartlett()}, want: []float64{0, 0.5, 1, 0.5, 0}},
		{name: "single sample", typ: TypeHann, size: 1, want: []float64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.typ, tt.size, tt.opts...)
			if len(got) != len(tt.want) {
				t.Fatalf("len=%d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Fatalf("w[%d]=%g, want %g", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGenerateSymmetric(t *testing.T) {
	for _, typ := range []Type{TypeHann, TypeHamming, TypeBlackman, TypeTriangle} {
		w := Generate(typ, 31)
		for i := range w {
			if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
				t.Fatalf("type=%d w[%d]=%g mirror=%g", typ, i, w[i], w[len(w)-1-i])
			}
		}
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("expected nil, got %v", w)
	}
	if _, err := Hann(0); err == nil {
		t.Fatal("expected error for zero size")
	}
	if _, err := Hamming(-1); err == nil {
		t.Fatal("expected error for negative size")
	}
	if _, err := Blackman(8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyMatchesGenerate(t *testing.T) {
	buf := []float64{2, 2, 2, 2, 2}
	Apply(TypeHann, buf)

	w := Generate(TypeHann, len(buf))
	for i := range buf {
		if math.Abs(buf[i]-2*w[i]) > 1e-12 {
			t.Fatalf("buf[%d]=%g, want %g", i, buf[i], 2*w[i])
		}
	}

	Apply(TypeHann, nil)
}

func BenchmarkGenerateHann(b *testing.B) {
	for range b.N {
		_ = Generate(TypeHann, 1024)
	}
}
