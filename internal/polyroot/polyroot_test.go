package polyroot

import (
	"math"
	"math/cmplx"
	"testing"
)

func almostEqual(valA, valB, tol float64) bool {
	if valA == valB {
		return true
	}

	diff := math.Abs(valA - valB)
	if tol > 0 && tol < 1 {
		mag := math.Max(math.Abs(valA), math.Abs(valB))
		if mag > 1 {
			return diff/mag < tol
		}
	}

	return diff < tol
}

func TestDurandKerner_Quadratic(t *testing.T) {
	// z^2 - 3z + 2 = (z-1)(z-2), roots at 1 and 2
	coeff := []complex128{1, -3, 2}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}

	r := [2]float64{real(roots[0]), real(roots[1])}
	if r[0] > r[1] {
		r[0], r[1] = r[1], r[0]
	}

	if !almostEqual(r[0], 1.0, 1e-10) || !almostEqual(r[1], 2.0, 1e-10) {
		t.Errorf("expected roots {1,2}, got {%v, %v}", r[0], r[1])
	}
}

func TestDurandKerner_Quartic(t *testing.T) {
	// (z^2 - 1)(z^2 - 4) = z^4 - 5z^2 + 4, roots: -2, -1, 1, 2
	coeff := []complex128{1, 0, -5, 0, 4}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 4 {
		t.Fatalf("expected 4 roots, got %d", len(roots))
	}

	for i, r := range roots {
		val := PolyEval(coeff, r)
		if cmplx.Abs(val) > 1e-8 {
			t.Errorf("root %d: p(%v) = %v, expected ~0", i, r, val)
		}
	}
}

func TestDurandKerner_ConjugatePairRoots(t *testing.T) {
	// z^4 + 1 has roots at e^{i*pi/4 * (2k+1)}, k=0..3
	coeff := []complex128{1, 0, 0, 0, 1}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 4 {
		t.Fatalf("expected 4 roots, got %d", len(roots))
	}

	for i, r := range roots {
		if !almostEqual(cmplx.Abs(r), 1.0, 1e-9) {
			t.Errorf("root %d: |r|=%v, expected 1.0", i, cmplx.Abs(r))
		}
	}
}

func TestDurandKerner_ClusteredRoots(t *testing.T) {
	// (z - 0.9)^2 * (z - 0.8)^2 - two double roots
	r1, r2 := 0.9, 0.8
	c4 := complex(1, 0)
	c3 := complex(-2*(r1+r2), 0)
	c2 := complex(r1*r1+4*r1*r2+r2*r2, 0)
	c1 := complex(-2*r1*r2*(r1+r2), 0)
	c0 := complex(r1*r1*r2*r2, 0)
	coeff := []complex128{c4, c3, c2, c1, c0}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	for i, r := range roots {
		val := PolyEval(coeff, r)
		if cmplx.Abs(val) > 1e-6 {
			t.Errorf("clustered root %d: p(%v) = %v, expected ~0", i, r, val)
		}
	}
}

func TestPolyEval(t *testing.T) {
	// p(z) = 2z^3 - 3z + 5, p(2) = 16 - 6 + 5 = 15
	coeff := []complex128{2, 0, -3, 5}

	val := PolyEval(coeff, 2)
	if !almostEqual(real(val), 15, 1e-12) || !almostEqual(imag(val), 0, 1e-12) {
		t.Errorf("PolyEval: expected 15, got %v", val)
	}
}

// ============================================================
// Durand-Kerner stress tests
// ============================================================

func TestDurandKerner_UnitCircleRoots(t *testing.T) {
	// z^4 - 1, roots: 1, -1, i, -i
	coeff := []complex128{1, 0, 0, 0, -1}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	for i, r := range roots {
		if !almostEqual(cmplx.Abs(r), 1.0, 1e-8) {
			t.Errorf("root %d: |r|=%v, expected 1.0", i, cmplx.Abs(r))
		}

		val := PolyEval(coeff, r)
		if cmplx.Abs(val) > 1e-7 {
			t.Errorf("root %d: p(r) = %v, expected ~0", i, val)
		}
	}
}

func TestDurandKerner_LargeCoeffRange(t *testing.T) {
	// Polynomial with very different coefficient magnitudes
	coeff := []complex128{1e6, 0, 1e-3, 0, 1e6}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Skipf("large coefficient range: %v (known limitation)", err)
		return
	}

	for i, r := range roots {
		val := PolyEval(coeff, r)

		residual := cmplx.Abs(val) / 1e6
		if residual > 1e-4 {
			t.Errorf("root %d: relative residual = %e", i, residual)
		}
	}
}

func TestExpand(t *testing.T) {
	// (z-1)(z-2)(z+3) = z^3 - 7z + 6
	got := Expand([]complex128{1, 2, -3})
	want := []float64{1, 0, -7, 6}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}

	for i := range want {
		if !almostEqual(real(got[i]), want[i], 1e-12) || imag(got[i]) != 0 {
			t.Errorf("coeff[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestExpandRoundTrip(t *testing.T) {
	coeff := []complex128{2, -3, 0.5, 7, -1.25}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	got := Expand(roots)
	for i := range coeff {
		want := coeff[i] / coeff[0]
		if cmplx.Abs(got[i]-want) > 1e-9 {
			t.Errorf("coeff[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestRealCoefficients(t *testing.T) {
	conj := Expand([]complex128{complex(0.5, 0.25), complex(0.5, -0.25)})

	re, err := RealCoefficients(conj, 1e-12)
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(re[1], -1, 1e-12) || !almostEqual(re[2], 0.3125, 1e-12) {
		t.Errorf("got %v, want [1 -1 0.3125]", re)
	}

	if _, err := RealCoefficients(Expand([]complex128{complex(0, 1)}), 1e-12); err != ErrNotReal {
		t.Errorf("err = %v, want ErrNotReal", err)
	}
}

func TestPolish(t *testing.T) {
	// z^2 - 2, start near sqrt(2)
	coeff := []complex128{1, 0, -2}

	got := Polish(coeff, 1.4)
	if !almostEqual(real(got), math.Sqrt2, 1e-14) {
		t.Errorf("Polish = %v, want %v", got, math.Sqrt2)
	}
}

func TestDurandKerner_HighDegreeBinomialSeries(t *testing.T) {
	// sum_k C(n-1+k, k) y^k appears in maximally flat filter design.
	const n = 12

	coeff := make([]complex128, n)
	c := 1.0
	for k := range n {
		coeff[n-1-k] = complex(c, 0)
		c = c * float64(n+k) / float64(k+1)
	}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != n-1 {
		t.Fatalf("expected %d roots, got %d", n-1, len(roots))
	}

	for i, r := range roots {
		val := PolyEval(coeff, r) / coeff[0]
		if cmplx.Abs(val) > 1e-6*math.Max(1, math.Pow(cmplx.Abs(r), n-1)) {
			t.Errorf("root %d: residual %v", i, val)
		}
	}
}
