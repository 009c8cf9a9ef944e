package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(10, 500, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	// First sample of a sine at phase 0 should be 0.
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	// All values in [-1, 1].
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestDeterministicSineReproducible(t *testing.T) {
	a := DeterministicSine(1.2, 360, 0.5, 100)
	b := DeterministicSine(1.2, 360, 0.5, 100)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
	}
}

func TestDeterministicNoiseDifferentSeeds(t *testing.T) {
	a := DeterministicNoise(1, 1.0, 16)
	b := DeterministicNoise(2, 1.0, 16)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestDeterministicSineInvalid(t *testing.T) {
	if got := DeterministicSine(10, 500, 1, 0); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestDeterministicNoiseBounded(t *testing.T) {
	for i, v := range DeterministicNoise(3, 0.25, 500) {
		if math.Abs(v) > 0.25 {
			t.Fatalf("noise[%d] = %v exceeds amplitude", i, v)
		}
	}
}

func TestDC(t *testing.T) {
	d := DC(0.5, 4)
	for i, v := range d {
		if v != 0.5 {
			t.Fatalf("DC[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestSyntheticECG(t *testing.T) {
	x := SyntheticECG(250, 60, 1000, 4, 0)
	if len(x) != 1000 {
		t.Fatalf("len = %d, want 1000", len(x))
	}
	RequireFinite(t, x)
	if math.Abs(x[80]-1000) > 1 {
		t.Fatalf("x[80] = %v, want R wave ~1000", x[80])
	}

	noisy := SyntheticECG(250, 60, 1000, 4, 10)
	diff, err := MaxAbsDiff(x, noisy)
	if err != nil {
		t.Fatal(err)
	}
	if diff == 0 || diff > 10 {
		t.Fatalf("noise max deviation = %v, want (0, 10]", diff)
	}
}
