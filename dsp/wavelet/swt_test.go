package wavelet

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ecg/internal/testutil"
)

var engines = []Engine{EngineDirect, EngineFFT}

func TestSWTPerfectReconstruction(t *testing.T) {
	x := testutil.DeterministicNoise(3, 1, 128)

	for _, name := range []string{"haar", "db2", "db6"} {
		f, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range engines {
			for depth := 1; depth <= 5; depth++ {
				stack, err := SWT(x, f, depth, WithEngine(e))
				if err != nil {
					t.Fatalf("%s/%v/%d: SWT error = %v", name, e, depth, err)
				}
				if stack.Depth() != depth || stack.Len() != len(x) {
					t.Fatalf("%s/%v/%d: stack shape %dx%d", name, e, depth, stack.Depth(), stack.Len())
				}
				got, err := ISWT(stack, f, WithEngine(e))
				if err != nil {
					t.Fatalf("%s/%v/%d: ISWT error = %v", name, e, depth, err)
				}
				testutil.RequireSliceNearlyEqual(t, got, x, 1e-9)
			}
		}
	}
}

func TestEnginesAgree(t *testing.T) {
	x := testutil.DeterministicSine(7, 100, 1, 96)
	f, err := Lookup("db4")
	if err != nil {
		t.Fatal(err)
	}

	direct, err := SWT(x, f, 5)
	if err != nil {
		t.Fatal(err)
	}
	fft, err := SWT(x, f, 5, WithEngine(EngineFFT))
	if err != nil {
		t.Fatal(err)
	}

	for j := range direct.Levels {
		testutil.RequireSliceNearlyEqual(t, fft.Levels[j].Approx, direct.Levels[j].Approx, 1e-9)
		testutil.RequireSliceNearlyEqual(t, fft.Levels[j].Detail, direct.Levels[j].Detail, 1e-9)
	}
}

func TestSWTConstantHasNoDetail(t *testing.T) {
	f, err := Lookup("db6")
	if err != nil {
		t.Fatal(err)
	}
	stack, err := SWT(testutil.DC(3, 64), f, 3)
	if err != nil {
		t.Fatal(err)
	}
	for j, lv := range stack.Levels {
		for i, v := range lv.Detail {
			if math.Abs(v) > 1e-9 {
				t.Fatalf("level %d detail[%d] = %v, want 0", j+1, i, v)
			}
		}
	}
}

func TestSWTDoesNotModifyInput(t *testing.T) {
	x := testutil.DeterministicNoise(5, 1, 32)
	orig := append([]float64(nil), x...)
	f, _ := Lookup("db2")
	if _, err := SWT(x, f, 2, WithEngine(EngineFFT)); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, x, orig, 0)
}

func TestSWTInvalidArguments(t *testing.T) {
	f, _ := Lookup("db1")
	tests := []struct {
		name  string
		n     int
		depth int
		want  error
	}{
		{name: "zero depth", n: 16, depth: 0, want: ErrInvalidDepth},
		{name: "not divisible", n: 12, depth: 3, want: ErrInvalidDepth},
		{name: "empty", n: 0, depth: 1, want: ErrInvalidDepth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SWT(make([]float64, tt.n), f, tt.depth)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := SWT(make([]float64, 8), f, 1, WithEngine(Engine(9))); !errors.Is(err, ErrInvalidEngine) {
		t.Fatalf("err = %v, want ErrInvalidEngine", err)
	}
	if _, err := ISWT(Stack{}, f); !errors.Is(err, ErrEmptyStack) {
		t.Fatalf("err = %v, want ErrEmptyStack", err)
	}
}

func TestParseEngine(t *testing.T) {
	for in, want := range map[string]Engine{"": EngineDirect, "Direct": EngineDirect, "fft": EngineFFT} {
		got, err := ParseEngine(in)
		if err != nil || got != want {
			t.Errorf("ParseEngine(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseEngine("gpu"); !errors.Is(err, ErrInvalidEngine) {
		t.Errorf("ParseEngine(gpu) error = %v", err)
	}
	if EngineFFT.String() != "fft" {
		t.Errorf("String() = %q", EngineFFT.String())
	}
}
