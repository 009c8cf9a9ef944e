package ecg

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ecg/dsp/wavelet"
	"github.com/cwbudde/algo-ecg/internal/testutil"
)

func TestEnvelopeGeometry(t *testing.T) {
	const fs = 500
	x := testutil.SyntheticECG(fs, 72, 1000, 10, 0)

	env, err := Envelope(x, fs)
	if err != nil {
		t.Fatalf("Envelope() error = %v", err)
	}

	if env.Step != 50 || env.WindowRadius != 150 || env.BorderLength != 300 {
		t.Fatalf("timing = %d/%d/%d, want 50/150/300", env.Step, env.WindowRadius, env.BorderLength)
	}
	if env.QRSLevels != (wavelet.Levels{Lo: 4, Hi: 5}) || env.Depth != 5 {
		t.Fatalf("levels = %v depth %d", env.QRSLevels, env.Depth)
	}
	if len(env.Power) != len(x)-2*env.BorderLength {
		t.Fatalf("len(Power) = %d, want %d", len(env.Power), len(x)-2*env.BorderLength)
	}
	if want := (len(env.Power) - 2*env.WindowRadius + env.Step - 1) / env.Step; len(env.Swings) != want {
		t.Fatalf("len(Swings) = %d, want %d", len(env.Swings), want)
	}
	for i, v := range env.Power {
		if v < 0 {
			t.Fatalf("Power[%d] = %v is negative", i, v)
		}
	}
	if !(env.Threshold > 0) {
		t.Fatalf("Threshold = %v, want > 0", env.Threshold)
	}
	if env.Stack.Depth() != 5 || env.Stack.Len()%32 != 0 {
		t.Fatalf("stack %dx%d", env.Stack.Depth(), env.Stack.Len())
	}
}

func TestEnvelopeEnginesAgree(t *testing.T) {
	const fs = 250
	x := testutil.SyntheticECG(fs, 80, 800, 6, 5)

	direct, err := Envelope(x, fs)
	if err != nil {
		t.Fatal(err)
	}
	fft, err := Envelope(x, fs, WithEngine(wavelet.EngineFFT))
	if err != nil {
		t.Fatal(err)
	}

	diff, err := testutil.MaxAbsDiff(direct.Power, fft.Power)
	if err != nil {
		t.Fatal(err)
	}
	peak := 0.0
	for _, v := range direct.Power {
		peak = math.Max(peak, v)
	}
	if diff > 1e-9*peak {
		t.Fatalf("engines differ by %v (peak %v)", diff, peak)
	}
}

func TestEnvelopeTooShort(t *testing.T) {
	_, err := Envelope(make([]float64, 600), 500)
	if !errors.Is(err, ErrSignalTooShort) {
		t.Fatalf("err = %v, want ErrSignalTooShort", err)
	}
	if IsConfigError(err) {
		t.Fatal("short input is not a configuration error")
	}
}

func TestEnvelopeObservesStages(t *testing.T) {
	sink := &recordingSink{}
	x := testutil.SyntheticECG(500, 72, 1000, 3, 0)

	if _, err := Envelope(x, 500, WithDiagnostics(sink)); err != nil {
		t.Fatal(err)
	}
	if len(sink.stages) != 0 {
		t.Fatalf("sink called at verbosity 0: %v", sink.stages)
	}

	if _, err := Envelope(x, 500, WithDiagnostics(sink), WithVerbosity(2)); err != nil {
		t.Fatal(err)
	}
	want := []string{"qrs-level-4", "qrs-level-5", "qrs-power"}
	if len(sink.stages) != len(want) {
		t.Fatalf("stages = %v, want %v", sink.stages, want)
	}
	for i := range want {
		if sink.stages[i] != want[i] {
			t.Fatalf("stages = %v, want %v", sink.stages, want)
		}
	}
}

func TestPercentile(t *testing.T) {
	x := []float64{4, 1, 3, 2}
	tests := []struct {
		p, want float64
	}{
		{p: 0, want: 1},
		{p: 50, want: 2.5},
		{p: 75, want: 3.25},
		{p: 100, want: 4},
	}
	for _, tt := range tests {
		if got := percentile(x, tt.p); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if !math.IsNaN(percentile(nil, 50)) {
		t.Error("percentile of empty input should be NaN")
	}
	if x[0] != 4 {
		t.Error("percentile sorted its input")
	}
}
