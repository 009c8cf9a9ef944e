package ecg

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/wavelet"
)

// Result is the outcome of Denoise.
type Result struct {
	IsECG bool
	// AmplificationRatio is the gain applied to the amplified levels. It
	// is NaN when the signal is not an ECG or too short to analyse.
	AmplificationRatio float64
	// Amplified has the length of the input. It is a copy of the input
	// unless amplification took place.
	Amplified []float64
	// Beats are R-peak candidates as input sample indices.
	Beats        []int
	BorderLength int
	Wavelet      string
	// Coefficients is the full decomposition of the zero-padded input, or
	// an empty stack when the input was too short.
	Coefficients wavelet.Stack
	Diagnostics  Diagnostics
}

// Diagnostics describes the levels and scores behind a Result.
type Diagnostics struct {
	QRSLevels  wavelet.Levels
	ECGLevels  wavelet.Levels
	Depth      int
	Confidence float64
	Threshold  float64
	// QRSAmplitude is the 75th percentile of per-beat peak-to-peak
	// amplitudes; NaN when not computed.
	QRSAmplitude float64
	// AmplifiedLevels is the inclusive range of rescaled levels; the zero
	// value when nothing was rescaled.
	AmplifiedLevels wavelet.Levels
}

// Denoise classifies samples and, for ECG traces whose QRS amplitude is
// below the amplification floor, rescales the detail levels chosen by the
// amplify mode so that the QRS amplitude approaches the standard
// amplitude. The reconstruction drops the lowest-frequency approximation,
// is rounded to integers and has its borders rebuilt according to the
// sides mode. Options are validated before any computation.
func Denoise(samples []float64, fs int, opts ...Option) (Result, error) {
	cfg := applyOptions(opts)
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	if err := (core.Signal{Fs: fs}).Validate(); err != nil {
		return Result{}, err
	}
	if err := wavelet.ValidateEngine(cfg.engine); err != nil {
		return Result{}, err
	}

	f, err := wavelet.Lookup(cfg.wavelet)
	if err != nil {
		return Result{}, err
	}

	qrs, err := wavelet.LevelRange(float64(fs), qrsLowHz, qrsHighHz, wavelet.RoundInner)
	if err != nil {
		return Result{}, err
	}
	band, err := wavelet.LevelRange(float64(fs), ecgLowHz, ecgHighHz, wavelet.RoundOuter)
	if err != nil {
		return Result{}, err
	}

	n := len(samples)
	t := newTiming(fs)
	depth := band.Hi + 1
	diag := Diagnostics{QRSLevels: qrs, ECGLevels: band, Depth: depth, QRSAmplitude: math.NaN(), Threshold: math.NaN()}

	if need := t.minLength(depth); n < need {
		cfg.logger.Warn("signal too short for wavelet denoising",
			zap.Int("length", n),
			zap.Int("required", need),
		)
		return Result{
			AmplificationRatio: math.NaN(),
			Amplified:          clone(samples),
			Beats:              []int{},
			BorderLength:       t.border,
			Wavelet:            f.Name,
			Diagnostics:        diag,
		}, nil
	}

	stack, err := decompose(samples, f, depth, cfg)
	if err != nil {
		return Result{}, err
	}

	a, err := analyze(n, fs, stack, f, qrs, t, cfg)
	if err != nil {
		return Result{}, err
	}
	diag.Confidence = a.confidence
	diag.Threshold = a.env.Threshold

	res := Result{
		IsECG:              a.isECG,
		AmplificationRatio: math.NaN(),
		Amplified:          clone(samples),
		Beats:              shift(a.beats, t.border),
		BorderLength:       t.border,
		Wavelet:            f.Name,
		Coefficients:       stack,
		Diagnostics:        diag,
	}
	if !a.isECG {
		return res, nil
	}

	amp := qrsAmplitude(samples, res.Beats, t.qrsRadius)
	ratio := amplificationRatio(amp, cfg)
	res.AmplificationRatio = ratio
	res.Diagnostics.QRSAmplitude = amp

	cfg.logger.Debug("qrs amplitude",
		zap.Float64("amplitude", amp),
		zap.Float64("ratio", ratio),
		zap.Stringer("mode", cfg.amplify),
	)

	if cfg.amplify == AmplifyNone || ratio <= 1 {
		return res, nil
	}

	lo, hi := amplifyLevels(cfg.amplify, qrs, band, depth)
	gain := func(level int) float64 {
		if level >= lo && level < hi {
			return ratio
		}
		return 1
	}

	rec, err := wavelet.ISWT(stack.Select(gain, false), f, wavelet.WithEngine(cfg.engine))
	if err != nil {
		return Result{}, err
	}

	out := rec[:n:n]
	for i, v := range out {
		out[i] = math.RoundToEven(v)
	}
	applySides(out, t.border, cfg.sides, cfg.cval)
	cfg.observe("amplified", out)

	res.Amplified = out
	if hi > lo {
		res.Diagnostics.AmplifiedLevels = wavelet.Levels{Lo: lo, Hi: hi - 1}
	}

	return res, nil
}

// amplifyLevels returns the half-open level range [lo, hi) rescaled by
// mode, clipped to the decomposition.
func amplifyLevels(mode AmplifyMode, qrs, band wavelet.Levels, depth int) (int, int) {
	var lo, hi int
	switch mode {
	case AmplifyECG:
		lo, hi = band.Lo, band.Hi-2
	case AmplifyQRS:
		lo, hi = qrs.Lo-1, qrs.Hi+1
	case AmplifyAll:
		lo, hi = 1, band.Hi+1
	case AmplifyNone:
		return 0, 0
	}
	return max(lo, 1), min(hi, depth+1)
}

// qrsAmplitude is the 75th percentile of the peak-to-peak amplitude of
// samples within radius of each beat.
func qrsAmplitude(samples []float64, beats []int, radius int) float64 {
	amps := make([]float64, 0, len(beats))
	for _, r := range beats {
		seg := samples[max(r-radius, 0):min(r+radius+1, len(samples))]
		if len(seg) == 0 {
			continue
		}
		amps = append(amps, floats.Max(seg)-floats.Min(seg))
	}
	return percentile(amps, 75)
}

// amplificationRatio scales amp up to the standard amplitude when it lies
// below the floor. A flat or unmeasurable QRS is left unscaled.
func amplificationRatio(amp float64, cfg config) float64 {
	if !(amp > 0) {
		cfg.logger.Debug("degenerate qrs amplitude, amplification skipped", zap.Float64("amplitude", amp))
		return 1
	}
	if amp < cfg.amplificationFloor {
		return cfg.standardAmplitude / amp
	}
	return 1
}

func clone(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	return out
}
