package ecg

import (
	"go.uber.org/zap"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/peaks"
	"github.com/cwbudde/algo-ecg/dsp/wavelet"
	"github.com/cwbudde/algo-ecg/stats/rr"
)

// RR interval bands in milliseconds. A beat count consistent with the
// reasonable band scores high confidence, the wider valid band scores low.
const (
	reasonableRRMin = 300.0
	reasonableRRMax = 1500.0
	validRRMin      = 200.0
	validRRMax      = 3000.0

	highConfidence      = 1.0
	lowConfidence       = 0.4
	confidenceThreshold = 1.0
)

// Verdict is the outcome of Classify.
type Verdict struct {
	IsECG       bool
	Confidence  float64
	Beats       []int     // R-peak candidates as input sample indices
	RRIntervals []float64 // milliseconds between consecutive beats
	RR          rr.Stats
	QRSLevels   wavelet.Levels
	Depth       int
	Threshold   float64
}

// IsECG reports whether samples look like an ECG trace: the QRS envelope
// must show a beat count consistent with heart rates of 40 to 200 bpm.
// Signals too short for the analysis are not ECG; this is logged as a
// warning and is not an error.
func IsECG(samples []float64, fs int, opts ...Option) (bool, error) {
	v, err := Classify(samples, fs, opts...)
	return v.IsECG, err
}

// Classify is IsECG with the detected beats and scores.
func Classify(samples []float64, fs int, opts ...Option) (Verdict, error) {
	cfg := applyOptions(opts)
	if err := (core.Signal{Fs: fs}).Validate(); err != nil {
		return Verdict{}, err
	}

	f, err := wavelet.Lookup(cfg.wavelet)
	if err != nil {
		return Verdict{}, err
	}
	if err := wavelet.ValidateEngine(cfg.engine); err != nil {
		return Verdict{}, err
	}

	qrs, err := wavelet.LevelRange(float64(fs), qrsLowHz, qrsHighHz, wavelet.RoundInner)
	if err != nil {
		return Verdict{}, err
	}

	t := newTiming(fs)
	depth := qrs.Hi
	if need := t.minLength(depth); len(samples) < need {
		cfg.logger.Warn("signal too short for ecg classification",
			zap.Int("length", len(samples)),
			zap.Int("required", need),
		)
		return Verdict{Beats: []int{}, RRIntervals: []float64{}, RR: rr.Calculate(nil), QRSLevels: qrs, Depth: depth}, nil
	}

	stack, err := decompose(samples, f, depth, cfg)
	if err != nil {
		return Verdict{}, err
	}

	a, err := analyze(len(samples), fs, stack, f, qrs, t, cfg)
	if err != nil {
		return Verdict{}, err
	}

	beats := shift(a.beats, t.border)
	intervals := rr.Intervals(beats, float64(fs))

	return Verdict{
		IsECG:       a.isECG,
		Confidence:  a.confidence,
		Beats:       beats,
		RRIntervals: intervals,
		RR:          rr.Calculate(intervals),
		QRSLevels:   qrs,
		Depth:       depth,
		Threshold:   a.env.Threshold,
	}, nil
}

// analysis is the shared classifier core of Classify and Denoise.
type analysis struct {
	env        QRSEnvelope
	beats      []int // envelope coordinates
	confidence float64
	isECG      bool
}

func analyze(n, fs int, stack wavelet.Stack, f wavelet.Filter, qrs wavelet.Levels, t timing, cfg config) (analysis, error) {
	env, err := buildEnvelope(n, stack, f, qrs, t, cfg)
	if err != nil {
		return analysis{}, err
	}

	beats, err := peaks.Detect(env.Power,
		peaks.WithMinDistance(t.step),
		peaks.WithThreshold(env.Threshold),
		peaks.WithLogger(cfg.logger),
	)
	if err != nil {
		return analysis{}, err
	}

	// TODO: add an RR interval entropy score as a third confidence term.
	confidence := scoreBeatCount(len(beats), len(env.Power), fs)
	a := analysis{
		env:        env,
		beats:      beats,
		confidence: confidence,
		isECG:      confidence >= confidenceThreshold,
	}

	cfg.logger.Debug("ecg classification",
		zap.Int("beats", len(beats)),
		zap.Float64("confidence", confidence),
		zap.Bool("is_ecg", a.isECG),
	)

	return a, nil
}

// scoreBeatCount scores count beats over samples envelope samples at fs Hz.
// A trace without beats scores zero.
func scoreBeatCount(count, samples, fs int) float64 {
	if count == 0 {
		return 0
	}

	durationMs := float64(samples) * 1000 / float64(fs)
	c := float64(count)

	switch {
	case durationMs/reasonableRRMax <= c && c <= durationMs/reasonableRRMin:
		return highConfidence
	case durationMs/validRRMax <= c && c <= durationMs/validRRMin:
		return lowConfidence
	default:
		return 0
	}
}

func shift(idx []int, by int) []int {
	out := make([]int, len(idx))
	for i, v := range idx {
		out[i] = v + by
	}
	return out
}
