package ecg

import (
	"fmt"
	"strconv"

	vecmath "github.com/cwbudde/algo-vecmath"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/wavelet"
)

// Frequency bands in Hz.
const (
	qrsLowHz  = 10.0
	qrsHighHz = 40.0
	ecgLowHz  = 0.5
	ecgHighHz = 45.0
)

// timing holds the sample counts derived from the sampling frequency.
type timing struct {
	step      int // 100 ms, envelope scan step and minimum beat spacing
	radius    int // 300 ms, swing window radius
	border    int // 600 ms trimmed from each end of the envelope
	qrsRadius int // 100 ms, half width of a QRS complex
}

func newTiming(fs int) timing {
	radius := max(core.SecondsToSamples(0.3, fs), 1)
	return timing{
		step:      max(core.SecondsToSamples(0.1, fs), 1),
		radius:    radius,
		border:    2 * radius,
		qrsRadius: core.SecondsToSamples(0.1, fs),
	}
}

// minLength is the shortest signal that fits a depth-level decomposition
// and still leaves one full swing window after trimming both borders.
func (t timing) minLength(depth int) int {
	return max(1<<depth, 2*t.border+2*t.radius+1)
}

// QRSEnvelope is the squared 10-40 Hz band of a signal with BorderLength
// samples trimmed from each end. Power[k] corresponds to input sample
// k+BorderLength.
type QRSEnvelope struct {
	Power        []float64
	Swings       []float64 // max-min of Power in each scan window
	Threshold    float64   // half the median swing
	Step         int
	WindowRadius int
	BorderLength int
	QRSLevels    wavelet.Levels
	Depth        int
	Stack        wavelet.Stack
}

// Envelope computes the QRS power envelope of samples recorded at fs Hz.
// It fails with ErrSignalTooShort when the signal is shorter than the
// decomposition or the trimmed scan window requires.
func Envelope(samples []float64, fs int, opts ...Option) (QRSEnvelope, error) {
	cfg := applyOptions(opts)
	if err := (core.Signal{Fs: fs}).Validate(); err != nil {
		return QRSEnvelope{}, err
	}

	f, err := wavelet.Lookup(cfg.wavelet)
	if err != nil {
		return QRSEnvelope{}, err
	}

	qrs, err := wavelet.LevelRange(float64(fs), qrsLowHz, qrsHighHz, wavelet.RoundInner)
	if err != nil {
		return QRSEnvelope{}, err
	}

	t := newTiming(fs)
	depth := qrs.Hi
	if need := t.minLength(depth); len(samples) < need {
		return QRSEnvelope{}, fmt.Errorf("%w: %d samples, need %d", ErrSignalTooShort, len(samples), need)
	}

	stack, err := decompose(samples, f, depth, cfg)
	if err != nil {
		return QRSEnvelope{}, err
	}

	return buildEnvelope(len(samples), stack, f, qrs, t, cfg)
}

func decompose(samples []float64, f wavelet.Filter, depth int, cfg config) (wavelet.Stack, error) {
	padded, err := wavelet.Pad(samples, depth)
	if err != nil {
		return wavelet.Stack{}, err
	}

	cfg.logger.Debug("wavelet decomposition",
		zap.String("wavelet", f.Name),
		zap.Int("depth", depth),
		zap.Int("length", len(samples)),
		zap.Int("padding", len(padded)-len(samples)),
		zap.Stringer("engine", cfg.engine),
	)

	return wavelet.SWT(padded, f, depth, wavelet.WithEngine(cfg.engine))
}

// buildEnvelope reconstructs each QRS level on its own, sums them, trims
// the borders and squares the result.
func buildEnvelope(n int, stack wavelet.Stack, f wavelet.Filter, qrs wavelet.Levels, t timing, cfg config) (QRSEnvelope, error) {
	recs, err := wavelet.ExtractLevels(stack, f, qrs, wavelet.WithEngine(cfg.engine))
	if err != nil {
		return QRSEnvelope{}, err
	}

	band := make([]float64, n)
	for k, rec := range recs {
		vecmath.AddBlockInPlace(band, rec[:n])
		cfg.observe("qrs-level-"+strconv.Itoa(qrs.Lo+k), rec[:n])
	}

	seg := band[t.border : n-t.border]
	power := make([]float64, len(seg))
	vecmath.MulBlock(power, seg, seg)
	cfg.observe("qrs-power", power)

	swings := make([]float64, 0, len(power)/t.step+1)
	for idx := t.radius; idx < len(power)-t.radius; idx += t.step {
		w := power[idx-t.radius : idx+t.radius+1]
		swings = append(swings, floats.Max(w)-floats.Min(w))
	}

	env := QRSEnvelope{
		Power:        power,
		Swings:       swings,
		Threshold:    0.5 * percentile(swings, 50),
		Step:         t.step,
		WindowRadius: t.radius,
		BorderLength: t.border,
		QRSLevels:    qrs,
		Depth:        stack.Depth(),
		Stack:        stack,
	}

	cfg.logger.Debug("qrs envelope",
		zap.Stringer("qrs_levels", qrs),
		zap.Int("windows", len(swings)),
		zap.Float64("threshold", env.Threshold),
	)

	return env, nil
}
