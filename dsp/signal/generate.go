package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-ecg/dsp/core"
)

// Generator creates deterministic test signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.validate("sine", samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if err := g.validate("noise", samples); err != nil {
		return nil, err
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// wave is one Gaussian deflection of the synthetic heartbeat. Center and
// width are fractions of the beat period, gain is relative to the R wave.
type wave struct {
	gain, center, width float64
}

var beatShape = [...]wave{
	{gain: 0.08, center: 0.18, width: 0.03},   // P
	{gain: -0.12, center: 0.30, width: 0.01},  // Q
	{gain: 1.00, center: 0.32, width: 0.008},  // R
	{gain: -0.25, center: 0.35, width: 0.012}, // S
	{gain: 0.25, center: 0.60, width: 0.06},   // T
}

// ECG generates a synthetic, non-clinical single-lead ECG trace with a
// constant heart rate. The R wave reaches amplitude at 0.32 of every beat
// period.
func (g *Generator) ECG(bpm, amplitude float64, samples int) ([]float64, error) {
	if err := g.validate("ecg", samples); err != nil {
		return nil, err
	}
	if bpm <= 0 {
		return nil, fmt.Errorf("ecg heart rate must be > 0: %f", bpm)
	}

	scale := amplitude / beatValue(beatShape[2].center)
	cycle := bpm / 60 / g.cfg.SampleRate
	out := make([]float64, samples)
	for i := range out {
		out[i] = scale * beatValue(math.Mod(cycle*float64(i), 1))
	}
	return out, nil
}

func beatValue(phase float64) float64 {
	v := 0.0
	for _, w := range beatShape {
		z := (phase - w.center) / w.width
		v += w.gain * math.Exp(-0.5*z*z)
	}
	return v
}

// BaselineWander generates the sum of low-frequency sinusoids used to model
// respiration and electrode drift. freqs and amps must have equal length.
func (g *Generator) BaselineWander(freqs, amps []float64, samples int) ([]float64, error) {
	if len(freqs) != len(amps) {
		return nil, fmt.Errorf("baseline wander: %d frequencies for %d amplitudes", len(freqs), len(amps))
	}
	if err := g.validate("baseline wander", samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	for k := range freqs {
		s, err := g.Sine(freqs[k], amps[k], samples)
		if err != nil {
			return nil, err
		}
		for i := range out {
			out[i] += s[i]
		}
	}
	return out, nil
}

func (g *Generator) validate(kind string, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%s samples must be > 0: %d", kind, samples)
	}
	if err := g.cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", kind, err)
	}
	return nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
