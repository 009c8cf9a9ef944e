package ecg

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-ecg/dsp/wavelet"
)

// AmplifyMode selects which detail levels Denoise rescales.
type AmplifyMode int

const (
	// AmplifyECG rescales the levels covering the ECG band below the QRS
	// complex.
	AmplifyECG AmplifyMode = iota
	// AmplifyQRS rescales the QRS levels and one neighbour on each side.
	AmplifyQRS
	// AmplifyAll rescales every detail level.
	AmplifyAll
	// AmplifyNone leaves the signal unchanged.
	AmplifyNone
)

var amplifyNames = [...]string{"ecg", "qrs", "all", "none"}

func (m AmplifyMode) String() string {
	if m >= 0 && int(m) < len(amplifyNames) {
		return amplifyNames[m]
	}
	return fmt.Sprintf("AmplifyMode(%d)", int(m))
}

// ParseAmplifyMode maps "ecg", "qrs", "all" or "none" to an AmplifyMode.
func ParseAmplifyMode(s string) (AmplifyMode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range amplifyNames {
		if key == name {
			return AmplifyMode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAmplifyMode, s)
}

// SidesMode selects how the first and last BorderLength samples of an
// amplified signal are rebuilt.
type SidesMode int

const (
	// SidesNearest repeats the first and last interior samples.
	SidesNearest SidesMode = iota
	// SidesMirror reflects the adjacent interior samples.
	SidesMirror
	// SidesWrap copies the opposite interior block, shifted to join
	// continuously.
	SidesWrap
	// SidesConstant fills both ends with the configured constant.
	SidesConstant
	// SidesNoSlicing keeps the reconstructed ends as they are.
	SidesNoSlicing
	// SidesInterp is reserved and always rejected.
	SidesInterp
)

var sidesNames = [...]string{"nearest", "mirror", "wrap", "constant", "no_slicing", "interp"}

func (m SidesMode) String() string {
	if m >= 0 && int(m) < len(sidesNames) {
		return sidesNames[m]
	}
	return fmt.Sprintf("SidesMode(%d)", int(m))
}

// ParseSidesMode maps a mode name such as "nearest" or "no_slicing" to a
// SidesMode.
func ParseSidesMode(s string) (SidesMode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range sidesNames {
		if key == name {
			return SidesMode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSidesMode, s)
}

// Sink receives intermediate signals for inspection. It is only called
// when the verbosity is at least 2.
type Sink interface {
	Observe(stage string, data []float64)
}

// Option configures Envelope, Classify and Denoise.
type Option func(*config)

type config struct {
	wavelet            string
	amplify            AmplifyMode
	sides              SidesMode
	cval               float64
	standardAmplitude  float64
	amplificationFloor float64
	engine             wavelet.Engine
	logger             *zap.Logger
	verbosity          int
	sink               Sink
}

func defaultConfig() config {
	return config{
		wavelet:            "db6",
		amplify:            AmplifyECG,
		sides:              SidesNearest,
		standardAmplitude:  1100,
		amplificationFloor: 500,
		engine:             wavelet.EngineDirect,
		logger:             zap.NewNop(),
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (c config) validate() error {
	if c.amplify < AmplifyECG || c.amplify > AmplifyNone {
		return fmt.Errorf("%w: %v", ErrInvalidAmplifyMode, c.amplify)
	}
	if c.sides == SidesInterp {
		return fmt.Errorf("%w: %v", ErrSidesNotImplemented, c.sides)
	}
	if c.sides < SidesNearest || c.sides > SidesInterp {
		return fmt.Errorf("%w: %v", ErrInvalidSidesMode, c.sides)
	}
	if c.standardAmplitude <= 0 || c.amplificationFloor <= 0 {
		return fmt.Errorf("%w: standard=%g floor=%g", ErrInvalidAmplitude, c.standardAmplitude, c.amplificationFloor)
	}
	return nil
}

func (c config) observe(stage string, data []float64) {
	if c.sink != nil && c.verbosity >= 2 {
		c.sink.Observe(stage, data)
	}
}

// WithWavelet selects the decomposition filter by name. The default is db6.
func WithWavelet(name string) Option {
	return func(c *config) { c.wavelet = name }
}

// WithAmplify selects the amplification mode. The default is AmplifyECG.
func WithAmplify(m AmplifyMode) Option {
	return func(c *config) { c.amplify = m }
}

// WithSides selects the boundary correction. The default is SidesNearest.
func WithSides(m SidesMode) Option {
	return func(c *config) { c.sides = m }
}

// WithConstant sets the fill value for SidesConstant.
func WithConstant(cval float64) Option {
	return func(c *config) { c.cval = cval }
}

// WithStandardAmplitude sets the QRS amplitude that weak signals are
// scaled to. The default is 1100 (microvolts).
func WithStandardAmplitude(a float64) Option {
	return func(c *config) { c.standardAmplitude = a }
}

// WithAmplificationFloor sets the QRS amplitude below which a signal is
// amplified. The default is 500 (microvolts).
func WithAmplificationFloor(a float64) Option {
	return func(c *config) { c.amplificationFloor = a }
}

// WithEngine selects the wavelet filtering engine.
func WithEngine(e wavelet.Engine) Option {
	return func(c *config) { c.engine = e }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithVerbosity sets the diagnostic level. At 2 and above intermediate
// signals are passed to the Sink.
func WithVerbosity(v int) Option {
	return func(c *config) { c.verbosity = v }
}

// WithDiagnostics installs a Sink for intermediate signals.
func WithDiagnostics(s Sink) Option {
	return func(c *config) { c.sink = s }
}
