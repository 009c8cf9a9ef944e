package peaks

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Edge selects which side of a flat-topped peak is reported.
type Edge int

const (
	// EdgeRising reports the first sample of a plateau.
	EdgeRising Edge = iota
	// EdgeFalling reports the last sample of a plateau.
	EdgeFalling
	// EdgeBoth reports both ends of a plateau.
	EdgeBoth
	// EdgeNone reports strict peaks only; plateaus are ignored.
	EdgeNone
)

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	case EdgeBoth:
		return "both"
	case EdgeNone:
		return "none"
	default:
		return fmt.Sprintf("Edge(%d)", int(e))
	}
}

// ParseEdge maps "rising", "falling", "both" or "none" to an Edge.
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rising":
		return EdgeRising, nil
	case "falling":
		return EdgeFalling, nil
	case "both":
		return EdgeBoth, nil
	case "none", "":
		return EdgeNone, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidEdge, s)
	}
}

// Option configures Detect.
type Option func(*config)

type config struct {
	minHeight      float64
	hasMinHeight   bool
	minDistance    int
	threshold      float64
	leftThreshold  float64
	rightThreshold float64
	prominence     float64
	hasProminence  bool
	window         int
	edge           Edge
	keepEqual      bool
	valleys        bool
	logger         *zap.Logger
}

func defaultConfig() config {
	return config{
		minDistance: 1,
		edge:        EdgeRising,
		logger:      zap.NewNop(),
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) validate() error {
	if c.edge < EdgeRising || c.edge > EdgeNone {
		return fmt.Errorf("%w: %v", ErrInvalidEdge, c.edge)
	}
	if c.minDistance < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidDistance, c.minDistance)
	}
	if c.window == 1 || c.window < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWindow, c.window)
	}
	return nil
}

// WithMinHeight discards peaks below h. With WithValleys, h is instead the
// highest value a valley may have.
func WithMinHeight(h float64) Option {
	return func(c *config) {
		c.minHeight = h
		c.hasMinHeight = true
	}
}

// WithMinDistance sets the minimum spacing between peaks in samples.
// The default is 1.
func WithMinDistance(mpd int) Option {
	return func(c *config) { c.minDistance = mpd }
}

// WithThreshold sets the default rise a peak needs over its neighbours.
func WithThreshold(t float64) Option {
	return func(c *config) { c.threshold = t }
}

// WithLeftThreshold overrides the threshold on the left side when positive.
func WithLeftThreshold(t float64) Option {
	return func(c *config) { c.leftThreshold = t }
}

// WithRightThreshold overrides the threshold on the right side when positive.
func WithRightThreshold(t float64) Option {
	return func(c *config) { c.rightThreshold = t }
}

// WithProminence keeps only peaks with at least the given prominence.
func WithProminence(p float64) Option {
	return func(c *config) {
		c.prominence = p
		c.hasProminence = true
	}
}

// WithProminenceWindow limits the prominence search to wlen samples
// centred on each peak. Zero means the whole signal.
func WithProminenceWindow(wlen int) Option {
	return func(c *config) { c.window = wlen }
}

// WithEdge selects plateau handling. The default is EdgeRising.
func WithEdge(e Edge) Option {
	return func(c *config) { c.edge = e }
}

// WithKeepEqualHeight keeps peaks closer than the minimum distance when
// their heights are identical.
func WithKeepEqualHeight() Option {
	return func(c *config) { c.keepEqual = true }
}

// WithValleys detects local minima instead of maxima.
func WithValleys() Option {
	return func(c *config) { c.valleys = true }
}

// WithLogger routes stage diagnostics to l at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
