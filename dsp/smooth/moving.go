// Package smooth provides moving averages and window-based smoothing for
// sampled signals.
package smooth

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidMethod is returned for unknown moving average methods.
	ErrInvalidMethod = errors.New("smooth: invalid moving average method")
	// ErrInvalidWindow is returned for window lengths below 1 or unknown
	// window kinds.
	ErrInvalidWindow = errors.New("smooth: invalid window")
	// ErrInvalidWeight is returned for exponential weights outside [0, 1).
	ErrInvalidWeight = errors.New("smooth: exponential weight must be in [0, 1)")
)

// Method is a moving average flavour.
type Method int

const (
	// Simple averages the last Window samples, or the Window samples
	// centred on each output with WithCenter.
	Simple Method = iota
	// Exponential mixes each sample into the running output with the
	// previous output weighted by Weight.
	Exponential
	// Cumulative averages every sample seen so far.
	Cumulative
	// Weighted applies linearly decreasing weights Window..1.
	Weighted
)

var methodNames = [...]string{"simple", "exponential", "cumulative", "weighted"}

func (m Method) String() string {
	if m >= 0 && int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod accepts the method names and the abbreviations sma, ema,
// ewma, cma and wma.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sma", "simple":
		return Simple, nil
	case "ema", "ewma", "exponential":
		return Exponential, nil
	case "cma", "cumulative":
		return Cumulative, nil
	case "wma", "weighted":
		return Weighted, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
}

// Option configures MovingAverage.
type Option func(*config)

type config struct {
	window int
	center bool
	weight float64
}

func defaultConfig() config {
	return config{window: 5, weight: 0.6}
}

// WithWindow sets the window length of Simple and Weighted. Default 5.
func WithWindow(n int) Option {
	return func(c *config) { c.window = n }
}

// WithCenter centres Simple windows on each output sample.
func WithCenter(on bool) Option {
	return func(c *config) { c.center = on }
}

// WithWeight sets the weight of the previous output for Exponential.
// Default 0.6.
func WithWeight(w float64) Option {
	return func(c *config) { c.weight = w }
}

// MovingAverage smooths x with the given method. The output has the
// length of x. Windows are clipped at the signal edges.
func MovingAverage(x []float64, m Method, opts ...Option) ([]float64, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	switch m {
	case Simple:
		if cfg.window < 1 {
			return nil, fmt.Errorf("%w: length %d", ErrInvalidWindow, cfg.window)
		}
		return simple(x, cfg.window, cfg.center), nil
	case Exponential:
		if !(cfg.weight >= 0 && cfg.weight < 1) {
			return nil, fmt.Errorf("%w: %g", ErrInvalidWeight, cfg.weight)
		}
		return exponential(x, cfg.weight), nil
	case Cumulative:
		return cumulative(x), nil
	case Weighted:
		if cfg.window < 1 {
			return nil, fmt.Errorf("%w: length %d", ErrInvalidWindow, cfg.window)
		}
		return weighted(x, cfg.window), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidMethod, m)
	}
}

func simple(x []float64, window int, center bool) []float64 {
	n := len(x)
	prefix := make([]float64, n+1)
	for i, v := range x {
		prefix[i+1] = prefix[i] + v
	}

	out := make([]float64, n)
	half := window / 2
	for i := range out {
		lo, hi := max(i-window+1, 0), i+1
		if center {
			lo, hi = max(i-half, 0), min(i+half+1, n)
		}
		out[i] = (prefix[hi] - prefix[lo]) / float64(hi-lo)
	}
	return out
}

func exponential(x []float64, weight float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}
	prev := x[0]
	for i, v := range x {
		prev = prev*weight + (1-weight)*v
		out[i] = prev
	}
	return out
}

func cumulative(x []float64) []float64 {
	out := make([]float64, len(x))
	prev := 0.0
	for i, v := range x {
		prev += (v - prev) / float64(i+1)
		out[i] = prev
	}
	return out
}

// weighted gives sample i+off weight window, i+off-1 weight window-1 and
// so on, with off = (window-1)/2 and zeros beyond the edges.
func weighted(x []float64, window int) []float64 {
	n := len(x)
	off := (window - 1) / 2
	norm := float64(window*(window+1)) / 2

	out := make([]float64, n)
	for i := range out {
		acc := 0.0
		for j := range window {
			k := i + off - j
			if k >= 0 && k < n {
				acc += float64(window-j) * x[k]
			}
		}
		out[i] = acc / norm
	}
	return out
}
