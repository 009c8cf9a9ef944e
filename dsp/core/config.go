package core

import "fmt"

// DefaultSampleRate is the sampling frequency assumed for surface ECG
// recordings when none is configured.
const DefaultSampleRate = 500

// ProcessorConfig carries settings shared by sample-rate aware processors.
type ProcessorConfig struct {
	SampleRate float64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns a config at DefaultSampleRate.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{SampleRate: DefaultSampleRate}
}

// WithSampleRate sets the processing sample rate in Hz. Non-positive
// rates are ignored.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// ForSignal takes the sample rate from s.
func ForSignal(s Signal) ProcessorOption {
	return WithSampleRate(float64(s.Fs))
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Samples returns the number of samples covering seconds at the
// configured rate.
func (c ProcessorConfig) Samples(seconds float64) int {
	return int(seconds * c.SampleRate)
}

// Validate checks the configured sample rate.
func (c ProcessorConfig) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, c.SampleRate)
	}
	return nil
}
