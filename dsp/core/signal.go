package core

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSampleRate is returned for non-positive sampling frequencies.
var ErrInvalidSampleRate = errors.New("core: sample rate must be > 0")

// Signal is a single-lead recording: a sample slice plus its sampling
// frequency in Hz.
type Signal struct {
	Samples []float64
	Fs      int
}

// Len returns the number of samples.
func (s Signal) Len() int { return len(s.Samples) }

// Duration returns the recording length as a time.Duration.
func (s Signal) Duration() time.Duration {
	if s.Fs <= 0 {
		return 0
	}
	return time.Duration(float64(len(s.Samples)) / float64(s.Fs) * float64(time.Second))
}

// Clone returns a deep copy of s.
func (s Signal) Clone() Signal {
	out := Signal{Fs: s.Fs, Samples: make([]float64, len(s.Samples))}
	copy(out.Samples, s.Samples)
	return out
}

// Validate reports whether s has a usable sampling frequency.
func (s Signal) Validate() error {
	if s.Fs <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, s.Fs)
	}
	return nil
}
