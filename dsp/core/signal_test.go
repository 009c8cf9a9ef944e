package core

import (
	"errors"
	"testing"
	"time"
)

func TestSignalDuration(t *testing.T) {
	s := Signal{Samples: make([]float64, 1250), Fs: 500}
	if got := s.Duration(); got != 2500*time.Millisecond {
		t.Fatalf("Duration() = %v, want 2.5s", got)
	}
	if s.Len() != 1250 {
		t.Fatalf("Len() = %d, want 1250", s.Len())
	}
}

func TestSignalCloneIsDeep(t *testing.T) {
	s := Signal{Samples: []float64{1, 2, 3}, Fs: 250}
	c := s.Clone()
	c.Samples[0] = 42
	if s.Samples[0] != 1 {
		t.Fatal("Clone shares the sample slice")
	}
}

func TestSignalValidate(t *testing.T) {
	if err := (Signal{Fs: 0}).Validate(); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("Validate() = %v, want ErrInvalidSampleRate", err)
	}
	if err := (Signal{Fs: 1}).Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}
