package ecg

import (
	"errors"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/peaks"
	"github.com/cwbudde/algo-ecg/dsp/wavelet"
)

var (
	// ErrInvalidAmplifyMode is returned for amplification modes outside
	// ecg, qrs, all and none.
	ErrInvalidAmplifyMode = errors.New("ecg: invalid amplify mode")
	// ErrInvalidSidesMode is returned for unknown boundary correction modes.
	ErrInvalidSidesMode = errors.New("ecg: invalid sides mode")
	// ErrSidesNotImplemented is returned when SidesInterp is selected.
	ErrSidesNotImplemented = errors.New("ecg: sides mode not implemented")
	// ErrInvalidAmplitude is returned for non-positive amplitude settings.
	ErrInvalidAmplitude = errors.New("ecg: amplitude settings must be > 0")
	// ErrSignalTooShort is returned by Envelope when the signal cannot hold
	// the decomposition or the trimmed analysis window.
	ErrSignalTooShort = errors.New("ecg: signal too short")
	// ErrInvalidWindow is returned by Amplitude for windows under two samples.
	ErrInvalidWindow = errors.New("ecg: amplitude window must span at least two samples")
)

// IsConfigError reports whether err stems from an invalid option or
// argument rather than from the data.
func IsConfigError(err error) bool {
	for _, target := range []error{
		ErrInvalidAmplifyMode,
		ErrInvalidSidesMode,
		ErrSidesNotImplemented,
		ErrInvalidAmplitude,
		ErrInvalidWindow,
		core.ErrInvalidSampleRate,
		wavelet.ErrUnknownWavelet,
		wavelet.ErrInvalidEngine,
		peaks.ErrInvalidEdge,
		peaks.ErrInvalidDistance,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
