package wavelet

import "errors"

var (
	// ErrUnknownWavelet is returned by Lookup for unsupported filter names.
	ErrUnknownWavelet = errors.New("wavelet: unknown wavelet")
	// ErrInvalidDepth is returned when a decomposition depth is not positive
	// or the signal length is not a multiple of 2^depth.
	ErrInvalidDepth = errors.New("wavelet: invalid decomposition depth")
	// ErrInvalidLevels is returned for level ranges outside [1, depth].
	ErrInvalidLevels = errors.New("wavelet: invalid level range")
	// ErrInvalidEngine is returned for unknown engine names.
	ErrInvalidEngine = errors.New("wavelet: invalid engine")
	// ErrEmptyStack is returned when reconstructing a stack without levels.
	ErrEmptyStack = errors.New("wavelet: empty coefficient stack")
)
