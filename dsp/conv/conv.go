// Package conv provides linear convolution for the smoothing kernels.
//
// Short kernels are convolved directly in the time domain; longer ones go
// through FFT-based overlap-add.
package conv

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput  = errors.New("conv: empty input")
	ErrEmptyKernel = errors.New("conv: empty kernel")
)

// Mode specifies the output mode for convolution.
type Mode int

const (
	// ModeFull returns the full convolution result with length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns output with the same length as the first input.
	ModeSame

	// ModeValid returns only the portion where signals fully overlap,
	// with length max(len(a), len(b)) - min(len(a), len(b)) + 1.
	ModeValid
)

// directThreshold is the longest kernel Convolve handles in the time
// domain.
const directThreshold = 64

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	DirectTo(result, a, b)
	return result, nil
}

// DirectTo performs direct convolution, writing to a pre-allocated destination.
// dst must have length len(a) + len(b) - 1.
func DirectTo(dst, a, b []float64) {
	for i := range dst {
		dst[i] = 0
	}

	m := len(b)
	if m < 4 {
		for i, x := range a {
			for j, c := range b {
				dst[i+j] += x * c
			}
		}
		return
	}

	temp := make([]float64, m)
	for i, x := range a {
		vecmath.ScaleBlock(temp, b, x)
		vecmath.AddBlockInPlace(dst[i:i+m], temp)
	}
}

// Convolve performs linear convolution, choosing direct convolution for
// kernels up to 64 samples and overlap-add beyond.
func Convolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	if len(b) > len(a) {
		a, b = b, a
	}
	if len(b) <= directThreshold {
		return Direct(a, b)
	}
	return OverlapAddConvolve(a, b)
}

// ConvolveMode performs convolution with specified output mode.
func ConvolveMode(a, b []float64, mode Mode) ([]float64, error) {
	full, err := Convolve(a, b)
	if err != nil {
		return nil, err
	}
	return trimToMode(full, len(a), len(b), mode), nil
}

func trimToMode(full []float64, lenA, lenB int, mode Mode) []float64 {
	switch mode {
	case ModeSame:
		start := (lenB - 1) / 2
		return full[start : start+lenA]
	case ModeValid:
		if lenA >= lenB {
			return full[lenB-1 : lenA]
		}
		return full[lenA-1 : lenB]
	default:
		return full
	}
}
