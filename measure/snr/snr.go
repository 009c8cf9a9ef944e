// Package snr measures signal-to-noise ratios of denoised signals, both
// against a clean reference and from the spectrum of a single recording.
package snr

import (
	"errors"
	"fmt"
	"math"
	"slices"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/spectrum"
	"github.com/cwbudde/algo-ecg/dsp/window"
)

var (
	// ErrLengthMismatch is returned when compared signals differ in length.
	ErrLengthMismatch = errors.New("snr: length mismatch")
	// ErrEmpty is returned for empty input.
	ErrEmpty = errors.New("snr: empty input")
	// ErrInvalidBand is returned for bands outside (0, fs/2] or reversed.
	ErrInvalidBand = errors.New("snr: invalid band")
)

// mad2std converts the median absolute first difference of white noise
// into its standard deviation.
const mad2std = 0.6745

// SNR returns 10*log10 of the clean signal energy over the energy of
// noisy-clean, in dB. Identical signals give +Inf.
func SNR(clean, noisy []float64) (float64, error) {
	if err := sameLength(clean, noisy); err != nil {
		return 0, err
	}
	return core.LinearPowerToDB(energy(clean) / residual(clean, noisy)), nil
}

// Improvement returns how many dB closer denoised is to clean than noisy
// is.
func Improvement(clean, noisy, denoised []float64) (float64, error) {
	if err := sameLength(clean, noisy); err != nil {
		return 0, err
	}
	if err := sameLength(clean, denoised); err != nil {
		return 0, err
	}
	return core.LinearPowerToDB(residual(clean, noisy) / residual(clean, denoised)), nil
}

// NoiseStd estimates the standard deviation of additive white noise in x
// as the median absolute first difference divided by 0.6745.
func NoiseStd(x []float64) (float64, error) {
	if len(x) < 2 {
		return 0, fmt.Errorf("%w: need at least two samples", ErrEmpty)
	}

	d := make([]float64, len(x)-1)
	for i := range d {
		d[i] = math.Abs(x[i+1] - x[i])
	}
	slices.Sort(d)

	n := len(d)
	med := d[n/2]
	if n%2 == 0 {
		med = 0.5 * (d[n/2-1] + d[n/2])
	}
	return med / mad2std, nil
}

// Spectral estimates the SNR of x from its Hann-windowed spectrum as the
// power inside [lowHz, highHz] over the power outside it, excluding DC.
func Spectral(x []float64, fs, lowHz, highHz float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmpty
	}
	if !(fs > 0 && lowHz >= 0 && lowHz < highHz && highHz <= fs/2) {
		return 0, fmt.Errorf("%w: [%g, %g] Hz at fs=%g", ErrInvalidBand, lowHz, highHz, fs)
	}

	psd, err := powerSpectrum(x)
	if err != nil {
		return 0, err
	}

	size := 2 * (len(psd) - 1)
	var in, out float64
	for k := 1; k < len(psd); k++ {
		f := float64(k) * fs / float64(size)
		if f >= lowHz && f <= highHz {
			in += psd[k]
		} else {
			out += psd[k]
		}
	}
	return core.LinearPowerToDB(in / out), nil
}

// powerSpectrum returns |X[k]|^2 for k = 0..N/2 of the Hann-windowed x
// zero-padded to a power of two N.
func powerSpectrum(x []float64) ([]float64, error) {
	size := max(core.NextPowerOfTwo(len(x)), 2)

	w := make([]float64, len(x))
	copy(w, x)
	window.Apply(window.TypeHann, w)

	src := make([]complex128, size)
	for i, v := range w {
		src[i] = complex(v, 0)
	}
	dst := make([]complex128, size)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("snr: fft plan: %w", err)
	}
	if err := plan.Forward(dst, src); err != nil {
		return nil, fmt.Errorf("snr: fft: %w", err)
	}

	return spectrum.Power(dst[:size/2+1]), nil
}

func sameLength(a, b []float64) error {
	if len(a) == 0 {
		return ErrEmpty
	}
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}
	return nil
}

func energy(x []float64) float64 {
	return floats.Dot(x, x)
}

func residual(a, b []float64) float64 {
	d := make([]float64, len(a))
	floats.SubTo(d, a, b)
	return floats.Dot(d, d)
}
