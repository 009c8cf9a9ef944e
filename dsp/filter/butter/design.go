package butter

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-ecg/internal/polyroot"
)

var (
	// ErrFrequencyOutOfRange is returned when the low cutoff is at or above
	// Nyquist or the band edges are reversed.
	ErrFrequencyOutOfRange = errors.New("butter: frequency out of range")
	// ErrInvalidOrder is returned for filter orders below 1.
	ErrInvalidOrder = errors.New("butter: order must be >= 1")
	// ErrSignalTooShort is returned by FiltFilt when the input does not
	// exceed the edge padding.
	ErrSignalTooShort = errors.New("butter: signal too short for filtfilt")
)

// Type is the response shape chosen by Bandpass.
type Type int

const (
	AllPass Type = iota
	LowPass
	HighPass
	BandPass
)

func (t Type) String() string {
	switch t {
	case AllPass:
		return "allpass"
	case LowPass:
		return "lowpass"
	case HighPass:
		return "highpass"
	case BandPass:
		return "bandpass"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// bilinearFs is twice the internal sampling rate used for normalized
// frequencies (Nyquist = 1).
const bilinearFs = 4.0

// Classify returns the response Bandpass designs for the cutoffs lowHz
// and highHz at sampling rate fs, together with the normalized cutoff(s).
// A band reaching DC degrades to lowpass, one reaching Nyquist to highpass,
// and one covering both to the all-pass filter. Equal cutoffs give a
// lowpass at that frequency.
func Classify(lowHz, highHz, fs float64) (Type, []float64, error) {
	if fs <= 0 {
		return 0, nil, fmt.Errorf("%w: fs=%g", ErrFrequencyOutOfRange, fs)
	}

	nyq := 0.5 * fs
	low, high := lowHz/nyq, highHz/nyq
	if low >= 1 {
		return 0, nil, fmt.Errorf("%w: low cutoff %g Hz >= Nyquist %g Hz", ErrFrequencyOutOfRange, lowHz, nyq)
	}

	switch {
	case low <= 0 && high >= 1:
		return AllPass, nil, nil
	case low <= 0:
		return LowPass, []float64{high}, nil
	case high >= 1:
		return HighPass, []float64{low}, nil
	case low == high:
		return LowPass, []float64{high}, nil
	case low > high:
		return 0, nil, fmt.Errorf("%w: band [%g, %g] Hz is reversed", ErrFrequencyOutOfRange, lowHz, highHz)
	default:
		return BandPass, []float64{low, high}, nil
	}
}

// Bandpass designs an order-th order Butterworth filter passing lowHz to
// highHz at sampling rate fs and returns its numerator b and denominator a
// with a[0] == 1. Band-pass designs have 2*order+1 coefficients.
func Bandpass(lowHz, highHz, fs float64, order int) (b, a []float64, err error) {
	if order < 1 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	typ, wn, err := Classify(lowHz, highHz, fs)
	if err != nil {
		return nil, nil, err
	}
	if typ == AllPass {
		return []float64{1}, []float64{1}, nil
	}

	return Design(order, typ, wn...)
}

// Design returns the transfer function of a digital Butterworth filter of
// the given order and type. Cutoffs are normalized to Nyquist and must lie
// in (0, 1); BandPass takes two increasing cutoffs, the others one.
func Design(order int, typ Type, wn ...float64) (b, a []float64, err error) {
	if order < 1 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	want := 1
	if typ == BandPass {
		want = 2
	}
	if typ == AllPass || typ < AllPass || typ > BandPass || len(wn) != want {
		return nil, nil, fmt.Errorf("%w: %v with %d cutoffs", ErrFrequencyOutOfRange, typ, len(wn))
	}
	for _, w := range wn {
		if !(w > 0 && w < 1) {
			return nil, nil, fmt.Errorf("%w: normalized cutoff %g", ErrFrequencyOutOfRange, w)
		}
	}

	warped := make([]float64, len(wn))
	for i, w := range wn {
		warped[i] = bilinearFs * math.Tan(math.Pi*w/2)
	}

	z, p, k := prototype(order)
	switch typ {
	case LowPass:
		z, p, k = toLowpass(z, p, k, warped[0])
	case HighPass:
		z, p, k = toHighpass(z, p, k, warped[0])
	case BandPass:
		if warped[0] >= warped[1] {
			return nil, nil, fmt.Errorf("%w: band %v is not increasing", ErrFrequencyOutOfRange, wn)
		}
		bw := warped[1] - warped[0]
		wo := math.Sqrt(warped[0] * warped[1])
		z, p, k = toBandpass(z, p, k, wo, bw)
	}

	z, p, k = bilinear(z, p, k)
	return transferFunction(z, p, k)
}

// prototype returns the zeros, poles and gain of the analog Butterworth
// lowpass prototype with unit cutoff.
func prototype(order int) ([]complex128, []complex128, float64) {
	p := make([]complex128, order)
	for i := range p {
		m := float64(-order + 1 + 2*i)
		p[i] = -cmplx.Exp(complex(0, math.Pi*m/float64(2*order)))
	}
	return nil, p, 1
}

func toLowpass(z, p []complex128, k, wo float64) ([]complex128, []complex128, float64) {
	degree := len(p) - len(z)
	w := complex(wo, 0)
	return scale(z, w), scale(p, w), k * math.Pow(wo, float64(degree))
}

func toHighpass(z, p []complex128, k, wo float64) ([]complex128, []complex128, float64) {
	degree := len(p) - len(z)
	w := complex(wo, 0)

	zh := make([]complex128, 0, len(z)+degree)
	for _, v := range z {
		zh = append(zh, w/v)
	}
	for range degree {
		zh = append(zh, 0)
	}

	ph := make([]complex128, len(p))
	num, den := complex(1, 0), complex(1, 0)
	for i, v := range p {
		ph[i] = w / v
		den *= -v
	}
	for _, v := range z {
		num *= -v
	}

	return zh, ph, k * real(num/den)
}

func toBandpass(z, p []complex128, k, wo, bw float64) ([]complex128, []complex128, float64) {
	degree := len(p) - len(z)
	half := complex(bw/2, 0)
	wo2 := complex(wo*wo, 0)

	expand := func(roots []complex128) []complex128 {
		out := make([]complex128, 0, 2*len(roots))
		for _, r := range roots {
			r *= half
			d := cmplx.Sqrt(r*r - wo2)
			out = append(out, r+d)
		}
		for _, r := range roots {
			r *= half
			d := cmplx.Sqrt(r*r - wo2)
			out = append(out, r-d)
		}
		return out
	}

	zb := expand(z)
	for range degree {
		zb = append(zb, 0)
	}
	return zb, expand(p), k * math.Pow(bw, float64(degree))
}

// bilinear maps analog zeros, poles and gain to the z-plane. Zeros at
// infinity land on z = -1.
func bilinear(z, p []complex128, k float64) ([]complex128, []complex128, float64) {
	fs2 := complex(bilinearFs, 0)
	degree := len(p) - len(z)

	zz := make([]complex128, 0, len(p))
	num := complex(1, 0)
	for _, v := range z {
		zz = append(zz, (fs2+v)/(fs2-v))
		num *= fs2 - v
	}
	for range degree {
		zz = append(zz, -1)
	}

	pz := make([]complex128, len(p))
	den := complex(1, 0)
	for i, v := range p {
		pz[i] = (fs2 + v) / (fs2 - v)
		den *= fs2 - v
	}

	return zz, pz, k * real(num/den)
}

func transferFunction(z, p []complex128, k float64) ([]float64, []float64, error) {
	b, err := polyroot.RealCoefficients(polyroot.Expand(z), 1e-9)
	if err != nil {
		return nil, nil, err
	}
	a, err := polyroot.RealCoefficients(polyroot.Expand(p), 1e-9)
	if err != nil {
		return nil, nil, err
	}
	for i := range b {
		b[i] *= k
	}
	return b, a, nil
}

func scale(x []complex128, by complex128) []complex128 {
	out := make([]complex128, len(x))
	for i, v := range x {
		out[i] = v * by
	}
	return out
}
