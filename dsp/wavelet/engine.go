package wavelet

import (
	"fmt"
	"strings"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-ecg/dsp/core"
)

// Engine selects how the circular à trous filtering is evaluated.
type Engine int

const (
	// EngineDirect filters in the time domain. It is the reference
	// implementation and the fastest choice for short filters.
	EngineDirect Engine = iota
	// EngineFFT filters by circular convolution through FFT plans.
	EngineFFT
)

// String returns the engine name.
func (e Engine) String() string {
	switch e {
	case EngineDirect:
		return "direct"
	case EngineFFT:
		return "fft"
	default:
		return fmt.Sprintf("Engine(%d)", int(e))
	}
}

// ParseEngine maps "direct" or "fft" to an Engine.
func ParseEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "direct":
		return EngineDirect, nil
	case "fft":
		return EngineFFT, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidEngine, name)
	}
}

// ValidateEngine reports ErrInvalidEngine for values outside the Engine constants.
func ValidateEngine(e Engine) error {
	if e != EngineDirect && e != EngineFFT {
		return fmt.Errorf("%w: %v", ErrInvalidEngine, e)
	}
	return nil
}

// filterer evaluates the two circular filtering primitives of the
// transform for one signal length. For taps h upsampled by step s:
//
//	analyze:    dst[n] = sum_k h[k] * src[(n + k*s) mod N]
//	synthesize: dst[n] = sum_k h[k] * src[(n - k*s) mod N]
//
// synthesize is the adjoint of analyze.
type filterer interface {
	analyze(dst, src, taps []float64, step int) error
	synthesize(dst, src, taps []float64, step int) error
}

func newFilterer(e Engine, n int) (filterer, error) {
	switch e {
	case EngineDirect:
		return directFilterer{}, nil
	case EngineFFT:
		return newFFTFilterer(n)
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidEngine, e)
	}
}

type directFilterer struct{}

func (directFilterer) analyze(dst, src, taps []float64, step int) error {
	circularDirect(dst, src, taps, step)
	return nil
}

func (directFilterer) synthesize(dst, src, taps []float64, step int) error {
	circularDirect(dst, src, taps, -step)
	return nil
}

func circularDirect(dst, src, taps []float64, step int) {
	n := len(src)
	offsets := make([]int, len(taps))
	for k := range taps {
		offsets[k] = ((k*step)%n + n) % n
	}

	for i := range dst {
		sum := 0.0
		for k, h := range taps {
			j := i + offsets[k]
			if j >= n {
				j -= n
			}
			sum += h * src[j]
		}
		dst[i] = sum
	}
}

// fftFilterer computes circular convolutions of length n as linear
// convolutions on a power-of-two plan, folding the tail back afterwards.
// The plan and buffers are owned by one transform call.
type fftFilterer struct {
	n      int
	plan   *algofft.Plan[complex128]
	kernel []float64
	sig    []complex128
	ker    []complex128
	sigF   []complex128
	kerF   []complex128
	out    []complex128
}

func newFFTFilterer(n int) (*fftFilterer, error) {
	size := core.NextPowerOfTwo(2*n - 1)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("wavelet: fft plan %d: %w", size, err)
	}

	return &fftFilterer{
		n:      n,
		plan:   plan,
		kernel: make([]float64, n),
		sig:    make([]complex128, size),
		ker:    make([]complex128, size),
		sigF:   make([]complex128, size),
		kerF:   make([]complex128, size),
		out:    make([]complex128, size),
	}, nil
}

func (f *fftFilterer) analyze(dst, src, taps []float64, step int) error {
	return f.convolve(dst, src, taps, -step)
}

func (f *fftFilterer) synthesize(dst, src, taps []float64, step int) error {
	return f.convolve(dst, src, taps, step)
}

// convolve computes dst[n] = sum_m kernel[m] * src[(n-m) mod N] where the
// kernel places taps[k] at (k*step) mod N.
func (f *fftFilterer) convolve(dst, src, taps []float64, step int) error {
	n := f.n
	clear(f.kernel)
	for k, h := range taps {
		f.kernel[((k*step)%n+n)%n] += h
	}

	clear(f.sig)
	clear(f.ker)
	for i := range n {
		f.sig[i] = complex(src[i], 0)
		f.ker[i] = complex(f.kernel[i], 0)
	}

	if err := f.plan.Forward(f.sigF, f.sig); err != nil {
		return fmt.Errorf("wavelet: forward fft: %w", err)
	}
	if err := f.plan.Forward(f.kerF, f.ker); err != nil {
		return fmt.Errorf("wavelet: forward fft: %w", err)
	}

	for i := range f.sigF {
		f.sigF[i] *= f.kerF[i]
	}

	if err := f.plan.Inverse(f.out, f.sigF); err != nil {
		return fmt.Errorf("wavelet: inverse fft: %w", err)
	}

	for i := range n {
		v := real(f.out[i])
		if i+n < 2*n-1 {
			v += real(f.out[i+n])
		}
		dst[i] = v
	}

	return nil
}
