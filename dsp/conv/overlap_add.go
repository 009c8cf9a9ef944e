package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-ecg/dsp/core"
)

// OverlapAdd convolves long signals with a fixed kernel block by block in
// the frequency domain.
type OverlapAdd struct {
	kernelFFT []complex128
	kernelLen int
	blockSize int
	plan      *algofft.Plan[complex128]

	block []complex128
	prod  []complex128
}

// NewOverlapAdd creates an overlap-add convolver for kernel. A blockSize
// of zero picks the next power of two at or above the kernel length, and
// at least 256.
func NewOverlapAdd(kernel []float64, blockSize int) (*OverlapAdd, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if blockSize <= 0 {
		blockSize = max(core.NextPowerOfTwo(len(kernel)), 256)
	}

	fftSize := core.NextPowerOfTwo(blockSize + len(kernel) - 1)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: fft plan: %w", err)
	}

	oa := &OverlapAdd{
		kernelFFT: make([]complex128, fftSize),
		kernelLen: len(kernel),
		blockSize: blockSize,
		plan:      plan,
		block:     make([]complex128, fftSize),
		prod:      make([]complex128, fftSize),
	}

	padded := make([]complex128, fftSize)
	for i, v := range kernel {
		padded[i] = complex(v, 0)
	}
	if err := plan.Forward(oa.kernelFFT, padded); err != nil {
		return nil, fmt.Errorf("conv: kernel fft: %w", err)
	}
	return oa, nil
}

// Process returns the full linear convolution of input with the kernel.
func (oa *OverlapAdd) Process(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	outLen := len(input) + oa.kernelLen - 1
	out := make([]float64, outLen)

	for start := 0; start < len(input); start += oa.blockSize {
		end := min(start+oa.blockSize, len(input))

		for i := range oa.block {
			oa.block[i] = 0
		}
		for i, v := range input[start:end] {
			oa.block[i] = complex(v, 0)
		}

		if err := oa.plan.Forward(oa.block, oa.block); err != nil {
			return nil, fmt.Errorf("conv: forward fft: %w", err)
		}
		for i := range oa.prod {
			oa.prod[i] = oa.block[i] * oa.kernelFFT[i]
		}
		if err := oa.plan.Inverse(oa.prod, oa.prod); err != nil {
			return nil, fmt.Errorf("conv: inverse fft: %w", err)
		}

		n := end - start + oa.kernelLen - 1
		for i := 0; i < n && start+i < outLen; i++ {
			out[start+i] += real(oa.prod[i])
		}
	}
	return out, nil
}

// OverlapAddConvolve performs one-shot overlap-add convolution.
func OverlapAddConvolve(signal, kernel []float64) ([]float64, error) {
	oa, err := NewOverlapAdd(kernel, 0)
	if err != nil {
		return nil, err
	}
	return oa.Process(signal)
}
