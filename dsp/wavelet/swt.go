package wavelet

import (
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// SWT computes the stationary (undecimated) wavelet transform of x to the
// given depth with periodic extension. len(x) must be a positive multiple
// of 2^depth; use Pad first for arbitrary lengths. Level j filters with
// taps upsampled by 2^(j-1), so every coefficient array has len(x)
// samples.
func SWT(x []float64, f Filter, depth int, opts ...Option) (Stack, error) {
	cfg := applyOptions(opts)
	if err := ValidateEngine(cfg.engine); err != nil {
		return Stack{}, err
	}
	if err := validateTransform(len(x), f, depth); err != nil {
		return Stack{}, err
	}

	flt, err := newFilterer(cfg.engine, len(x))
	if err != nil {
		return Stack{}, err
	}

	stack := Stack{Levels: make([]Level, depth)}
	approx := x
	for j := range depth {
		step := 1 << j
		lv := Level{
			Approx: make([]float64, len(x)),
			Detail: make([]float64, len(x)),
		}
		if err := flt.analyze(lv.Approx, approx, f.RecLo, step); err != nil {
			return Stack{}, err
		}
		if err := flt.analyze(lv.Detail, approx, f.RecHi, step); err != nil {
			return Stack{}, err
		}
		stack.Levels[j] = lv
		approx = lv.Approx
	}

	return stack, nil
}

// ISWT inverts SWT. Only the deepest approximation and the details are
// read; intermediate approximations are ignored. The stack is not
// modified.
func ISWT(s Stack, f Filter, opts ...Option) ([]float64, error) {
	cfg := applyOptions(opts)
	if err := ValidateEngine(cfg.engine); err != nil {
		return nil, err
	}
	if len(s.Levels) == 0 {
		return nil, ErrEmptyStack
	}

	depth := s.Depth()
	n := s.Len()
	if err := validateTransform(n, f, depth); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}

	flt, err := newFilterer(cfg.engine, n)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	copy(out, s.Levels[depth-1].Approx)
	lo := make([]float64, n)
	hi := make([]float64, n)

	for j := depth - 1; j >= 0; j-- {
		step := 1 << j
		if err := flt.synthesize(lo, out, f.RecLo, step); err != nil {
			return nil, err
		}
		if err := flt.synthesize(hi, s.Levels[j].Detail, f.RecHi, step); err != nil {
			return nil, err
		}
		vecmath.AddBlockInPlace(lo, hi)
		vecmath.ScaleBlock(out, lo, 0.5)
	}

	return out, nil
}

func validateTransform(n int, f Filter, depth int) error {
	if f.Len() == 0 || len(f.RecHi) != f.Len() {
		return fmt.Errorf("wavelet: filter %q has no taps", f.Name)
	}
	if depth < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	if n == 0 || n%(1<<depth) != 0 {
		return fmt.Errorf("%w: length %d is not a multiple of 2^%d", ErrInvalidDepth, n, depth)
	}
	return nil
}
