package wavelet

import "fmt"

// ExtractBand decomposes padded to depth, keeps only the detail levels in
// levels (plus the deepest approximation when withApprox is set) and
// reconstructs. The result has len(padded) samples.
func ExtractBand(padded []float64, f Filter, levels Levels, depth int, withApprox bool, opts ...Option) ([]float64, error) {
	if err := validateLevels(levels, depth); err != nil {
		return nil, err
	}

	stack, err := SWT(padded, f, depth, opts...)
	if err != nil {
		return nil, err
	}

	return ISWT(stack.Select(Band(levels), withApprox), f, opts...)
}

// ExtractLevels reconstructs one signal per level in levels from the
// details of stack alone, in ascending level order. Approximations never
// contribute.
func ExtractLevels(stack Stack, f Filter, levels Levels, opts ...Option) ([][]float64, error) {
	if err := validateLevels(levels, stack.Depth()); err != nil {
		return nil, err
	}

	arena := NewArena(stack)
	arena.MuteApprox()
	for lv := 1; lv <= stack.Depth(); lv++ {
		if err := arena.Apply(lv, 0); err != nil {
			return nil, err
		}
	}

	out := make([][]float64, 0, levels.Count())
	for lv := levels.Lo; lv <= levels.Hi; lv++ {
		if err := arena.Revert(lv); err != nil {
			return nil, err
		}
		rec, err := ISWT(arena.Stack(), f, opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
		if err := arena.Apply(lv, 0); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func validateLevels(l Levels, depth int) error {
	if l.Lo < 1 || l.Hi < l.Lo || l.Hi > depth {
		return fmt.Errorf("%w: %v with depth %d", ErrInvalidLevels, l, depth)
	}
	return nil
}
