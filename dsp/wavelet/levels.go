package wavelet

import (
	"fmt"
	"math"
	"math/bits"
)

// Levels is an inclusive range of decomposition levels. Level 1 is the
// finest scale (fs/4 to fs/2 for the detail band).
type Levels struct {
	Lo, Hi int
}

// Contains reports whether level lies in [Lo, Hi].
func (l Levels) Contains(level int) bool {
	return level >= l.Lo && level <= l.Hi
}

// Count returns the number of levels in the range.
func (l Levels) Count() int {
	if l.Hi < l.Lo {
		return 0
	}
	return l.Hi - l.Lo + 1
}

func (l Levels) String() string {
	return fmt.Sprintf("[%d, %d]", l.Lo, l.Hi)
}

// Rounding chooses how fractional level boundaries are rounded.
type Rounding int

const (
	// RoundOuter widens the range: floor at the high-frequency edge and
	// ceil at the low-frequency edge. The range covers the whole band.
	RoundOuter Rounding = iota
	// RoundInner narrows the range so that it stays inside the band.
	RoundInner
)

// LevelRange maps the frequency band [low, high] Hz at sampling rate fs to
// decomposition levels. The detail band of level j spans roughly
// fs/2^(j+1) to fs/2^j, so level = log2(fs/f). Bounds are swapped when
// rounding leaves them descending, and the lower bound is at least 1.
func LevelRange(fs, low, high float64, rounding Rounding) (Levels, error) {
	if fs <= 0 || low <= 0 || high <= 0 {
		return Levels{}, fmt.Errorf("%w: fs=%g band=[%g, %g]", ErrInvalidLevels, fs, low, high)
	}

	fine := math.Log2(fs / high)
	coarse := math.Log2(fs / low)

	var lv Levels
	switch rounding {
	case RoundOuter:
		lv = Levels{Lo: int(math.Floor(fine)), Hi: int(math.Ceil(coarse))}
	case RoundInner:
		lv = Levels{Lo: int(math.Ceil(fine)), Hi: int(math.Floor(coarse))}
	default:
		return Levels{}, fmt.Errorf("%w: unknown rounding %d", ErrInvalidLevels, rounding)
	}

	if lv.Lo > lv.Hi {
		lv.Lo, lv.Hi = lv.Hi, lv.Lo
	}
	lv.Lo = max(lv.Lo, 1)
	lv.Hi = max(lv.Hi, lv.Lo)

	return lv, nil
}

// MaxDepth returns the deepest decomposition a signal of length n admits,
// which is the number of times n is divisible by two.
func MaxDepth(n int) int {
	if n <= 0 {
		return 0
	}
	return bits.TrailingZeros(uint(n))
}

// PaddedLen returns n rounded up to the next multiple of 2^depth.
func PaddedLen(n, depth int) int {
	block := 1 << depth
	return (n + block - 1) / block * block
}

// Pad returns a zero-padded copy of x whose length is a multiple of
// 2^depth. The input is never modified.
func Pad(x []float64, depth int) ([]float64, error) {
	if depth < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}

	out := make([]float64, PaddedLen(len(x), depth))
	copy(out, x)
	return out, nil
}
