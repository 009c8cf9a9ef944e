package wavelet

import (
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Level holds the approximation and detail coefficients of one
// decomposition level.
type Level struct {
	Approx []float64
	Detail []float64
}

// Stack is an SWT decomposition. Levels[0] is level 1, the finest scale;
// Levels[len-1] is the deepest. All arrays share one length.
type Stack struct {
	Levels []Level
}

// Depth returns the number of levels.
func (s Stack) Depth() int { return len(s.Levels) }

// Len returns the coefficient length, or 0 for an empty stack.
func (s Stack) Len() int {
	if len(s.Levels) == 0 {
		return 0
	}
	return len(s.Levels[0].Detail)
}

// Level returns the coefficients of level (1-based).
func (s Stack) Level(level int) (Level, error) {
	if level < 1 || level > len(s.Levels) {
		return Level{}, fmt.Errorf("%w: level %d outside [1, %d]", ErrInvalidLevels, level, len(s.Levels))
	}
	return s.Levels[level-1], nil
}

// Clone returns a deep copy of s.
func (s Stack) Clone() Stack {
	out := Stack{Levels: make([]Level, len(s.Levels))}
	for i, lv := range s.Levels {
		out.Levels[i] = Level{
			Approx: append([]float64(nil), lv.Approx...),
			Detail: append([]float64(nil), lv.Detail...),
		}
	}
	return out
}

// Select returns a view of s in which the detail of level j is multiplied
// by gain(j) and the deepest approximation is kept or zeroed. Levels with
// gain 1 share storage with s; only rescaled levels are allocated. The
// result is meant for reconstruction and must be treated as read-only.
func (s Stack) Select(gain func(level int) float64, keepApprox bool) Stack {
	n := s.Len()
	var zeros []float64
	zero := func() []float64 {
		if zeros == nil {
			zeros = make([]float64, n)
		}
		return zeros
	}

	out := Stack{Levels: make([]Level, len(s.Levels))}
	for i, lv := range s.Levels {
		out.Levels[i].Approx = lv.Approx
		switch g := gain(i + 1); g {
		case 1:
			out.Levels[i].Detail = lv.Detail
		case 0:
			out.Levels[i].Detail = zero()
		default:
			d := make([]float64, n)
			vecmath.ScaleBlock(d, lv.Detail, g)
			out.Levels[i].Detail = d
		}
	}

	if !keepApprox && len(out.Levels) > 0 {
		out.Levels[len(out.Levels)-1].Approx = zero()
	}

	return out
}

// Band returns a gain function that passes levels inside l and mutes the rest.
func Band(l Levels) func(int) float64 {
	return func(level int) float64 {
		if l.Contains(level) {
			return 1
		}
		return 0
	}
}

func (s Stack) validate() error {
	n := s.Len()
	for i, lv := range s.Levels {
		if len(lv.Detail) != n {
			return fmt.Errorf("%w: level %d detail has %d samples, want %d", ErrInvalidLevels, i+1, len(lv.Detail), n)
		}
	}
	if a := s.Levels[len(s.Levels)-1].Approx; len(a) != n {
		return fmt.Errorf("%w: deepest approximation has %d samples, want %d", ErrInvalidLevels, len(a), n)
	}
	return nil
}

// Arena is a per-call scratch copy of a stack. Apply rescales a level's
// detail in the scratch copy and Revert restores it from the base, so a
// caller can evaluate many level selections with one allocation.
// An Arena is not safe for concurrent use.
type Arena struct {
	base Stack
	work Stack
}

// NewArena copies base into a fresh scratch stack.
func NewArena(base Stack) *Arena {
	return &Arena{base: base, work: base.Clone()}
}

// Apply sets the scratch detail of level to gain times the base detail.
func (a *Arena) Apply(level int, gain float64) error {
	if level < 1 || level > a.work.Depth() {
		return fmt.Errorf("%w: level %d outside [1, %d]", ErrInvalidLevels, level, a.work.Depth())
	}
	d := a.work.Levels[level-1].Detail
	if gain == 0 {
		clear(d)
		return nil
	}
	vecmath.ScaleBlock(d, a.base.Levels[level-1].Detail, gain)
	return nil
}

// Revert restores the scratch detail of level from the base.
func (a *Arena) Revert(level int) error {
	return a.Apply(level, 1)
}

// MuteApprox zeroes the deepest scratch approximation.
func (a *Arena) MuteApprox() {
	if d := a.work.Depth(); d > 0 {
		clear(a.work.Levels[d-1].Approx)
	}
}

// Stack returns the scratch stack. It stays owned by the arena.
func (a *Arena) Stack() Stack { return a.work }
