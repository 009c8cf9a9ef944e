package smooth

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-ecg/dsp/conv"
	"github.com/cwbudde/algo-ecg/dsp/window"
)

// Window is the kernel shape used by Smooth.
type Window int

const (
	Flat Window = iota
	Hanning
	Hamming
	Bartlett
	Blackman
)

var windowNames = [...]string{"flat", "hanning", "hamming", "bartlett", "blackman"}

func (w Window) String() string {
	if w >= 0 && int(w) < len(windowNames) {
		return windowNames[w]
	}
	return fmt.Sprintf("Window(%d)", int(w))
}

// ParseWindow maps a kernel name to a Window. "hann" is accepted for
// Hanning.
func ParseWindow(s string) (Window, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "hann" {
		return Hanning, nil
	}
	for i, name := range windowNames {
		if key == name {
			return Window(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWindow, s)
}

// Smooth convolves x with a normalized symmetric kernel of windowLen
// samples centred on each output, reflecting x about its end samples. The
// kernel is shortened to len(x) and to an odd length; kernels shorter
// than three samples return a copy of x.
func Smooth(x []float64, windowLen int, kind Window) ([]float64, error) {
	if kind < Flat || kind > Blackman {
		return nil, fmt.Errorf("%w: kind %v", ErrInvalidWindow, kind)
	}
	if windowLen < 1 {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidWindow, windowLen)
	}

	size := min(len(x), windowLen)
	if size%2 == 0 {
		size--
	}
	if size < 3 {
		out := make([]float64, len(x))
		copy(out, x)
		return out, nil
	}

	w := kernel(kind, size)
	floats.Scale(1/floats.Sum(w), w)

	n := len(x)
	half := size / 2
	padded := make([]float64, n+2*half)
	for i := range padded {
		padded[i] = x[reflect(i-half, n)]
	}
	return conv.ConvolveMode(padded, w, conv.ModeValid)
}

func kernel(kind Window, size int) []float64 {
	switch kind {
	case Hanning:
		return window.Generate(window.TypeHann, size)
	case Hamming:
		return window.Generate(window.TypeHamming, size)
	case Bartlett:
		return window.Generate(window.TypeTriangle, size, window.WithBartlett())
	case Blackman:
		return window.Generate(window.TypeBlackman, size)
	default:
		return window.Generate(window.TypeRectangular, size)
	}
}

// reflect maps an out-of-range index onto x by reflection about the first
// and last samples, which are not repeated.
func reflect(i, n int) int {
	if i < 0 {
		return -i
	}
	if i >= n {
		return 2*(n-1) - i
	}
	return i
}
