package butter

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Filter applies the transfer function b/a to x in Direct Form II
// Transposed, starting from the state zi (nil for zero state). The
// coefficients are normalized by a[0]; x is not modified.
func Filter(b, a, x, zi []float64) []float64 {
	b, a = normalize(b, a)
	n := len(a)

	z := make([]float64, n-1)
	copy(z, zi)

	y := make([]float64, len(x))
	for i, v := range x {
		out := b[0]*v + first(z)
		for j := 0; j < n-2; j++ {
			z[j] = b[j+1]*v + z[j+1] - a[j+1]*out
		}
		if n > 1 {
			z[n-2] = b[n-1]*v - a[n-1]*out
		}
		y[i] = out
	}
	return y
}

// SteadyState returns the filter state for a unit step input that has
// been applied forever. Scaled by the first sample it starts Filter
// without a transient.
func SteadyState(b, a []float64) ([]float64, error) {
	b, a = normalize(b, a)
	n := len(a)
	if n < 2 {
		return []float64{}, nil
	}

	// (I - companion(a)^T) zi = b[1:] - a[1:]*b[0]
	m := mat.NewDense(n-1, n-1, nil)
	rhs := mat.NewVecDense(n-1, nil)
	for i := 0; i < n-1; i++ {
		m.Set(i, i, 1)
		m.Set(i, 0, m.At(i, 0)+a[i+1])
		if i+1 < n-1 {
			m.Set(i, i+1, -1)
		}
		rhs.SetVec(i, b[i+1]-a[i+1]*b[0])
	}

	var zi mat.VecDense
	if err := zi.SolveVec(m, rhs); err != nil {
		return nil, fmt.Errorf("butter: steady state: %w", err)
	}
	return zi.RawVector().Data, nil
}

// FiltFilt filters x forward and backward with b/a, giving zero phase and
// the squared magnitude response. The signal is extended at both ends by
// odd reflection over 3*max(len(a), len(b)) samples and each pass starts
// in steady state.
func FiltFilt(b, a, x []float64) ([]float64, error) {
	pad := 3 * max(len(a), len(b))
	if len(x) <= pad {
		return nil, fmt.Errorf("%w: %d samples, need more than %d", ErrSignalTooShort, len(x), pad)
	}

	zi, err := SteadyState(b, a)
	if err != nil {
		return nil, err
	}

	ext := oddExtend(x, pad)
	y := Filter(b, a, ext, scaled(zi, ext[0]))
	reverse(y)
	y = Filter(b, a, y, scaled(zi, y[0]))
	reverse(y)

	return y[pad : len(y)-pad], nil
}

// BandpassFilter designs a Butterworth filter with Bandpass and applies it
// to x with FiltFilt.
func BandpassFilter(x []float64, lowHz, highHz, fs float64, order int) ([]float64, error) {
	b, a, err := Bandpass(lowHz, highHz, fs, order)
	if err != nil {
		return nil, err
	}
	return FiltFilt(b, a, x)
}

// normalize pads b and a to a common length and divides both by a[0].
func normalize(b, a []float64) ([]float64, []float64) {
	n := max(len(a), len(b))
	nb := make([]float64, n)
	na := make([]float64, n)
	copy(nb, b)
	copy(na, a)

	if a0 := na[0]; a0 != 1 && a0 != 0 {
		for i := range nb {
			nb[i] /= a0
			na[i] /= a0
		}
	}
	return nb, na
}

func oddExtend(x []float64, pad int) []float64 {
	n := len(x)
	out := make([]float64, 0, n+2*pad)
	for i := pad; i > 0; i-- {
		out = append(out, 2*x[0]-x[i])
	}
	out = append(out, x...)
	for i := n - 2; i >= n-pad-1; i-- {
		out = append(out, 2*x[n-1]-x[i])
	}
	return out
}

func scaled(v []float64, by float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * by
	}
	return out
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}

func first(z []float64) float64 {
	if len(z) == 0 {
		return 0
	}
	return z[0]
}
