package wavelet

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-ecg/internal/polyroot"
)

// MaxDaubechiesOrder is the highest supported dbN order.
const MaxDaubechiesOrder = 20

// Filter is an orthogonal two-channel filter bank. DecLo/DecHi are the
// analysis filters, RecLo/RecHi their time-reversed synthesis counterparts.
type Filter struct {
	Name  string
	DecLo []float64
	DecHi []float64
	RecLo []float64
	RecHi []float64
}

// Len returns the number of taps.
func (f Filter) Len() int { return len(f.DecLo) }

// Lookup returns the filter bank for "haar" or "db1" to "db20".
func Lookup(name string) (Filter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "haar" {
		f, err := Daubechies(1)
		f.Name = "haar"
		return f, err
	}

	order, ok := strings.CutPrefix(key, "db")
	if !ok {
		return Filter{}, fmt.Errorf("%w: %q", ErrUnknownWavelet, name)
	}

	n, err := strconv.Atoi(order)
	if err != nil || n < 1 || n > MaxDaubechiesOrder {
		return Filter{}, fmt.Errorf("%w: %q", ErrUnknownWavelet, name)
	}

	return Daubechies(n)
}

// Daubechies derives the dbN filter bank (2N taps, N vanishing moments) by
// spectral factorisation of the maximally flat half-band polynomial. The
// minimum-phase factor is selected, matching the usual published tables.
func Daubechies(n int) (Filter, error) {
	if n < 1 || n > MaxDaubechiesOrder {
		return Filter{}, fmt.Errorf("%w: db%d", ErrUnknownWavelet, n)
	}

	h, err := daubechiesScaling(n)
	if err != nil {
		return Filter{}, fmt.Errorf("wavelet: db%d: %w", n, err)
	}

	return newFilter("db"+strconv.Itoa(n), h), nil
}

// daubechiesScaling returns the synthesis lowpass filter, normalised to
// sum to sqrt(2).
func daubechiesScaling(n int) ([]float64, error) {
	// P(y) = sum_{k<n} C(n-1+k, k) y^k, descending order for the root finder.
	p := make([]complex128, n)
	c := 1.0
	for k := range n {
		p[n-1-k] = complex(c, 0)
		c = c * float64(n+k) / float64(k+1)
	}

	var zeros []complex128
	if n > 1 {
		yRoots, err := polyroot.DurandKerner(p)
		if err != nil {
			return nil, err
		}

		// y = (2 - z - 1/z)/4 maps each y root to a reciprocal pair of z
		// roots of z^2 - (2-4y)z + 1. Keep the one inside the unit circle.
		for _, y := range yRoots {
			b := 1 - 2*y
			d := cmplx.Sqrt(b*b - 1)
			z := b - d
			if cmplx.Abs(z) > 1 {
				z = b + d
			}
			zeros = append(zeros, z)
		}
	}

	for range n {
		zeros = append(zeros, -1)
	}

	coeff, err := polyroot.RealCoefficients(polyroot.Expand(zeros), 1e-8)
	if err != nil {
		return nil, err
	}

	sum := 0.0
	for _, v := range coeff {
		sum += v
	}

	scale := math.Sqrt2 / sum
	for i := range coeff {
		coeff[i] *= scale
	}

	return coeff, nil
}

func newFilter(name string, recLo []float64) Filter {
	l := len(recLo)
	f := Filter{
		Name:  name,
		DecLo: make([]float64, l),
		DecHi: make([]float64, l),
		RecLo: append([]float64(nil), recLo...),
		RecHi: make([]float64, l),
	}

	for k := range l {
		f.DecLo[k] = recLo[l-1-k]
		sign := 1.0
		if k%2 == 1 {
			sign = -1
		}
		f.RecHi[k] = sign * recLo[l-1-k]
	}

	for k := range l {
		f.DecHi[k] = f.RecHi[l-1-k]
	}

	return f
}
