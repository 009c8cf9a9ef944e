// Package polyroot provides the polynomial root-finding and expansion
// utilities used to derive filter coefficients by spectral factorisation.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (leading coefficient zero, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// ErrNotReal is returned by RealCoefficients when an expanded polynomial
// carries a non-negligible imaginary part.
var ErrNotReal = errors.New("polyroot: polynomial is not real")

// DurandKerner finds all roots of a polynomial using the Durand-Kerner
// (Weierstrass) simultaneous iteration method. Coefficients are in descending
// power order: coeff[0]*z^n + coeff[1]*z^(n-1) + ... + coeff[n].
// Each root is refined with a few Newton steps before returning.
//
//nolint:cyclop
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	lead := coeff[0]
	if lead == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1

	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / lead
	}

	radius := 0.0
	for i := 1; i <= n; i++ {
		if r := cmplx.Abs(norm[i]); r > radius {
			radius = r
		}
	}

	if radius < 1 {
		radius = 1
	}

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(n))
		roots[i] = complex(r*math.Cos(angle), r*math.Sin(angle))
	}

	const (
		maxIter = 1000
		tol     = 1e-13
	)

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)

			for j := range n {
				if i == j {
					continue
				}

				den *= roots[i] - roots[j]
			}

			if cmplx.Abs(den) == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			delta := PolyEval(norm, roots[i]) / den

			roots[i] -= delta
			if d := cmplx.Abs(delta) / math.Max(1, cmplx.Abs(roots[i])); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < tol {
			break
		}
	}

	for i := range roots {
		roots[i] = Polish(norm, roots[i])
	}

	for _, r := range roots {
		if cmplx.Abs(PolyEval(norm, r)) > 1e-6*math.Max(1, math.Pow(cmplx.Abs(r), float64(n))) {
			return nil, ErrDegeneratePolynomial
		}
	}

	return roots, nil
}

// Polish refines an approximate root of coeff (descending order) with
// Newton's method. It stops early when the step stops shrinking.
func Polish(coeff []complex128, root complex128) complex128 {
	const steps = 8

	deriv := derivative(coeff)
	if len(deriv) == 0 {
		return root
	}

	prev := math.Inf(1)
	for range steps {
		d := PolyEval(deriv, root)
		if d == 0 {
			break
		}

		delta := PolyEval(coeff, root) / d

		mag := cmplx.Abs(delta)
		if mag >= prev {
			break
		}

		prev = mag
		root -= delta

		if mag == 0 {
			break
		}
	}

	return root
}

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order: coeff[0]*x^n + ... + coeff[n].
func PolyEval(coeff []complex128, x complex128) complex128 {
	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

// Expand multiplies out prod(z - roots[i]) and returns the monic
// coefficients in descending power order.
func Expand(roots []complex128) []complex128 {
	out := make([]complex128, 1, len(roots)+1)
	out[0] = 1

	for _, r := range roots {
		out = append(out, 0)
		for i := len(out) - 1; i > 0; i-- {
			out[i] -= r * out[i-1]
		}
	}

	return out
}

// RealCoefficients drops the imaginary parts of coeff. It fails with
// ErrNotReal when any imaginary part exceeds tol relative to the largest
// coefficient magnitude, which happens when roots were not closed under
// conjugation.
func RealCoefficients(coeff []complex128, tol float64) ([]float64, error) {
	scale := 0.0
	for _, c := range coeff {
		scale = math.Max(scale, cmplx.Abs(c))
	}

	if scale == 0 {
		scale = 1
	}

	out := make([]float64, len(coeff))
	for i, c := range coeff {
		if math.Abs(imag(c)) > tol*scale {
			return nil, ErrNotReal
		}

		out[i] = real(c)
	}

	return out, nil
}

func derivative(coeff []complex128) []complex128 {
	n := len(coeff) - 1
	if n < 1 {
		return nil
	}

	out := make([]complex128, n)
	for i := range n {
		out[i] = coeff[i] * complex(float64(n-i), 0)
	}

	return out
}
