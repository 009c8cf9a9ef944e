// Package poly evaluates and differentiates univariate polynomials with
// real coefficients.
package poly

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidOrder is returned for negative derivative orders.
	ErrInvalidOrder = errors.New("poly: derivative order must be >= 0")
	// ErrEmpty is returned when a polynomial has no coefficients.
	ErrEmpty = errors.New("poly: no coefficients")
)

// Derivative returns the coefficients of the order-th derivative of the
// polynomial, in the same order as coeff (ascending powers when ascending
// is true). Differentiating past the degree yields the zero polynomial
// [0].
func Derivative(coeff []float64, order int, ascending bool) ([]float64, error) {
	if order < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}
	if len(coeff) == 0 {
		return nil, ErrEmpty
	}
	if order == 0 {
		return slices.Clone(coeff), nil
	}

	degree := len(coeff) - 1
	if order > degree {
		return []float64{0}, nil
	}

	if !ascending {
		asc := slices.Clone(coeff)
		slices.Reverse(asc)
		der, err := Derivative(asc, order, true)
		if err != nil {
			return nil, err
		}
		slices.Reverse(der)
		return der, nil
	}

	der := make([]float64, degree-order+1)
	for k := range der {
		// (k+order)! / k!
		f := 1.0
		for m := k + 1; m <= k+order; m++ {
			f *= float64(m)
		}
		der[k] = coeff[k+order] * f
	}
	return der, nil
}

// Eval evaluates the polynomial at x with Horner's method.
func Eval(x float64, coeff []float64, ascending bool) (float64, error) {
	if len(coeff) == 0 {
		return 0, ErrEmpty
	}

	v := 0.0
	if ascending {
		for i := len(coeff) - 1; i >= 0; i-- {
			v = v*x + coeff[i]
		}
		return v, nil
	}
	for _, c := range coeff {
		v = v*x + c
	}
	return v, nil
}

// EvalAll evaluates the polynomial at every point of xs.
func EvalAll(xs, coeff []float64, ascending bool) ([]float64, error) {
	out := make([]float64, len(xs))
	for i, x := range xs {
		v, err := Eval(x, coeff, ascending)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
