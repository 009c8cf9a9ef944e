package core

import "math"

// SecondsToSamples converts a duration in seconds to a whole number of
// samples at fs Hz. The product is truncated toward zero, so 0.3 s at
// 250 Hz is 75 samples and 0.1 s at 125 Hz is 12.
func SecondsToSamples(seconds float64, fs int) int {
	if seconds <= 0 || fs <= 0 {
		return 0
	}
	return int(seconds * float64(fs))
}

// LinearPowerToDB converts a linear power ratio to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}

// NextPowerOfTwo returns the smallest power of two >= n. It returns 1 for n <= 1.
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
