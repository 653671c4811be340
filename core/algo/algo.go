// Package algo has the numeric kernels behind the scoring engine.
// Every function here is pure and works on copies of its inputs.
package algo

import "math"

// zeroTolerance decides when a standard deviation counts as zero.
const zeroTolerance = 1e-12

// Sigmoid returns the logistic value of x with steepness k around midpoint.
func Sigmoid(x, k, midpoint float64) float64 {
	return 1.0 / (1.0 + math.Exp(-k*(x-midpoint)))
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation of values.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

// Clip bounds x to [lo, hi].
func Clip(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Clamp01 bounds x to [0, 1].
func Clamp01(x float64) float64 {
	return Clip(x, 0, 1)
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FiniteOr returns x, or fallback when x is NaN or infinite.
func FiniteOr(x, fallback float64) float64 {
	if IsFinite(x) {
		return x
	}
	return fallback
}

// SafeRatio returns num/den, or 0 when den is zero or the result is not finite.
func SafeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return FiniteOr(num/den, 0)
}
