package algo

import "github.com/huangsam/aem/schema"

// Normalize scales a weight vector to sum to 1. A vector with no positive
// mass is replaced by uniform weights.
func Normalize(w schema.MetricVector) schema.MetricVector {
	total := w.Sum()
	if !IsFinite(total) || total <= 0 {
		return fill(1.0 / schema.MetricCount)
	}
	for i := range w {
		w[i] /= total
	}
	return w
}

// BlendWeights averages base and entropy weights and renormalizes the result.
func BlendWeights(base, entropy schema.MetricVector) schema.MetricVector {
	var out schema.MetricVector
	for i := range out {
		out[i] = (base[i] + entropy[i]) / 2
	}
	return Normalize(out)
}

// WeightedSum returns Σ weights[k]*values[k].
func WeightedSum(weights, values schema.MetricVector) float64 {
	var sum float64
	for i := range weights {
		sum += weights[i] * values[i]
	}
	return sum
}
