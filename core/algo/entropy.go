package algo

import (
	"math"

	"github.com/huangsam/aem/schema"
)

// BinaryEntropy returns the base-2 Shannon entropy of a two-outcome
// distribution (p, 1-p). Values outside [0,1] are clipped; 0*log(0) is 0.
func BinaryEntropy(p float64) float64 {
	p = Clamp01(p)
	if p == 0 || p == 1 {
		return 0
	}
	q := 1 - p
	return -p*math.Log2(p) - q*math.Log2(q)
}

// Shares turns raw metrics into proportions p_k = (|v_k|+eps) / Σ(|v_j|+eps).
// Magnitudes are used so that a negative margin cannot produce a negative share.
// The second return value is false when the total is not a usable divisor.
func Shares(raw schema.MetricVector, eps float64) (schema.MetricVector, bool) {
	var shares schema.MetricVector
	var total float64
	for i, v := range raw {
		shares[i] = math.Abs(v) + eps
		total += shares[i]
	}
	if !IsFinite(total) || total <= 0 {
		return schema.MetricVector{}, false
	}
	for i := range shares {
		shares[i] /= total
	}
	return shares, true
}

// EntropyWeights derives data-driven weights from raw metrics.
//
// With InverseEntropy each weight is proportional to 1-H(p_k), so metrics whose
// share is extreme weigh more. With DirectEntropy each weight is proportional to
// H(p_k). When the shares or the resulting weights cannot be normalized, the
// fallback is returned scaled to sum to 1.
func EntropyWeights(raw schema.MetricVector, eps float64, strategy schema.EntropyStrategy, fallback schema.MetricVector) schema.MetricVector {
	shares, ok := Shares(raw, eps)
	if !ok {
		return Normalize(fallback)
	}

	var weights schema.MetricVector
	for i, p := range shares {
		h := BinaryEntropy(p)
		if strategy == schema.DirectEntropy {
			weights[i] = h
		} else {
			weights[i] = 1 - h
		}
	}

	total := weights.Sum()
	if !IsFinite(total) || total <= 0 {
		return Normalize(fallback)
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}
