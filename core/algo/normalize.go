package algo

import "github.com/huangsam/aem/schema"

// neutral is the normalized value given to every metric when there is no spread.
const neutral = 0.5

// ZScoreSigmoid maps raw metrics into (0,1).
//
// Each raw value is shifted by its ideal center, z-scored against the other
// shifted values with the population standard deviation, clipped to
// [-zClip, zClip] and passed through a sigmoid with steepness k. If either the
// raw or the shifted vector has no spread, every metric maps to 0.5.
func ZScoreSigmoid(raw, ideals schema.MetricVector, k, zClip float64) schema.MetricVector {
	var out schema.MetricVector

	shifted := raw
	for i := range shifted {
		shifted[i] -= ideals[i]
	}

	if StdDev(raw[:]) <= zeroTolerance {
		return fill(neutral)
	}
	std := StdDev(shifted[:])
	if std <= zeroTolerance || !IsFinite(std) {
		return fill(neutral)
	}
	mean := Mean(shifted[:])

	for i, v := range shifted {
		z := Clip((v-mean)/std, -zClip, zClip)
		out[i] = Sigmoid(z, k, 0)
	}
	return out
}

func fill(v float64) schema.MetricVector {
	var out schema.MetricVector
	for i := range out {
		out[i] = v
	}
	return out
}
