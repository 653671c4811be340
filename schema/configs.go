package schema

import (
	"fmt"
	"math"
)

// Default tuning constants for the scoring engine.
const (
	DefaultSteepness         = 2.0  // sigmoid steepness for normalized metrics
	DefaultZClip             = 3.0  // z-scores are clipped to [-ZClip, ZClip]
	DefaultPolicySteepness   = 10.0 // sigmoid steepness for the policy score
	DefaultPolicyMidpoint    = 0.5  // weighted policy sum mapped to 0.5
	DefaultExecPayIdealRatio = 0.02 // top salary / total expenses judged acceptable
	DefaultEpsilon           = 1e-9 // additive constant for entropy shares
	DefaultVariation         = 0.2  // fractional base weight perturbation for sensitivity
)

// DefaultExecPayNeutral is the executive pay score used when salary data is missing.
// It sits on the ideal so the metric normalizes toward the middle of the population.
const DefaultExecPayNeutral = 1 - DefaultExecPayIdealRatio

// ScoringConfig is the immutable configuration of a scoring engine. It only holds
// arrays and scalars, so every copy is fully independent of the original.
type ScoringConfig struct {
	// BaseWeights is the prior importance of each metric.
	BaseWeights MetricVector `json:"base_weights"`

	// Ideals is the value of each raw metric that maps to the sigmoid midpoint.
	Ideals MetricVector `json:"ideals"`

	// PolicyWeights is the importance of each governance flag, in AllPolicies order.
	PolicyWeights [PolicyCount]float64 `json:"policy_weights"`

	Steepness       float64         `json:"steepness"`
	ZClip           float64         `json:"z_clip"`
	PolicySteepness float64         `json:"policy_steepness"`
	PolicyMidpoint  float64         `json:"policy_midpoint"`
	ExecPayNeutral  float64         `json:"exec_pay_neutral"`
	Epsilon         float64         `json:"epsilon"`
	Strategy        EntropyStrategy `json:"entropy_strategy"`
}

// DefaultBaseWeights returns the prior metric weights.
func DefaultBaseWeights() MetricVector {
	return MetricVector{0.30, 0.20, 0.15, 0.15, 0.10, 0.10}
}

// DefaultIdeals returns the ideal center of every metric in its own units.
// Fundraising efficiency is in log10 space and executive pay is inverted.
func DefaultIdeals() MetricVector {
	return MetricVector{
		0.70,                         // program expense ratio
		0.80,                         // log10(dollars raised per dollar spent)
		0.70,                         // program service revenue share
		0.05,                         // net surplus margin
		1 - DefaultExecPayIdealRatio, // inverted top salary ratio
		DefaultTransparencyIdeal(),   // smoothed policy score
	}
}

// DefaultTransparencyIdeal returns the policy score of an organization that discloses
// every governance flag as true, the largest value the policy sigmoid can reach.
func DefaultTransparencyIdeal() float64 {
	return 1 / (1 + math.Exp(-DefaultPolicySteepness*(1-DefaultPolicyMidpoint)))
}

// DefaultPolicyWeights returns the governance flag weights.
func DefaultPolicyWeights() [PolicyCount]float64 {
	return [PolicyCount]float64{0.3, 0.3, 0.2, 0.2}
}

// DefaultScoringConfig returns the configuration used when nothing is overridden.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		BaseWeights:     DefaultBaseWeights(),
		Ideals:          DefaultIdeals(),
		PolicyWeights:   DefaultPolicyWeights(),
		Steepness:       DefaultSteepness,
		ZClip:           DefaultZClip,
		PolicySteepness: DefaultPolicySteepness,
		PolicyMidpoint:  DefaultPolicyMidpoint,
		ExecPayNeutral:  DefaultExecPayNeutral,
		Epsilon:         DefaultEpsilon,
		Strategy:        InverseEntropy,
	}
}

// WithBaseWeight returns a copy of the config with one base weight replaced.
func (c ScoringConfig) WithBaseWeight(k MetricKey, w float64) ScoringConfig {
	c.BaseWeights = c.BaseWeights.With(k, w)
	return c
}

// WithStrategy returns a copy of the config using another entropy strategy.
func (c ScoringConfig) WithStrategy(s EntropyStrategy) ScoringConfig {
	c.Strategy = s
	return c
}

// PolicyWeight returns the weight of a governance flag, or 0 if unknown.
func (c ScoringConfig) PolicyWeight(k PolicyKey) float64 {
	for i, p := range AllPolicies {
		if p == k {
			return c.PolicyWeights[i]
		}
	}
	return 0
}

// NormalizedBaseWeights returns the base weights scaled to sum to 1.
func (c ScoringConfig) NormalizedBaseWeights() MetricVector {
	w := c.BaseWeights
	sum := w.Sum()
	if sum <= 0 {
		return w
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

// Validate checks the configuration is usable by the engine. Base weights need
// not sum to 1, since final weights are renormalized; sensitivity analysis relies on that.
func (c ScoringConfig) Validate() error {
	if err := validateWeights("base weight", c.BaseWeights[:], func(i int) string { return string(AllMetrics[i]) }); err != nil {
		return err
	}
	if err := validateWeights("policy weight", c.PolicyWeights[:], func(i int) string { return string(AllPolicies[i]) }); err != nil {
		return err
	}
	for i, v := range c.Ideals {
		if !isFinite(v) {
			return fmt.Errorf("%w: ideal for %s must be finite", ErrInvalidConfig, AllMetrics[i])
		}
	}
	positives := []struct {
		name  string
		value float64
	}{
		{"steepness", c.Steepness},
		{"z-clip", c.ZClip},
		{"policy steepness", c.PolicySteepness},
		{"epsilon", c.Epsilon},
	}
	for _, p := range positives {
		if !isFinite(p.value) || p.value <= 0 {
			return fmt.Errorf("%w: %s must be greater than 0 (received %v)", ErrInvalidConfig, p.name, p.value)
		}
	}
	if !isFinite(c.PolicyMidpoint) || !isFinite(c.ExecPayNeutral) {
		return fmt.Errorf("%w: policy midpoint and exec pay neutral must be finite", ErrInvalidConfig)
	}
	if _, ok := ValidEntropyStrategies[c.Strategy]; !ok {
		return fmt.Errorf("%w: unknown entropy strategy %q", ErrInvalidConfig, c.Strategy)
	}
	return nil
}

// validateWeights rejects negative or non-finite weights and an all-zero set.
func validateWeights(kind string, weights []float64, name func(int) string) error {
	var sum float64
	for i, w := range weights {
		if !isFinite(w) || w < 0 {
			return fmt.Errorf("%w: %s for %s must be a non-negative number (received %v)", ErrInvalidConfig, kind, name(i), w)
		}
		sum += w
	}
	if sum <= 0 {
		return fmt.Errorf("%w: %ss must not all be zero", ErrInvalidConfig, kind)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
