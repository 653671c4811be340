package core

import (
	"github.com/huangsam/aem/core/algo"
	"github.com/huangsam/aem/schema"
)

// Engine scores financial records. It holds only an immutable configuration,
// so one Engine can be shared by any number of goroutines.
type Engine struct {
	cfg schema.ScoringConfig
}

// NewEngine validates the configuration and returns an engine using it.
func NewEngine(cfg schema.ScoringConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// DefaultEngine returns an engine with the default configuration.
func DefaultEngine() *Engine {
	return &Engine{cfg: schema.DefaultScoringConfig()}
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() schema.ScoringConfig {
	return e.cfg
}

// withConfig returns an engine sharing nothing with e. The caller is
// responsible for keeping the configuration valid.
func (e *Engine) withConfig(cfg schema.ScoringConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Score computes the composite score and normalized components for a record.
// A record missing a required total yields a *schema.MissingFieldError and no score.
func (e *Engine) Score(r *schema.FinancialRecord) (schema.AEMResult, error) {
	ev, err := e.Evaluate(r)
	if err != nil {
		return schema.AEMResult{}, err
	}
	return ev.Result(), nil
}

// Evaluate runs the full pipeline and returns every intermediate vector.
//
// Raw metrics feed two independent stages: entropy weighting and z-score
// normalization. Base and entropy weights are averaged into the final weights,
// and the score is the final-weighted sum of the normalized metrics.
func (e *Engine) Evaluate(r *schema.FinancialRecord) (schema.Evaluation, error) {
	if err := r.Validate(); err != nil {
		return schema.Evaluation{}, err
	}

	raw := ExtractRawMetrics(r, e.cfg)
	entropy := algo.EntropyWeights(raw, e.cfg.Epsilon, e.cfg.Strategy, e.cfg.BaseWeights)
	normalized := algo.ZScoreSigmoid(raw, e.cfg.Ideals, e.cfg.Steepness, e.cfg.ZClip)
	final := algo.BlendWeights(e.cfg.BaseWeights, entropy)
	score := algo.Clamp01(algo.FiniteOr(algo.WeightedSum(final, normalized), 0))

	return schema.Evaluation{
		Organization:   r.Name(),
		Raw:            raw,
		EntropyWeights: entropy,
		Normalized:     normalized,
		FinalWeights:   final,
		Score:          score,
	}, nil
}
