package core

import (
	"fmt"
	"math"
	"strconv"

	"github.com/huangsam/aem/core/algo"
	"github.com/huangsam/aem/schema"
)

// Sensitivity measures how much the score moves when each base weight is
// scaled by (1+variation). Every perturbation runs on its own copy of the
// configuration, so the engine itself never changes.
func (e *Engine) Sensitivity(r *schema.FinancialRecord, variation float64) (schema.SensitivityResult, error) {
	if !algo.IsFinite(variation) || variation <= -1 {
		return schema.SensitivityResult{}, fmt.Errorf("%w: variation must be greater than -1 (received %v)", schema.ErrInvalidConfig, variation)
	}

	base, err := e.Evaluate(r)
	if err != nil {
		return schema.SensitivityResult{}, err
	}

	result := schema.SensitivityResult{
		Organization: base.Organization,
		Variation:    variation,
		BaseScore:    base.Score,
	}
	for _, key := range schema.AllMetrics {
		weight := e.cfg.BaseWeights.Get(key) * (1 + variation)
		perturbed, err := e.withConfig(e.cfg.WithBaseWeight(key, weight)).Evaluate(r)
		if err != nil {
			return schema.SensitivityResult{}, err
		}
		result.Deltas = result.Deltas.With(key, math.Abs(perturbed.Score-base.Score))
	}
	return result, nil
}

// AnalyzeComponents breaks the score into base-weighted contributions.
func (e *Engine) AnalyzeComponents(r *schema.FinancialRecord) (schema.ComponentAnalysis, error) {
	ev, err := e.Evaluate(r)
	if err != nil {
		return schema.ComponentAnalysis{}, err
	}

	var contributions schema.MetricVector
	for i := range contributions {
		contributions[i] = e.cfg.BaseWeights[i] * ev.Normalized[i]
	}
	return schema.ComponentAnalysis{
		Organization:    ev.Organization,
		TotalScore:      ev.Score,
		ComponentScores: ev.Normalized,
		Contributions:   contributions,
	}, nil
}

// AnalyzeNormalization exposes the raw and normalized metrics behind a score.
func (e *Engine) AnalyzeNormalization(r *schema.FinancialRecord) (schema.NormalizationAnalysis, error) {
	ev, err := e.Evaluate(r)
	if err != nil {
		return schema.NormalizationAnalysis{}, err
	}
	return schema.NormalizationAnalysis{
		Organization:      ev.Organization,
		RawMetrics:        ev.Raw,
		NormalizedMetrics: ev.Normalized,
		Score:             ev.Score,
		Weights:           ev.FinalWeights,
	}, nil
}

// CompareOrganizations scores two records independently, keyed by organization name.
func (e *Engine) CompareOrganizations(a, b *schema.FinancialRecord) (schema.ComparisonResult, error) {
	return e.Compare(a, b)
}

// Compare scores any number of records independently, keyed by organization
// name. Repeated names get a " (2)", " (3)" suffix so no result is lost.
func (e *Engine) Compare(records ...*schema.FinancialRecord) (schema.ComparisonResult, error) {
	result := schema.ComparisonResult{
		Organizations: make([]string, 0, len(records)),
		Results:       make(map[string]schema.AEMResult, len(records)),
	}
	lo, hi := math.Inf(1), math.Inf(-1)

	for _, r := range records {
		scored, err := e.Score(r)
		if err != nil {
			return schema.ComparisonResult{}, err
		}
		name := uniqueName(r.Name(), result.Results)
		result.Organizations = append(result.Organizations, name)
		result.Results[name] = scored
		lo, hi = math.Min(lo, scored.Score), math.Max(hi, scored.Score)
	}
	if len(records) > 0 {
		result.Spread = hi - lo
	}
	return result, nil
}

// uniqueName returns name, or name with the first free numeric suffix.
func uniqueName(name string, taken map[string]schema.AEMResult) string {
	if _, ok := taken[name]; !ok {
		return name
	}
	for i := 2; ; i++ {
		candidate := name + " (" + strconv.Itoa(i) + ")"
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

// Validate runs every analysis on each record and compares them all. It is
// the programmatic form of 'analyze all'. Sources label the records and may be nil.
func (e *Engine) Validate(records []*schema.FinancialRecord, sources []string, variation float64) (schema.ValidationReport, error) {
	report := schema.ValidationReport{Records: make([]schema.RecordReport, 0, len(records))}
	for i, r := range records {
		sensitivity, err := e.Sensitivity(r, variation)
		if err != nil {
			return schema.ValidationReport{}, err
		}
		components, err := e.AnalyzeComponents(r)
		if err != nil {
			return schema.ValidationReport{}, err
		}
		normalization, err := e.AnalyzeNormalization(r)
		if err != nil {
			return schema.ValidationReport{}, err
		}
		rr := schema.RecordReport{
			Sensitivity:   sensitivity,
			Components:    components,
			Normalization: normalization,
		}
		if i < len(sources) {
			rr.Source = sources[i]
		}
		report.Records = append(report.Records, rr)
	}

	comparison, err := e.Compare(records...)
	if err != nil {
		return schema.ValidationReport{}, err
	}
	report.Comparison = comparison
	return report, nil
}
