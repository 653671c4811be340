package schema

// AEMResult is the outcome of scoring one record.
type AEMResult struct {
	Score      float64      `json:"score"`      // Composite score in [0,1], higher is better
	Components MetricVector `json:"components"` // Normalized metric values used in the weighted sum
}

// Evaluation is the full trace of one scoring run. It is built per call and discarded.
type Evaluation struct {
	Organization   string       `json:"organization"`
	Raw            MetricVector `json:"raw_metrics"`
	EntropyWeights MetricVector `json:"entropy_weights"`
	Normalized     MetricVector `json:"normalized_metrics"`
	FinalWeights   MetricVector `json:"final_weights"`
	Score          float64      `json:"score"`
}

// Result returns the scoring view of the trace.
func (e Evaluation) Result() AEMResult {
	return AEMResult{Score: e.Score, Components: e.Normalized}
}

// SensitivityResult holds the absolute score change caused by scaling each base weight.
type SensitivityResult struct {
	Organization string       `json:"organization"`
	Variation    float64      `json:"variation"`
	BaseScore    float64      `json:"base_score"`
	Deltas       MetricVector `json:"sensitivity"`
}

// MostSensitive returns the metric whose perturbation moved the score the most.
// Ties go to the metric that comes first in AllMetrics.
func (s SensitivityResult) MostSensitive() MetricKey {
	best := 0
	for i := range s.Deltas {
		if s.Deltas[i] > s.Deltas[best] {
			best = i
		}
	}
	return AllMetrics[best]
}

// ComponentAnalysis breaks a score into per-metric parts.
// Contributions are base weight times normalized value, so they show the prior's view
// of each metric rather than the blended one.
type ComponentAnalysis struct {
	Organization    string       `json:"organization"`
	TotalScore      float64      `json:"total_score"`
	ComponentScores MetricVector `json:"component_scores"`
	Contributions   MetricVector `json:"contributions"`
}

// NormalizationAnalysis exposes raw and normalized metrics side by side.
type NormalizationAnalysis struct {
	Organization      string       `json:"organization"`
	RawMetrics        MetricVector `json:"raw_metrics"`
	NormalizedMetrics MetricVector `json:"normalized_metrics"`
	Score             float64      `json:"score"`
	Weights           MetricVector `json:"weights"`
}

// RecordReport bundles every analysis for one record.
type RecordReport struct {
	Source        string                `json:"source,omitempty"`
	Sensitivity   SensitivityResult     `json:"sensitivity"`
	Components    ComponentAnalysis     `json:"components"`
	Normalization NormalizationAnalysis `json:"normalization"`
}

// ValidationReport is the output of running all analyses over a set of records.
type ValidationReport struct {
	Records    []RecordReport   `json:"records"`
	Comparison ComparisonResult `json:"comparison"`
}
