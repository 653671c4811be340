package schema

// Score label values.
const (
	ExemplaryValue = "Exemplary"
	StrongValue    = "Strong"
	FairValue      = "Fair"
	WeakValue      = "Weak"
)

// ScoreResult is a scored record along with where it came from.
type ScoreResult struct {
	Source       string `json:"source,omitempty"`
	Organization string `json:"organization"`
	FiscalYear   string `json:"fiscal_year,omitempty"`
	AEMResult
}

// EnrichedScoreResult adds presentation data to a ScoreResult.
type EnrichedScoreResult struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	ScoreResult
}

// BatchFailure records a source that could not be loaded or scored.
type BatchFailure struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// BatchResult holds the results of scoring many records in one run.
// Results keep the input order; ranking is applied at output time.
type BatchResult struct {
	RunID    string         `json:"run_id"`
	Results  []ScoreResult  `json:"results"`
	Failures []BatchFailure `json:"failures,omitempty"`
}

// GetPlainLabel returns a plain text label describing how effective an
// organization is based on its composite score in [0,1].
func GetPlainLabel(score float64) string {
	switch {
	case score >= 0.75:
		return ExemplaryValue
	case score >= 0.60:
		return StrongValue
	case score >= 0.40:
		return FairValue
	default:
		return WeakValue
	}
}

// EnrichScores adds rank and label to a list of score results. The input is
// expected to be sorted already.
func EnrichScores(results []ScoreResult) []EnrichedScoreResult {
	output := make([]EnrichedScoreResult, len(results))
	for i, r := range results {
		output[i] = EnrichedScoreResult{
			Rank:        i + 1,
			Label:       GetPlainLabel(r.Score),
			ScoreResult: r,
		}
	}
	return output
}

// MetricDefinition describes one metric for the metrics command.
type MetricDefinition struct {
	Key         MetricKey `json:"key"`
	Description string    `json:"description"`
	BaseWeight  float64   `json:"base_weight"`
	Ideal       float64   `json:"ideal"`
}

// PolicyDefinition describes one governance flag and its weight.
type PolicyDefinition struct {
	Key    PolicyKey `json:"key"`
	Weight float64   `json:"weight"`
}

// MetricsRenderModel is the data shown by the metrics command.
type MetricsRenderModel struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Formula     string             `json:"formula"`
	Strategy    EntropyStrategy    `json:"entropy_strategy"`
	Metrics     []MetricDefinition `json:"metrics"`
	Policies    []PolicyDefinition `json:"policies"`
}
