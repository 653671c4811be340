package schema

// Custom string types for type safety.
type (
	// MetricKey names one of the six scoring metrics.
	MetricKey string

	// PolicyKey names one of the governance policy flags.
	PolicyKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// EntropyStrategy selects how entropy is turned into weights.
	EntropyStrategy string

	// AnalysisKind represents one of the explain/stress-test reports.
	AnalysisKind string
)

// Metric keys in their canonical pipeline order.
const (
	ProgramExpenseRatio        MetricKey = "program_expense_ratio"
	FundraisingEfficiency      MetricKey = "fundraising_efficiency"
	RevenueSustainability      MetricKey = "revenue_sustainability"
	NetSurplusMargin           MetricKey = "net_surplus_margin"
	ExecutivePayReasonableness MetricKey = "executive_pay_reasonableness"
	Transparency               MetricKey = "transparency"
)

// Policy keys as they appear in the disclosure record.
const (
	ConflictOfInterestPolicy  PolicyKey = "conflict_of_interest_policy"
	WhistleblowerPolicy       PolicyKey = "whistleblower_policy"
	DocumentRetentionPolicy   PolicyKey = "document_retention_policy"
	CompensationReviewProcess PolicyKey = "compensation_review_process"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All entropy strategies supported.
const (
	// InverseEntropy gives more weight to metrics with low entropy (extreme shares).
	InverseEntropy EntropyStrategy = "inverse" // default
	// DirectEntropy gives more weight to metrics with high entropy (balanced shares).
	DirectEntropy EntropyStrategy = "direct"
)

// All analysis kinds supported.
const (
	SensitivityKind   AnalysisKind = "sensitivity"
	ComponentsKind    AnalysisKind = "components"
	NormalizationKind AnalysisKind = "normalization"
)

// MetricCount is the fixed size of every metric vector.
const MetricCount = 6

// UnknownOrganization is used when a record carries no organization name.
const UnknownOrganization = "Unknown"

// AllMetrics lists every metric in pipeline order. Index i of a MetricVector
// always refers to AllMetrics[i].
var AllMetrics = [MetricCount]MetricKey{
	ProgramExpenseRatio,
	FundraisingEfficiency,
	RevenueSustainability,
	NetSurplusMargin,
	ExecutivePayReasonableness,
	Transparency,
}

// AllPolicies lists every governance flag in display order.
var AllPolicies = [PolicyCount]PolicyKey{
	ConflictOfInterestPolicy,
	WhistleblowerPolicy,
	DocumentRetentionPolicy,
	CompensationReviewProcess,
}

// PolicyCount is the number of governance flags evaluated.
const PolicyCount = 4

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidEntropyStrategies lists all valid entropy strategies.
var ValidEntropyStrategies = map[EntropyStrategy]struct{}{
	InverseEntropy: {},
	DirectEntropy:  {},
}

// metricIndex maps a metric key back to its vector index.
var metricIndex = map[MetricKey]int{
	ProgramExpenseRatio:        0,
	FundraisingEfficiency:      1,
	RevenueSustainability:      2,
	NetSurplusMargin:           3,
	ExecutivePayReasonableness: 4,
	Transparency:               5,
}

// Index returns the vector position of the metric, or -1 if unknown.
func (k MetricKey) Index() int {
	if i, ok := metricIndex[k]; ok {
		return i
	}
	return -1
}

// ParseMetricKey validates a metric name.
func ParseMetricKey(s string) (MetricKey, bool) {
	k := MetricKey(s)
	_, ok := metricIndex[k]
	return k, ok
}
