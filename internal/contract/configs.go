package contract

import (
	"fmt"
	"maps"
	"runtime"
	"strings"

	"github.com/huangsam/aem/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 3
	MaxPrecision       = 6
	DefaultMinScore    = 0.5
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// MetricValuesRaw holds one optional value per metric. It is used for both
// custom weights and custom ideals. Use float64 pointers for optional fields.
type MetricValuesRaw struct {
	ProgramExpenseRatio        *float64 `mapstructure:"program_expense_ratio"`
	FundraisingEfficiency      *float64 `mapstructure:"fundraising_efficiency"`
	RevenueSustainability      *float64 `mapstructure:"revenue_sustainability"`
	NetSurplusMargin           *float64 `mapstructure:"net_surplus_margin"`
	ExecutivePayReasonableness *float64 `mapstructure:"executive_pay_reasonableness"`
	Transparency               *float64 `mapstructure:"transparency"`
}

// values returns the raw pointers in AllMetrics order.
func (m MetricValuesRaw) values() [schema.MetricCount]*float64 {
	return [schema.MetricCount]*float64{
		m.ProgramExpenseRatio,
		m.FundraisingEfficiency,
		m.RevenueSustainability,
		m.NetSurplusMargin,
		m.ExecutivePayReasonableness,
		m.Transparency,
	}
}

// PolicyWeightsRaw holds optional governance flag weights from the YAML config file.
type PolicyWeightsRaw struct {
	ConflictOfInterestPolicy  *float64 `mapstructure:"conflict_of_interest_policy"`
	WhistleblowerPolicy       *float64 `mapstructure:"whistleblower_policy"`
	DocumentRetentionPolicy   *float64 `mapstructure:"document_retention_policy"`
	CompensationReviewProcess *float64 `mapstructure:"compensation_review_process"`
}

// values returns the raw pointers in AllPolicies order.
func (p PolicyWeightsRaw) values() [schema.PolicyCount]*float64 {
	return [schema.PolicyCount]*float64{
		p.ConflictOfInterestPolicy,
		p.WhistleblowerPolicy,
		p.DocumentRetentionPolicy,
		p.CompensationReviewProcess,
	}
}

// Config holds the runtime configuration for scoring.
// This struct remains the "final, validated" config.
type Config struct {
	// Sources are record files or directories from positional arguments.
	Sources []string

	// Scoring is the engine configuration built from defaults and overrides.
	Scoring schema.ScoringConfig

	Variation   float64 // Fractional base weight change used by sensitivity analysis
	MinScore    float64 // Threshold used by the check command
	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	UseColors bool // Enable colored labels in table output
	Verbose   bool // Enable debug logging to stderr

	// CustomWeights holds the base weights the user overrode, keyed by metric.
	CustomWeights map[schema.MetricKey]float64
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	Sources []string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile string `mapstructure:"output-file"`
	Output     string `mapstructure:"output"`
	Precision  int    `mapstructure:"precision"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`
	Workers    int    `mapstructure:"workers"`
	Limit      int    `mapstructure:"limit"`
	Verbose    bool   `mapstructure:"verbose"`

	// --- Engine tuning ---
	Steepness       float64 `mapstructure:"steepness"`
	PolicySteepness float64 `mapstructure:"policy-steepness"`
	PolicyMidpoint  float64 `mapstructure:"policy-midpoint"`
	EntropyStrategy string  `mapstructure:"entropy-strategy"`
	Epsilon         float64 `mapstructure:"epsilon"`
	ExecPayNeutral  float64 `mapstructure:"exec-pay-neutral"`
	ZClip           float64 `mapstructure:"z-clip"`

	// --- Fields from analyzeCmd and checkCmd flags ---
	Variation float64 `mapstructure:"variation"`
	MinScore  float64 `mapstructure:"min-score"`

	// --- Custom values from config file ---
	Weights       MetricValuesRaw  `mapstructure:"weights"`
	PolicyWeights PolicyWeightsRaw `mapstructure:"policy_weights"`
	Ideals        MetricValuesRaw  `mapstructure:"ideals"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Sources != nil {
		clone.Sources = make([]string, len(c.Sources))
		copy(clone.Sources, c.Sources)
	}
	if c.CustomWeights != nil {
		clone.CustomWeights = make(map[schema.MetricKey]float64, len(c.CustomWeights))
		maps.Copy(clone.CustomWeights, c.CustomWeights)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processScoringConfig(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.Sources = append([]string(nil), input.Sources...)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Verbose = input.Verbose

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}

	return nil
}

// processScoringConfig builds the engine configuration from defaults plus overrides.
func processScoringConfig(cfg *Config, input *ConfigRawInput) error {
	sc := schema.DefaultScoringConfig()

	weights, custom, err := ProcessWeightsRawInput(input.Weights, sc.BaseWeights, true)
	if err != nil {
		return err
	}
	sc.BaseWeights = weights
	cfg.CustomWeights = custom

	policyWeights, err := ProcessPolicyWeightsRawInput(input.PolicyWeights, sc.PolicyWeights, true)
	if err != nil {
		return err
	}
	sc.PolicyWeights = policyWeights

	for i, v := range input.Ideals.values() {
		if v != nil {
			sc.Ideals[i] = *v
		}
	}

	sc.Steepness = input.Steepness
	sc.PolicySteepness = input.PolicySteepness
	sc.PolicyMidpoint = input.PolicyMidpoint
	sc.Epsilon = input.Epsilon
	sc.ExecPayNeutral = input.ExecPayNeutral
	sc.ZClip = input.ZClip
	sc.Strategy = schema.EntropyStrategy(strings.ToLower(input.EntropyStrategy))
	if _, ok := schema.ValidEntropyStrategies[sc.Strategy]; !ok {
		return fmt.Errorf("invalid entropy strategy '%s'. must be inverse, direct", input.EntropyStrategy)
	}

	if err := sc.Validate(); err != nil {
		return err
	}
	cfg.Scoring = sc
	return nil
}

// processThresholds validates the sensitivity variation and the check threshold.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	if input.Variation <= -1 {
		return fmt.Errorf("variation must be greater than -1 (received %.3f)", input.Variation)
	}
	cfg.Variation = input.Variation

	if input.MinScore < 0.0 || input.MinScore > 1.0 {
		return fmt.Errorf("min score must be between 0.0 and 1.0 (received %.3f)", input.MinScore)
	}
	cfg.MinScore = input.MinScore
	return nil
}

// ProcessWeightsRawInput merges custom metric weights over the defaults.
// If validateSum is true and any weight was customized, the merged weights must sum to 1.0.
// The second return value holds only the customized weights.
func ProcessWeightsRawInput(weights MetricValuesRaw, defaults schema.MetricVector, validateSum bool) (schema.MetricVector, map[schema.MetricKey]float64, error) {
	result := defaults
	custom := make(map[schema.MetricKey]float64)

	for i, v := range weights.values() {
		if v == nil {
			continue
		}
		if *v < 0 {
			return defaults, nil, fmt.Errorf("weight for %s cannot be negative (received %.3f)", schema.AllMetrics[i], *v)
		}
		result[i] = *v
		custom[schema.AllMetrics[i]] = *v
	}

	if len(custom) > 0 && validateSum {
		if sum := result.Sum(); sum < 0.999 || sum > 1.001 {
			return defaults, nil, fmt.Errorf("custom metric weights must sum to 1.0, got %.3f", sum)
		}
	}
	return result, custom, nil
}

// ProcessPolicyWeightsRawInput merges custom governance flag weights over the defaults.
// If validateSum is true and any weight was customized, the merged weights must sum to 1.0.
func ProcessPolicyWeightsRawInput(weights PolicyWeightsRaw, defaults [schema.PolicyCount]float64, validateSum bool) ([schema.PolicyCount]float64, error) {
	result := defaults
	customized := false

	for i, v := range weights.values() {
		if v == nil {
			continue
		}
		if *v < 0 {
			return defaults, fmt.Errorf("policy weight for %s cannot be negative (received %.3f)", schema.AllPolicies[i], *v)
		}
		result[i] = *v
		customized = true
	}

	if customized && validateSum {
		var sum float64
		for _, w := range result {
			sum += w
		}
		if sum < 0.999 || sum > 1.001 {
			return defaults, fmt.Errorf("custom policy weights must sum to 1.0, got %.3f", sum)
		}
	}
	return result, nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
