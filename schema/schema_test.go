package schema_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/huangsam/aem/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeRecord() *schema.FinancialRecord {
	return &schema.FinancialRecord{
		OrganizationName:       "Example Org",
		TotalRevenue:           schema.Float(100),
		TotalExpenses:          schema.Float(90),
		ContributionsAndGrants: schema.Float(40),
		ProgramServiceRevenue:  schema.Float(60),
		FundraisingExpenses:    schema.Float(5),
	}
}

func TestRecordValidate(t *testing.T) {
	t.Run("complete record", func(t *testing.T) {
		assert.NoError(t, completeRecord().Validate())
	})

	t.Run("reported zero is not missing", func(t *testing.T) {
		r := completeRecord()
		r.FundraisingExpenses = schema.Float(0)
		assert.NoError(t, r.Validate())
	})

	tests := []struct {
		name     string
		mutate   func(*schema.FinancialRecord)
		expected string
	}{
		{"missing revenue", func(r *schema.FinancialRecord) { r.TotalRevenue = nil }, "total_revenue"},
		{"missing expenses", func(r *schema.FinancialRecord) { r.TotalExpenses = nil }, "total_expenses"},
		{"missing contributions", func(r *schema.FinancialRecord) { r.ContributionsAndGrants = nil }, "contributions_and_grants"},
		{"missing program revenue", func(r *schema.FinancialRecord) { r.ProgramServiceRevenue = nil }, "program_service_revenue"},
		{"missing fundraising", func(r *schema.FinancialRecord) { r.FundraisingExpenses = nil }, "fundraising_expenses"},
		{"first missing wins", func(r *schema.FinancialRecord) {
			r.FundraisingExpenses = nil
			r.TotalExpenses = nil
		}, "total_expenses"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := completeRecord()
			tt.mutate(r)
			err := r.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, schema.ErrMissingField))

			var mfe *schema.MissingFieldError
			require.ErrorAs(t, err, &mfe)
			assert.Equal(t, tt.expected, mfe.Field)
			assert.Equal(t, "Example Org", mfe.Organization)
		})
	}
}

func TestRecordName(t *testing.T) {
	assert.Equal(t, "Unknown", (&schema.FinancialRecord{}).Name())
	assert.Equal(t, "Example Org", completeRecord().Name())

	var nilRecord *schema.FinancialRecord
	assert.Equal(t, "Unknown", nilRecord.Name())
}

func TestMissingFieldErrorMessage(t *testing.T) {
	err := &schema.MissingFieldError{Field: "total_revenue", Organization: "Acme"}
	assert.Equal(t, `missing required field: total_revenue (organization "Acme")`, err.Error())

	anon := &schema.MissingFieldError{Field: "total_revenue", Organization: schema.UnknownOrganization}
	assert.Equal(t, "missing required field: total_revenue", anon.Error())
}

func TestRecordJSONNullIsMissing(t *testing.T) {
	data := []byte(`{
		"organization_name": "Null Org",
		"total_revenue": null,
		"total_expenses": 10,
		"contributions_and_grants": 1,
		"program_service_revenue": 1,
		"fundraising_expenses": 1,
		"unknown_field": "ignored",
		"policies": {"whistleblower_policy": null, "conflict_of_interest_policy": true}
	}`)

	var r schema.FinancialRecord
	require.NoError(t, json.Unmarshal(data, &r))

	err := r.Validate()
	var mfe *schema.MissingFieldError
	require.ErrorAs(t, err, &mfe)
	assert.Equal(t, "total_revenue", mfe.Field)

	assert.Nil(t, r.Policies[schema.WhistleblowerPolicy])
	require.NotNil(t, r.Policies[schema.ConflictOfInterestPolicy])
	assert.True(t, *r.Policies[schema.ConflictOfInterestPolicy])
}

func TestMetricVectorJSON(t *testing.T) {
	v := schema.MetricVector{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var m map[string]float64
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Len(t, m, schema.MetricCount)
	assert.Equal(t, 0.2, m["fundraising_efficiency"])
	assert.Equal(t, 0.6, m["transparency"])

	var decoded schema.MetricVector
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, v, decoded)

	assert.Error(t, json.Unmarshal([]byte(`{"bogus": 1}`), &decoded))
}

func TestMetricVectorHelpers(t *testing.T) {
	v := schema.MetricVector{1, 2, 3, 4, 5, 6}
	w := v.With(schema.NetSurplusMargin, 40)

	assert.Equal(t, 4.0, v.Get(schema.NetSurplusMargin), "original must not change")
	assert.Equal(t, 40.0, w.Get(schema.NetSurplusMargin))
	assert.Equal(t, 21.0, v.Sum())
	assert.Zero(t, v.Get("bogus"))
	assert.Equal(t, v, v.With("bogus", 99))
}

func TestMetricKeyIndex(t *testing.T) {
	for i, k := range schema.AllMetrics {
		assert.Equal(t, i, k.Index())
		parsed, ok := schema.ParseMetricKey(string(k))
		assert.True(t, ok)
		assert.Equal(t, k, parsed)
	}
	assert.Equal(t, -1, schema.MetricKey("bogus").Index())
	_, ok := schema.ParseMetricKey("bogus")
	assert.False(t, ok)
}

func TestDefaultScoringConfig(t *testing.T) {
	cfg := schema.DefaultScoringConfig()

	require.NoError(t, cfg.Validate())
	assert.InDelta(t, 1.0, cfg.BaseWeights.Sum(), 1e-12)
	assert.InDelta(t, 0.30, cfg.BaseWeights.Get(schema.ProgramExpenseRatio), 1e-12)
	assert.InDelta(t, 0.98, cfg.Ideals.Get(schema.ExecutivePayReasonableness), 1e-12)
	assert.InDelta(t, 1/(1+math.Exp(-5)), cfg.Ideals.Get(schema.Transparency), 1e-12)
	assert.Less(t, cfg.Ideals.Get(schema.Transparency), 1.0)
	assert.Equal(t, cfg.Ideals.Get(schema.ExecutivePayReasonableness), cfg.ExecPayNeutral)
	assert.Equal(t, schema.InverseEntropy, cfg.Strategy)
	assert.Equal(t, 0.3, cfg.PolicyWeight(schema.WhistleblowerPolicy))
	assert.Equal(t, 0.2, cfg.PolicyWeight(schema.CompensationReviewProcess))
	assert.Zero(t, cfg.PolicyWeight("bogus"))
}

func TestScoringConfigCopies(t *testing.T) {
	cfg := schema.DefaultScoringConfig()
	perturbed := cfg.WithBaseWeight(schema.Transparency, 0.5)

	assert.Equal(t, 0.10, cfg.BaseWeights.Get(schema.Transparency))
	assert.Equal(t, 0.5, perturbed.BaseWeights.Get(schema.Transparency))
	assert.NoError(t, perturbed.Validate(), "base weights need not sum to one")

	direct := cfg.WithStrategy(schema.DirectEntropy)
	assert.Equal(t, schema.InverseEntropy, cfg.Strategy)
	assert.Equal(t, schema.DirectEntropy, direct.Strategy)

	norm := perturbed.NormalizedBaseWeights()
	assert.InDelta(t, 1.0, norm.Sum(), 1e-12)
}

func TestScoringConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*schema.ScoringConfig)
	}{
		{"negative base weight", func(c *schema.ScoringConfig) { c.BaseWeights[0] = -0.1 }},
		{"zero base weights", func(c *schema.ScoringConfig) { c.BaseWeights = schema.MetricVector{} }},
		{"nan base weight", func(c *schema.ScoringConfig) { c.BaseWeights[2] = math.NaN() }},
		{"negative policy weight", func(c *schema.ScoringConfig) { c.PolicyWeights[1] = -1 }},
		{"zero policy weights", func(c *schema.ScoringConfig) { c.PolicyWeights = [schema.PolicyCount]float64{} }},
		{"infinite ideal", func(c *schema.ScoringConfig) { c.Ideals[3] = math.Inf(1) }},
		{"zero steepness", func(c *schema.ScoringConfig) { c.Steepness = 0 }},
		{"negative z clip", func(c *schema.ScoringConfig) { c.ZClip = -3 }},
		{"zero policy steepness", func(c *schema.ScoringConfig) { c.PolicySteepness = 0 }},
		{"zero epsilon", func(c *schema.ScoringConfig) { c.Epsilon = 0 }},
		{"nan midpoint", func(c *schema.ScoringConfig) { c.PolicyMidpoint = math.NaN() }},
		{"unknown strategy", func(c *schema.ScoringConfig) { c.Strategy = "sideways" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := schema.DefaultScoringConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, schema.ErrInvalidConfig)
		})
	}
}

func TestAnalysisKinds(t *testing.T) {
	kinds := []schema.AnalysisKind{schema.SensitivityKind, schema.ComponentsKind, schema.NormalizationKind}
	assert.ElementsMatch(t, []schema.AnalysisKind{"sensitivity", "components", "normalization"}, kinds)

	// The report type and the kind constant live side by side in the package.
	var report schema.NormalizationAnalysis
	assert.Empty(t, report.Organization)
}
