package core

import (
	"maps"
	"math"
	"slices"

	"github.com/huangsam/aem/core/algo"
	"github.com/huangsam/aem/schema"
)

// extractor computes one raw metric from a validated record.
type extractor func(r *schema.FinancialRecord, cfg schema.ScoringConfig) float64

// extractors holds one extractor per metric, in AllMetrics order.
var extractors = [schema.MetricCount]extractor{
	programExpenseRatio,
	fundraisingEfficiency,
	revenueSustainability,
	netSurplusMargin,
	executivePayReasonableness,
	transparency,
}

// ExtractRawMetrics computes all six raw metrics. The record must already have
// passed Validate. Non-finite values degrade to 0.
func ExtractRawMetrics(r *schema.FinancialRecord, cfg schema.ScoringConfig) schema.MetricVector {
	var raw schema.MetricVector
	for i, extract := range extractors {
		raw[i] = algo.FiniteOr(extract(r, cfg), 0)
	}
	return raw
}

// value dereferences a required total. Validate guarantees it is present.
func value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// programExpenseRatio is the share of total expenses spent on the largest programs.
func programExpenseRatio(r *schema.FinancialRecord, _ schema.ScoringConfig) float64 {
	if r.ProgramExpenseRatio != nil {
		return *r.ProgramExpenseRatio
	}
	totalExpenses := value(r.TotalExpenses)
	if totalExpenses == 0 || len(r.LargestProgramExpenses) == 0 {
		return 0
	}
	// Summed in key order so the ratio is bit-identical across runs.
	var programs float64
	for _, name := range slices.Sorted(maps.Keys(r.LargestProgramExpenses)) {
		programs += r.LargestProgramExpenses[name].Expenses
	}
	return programs / totalExpenses
}

// fundraisingEfficiency is log10 of dollars raised per fundraising dollar.
// Ratios that cannot be logged map to 0.
func fundraisingEfficiency(r *schema.FinancialRecord, _ schema.ScoringConfig) float64 {
	var ratio float64
	if r.FundraisingEfficiency != nil {
		ratio = *r.FundraisingEfficiency
	} else {
		ratio = algo.SafeRatio(value(r.ContributionsAndGrants), value(r.FundraisingExpenses))
	}
	if ratio <= 0 {
		return 0
	}
	return math.Log10(ratio)
}

// revenueSustainability is the share of revenue earned from program services.
func revenueSustainability(r *schema.FinancialRecord, _ schema.ScoringConfig) float64 {
	return algo.SafeRatio(value(r.ProgramServiceRevenue), value(r.TotalRevenue))
}

// netSurplusMargin is the operating surplus as a share of revenue. It may be negative.
func netSurplusMargin(r *schema.FinancialRecord, _ schema.ScoringConfig) float64 {
	totalRevenue := value(r.TotalRevenue)
	return algo.SafeRatio(totalRevenue-value(r.TotalExpenses), totalRevenue)
}

// executivePayReasonableness is one minus the top salary's share of total expenses.
func executivePayReasonableness(r *schema.FinancialRecord, cfg schema.ScoringConfig) float64 {
	totalExpenses := value(r.TotalExpenses)
	if len(r.TopIndividualSalaries) == 0 || totalExpenses == 0 {
		return cfg.ExecPayNeutral
	}
	top := math.Inf(-1)
	for _, salary := range r.TopIndividualSalaries {
		top = math.Max(top, salary)
	}
	return 1 - top/totalExpenses
}

// transparency is the smoothed governance policy score.
func transparency(r *schema.FinancialRecord, cfg schema.ScoringConfig) float64 {
	return PolicyScore(r.Policies, cfg)
}
