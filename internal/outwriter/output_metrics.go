package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/aem/internal/contract"
	"github.com/huangsam/aem/schema"
)

// metricDescriptions explains how each raw metric is computed from a record.
var metricDescriptions = map[schema.MetricKey]string{
	schema.ProgramExpenseRatio:        "Program service expenses / total expenses",
	schema.FundraisingEfficiency:      "log10(total revenue / fundraising expenses)",
	schema.RevenueSustainability:      "Program service revenue / total revenue",
	schema.NetSurplusMargin:           "(revenue - expenses) / revenue",
	schema.ExecutivePayReasonableness: "1 - top salary / total expenses",
	schema.Transparency:               "Sigmoid of weighted governance policy disclosures",
}

// formatFormula renders the base weights as a readable weighted sum.
func formatFormula(weights schema.MetricVector) string {
	var parts []string
	for i, k := range schema.AllMetrics {
		if weights[i] > 0 {
			parts = append(parts, fmt.Sprintf("%.2f*%s", weights[i], k))
		}
	}
	return strings.Join(parts, "+")
}

// buildMetricsRenderModel constructs the render model from the active scoring config.
func buildMetricsRenderModel(sc schema.ScoringConfig) *schema.MetricsRenderModel {
	metrics := make([]schema.MetricDefinition, 0, schema.MetricCount)
	for i, k := range schema.AllMetrics {
		metrics = append(metrics, schema.MetricDefinition{
			Key:         k,
			Description: metricDescriptions[k],
			BaseWeight:  sc.BaseWeights[i],
			Ideal:       sc.Ideals[i],
		})
	}
	policies := make([]schema.PolicyDefinition, 0, schema.PolicyCount)
	for i, k := range schema.AllPolicies {
		policies = append(policies, schema.PolicyDefinition{Key: k, Weight: sc.PolicyWeights[i]})
	}
	return &schema.MetricsRenderModel{
		Title:       "AEM Scoring Metrics",
		Description: "Score = sum of blended weights times sigmoid-normalized metrics",
		Formula:     formatFormula(sc.BaseWeights),
		Strategy:    sc.Strategy,
		Metrics:     metrics,
		Policies:    policies,
	}
}

// PrintMetricsDefinitions displays the metric definitions and the active weights.
// This is a static display that does not require any records.
func PrintMetricsDefinitions(cfg *contract.Config) error {
	renderModel := buildMetricsRenderModel(cfg.Scoring)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, renderModel)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVMetrics(w, renderModel)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported("metric definitions")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printMetricsText(w, renderModel)
		}, "Wrote text")
	}
}

// writeCSVMetrics writes the metric definitions in CSV format.
func writeCSVMetrics(w io.Writer, renderModel *schema.MetricsRenderModel) error {
	return writeCSVWithHeader(w, []string{"metric", "description", "base_weight", "ideal"}, func(cw *csv.Writer) error {
		for _, m := range renderModel.Metrics {
			rec := []string{string(m.Key), m.Description, fmt.Sprintf("%.2f", m.BaseWeight), fmt.Sprintf("%.2f", m.Ideal)}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// printMetricsText displays metrics in human-readable text format.
func printMetricsText(w io.Writer, renderModel *schema.MetricsRenderModel) error {
	if _, err := fmt.Fprintf(w, "📊 %s\n%s\n\n%s\n\n", renderModel.Title, strings.Repeat("=", len(renderModel.Title)+3), renderModel.Description); err != nil {
		return err
	}

	data := make([][]string, 0, len(renderModel.Metrics))
	for _, m := range renderModel.Metrics {
		data = append(data, []string{metricAbbrev[m.Key], string(m.Key), m.Description, fmt.Sprintf("%.2f", m.BaseWeight), fmt.Sprintf("%.2f", m.Ideal)})
	}
	if err := writeTable(w, []string{"Abbrev", "Metric", "Definition", "Base Weight", "Ideal"}, data); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nPrior: Score = %s\n", renderModel.Formula); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Entropy strategy: %s (final weights = mean of prior and entropy weights)\n\n", renderModel.Strategy); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "🏛️  Governance policies\n"); err != nil {
		return err
	}
	for _, p := range renderModel.Policies {
		if _, err := fmt.Fprintf(w, "   %s: %.2f\n", p.Key, p.Weight); err != nil {
			return err
		}
	}
	return nil
}
