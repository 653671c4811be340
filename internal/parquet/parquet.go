// Package parquet provides data structures and functions for exporting aem
// scoring data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/aem/schema"
	"github.com/parquet-go/parquet-go"
)

// ScoreRow represents the composite score of one organization in a run.
type ScoreRow struct {
	// RunID groups every row written by one invocation
	RunID string `parquet:"run_id,snappy"`

	// AnalysisTime is when the record was scored (stored as TIMESTAMP with nanosecond precision)
	AnalysisTime time.Time `parquet:"analysis_time,snappy"`

	// Source is the file the record was loaded from (nullable)
	Source *string `parquet:"source,optional,snappy"`

	// Organization is the organization name, or Unknown
	Organization string `parquet:"organization,snappy"`

	// FiscalYear is the reporting period of the record (nullable)
	FiscalYear *string `parquet:"fiscal_year,optional,snappy"`

	// Rank is the 1-based position after sorting by score
	Rank int32 `parquet:"rank,snappy"`

	// Score is the composite score in [0,1]
	Score float64 `parquet:"score,snappy"`

	// Label is the plain text score label
	Label string `parquet:"label,snappy"`

	// Normalized metric values
	ProgramExpenseRatio        float64 `parquet:"program_expense_ratio,snappy"`
	FundraisingEfficiency      float64 `parquet:"fundraising_efficiency,snappy"`
	RevenueSustainability      float64 `parquet:"revenue_sustainability,snappy"`
	NetSurplusMargin           float64 `parquet:"net_surplus_margin,snappy"`
	ExecutivePayReasonableness float64 `parquet:"executive_pay_reasonableness,snappy"`
	Transparency               float64 `parquet:"transparency,snappy"`
}

// MetricRow represents one metric of one organization in an analysis.
type MetricRow struct {
	// RunID groups every row written by one invocation
	RunID string `parquet:"run_id,snappy"`

	// Organization is the organization name, or Unknown
	Organization string `parquet:"organization,snappy"`

	// Metric is the metric key
	Metric string `parquet:"metric,snappy"`

	// BaseWeight is the configured prior weight
	BaseWeight float64 `parquet:"base_weight,snappy"`

	// Contribution is the base weight times the normalized value
	Contribution float64 `parquet:"contribution,snappy"`

	// Raw, Normalized and FinalWeight are only known for full evaluations (nullable)
	Raw         *float64 `parquet:"raw,optional,snappy"`
	Normalized  *float64 `parquet:"normalized,optional,snappy"`
	FinalWeight *float64 `parquet:"final_weight,optional,snappy"`

	// Sensitivity is the absolute score change after perturbing the base weight (nullable)
	Sensitivity *float64 `parquet:"sensitivity,optional,snappy"`
}

// writeRows writes rows to w and closes the Parquet writer so the footer is flushed.
func writeRows[T any](w io.Writer, rows []T) error {
	// The schema is automatically derived from the struct tags
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// writeRowsToPath creates outputPath and writes rows to it.
func writeRowsToPath[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeRows(file, rows); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// WriteScoreRows writes score rows as a Parquet file to w.
func WriteScoreRows(w io.Writer, rows []ScoreRow) error {
	return writeRows(w, rows)
}

// WriteMetricRows writes metric rows as a Parquet file to w.
func WriteMetricRows(w io.Writer, rows []MetricRow) error {
	return writeRows(w, rows)
}

// WriteScoreRowsParquet writes score rows to a Parquet file at outputPath.
func WriteScoreRowsParquet(rows []ScoreRow, outputPath string) error {
	return writeRowsToPath(rows, outputPath)
}

// WriteMetricRowsParquet writes metric rows to a Parquet file at outputPath.
func WriteMetricRowsParquet(rows []MetricRow, outputPath string) error {
	return writeRowsToPath(rows, outputPath)
}

// optionalString returns nil for an empty string.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// NewScoreRows converts ranked results into Parquet rows.
func NewScoreRows(runID string, analysisTime time.Time, results []schema.EnrichedScoreResult) []ScoreRow {
	rows := make([]ScoreRow, len(results))
	for i, r := range results {
		c := r.Components
		rows[i] = ScoreRow{
			RunID:                      runID,
			AnalysisTime:               analysisTime,
			Source:                     optionalString(r.Source),
			Organization:               r.Organization,
			FiscalYear:                 optionalString(r.FiscalYear),
			Rank:                       int32(r.Rank),
			Score:                      r.Score,
			Label:                      r.Label,
			ProgramExpenseRatio:        c.Get(schema.ProgramExpenseRatio),
			FundraisingEfficiency:      c.Get(schema.FundraisingEfficiency),
			RevenueSustainability:      c.Get(schema.RevenueSustainability),
			NetSurplusMargin:           c.Get(schema.NetSurplusMargin),
			ExecutivePayReasonableness: c.Get(schema.ExecutivePayReasonableness),
			Transparency:               c.Get(schema.Transparency),
		}
	}
	return rows
}

// NewMetricRows converts an analysis report into one row per organization and metric.
func NewMetricRows(runID string, baseWeights schema.MetricVector, report schema.ValidationReport) []MetricRow {
	rows := make([]MetricRow, 0, len(report.Records)*schema.MetricCount)
	for _, rr := range report.Records {
		for i, key := range schema.AllMetrics {
			raw := rr.Normalization.RawMetrics[i]
			normalized := rr.Normalization.NormalizedMetrics[i]
			final := rr.Normalization.Weights[i]
			sensitivity := rr.Sensitivity.Deltas[i]
			rows = append(rows, MetricRow{
				RunID:        runID,
				Organization: rr.Components.Organization,
				Metric:       string(key),
				BaseWeight:   baseWeights[i],
				Contribution: rr.Components.Contributions[i],
				Raw:          &raw,
				Normalized:   &normalized,
				FinalWeight:  &final,
				Sensitivity:  &sensitivity,
			})
		}
	}
	return rows
}

// NewSensitivityRows converts a sensitivity result into one row per metric.
func NewSensitivityRows(runID string, baseWeights schema.MetricVector, result schema.SensitivityResult) []MetricRow {
	rows := make([]MetricRow, schema.MetricCount)
	for i, key := range schema.AllMetrics {
		sensitivity := result.Deltas[i]
		rows[i] = MetricRow{
			RunID:        runID,
			Organization: result.Organization,
			Metric:       string(key),
			BaseWeight:   baseWeights[i],
			Sensitivity:  &sensitivity,
		}
	}
	return rows
}

// NewComponentRows converts a component analysis into one row per metric.
func NewComponentRows(runID string, baseWeights schema.MetricVector, result schema.ComponentAnalysis) []MetricRow {
	rows := make([]MetricRow, schema.MetricCount)
	for i, key := range schema.AllMetrics {
		normalized := result.ComponentScores[i]
		rows[i] = MetricRow{
			RunID:        runID,
			Organization: result.Organization,
			Metric:       string(key),
			BaseWeight:   baseWeights[i],
			Contribution: result.Contributions[i],
			Normalized:   &normalized,
		}
	}
	return rows
}

// NewNormalizationRows converts a normalization analysis into one row per metric.
func NewNormalizationRows(runID string, baseWeights schema.MetricVector, result schema.NormalizationAnalysis) []MetricRow {
	rows := make([]MetricRow, schema.MetricCount)
	for i, key := range schema.AllMetrics {
		raw := result.RawMetrics[i]
		normalized := result.NormalizedMetrics[i]
		final := result.Weights[i]
		rows[i] = MetricRow{
			RunID:        runID,
			Organization: result.Organization,
			Metric:       string(key),
			BaseWeight:   baseWeights[i],
			Contribution: baseWeights[i] * normalized,
			Raw:          &raw,
			Normalized:   &normalized,
			FinalWeight:  &final,
		}
	}
	return rows
}
