package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/aem/internal/contract"
	"github.com/huangsam/aem/internal/parquet"
	"github.com/huangsam/aem/schema"
)

// PrintSensitivity outputs how much the score moves when each base weight is perturbed.
func PrintSensitivity(result schema.SensitivityResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	base := cfg.Scoring.BaseWeights

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"organization", "metric", "base_weight", "variation", "sensitivity"}, func(cw *csv.Writer) error {
				for i, k := range schema.AllMetrics {
					rec := []string{result.Organization, string(k), fmtFloat(base[i]), fmtFloat(result.Variation), fmtFloat(result.Deltas[i])}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		rows := parquet.NewSensitivityRows(uuid.NewString(), base, result)
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteMetricRows(w, rows)
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSensitivityText(w, result, base, fmtFloat)
		}, "Wrote text")
	}
}

// writeSensitivityText writes the sensitivity table with the most sensitive metric.
func writeSensitivityText(w io.Writer, result schema.SensitivityResult, base schema.MetricVector, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "Sensitivity for %s (variation %+.0f%%, base score %s)\n",
		result.Organization, result.Variation*100, fmtFloat(result.BaseScore)); err != nil {
		return err
	}
	data := make([][]string, 0, schema.MetricCount)
	for i, k := range schema.AllMetrics {
		data = append(data, []string{string(k), fmtFloat(base[i]), fmtFloat(result.Deltas[i])})
	}
	if err := writeTable(w, []string{"Metric", "Base Weight", "Δ Score"}, data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Most sensitive: %s\n", result.MostSensitive())
	return err
}

// PrintComponents outputs the base weighted contribution of every metric.
func PrintComponents(result schema.ComponentAnalysis, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	base := cfg.Scoring.BaseWeights

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"organization", "metric", "normalized", "base_weight", "contribution"}, func(cw *csv.Writer) error {
				for i, k := range schema.AllMetrics {
					rec := []string{result.Organization, string(k), fmtFloat(result.ComponentScores[i]), fmtFloat(base[i]), fmtFloat(result.Contributions[i])}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		rows := parquet.NewComponentRows(uuid.NewString(), base, result)
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteMetricRows(w, rows)
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComponentsText(w, result, base, fmtFloat, cfg)
		}, "Wrote text")
	}
}

// writeComponentsText writes the component table and the total score.
func writeComponentsText(w io.Writer, result schema.ComponentAnalysis, base schema.MetricVector, fmtFloat func(float64) string, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "Components for %s\n", result.Organization); err != nil {
		return err
	}
	data := make([][]string, 0, schema.MetricCount)
	for i, k := range schema.AllMetrics {
		data = append(data, []string{string(k), fmtFloat(result.ComponentScores[i]), fmtFloat(base[i]), fmtFloat(result.Contributions[i])})
	}
	if err := writeTable(w, []string{"Metric", "Normalized", "Base Weight", "Contribution"}, data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total score: %s (%s)\n", fmtFloat(result.TotalScore), labelFor(result.TotalScore, cfg))
	return err
}

// PrintNormalization outputs raw and normalized metrics with the final weights.
func PrintNormalization(result schema.NormalizationAnalysis, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"organization", "metric", "raw", "normalized", "final_weight"}, func(cw *csv.Writer) error {
				for i, k := range schema.AllMetrics {
					rec := []string{result.Organization, string(k), fmtFloat(result.RawMetrics[i]), fmtFloat(result.NormalizedMetrics[i]), fmtFloat(result.Weights[i])}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		rows := parquet.NewNormalizationRows(uuid.NewString(), cfg.Scoring.BaseWeights, result)
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteMetricRows(w, rows)
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeNormalizationText(w, result, fmtFloat, cfg)
		}, "Wrote text")
	}
}

// writeNormalizationText writes the normalization table and the score.
func writeNormalizationText(w io.Writer, result schema.NormalizationAnalysis, fmtFloat func(float64) string, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "Normalization for %s\n", result.Organization); err != nil {
		return err
	}
	data := make([][]string, 0, schema.MetricCount)
	for i, k := range schema.AllMetrics {
		data = append(data, []string{string(k), fmtFloat(result.RawMetrics[i]), fmtFloat(result.NormalizedMetrics[i]), fmtFloat(result.Weights[i])})
	}
	if err := writeTable(w, []string{"Metric", "Raw", "Normalized", "Final Weight"}, data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Score: %s (%s)\n", fmtFloat(result.Score), labelFor(result.Score, cfg))
	return err
}

// PrintValidationReport outputs every analysis for each record followed by the cross comparison.
func PrintValidationReport(report schema.ValidationReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	base := cfg.Scoring.BaseWeights

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeValidationCSV(w, report, base, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		rows := parquet.NewMetricRows(uuid.NewString(), base, report)
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteMetricRows(w, rows)
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeValidationText(w, report, base, fmtFloat, cfg, duration)
		}, "Wrote text")
	}
}

// writeValidationCSV writes one row per organization and metric.
func writeValidationCSV(w io.Writer, report schema.ValidationReport, base schema.MetricVector, fmtFloat func(float64) string) error {
	header := []string{"source", "organization", "metric", "raw", "normalized", "final_weight", "base_weight", "contribution", "sensitivity"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, rr := range report.Records {
			for i, k := range schema.AllMetrics {
				rec := []string{
					rr.Source,
					rr.Components.Organization,
					string(k),
					fmtFloat(rr.Normalization.RawMetrics[i]),
					fmtFloat(rr.Normalization.NormalizedMetrics[i]),
					fmtFloat(rr.Normalization.Weights[i]),
					fmtFloat(base[i]),
					fmtFloat(rr.Components.Contributions[i]),
					fmtFloat(rr.Sensitivity.Deltas[i]),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// writeValidationText writes the three analyses of every record and the comparison summary.
func writeValidationText(w io.Writer, report schema.ValidationReport, base schema.MetricVector, fmtFloat func(float64) string, cfg *contract.Config, duration time.Duration) error {
	for _, rr := range report.Records {
		if err := writeSensitivityText(w, rr.Sensitivity, base, fmtFloat); err != nil {
			return err
		}
		if err := writeComponentsText(w, rr.Components, base, fmtFloat, cfg); err != nil {
			return err
		}
		if err := writeNormalizationText(w, rr.Normalization, fmtFloat, cfg); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	if len(report.Comparison.Organizations) > 1 {
		if err := writeComparisonText(w, report.Comparison, fmtFloat, cfg); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Validated %d records in %v\n", len(report.Records), duration)
	return err
}
