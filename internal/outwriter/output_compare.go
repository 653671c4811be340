package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/huangsam/aem/internal/contract"
	"github.com/huangsam/aem/internal/parquet"
	"github.com/huangsam/aem/schema"
)

// PrintComparison outputs independent scoring runs side by side.
func PrintComparison(result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonCSV(w, result, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		rows := parquet.NewScoreRows(uuid.NewString(), time.Now(), comparisonScores(result))
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteScoreRows(w, rows)
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeComparisonText(w, result, fmtFloat, cfg); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Comparison completed in %v\n", duration)
			return err
		}, "Wrote table")
	}
}

// comparisonScores converts a comparison into enriched results in input order.
// Rank reflects the position of the organization in the comparison.
func comparisonScores(result schema.ComparisonResult) []schema.EnrichedScoreResult {
	scores := make([]schema.ScoreResult, 0, len(result.Organizations))
	for _, name := range result.Organizations {
		scores = append(scores, schema.ScoreResult{Organization: name, AEMResult: result.Results[name]})
	}
	return schema.EnrichScores(scores)
}

// writeComparisonCSV writes one row per organization.
func writeComparisonCSV(w io.Writer, result schema.ComparisonResult, fmtFloat func(float64) string) error {
	header := append([]string{"organization", "score", "label"}, metricColumns()...)
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, name := range result.Organizations {
			r := result.Results[name]
			rec := append([]string{name, fmtFloat(r.Score), contract.GetPlainLabel(r.Score)}, formatVector(r.Components, fmtFloat)...)
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeComparisonText writes a per-metric table with one column per organization.
// A delta column is added when exactly two organizations are compared.
func writeComparisonText(w io.Writer, result schema.ComparisonResult, fmtFloat func(float64) string, cfg *contract.Config) error {
	pair := len(result.Organizations) == 2
	nameWidth := GetMaxTableNameWidth(cfg, false)

	headers := []string{"Metric"}
	for _, name := range result.Organizations {
		headers = append(headers, contract.TruncateName(name, nameWidth))
	}
	if pair {
		headers = append(headers, "Delta")
	}

	var red, green func(...any) string
	if cfg.UseColors {
		red = color.New(color.FgRed).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
	} else {
		red = fmt.Sprint
		green = fmt.Sprint
	}
	formatDelta := func(d float64) string {
		switch {
		case d > 0:
			return green(fmt.Sprintf("+%s ▲", fmtFloat(d)))
		case d < 0:
			return red(fmt.Sprintf("%s ▼", fmtFloat(d)))
		default:
			return fmtFloat(0)
		}
	}

	var data [][]string
	for i, k := range schema.AllMetrics {
		row := []string{metricAbbrev[k]}
		for _, name := range result.Organizations {
			row = append(row, fmtFloat(result.Results[name].Components[i]))
		}
		if pair {
			a, b := result.Results[result.Organizations[0]], result.Results[result.Organizations[1]]
			row = append(row, formatDelta(b.Components[i]-a.Components[i]))
		}
		data = append(data, row)
	}

	scoreRow := []string{"Score"}
	labelRow := []string{"Label"}
	for _, name := range result.Organizations {
		s := result.Results[name].Score
		scoreRow = append(scoreRow, fmtFloat(s))
		labelRow = append(labelRow, labelFor(s, cfg))
	}
	if pair {
		scoreRow = append(scoreRow, formatDelta(result.Delta()))
		labelRow = append(labelRow, "")
	}
	data = append(data, scoreRow, labelRow)

	if err := writeTable(w, headers, data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Compared %d organizations (spread: %s)\n", len(result.Organizations), fmtFloat(result.Spread))
	return err
}
