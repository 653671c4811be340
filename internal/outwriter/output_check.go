package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/huangsam/aem/internal/contract"
	"github.com/huangsam/aem/schema"
)

// maxFailuresShown caps the failed records listed in text output.
const maxFailuresShown = 5

// PrintCheckResult prints the check result in a concise format suitable for CI/CD.
func PrintCheckResult(result *schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, checkJSON(result))
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"source", "organization", "score", "threshold"}, func(cw *csv.Writer) error {
				for _, f := range result.FailedRecords {
					if err := cw.Write([]string{f.Source, f.Organization, fmtFloat(f.Score), fmtFloat(result.Threshold)}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported("check results")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckText(w, result, fmtFloat, duration)
		}, "Wrote text")
	}
}

// checkJSON returns the JSON view of a check result.
func checkJSON(result *schema.CheckResult) any {
	type jsonFailure struct {
		Source       string  `json:"source,omitempty"`
		Organization string  `json:"organization"`
		Score        float64 `json:"score"`
	}
	type jsonCheck struct {
		Passed        bool          `json:"passed"`
		Threshold     float64       `json:"threshold"`
		TotalRecords  int           `json:"total_records"`
		FailedRecords []jsonFailure `json:"failed_records"`
		MinScore      float64       `json:"min_score"`
		MaxScore      float64       `json:"max_score"`
		AvgScore      float64       `json:"avg_score"`
	}
	failures := make([]jsonFailure, 0, len(result.FailedRecords))
	for _, f := range result.FailedRecords {
		failures = append(failures, jsonFailure(f))
	}
	return jsonCheck{
		Passed:        result.Passed,
		Threshold:     result.Threshold,
		TotalRecords:  result.TotalRecords,
		FailedRecords: failures,
		MinScore:      result.MinScore,
		MaxScore:      result.MaxScore,
		AvgScore:      result.AvgScore,
	}
}

// writeCheckText prints the header, then either the success summary or the worst offenders.
func writeCheckText(w io.Writer, result *schema.CheckResult, fmtFloat func(float64) string, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "Minimum Score Check:\n  Threshold: %s\n\n", fmtFloat(result.Threshold)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Checked %d records in %v\n\n", result.TotalRecords, duration); err != nil {
		return err
	}

	if result.Passed {
		if _, err := fmt.Fprintf(w, "✅ All records met the minimum score\n\n"); err != nil {
			return err
		}
		if result.TotalRecords == 0 {
			return nil
		}
		_, err := fmt.Fprintf(w, "Scores observed: min=%s, max=%s, avg=%s\n",
			fmtFloat(result.MinScore), fmtFloat(result.MaxScore), fmtFloat(result.AvgScore))
		return err
	}

	if _, err := fmt.Fprintf(w, "❌ Check failed: %d of %d records below threshold\n", len(result.FailedRecords), result.TotalRecords); err != nil {
		return err
	}

	// Lowest scores first
	failed := append([]schema.CheckFailedRecord(nil), result.FailedRecords...)
	sort.SliceStable(failed, func(i, j int) bool {
		return failed[i].Score < failed[j].Score
	})
	for i, f := range failed {
		if i >= maxFailuresShown {
			if _, err := fmt.Fprintf(w, "  ... and %d more\n", len(failed)-i); err != nil {
				return err
			}
			break
		}
		name := f.Organization
		if f.Source != "" {
			name = fmt.Sprintf("%s (%s)", f.Organization, f.Source)
		}
		if _, err := fmt.Fprintf(w, "  - %s (score: %s < threshold: %s)\n", name, fmtFloat(f.Score), fmtFloat(result.Threshold)); err != nil {
			return err
		}
	}
	return nil
}
