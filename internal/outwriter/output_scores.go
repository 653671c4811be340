package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/aem/internal/contract"
	"github.com/huangsam/aem/internal/parquet"
	"github.com/huangsam/aem/schema"
)

// PrintScoreResults outputs ranked score results, dispatching based on the output format configured.
// A single result is written as a JSON object, several as an array.
func PrintScoreResults(results []schema.ScoreResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	enriched := schema.EnrichScores(results)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if len(enriched) == 1 {
				return writeJSON(w, enriched[0])
			}
			return writeJSON(w, enriched)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoreCSV(w, enriched, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		rows := parquet.NewScoreRows(uuid.NewString(), time.Now(), enriched)
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteScoreRows(w, rows)
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeScoreTable(w, enriched, cfg, fmtFloat, intFmt); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Scored %d records in %v\n", len(enriched), duration)
			return err
		}, "Wrote table")
	}
}

// PrintBatchResults outputs a batch run along with the sources that failed.
func PrintBatchResults(batch schema.BatchResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	enriched := schema.EnrichScores(batch.Results)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBatchJSON(w, batch, enriched)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoreCSV(w, enriched, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		rows := parquet.NewScoreRows(batch.RunID, time.Now(), enriched)
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteScoreRows(w, rows)
		}, "Wrote Parquet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBatchText(w, batch, enriched, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
}

// writeBatchJSON writes the run id, the ranked results, and the failures.
func writeBatchJSON(w io.Writer, batch schema.BatchResult, enriched []schema.EnrichedScoreResult) error {
	type jsonBatch struct {
		RunID    string                       `json:"run_id"`
		Results  []schema.EnrichedScoreResult `json:"results"`
		Failures []schema.BatchFailure        `json:"failures"`
	}
	failures := batch.Failures
	if failures == nil {
		failures = []schema.BatchFailure{}
	}
	return writeJSON(w, jsonBatch{RunID: batch.RunID, Results: enriched, Failures: failures})
}

// writeBatchText writes the ranked table followed by a summary and the failed sources.
func writeBatchText(w io.Writer, batch schema.BatchResult, enriched []schema.EnrichedScoreResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	if err := writeScoreTable(w, enriched, cfg, fmtFloat, intFmt); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing top %d records (%d failed)\n", len(enriched), len(batch.Failures)); err != nil {
		return err
	}
	sourceWidth := GetMaxTableNameWidth(cfg, false)
	for _, f := range batch.Failures {
		if _, err := fmt.Fprintf(w, "  ❌ %s: %s\n", contract.TruncatePath(f.Source, sourceWidth), f.Error); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Batch %s completed in %v with %d workers\n", batch.RunID, duration, cfg.Workers)
	return err
}

// writeScoreTable generates and writes the human-readable score table.
func writeScoreTable(w io.Writer, results []schema.EnrichedScoreResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	headers := append([]string{"Rank", "Organization", "Score", "Label"}, metricHeaders()...)
	nameWidth := GetMaxTableNameWidth(cfg, true)

	var data [][]string
	for _, r := range results {
		row := []string{
			fmt.Sprintf(intFmt, r.Rank),
			contract.TruncateName(r.Organization, nameWidth),
			fmtFloat(r.Score),
			labelFor(r.Score, cfg),
		}
		row = append(row, formatVector(r.Components, fmtFloat)...)
		data = append(data, row)
	}
	return writeTable(w, headers, data)
}

// writeScoreCSV writes ranked score results in CSV format.
func writeScoreCSV(w io.Writer, results []schema.EnrichedScoreResult, fmtFloat func(float64) string) error {
	header := append([]string{"rank", "organization", "fiscal_year", "source", "score", "label"}, metricColumns()...)
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range results {
			rec := []string{
				strconv.Itoa(r.Rank),
				r.Organization,
				r.FiscalYear,
				r.Source,
				fmtFloat(r.Score),
				r.Label,
			}
			rec = append(rec, formatVector(r.Components, fmtFloat)...)
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
