// Package core has core logic for scoring, analysis and ranking.
package core

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/aem/core/algo"
	"github.com/huangsam/aem/internal/contract"
	"github.com/huangsam/aem/internal/outwriter"
	"github.com/huangsam/aem/internal/recordio"
	"github.com/huangsam/aem/schema"
	"go.uber.org/zap"
)

// ExecutorFunc defines the function signature for executing a command against records.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, loader contract.RecordLoader) error

// writer renders every command result.
var writer = outwriter.NewOutWriter()

// loadedRecord is a decoded record along with where it came from.
type loadedRecord struct {
	source string
	record *schema.FinancialRecord
}

// loadRecords expands the configured sources and loads every record.
// The first loading error aborts.
func loadRecords(ctx context.Context, cfg *contract.Config, loader contract.RecordLoader) ([]loadedRecord, error) {
	sources, err := recordio.ExpandAll(ctx, loader, cfg.Sources)
	if err != nil {
		return nil, err
	}
	logger := loggerFrom(ctx)
	records := make([]loadedRecord, 0, len(sources))
	for _, source := range sources {
		record, err := loader.Load(ctx, source)
		if err != nil {
			return nil, err
		}
		logger.Debug("Record loaded", zap.String("source", source), zap.String("organization", record.Name()))
		records = append(records, loadedRecord{source: source, record: record})
	}
	return records, nil
}

// scoreRecords scores loaded records in order. The first scoring error aborts.
func scoreRecords(engine *Engine, records []loadedRecord) ([]schema.ScoreResult, error) {
	results := make([]schema.ScoreResult, 0, len(records))
	for _, lr := range records {
		scored, err := engine.Score(lr.record)
		if err != nil {
			return nil, fmt.Errorf("cannot score %s: %w", lr.source, err)
		}
		results = append(results, schema.ScoreResult{
			Source:       lr.source,
			Organization: lr.record.Name(),
			FiscalYear:   lr.record.FiscalYear,
			AEMResult:    scored,
		})
	}
	return results, nil
}

// requireRecords checks that exactly want records were given.
func requireRecords(records []loadedRecord, want int, what string) error {
	if len(records) != want {
		return fmt.Errorf("%s needs exactly %d record(s), got %d", what, want, len(records))
	}
	return nil
}

// ExecuteScore scores every record and prints them ranked by score.
func ExecuteScore(ctx context.Context, cfg *contract.Config, loader contract.RecordLoader) error {
	start := time.Now()
	engine, err := NewEngine(cfg.Scoring)
	if err != nil {
		return err
	}
	records, err := loadRecords(ctx, cfg, loader)
	if err != nil {
		return err
	}
	results, err := scoreRecords(engine, records)
	if err != nil {
		return err
	}
	ranked := algo.RankScores(results, cfg.ResultLimit)
	return writer.WriteScores(ranked, cfg, time.Since(start))
}

// ExecuteAnalyze runs one explain/stress-test analysis on a single record.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, loader contract.RecordLoader, kind schema.AnalysisKind) error {
	engine, err := NewEngine(cfg.Scoring)
	if err != nil {
		return err
	}
	records, err := loadRecords(ctx, cfg, loader)
	if err != nil {
		return err
	}
	if err := requireRecords(records, 1, fmt.Sprintf("%s analysis", kind)); err != nil {
		return err
	}
	record := records[0].record
	loggerFrom(ctx).Debug("Running analysis", zap.String("kind", string(kind)), zap.String("organization", record.Name()))

	switch kind {
	case schema.SensitivityKind:
		result, err := engine.Sensitivity(record, cfg.Variation)
		if err != nil {
			return err
		}
		return writer.WriteSensitivity(result, cfg)
	case schema.ComponentsKind:
		result, err := engine.AnalyzeComponents(record)
		if err != nil {
			return err
		}
		return writer.WriteComponents(result, cfg)
	case schema.NormalizationKind:
		result, err := engine.AnalyzeNormalization(record)
		if err != nil {
			return err
		}
		return writer.WriteNormalization(result, cfg)
	default:
		return fmt.Errorf("unknown analysis kind %q", kind)
	}
}

// ExecuteAnalyzeAll runs every analysis on every record and compares them.
func ExecuteAnalyzeAll(ctx context.Context, cfg *contract.Config, loader contract.RecordLoader) error {
	start := time.Now()
	engine, err := NewEngine(cfg.Scoring)
	if err != nil {
		return err
	}
	loaded, err := loadRecords(ctx, cfg, loader)
	if err != nil {
		return err
	}
	records := make([]*schema.FinancialRecord, len(loaded))
	sources := make([]string, len(loaded))
	for i, lr := range loaded {
		records[i], sources[i] = lr.record, lr.source
	}
	report, err := engine.Validate(records, sources, cfg.Variation)
	if err != nil {
		return err
	}
	return writer.WriteValidation(report, cfg, time.Since(start))
}

// ExecuteCompare scores two records independently and prints them side by side.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, loader contract.RecordLoader) error {
	start := time.Now()
	engine, err := NewEngine(cfg.Scoring)
	if err != nil {
		return err
	}
	records, err := loadRecords(ctx, cfg, loader)
	if err != nil {
		return err
	}
	if err := requireRecords(records, 2, "compare"); err != nil {
		return err
	}
	result, err := engine.CompareOrganizations(records[0].record, records[1].record)
	if err != nil {
		return err
	}
	return writer.WriteComparison(result, cfg, time.Since(start))
}

// ExecuteCheck scores every record against the minimum score. It returns
// ErrCheckFailed after printing the result when any record falls short.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, loader contract.RecordLoader) error {
	start := time.Now()
	engine, err := NewEngine(cfg.Scoring)
	if err != nil {
		return err
	}
	records, err := loadRecords(ctx, cfg, loader)
	if err != nil {
		return err
	}
	results, err := scoreRecords(engine, records)
	if err != nil {
		return err
	}
	result := BuildCheckResult(results, cfg.MinScore)
	if err := writer.WriteCheck(result, cfg, time.Since(start)); err != nil {
		return err
	}
	if !result.Passed {
		return fmt.Errorf("%w: %d of %d records below %.3f", ErrCheckFailed, len(result.FailedRecords), result.TotalRecords, result.Threshold)
	}
	return nil
}

// ExecuteBatch scores every record in the sources with a worker pool. Records
// that cannot be loaded or scored are reported instead of aborting the run.
func ExecuteBatch(ctx context.Context, cfg *contract.Config, loader contract.RecordLoader) error {
	start := time.Now()
	engine, err := NewEngine(cfg.Scoring)
	if err != nil {
		return err
	}
	sources, err := recordio.ExpandAll(ctx, loader, cfg.Sources)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	ctx = withRunID(ctx, runID)
	loggerFrom(ctx).Debug("Batch started",
		zap.String("run_id", runID),
		zap.Int("sources", len(sources)),
		zap.Int("workers", cfg.Workers))

	batch, err := ScoreBatch(ctx, engine, loader, sources, cfg.Workers)
	if err != nil {
		return err
	}
	batch.Results = algo.RankScores(slices.Clone(batch.Results), cfg.ResultLimit)
	return writer.WriteBatch(batch, cfg, time.Since(start))
}

// ExecuteMetrics prints the metric definitions and the active weights.
func ExecuteMetrics(_ context.Context, cfg *contract.Config, _ contract.RecordLoader) error {
	return writer.WriteMetrics(cfg)
}
