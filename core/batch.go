package core

import (
	"context"
	"sync"

	"github.com/huangsam/aem/internal/contract"
	"github.com/huangsam/aem/schema"
	"go.uber.org/zap"
)

// batchOutcome is the result of one worker job.
type batchOutcome struct {
	result schema.ScoreResult
	err    error
}

// ScoreBatch loads and scores every source with a bounded worker pool.
//
// Results come back in input order regardless of which worker finished first.
// Sources that fail to load or score are reported in Failures rather than
// aborting the run. Only a cancelled context stops the batch early.
func ScoreBatch(ctx context.Context, engine *Engine, loader contract.RecordLoader, sources []string, workers int) (schema.BatchResult, error) {
	if workers < 1 {
		workers = 1
	}
	logger := loggerFrom(ctx)

	outcomes := make([]batchOutcome, len(sources))
	jobCh := make(chan int, len(sources))
	var wg sync.WaitGroup

	// Start worker pool
	for range workers {
		wg.Go(func() {
			for idx := range jobCh {
				// Each job writes to a unique index of outcomes, which is safe.
				outcomes[idx] = scoreSource(ctx, engine, loader, sources[idx])
			}
		})
	}

	for i := range sources {
		jobCh <- i
	}
	close(jobCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return schema.BatchResult{}, err
	}

	batch := schema.BatchResult{
		RunID:   runIDFrom(ctx),
		Results: make([]schema.ScoreResult, 0, len(sources)),
	}
	for i, o := range outcomes {
		if o.err != nil {
			logger.Debug("Record skipped", zap.String("source", sources[i]), zap.Error(o.err))
			batch.Failures = append(batch.Failures, schema.BatchFailure{Source: sources[i], Error: o.err.Error()})
			continue
		}
		logger.Debug("Record scored",
			zap.String("source", sources[i]),
			zap.String("organization", o.result.Organization),
			zap.Float64("score", o.result.Score))
		batch.Results = append(batch.Results, o.result)
	}
	return batch, nil
}

// scoreSource loads and scores a single source. It returns early once the
// context is cancelled so that remaining jobs drain quickly.
func scoreSource(ctx context.Context, engine *Engine, loader contract.RecordLoader, source string) batchOutcome {
	if err := ctx.Err(); err != nil {
		return batchOutcome{err: err}
	}
	record, err := loader.Load(ctx, source)
	if err != nil {
		return batchOutcome{err: err}
	}
	scored, err := engine.Score(record)
	if err != nil {
		return batchOutcome{err: err}
	}
	return batchOutcome{result: schema.ScoreResult{
		Source:       source,
		Organization: record.Name(),
		FiscalYear:   record.FiscalYear,
		AEMResult:    scored,
	}}
}
