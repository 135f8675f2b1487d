package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// BatchProcessor analyzes multiple sites concurrently.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding
// batch functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-site execution
// 2. It allows different batch strategies (e.g., rate limiting, retries)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each site.
	// A factory ensures pipeline state never leaks between sites.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of sites analyzed at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithBatchConcurrency sets the maximum number of concurrent analyses.
// Default is 3 if not specified.
func WithBatchConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// defaultBatchConcurrency bounds simultaneous site analyses. Each
// analysis already fans out over its own pages, so the effective
// request concurrency is this times the per-site page concurrency.
const defaultBatchConcurrency = 3

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each site to create a
// fresh pipeline instance.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     defaultBatchConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch analyzes multiple sites concurrently and returns one Run
// per start URL, in input order.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// A failed site leaves its Run with a nil Report; other sites are not
// affected, so no error is propagated to the group.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, startURLs []string) ([]*Run, error) {
	bp.logger.Info("starting batch analysis",
		"total_sites", len(startURLs),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	runs := make([]*Run, len(startURLs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, startURL := range startURLs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			run := &Run{StartURL: startURL}
			runs[i] = run

			if err := bp.pipelineFactory().Execute(ctx, run); err != nil {
				bp.logger.Warn("site analysis failed",
					"url", startURL,
					"error", err,
				)
				// Other sites continue; the failed run keeps a nil report.
				return nil
			}

			bp.logger.Info("site analysis complete",
				"url", startURL,
				"score", run.Report.Summary.AverageScore,
			)

			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch analysis complete",
		"total_sites", len(startURLs),
		"elapsed", time.Since(startTime),
	)

	return runs, err
}
