package brief

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/glitchsec/osintkit/internal/model"
)

// BatchProcessor assembles briefs for multiple subjects concurrently.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding
// batch functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-brief execution
// 2. It allows different batch strategies (e.g., rate limiting, retries)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each brief.
	// A factory ensures each subject gets a fresh pipeline instance.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent briefs. Kept low
	// by default because every brief fans out to metered APIs.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed briefs. Access is synchronized via mutex.
	results []*model.Brief
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent briefs.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each subject to create a
// fresh pipeline instance, so pipeline state never leaks between
// subjects.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
		results:         make([]*model.Brief, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch assembles briefs for multiple subjects concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Returns all briefs collected, in input order, even for subjects whose
// steps failed. The error return indicates cancellation.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, kind model.BriefKind, subjects []string) ([]*model.Brief, error) {
	bp.logger.Info("starting batch briefing",
		"total_subjects", len(subjects),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	bp.results = make([]*model.Brief, len(subjects))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, subject := range subjects {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Info("briefing subject",
				"subject", subject,
				"index", i+1,
				"total", len(subjects),
			)

			b := model.NewBrief(kind, subject)

			pipeline := bp.pipelineFactory()
			err := pipeline.Execute(ctx, b)

			bp.mu.Lock()
			bp.results[i] = b
			bp.mu.Unlock()

			if err != nil {
				bp.logger.Warn("briefing failed",
					"subject", subject,
					"error", err,
				)
				// Step errors live on the brief; only cancellation
				// should stop the other subjects.
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return nil
			}

			bp.logger.Info("briefing completed",
				"subject", subject,
			)

			return nil
		})
	}

	err := g.Wait()

	elapsed := time.Since(startTime)
	bp.logger.Info("batch briefing complete",
		"total_subjects", len(subjects),
		"elapsed", elapsed,
	)

	return bp.results, err
}
