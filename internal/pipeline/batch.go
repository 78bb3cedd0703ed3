package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/ytcomments/internal/model"
	"golang.org/x/sync/errgroup"
)

// RunFunc performs one export for an identifier.
type RunFunc func(ctx context.Context, identifier string) (*model.Export, error)

// BatchResult is the outcome of one export in a batch.
type BatchResult struct {
	// Identifier is the input as given.
	Identifier string

	// Export is the completed export, nil on failure.
	Export *model.Export

	// Err is the export's error, if any.
	Err error
}

// BatchProcessor runs exports for several videos concurrently.
// Each export keeps its own sequential flow; only separate videos overlap.
type BatchProcessor struct {
	// run performs a single export.
	run RunFunc

	// concurrency is the maximum number of exports running at once.
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

// WithConcurrency sets the maximum number of concurrent exports.
// Values below 1 are ignored. Default is 1.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor that calls run for every identifier.
func NewBatchProcessor(run RunFunc, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		run:         run,
		concurrency: 1,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch exports every identifier and returns results in input order.
// A failed export is recorded in its result and does not stop the others.
// The returned error is non-nil only when ctx is cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, identifiers []string) ([]BatchResult, error) {
	results := make([]BatchResult, len(identifiers))
	err := bp.ProcessBatchWithCallback(ctx, identifiers, func(r BatchResult, i int) {
		// Each index is written by exactly one goroutine.
		results[i] = r
	})
	return results, err
}

// ProcessBatchWithCallback exports every identifier and calls callback as each
// one finishes. callback runs on the worker goroutine and must be safe for
// concurrent use when concurrency is above 1.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	identifiers []string,
	callback func(result BatchResult, index int),
) error {
	bp.logger.Debug("starting batch",
		"total", len(identifiers),
		"concurrency", bp.concurrency,
	)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, identifier := range identifiers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				callback(BatchResult{Identifier: identifier, Err: err}, i)
				return err
			}

			exp, err := bp.run(ctx, identifier)
			if err != nil {
				bp.logger.Warn("export failed",
					"video", identifier,
					"error", err,
				)
			}
			callback(BatchResult{Identifier: identifier, Export: exp, Err: err}, i)

			// Failures stay in the result so the other exports keep running.
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Debug("batch complete",
		"total", len(identifiers),
		"elapsed", time.Since(start),
	)

	return err
}
