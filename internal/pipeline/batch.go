package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/fieldscan/internal/model"
)

const (
	// DefaultConcurrency is the default number of files processed at once.
	DefaultConcurrency = 4

	// DefaultBatchSize is the default number of files per chunk.
	DefaultBatchSize = 100
)

// ProgressFunc is called after each file completes, successfully or not.
// Each call receives a distinct done count. It may be called from several
// goroutines at once.
type ProgressFunc func(done, total int, file string)

// BatchProcessor processes many files through fresh pipelines.
//
// Files are split into chunks of batchSize. Inside a chunk, at most
// concurrency files run at once. The context is checked before every file
// and between chunks.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each file.
	pipelineFactory func() *Pipeline

	concurrency int
	batchSize   int
	progress    ProgressFunc
	logger      *slog.Logger

	// mu guards results and errs.
	mu      sync.Mutex
	results []*model.FileComparisonResult
	errs    []*model.FileError
	done    atomic.Int64
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent files.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchSize sets the chunk size.
// Non-positive values keep the default.
func WithBatchSize(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.batchSize = n
		}
	}
}

// WithProgress sets the progress callback.
func WithProgress(fn ProgressFunc) BatchOption {
	return func(b *BatchProcessor) {
		b.progress = fn
	}
}

// NewBatchProcessor creates a new BatchProcessor.
// The pipelineFactory function is called once per file.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
		batchSize:       DefaultBatchSize,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch compares every file with schema.
//
// Each file yields exactly one result or one file error. Results are in
// completion order; callers sort them. When ctx is cancelled, the files
// completed so far are returned together with ctx.Err().
func (bp *BatchProcessor) ProcessBatch(
	ctx context.Context,
	files []string,
	schema model.ReferenceSchema,
) ([]*model.FileComparisonResult, []*model.FileError, error) {
	bp.logger.Info("starting batch processing",
		"total_files", len(files),
		"batch_size", bp.batchSize,
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	bp.mu.Lock()
	bp.results = make([]*model.FileComparisonResult, 0, len(files))
	bp.errs = make([]*model.FileError, 0)
	bp.mu.Unlock()
	bp.done.Store(0)

	var err error
	for start := 0; start < len(files); start += bp.batchSize {
		if err = ctx.Err(); err != nil {
			break
		}
		end := min(start+bp.batchSize, len(files))
		if err = bp.processChunk(ctx, files[start:end], schema, len(files)); err != nil {
			break
		}
	}

	bp.logger.Info("batch processing complete",
		"total_files", len(files),
		"completed", bp.done.Load(),
		"elapsed", time.Since(startTime),
	)

	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.results, bp.errs, err
}

func (bp *BatchProcessor) processChunk(
	ctx context.Context,
	files []string,
	schema model.ReferenceSchema,
	total int,
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for _, file := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return bp.processFile(gctx, file, schema, total)
		})
	}

	return g.Wait()
}

func (bp *BatchProcessor) processFile(ctx context.Context, file string, schema model.ReferenceSchema, total int) error {
	start := time.Now()
	job := NewFileJob(file, schema)

	err := bp.pipelineFactory().Execute(ctx, job)
	if ctxErr := ctx.Err(); ctxErr != nil {
		// Abandoned mid-file: neither a result nor a file error.
		return ctxErr
	}

	bp.mu.Lock()
	if job.Err != nil {
		bp.errs = append(bp.errs, job.Err)
	} else if err == nil {
		result := job.Result()
		result.Duration = time.Since(start)
		bp.results = append(bp.results, result)
	}
	bp.mu.Unlock()

	if job.Err != nil {
		bp.logger.Warn("file failed",
			"file", file,
			"kind", job.Err.Kind.String(),
			"error", job.Err.Err,
		)
	} else {
		bp.logger.Debug("file compared",
			"file", file,
			"fields", job.Fields.Len(),
		)
	}

	done := int(bp.done.Add(1))
	if bp.progress != nil {
		bp.progress(done, total, file)
	}
	return nil
}
