package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/fieldscan/internal/model"
)

// fieldStep records a fixed field set on the job.
func fieldStep() *mockStep {
	return &mockStep{name: "fields", doFunc: func(_ context.Context, job *FileJob) error {
		job.Fields = model.NewFieldSet(model.NewFieldPath("ID"))
		return nil
	}}
}

// TestBatchProcessorNew tests the BatchProcessor constructor.
func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() })

		if bp.concurrency != DefaultConcurrency {
			t.Errorf("expected default concurrency %d, got %d", DefaultConcurrency, bp.concurrency)
		}
		if bp.batchSize != DefaultBatchSize {
			t.Errorf("expected default batch size %d, got %d", DefaultBatchSize, bp.batchSize)
		}
	})

	t.Run("ignores non-positive values", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(
			func() *Pipeline { return New() },
			WithConcurrency(0),
			WithBatchSize(-1),
		)

		if bp.concurrency != DefaultConcurrency || bp.batchSize != DefaultBatchSize {
			t.Errorf("expected defaults, got concurrency %d batch %d", bp.concurrency, bp.batchSize)
		}
	})
}

// TestBatchProcessorProcessBatch tests batch processing.
func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	schema := model.NewReferenceSchema("s", []string{"ID"})

	t.Run("processes all files across chunks", func(t *testing.T) {
		t.Parallel()

		files := make([]string, 23)
		for i := range files {
			files[i] = fmt.Sprintf("f%d.json", i)
		}

		var calls atomic.Int32
		bp := NewBatchProcessor(func() *Pipeline {
			calls.Add(1)
			p := New()
			p.AddStep(fieldStep())
			return p
		}, WithBatchSize(5), WithConcurrency(3))

		results, errs, err := bp.ProcessBatch(context.Background(), files, schema)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != len(files) {
			t.Errorf("expected %d results, got %d", len(files), len(results))
		}
		if len(errs) != 0 {
			t.Errorf("expected no errors, got %d", len(errs))
		}
		if int(calls.Load()) != len(files) {
			t.Errorf("expected one pipeline per file, got %d", calls.Load())
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var current, peak atomic.Int32
		slow := func(_ context.Context, _ *FileJob) error {
			n := current.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			current.Add(-1)
			return nil
		}

		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{name: "slow", doFunc: slow})
			return p
		}, WithConcurrency(2))

		files := []string{"a", "b", "c", "d", "e", "f"}
		if _, _, err := bp.ProcessBatch(context.Background(), files, schema); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if peak.Load() > 2 {
			t.Errorf("expected at most 2 concurrent files, got %d", peak.Load())
		}
	})

	t.Run("file errors do not stop the batch", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{name: "maybe-fail", doFunc: func(_ context.Context, job *FileJob) error {
				if job.File == "bad.json" {
					return model.NewFileError(job.File, model.ErrorKindMalformedInput, errors.New("bad"))
				}
				return nil
			}})
			return p
		})

		files := []string{"a.json", "bad.json", "c.json"}
		results, errs, err := bp.ProcessBatch(context.Background(), files, schema)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 2 || len(errs) != 1 {
			t.Errorf("expected 2 results and 1 error, got %d and %d", len(results), len(errs))
		}
		if errs[0].File != "bad.json" {
			t.Errorf("expected bad.json to fail, got %s", errs[0].File)
		}
	})

	t.Run("reports progress once per file", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		seen := make(map[int]bool)
		bp := NewBatchProcessor(func() *Pipeline { return New() },
			WithBatchSize(2),
			WithProgress(func(done, total int, _ string) {
				mu.Lock()
				defer mu.Unlock()
				seen[done] = true
				if total != 5 {
					t.Errorf("expected total 5, got %d", total)
				}
			}),
		)

		if _, _, err := bp.ProcessBatch(context.Background(), []string{"a", "b", "c", "d", "e"}, schema); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 1; i <= 5; i++ {
			if !seen[i] {
				t.Errorf("expected progress for %d", i)
			}
		}
	})

	t.Run("cancellation returns partial results", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		bp := NewBatchProcessor(func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{name: "cancel-on-third", doFunc: func(_ context.Context, job *FileJob) error {
				if job.File == "f2" {
					cancel()
				}
				return nil
			}})
			return p
		}, WithBatchSize(3), WithConcurrency(1))

		files := []string{"f0", "f1", "f2", "f3", "f4", "f5"}
		results, _, err := bp.ProcessBatch(ctx, files, schema)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if len(results) != 2 {
			t.Errorf("expected 2 completed results, got %d", len(results))
		}
	})
}
