package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/fieldscan/internal/extract"
	"github.com/nao1215/fieldscan/internal/match"
	"github.com/nao1215/fieldscan/internal/model"
)

// EngineConfig holds everything the Engine needs besides the inputs.
type EngineConfig struct {
	Match        match.Config
	SpecialChars model.SpecialCharRules
	BatchSize    int
	Concurrency  int
	MaxDepth     int
	// Root is an optional selector applied to every document.
	Root string
	// Repair enables BOM and trailing comma repair.
	Repair bool
}

// DefaultEngineConfig returns the default configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Match:       match.DefaultConfig(),
		BatchSize:   DefaultBatchSize,
		Concurrency: DefaultConcurrency,
		MaxDepth:    extract.DefaultMaxDepth,
		Repair:      true,
	}
}

// Validate checks the configuration.
func (c EngineConfig) Validate() error {
	if err := c.Match.Validate(); err != nil {
		return &ConfigurationError{Err: err}
	}
	if c.BatchSize <= 0 {
		return &ConfigurationError{Err: fmt.Errorf("%w: %d", ErrInvalidBatchSize, c.BatchSize)}
	}
	if c.Concurrency <= 0 {
		return &ConfigurationError{Err: fmt.Errorf("%w: %d", ErrInvalidConcurrency, c.Concurrency)}
	}
	if c.MaxDepth <= 0 {
		return &ConfigurationError{Err: fmt.Errorf("%w: %d", extract.ErrInvalidMaxDepth, c.MaxDepth)}
	}
	return nil
}

// Run is the raw outcome of comparing a set of files.
type Run struct {
	Schema  model.ReferenceSchema
	Results []*model.FileComparisonResult
	Errors  []*model.FileError
}

// Engine compares JSON files with a reference schema.
type Engine struct {
	cfg       EngineConfig
	extractor *extract.Extractor
	matcher   *match.Matcher
	reader    Reader
	progress  ProgressFunc
	logger    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEngineLogger sets the logger used by the engine and its steps.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// withReader replaces the file system reader.
func withReader(reader Reader) EngineOption {
	return func(e *Engine) {
		e.reader = reader
	}
}

// WithEngineProgress sets a callback invoked after each file.
func WithEngineProgress(fn ProgressFunc) EngineOption {
	return func(e *Engine) {
		e.progress = fn
	}
}

// NewEngine validates cfg and creates an Engine.
// Configuration errors are returned as *ConfigurationError.
func NewEngine(cfg EngineConfig, opts ...EngineOption) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg, reader: OSReader{}}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}

	extractor, err := extract.New(
		extract.WithMaxDepth(cfg.MaxDepth),
		extract.WithRoot(cfg.Root),
		extract.WithRepair(cfg.Repair),
		extract.WithLogger(e.logger),
	)
	if err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	matcher, err := match.New(cfg.Match,
		match.WithSpecialChars(cfg.SpecialChars),
		match.WithLogger(e.logger),
	)
	if err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	e.extractor = extractor
	e.matcher = matcher
	return e, nil
}

// newPipeline builds the per-file pipeline.
func (e *Engine) newPipeline() *Pipeline {
	p := New(WithLogger(e.logger))
	p.AddSteps(
		NewReadStep(e.reader),
		NewExtractStep(e.extractor, e.logger),
		NewClassifyStep(e.matcher),
	)
	return p
}

// Compare compares every file with ref.
//
// A failing file is reported in Run.Errors and does not stop the others.
// When ctx is cancelled, the partial Run is returned with ctx.Err().
func (e *Engine) Compare(ctx context.Context, files []string, ref model.ReferenceSchema) (*Run, error) {
	if err := ref.Validate(); err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	e.logger.Debug("comparing files",
		"schema", ref.Name,
		"files", len(files),
		"steps", e.newPipeline().StepNames(),
	)

	bp := NewBatchProcessor(e.newPipeline,
		WithBatchLogger(e.logger),
		WithBatchSize(e.cfg.BatchSize),
		WithConcurrency(e.cfg.Concurrency),
		WithProgress(e.progress),
	)

	results, errs, err := bp.ProcessBatch(ctx, files, ref)
	run := &Run{Schema: ref, Results: results, Errors: errs}
	if err != nil {
		return run, err
	}
	return run, nil
}
