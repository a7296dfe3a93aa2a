package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/nao1215/fieldscan/internal/extract"
	"github.com/nao1215/fieldscan/internal/match"
	"github.com/nao1215/fieldscan/internal/model"
)

// Reader reads the content of an input file.
type Reader interface {
	ReadFile(name string) ([]byte, error)
}

// OSReader reads files from the local file system.
type OSReader struct{}

// ReadFile implements Reader.
func (OSReader) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) //nolint:gosec // paths come from the command line
}

// ReadStep loads the raw content of the job's file.
type ReadStep struct {
	reader Reader
}

// NewReadStep creates a ReadStep. A nil reader reads from the file system.
func NewReadStep(reader Reader) *ReadStep {
	if reader == nil {
		reader = OSReader{}
	}
	return &ReadStep{reader: reader}
}

// Name returns the step name.
func (s *ReadStep) Name() string {
	return "read"
}

// Do executes the read step.
func (s *ReadStep) Do(_ context.Context, job *FileJob) error {
	data, err := s.reader.ReadFile(job.File)
	if err != nil {
		return model.NewFileError(job.File, model.ErrorKindReadFailure, err)
	}
	job.Data = data
	return nil
}

// ExtractStep decodes the job's data and extracts its field paths.
// The raw data is released once the step finishes.
type ExtractStep struct {
	extractor *extract.Extractor
	logger    *slog.Logger
}

// NewExtractStep creates an ExtractStep.
func NewExtractStep(extractor *extract.Extractor, logger *slog.Logger) *ExtractStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractStep{extractor: extractor, logger: logger}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do executes the extract step.
// A missing root selector is not an error: the file is compared with an
// empty field set.
func (s *ExtractStep) Do(_ context.Context, job *FileJob) error {
	fields, stats, err := s.extractor.ExtractBytes(job.Data)
	job.Data = nil
	job.Stats = stats

	switch {
	case err == nil:
		job.Fields = fields
		return nil
	case errors.Is(err, extract.ErrRootNotFound):
		s.logger.Warn("root selector not found, comparing empty field set",
			"file", job.File,
			"error", err,
		)
		job.Fields = model.FieldSet{}
		return nil
	case errors.Is(err, extract.ErrStructureTooDeep):
		return model.NewFileError(job.File, model.ErrorKindStructureTooDeep, err)
	default:
		return model.NewFileError(job.File, model.ErrorKindMalformedInput, err)
	}
}

// ClassifyStep classifies the extracted fields against the job's schema.
type ClassifyStep struct {
	matcher *match.Matcher
}

// NewClassifyStep creates a ClassifyStep.
func NewClassifyStep(matcher *match.Matcher) *ClassifyStep {
	return &ClassifyStep{matcher: matcher}
}

// Name returns the step name.
func (s *ClassifyStep) Name() string {
	return "classify"
}

// Do executes the classify step.
func (s *ClassifyStep) Do(_ context.Context, job *FileJob) error {
	job.Results = s.matcher.Classify(job.Schema, job.Fields)
	return nil
}
