package pipeline

import (
	"github.com/nao1215/fieldscan/internal/extract"
	"github.com/nao1215/fieldscan/internal/model"
)

// FileJob carries the state of one file through a Pipeline.
type FileJob struct {
	// File is the path of the input file.
	File string
	// Schema is the reference schema the file is compared against.
	Schema model.ReferenceSchema
	// Data holds the raw file content between the read and extract steps.
	Data []byte
	// Fields holds the extracted field paths.
	Fields model.FieldSet
	// Stats describes the extraction.
	Stats extract.Stats
	// Results holds the classification.
	Results []model.MatchResult
	// Err is set when a step failed for this file.
	Err *model.FileError
	// PerformedSteps lists the names of the steps that ran.
	PerformedSteps []string
}

// NewFileJob creates a job for file.
func NewFileJob(file string, schema model.ReferenceSchema) *FileJob {
	return &FileJob{File: file, Schema: schema}
}

// Result builds the immutable comparison result of a completed job.
func (j *FileJob) Result() *model.FileComparisonResult {
	r := model.NewFileComparisonResult(j.File, j.Schema.Name, j.Fields, j.Results)
	r.RecordCount = j.Stats.Records
	r.Repaired = j.Stats.Repaired
	return r
}
