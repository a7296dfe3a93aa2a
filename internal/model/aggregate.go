package model

import "time"

// FileDetail lists the unmatched fields of one file verbatim.
type FileDetail struct {
	File string `json:"file"`
	// Missing holds MissingInTarget reference fields in reference order.
	Missing []string `json:"missing_in_target"`
	// Extra holds NotInReference extracted fields, sorted.
	Extra []string `json:"not_in_reference"`
	// Fuzzy holds matches that needed fuzzy matching.
	Fuzzy []MatchResult `json:"fuzzy_matches,omitempty"`
}

// FileSummary holds the per-category counts of one file.
type FileSummary struct {
	File        string `json:"file"`
	Counts      Counts `json:"counts"`
	RecordCount int    `json:"record_count"`
}

// FieldOccurrence is a field that was unmatched in at least one file,
// with the number of files it was unmatched in.
type FieldOccurrence struct {
	Field string `json:"field"`
	Count int    `json:"count"`
}

// Totals summarizes a whole run.
type Totals struct {
	Files  int `json:"files"`
	Failed int `json:"failed"`
	Counts
}

// AggregateReport is the three-tier view of a run: per-file detail,
// per-file summary and the cross-file unique unmatched fields.
// It is built once and only read afterwards.
type AggregateReport struct {
	Schema        string            `json:"schema"`
	GeneratedAt   time.Time         `json:"generated_at"`
	Details       []FileDetail      `json:"details"`
	Summaries     []FileSummary     `json:"summaries"`
	UniqueMissing []FieldOccurrence `json:"unique_missing_in_target"`
	UniqueExtra   []FieldOccurrence `json:"unique_not_in_reference"`
	Errors        []*FileError      `json:"errors"`
	Totals        Totals            `json:"totals"`
}

// HasErrors reports whether any file failed.
func (r *AggregateReport) HasErrors() bool {
	return len(r.Errors) > 0
}

// FieldNames returns the names of occurrences in order.
func FieldNames(occ []FieldOccurrence) []string {
	out := make([]string, len(occ))
	for i, o := range occ {
		out[i] = o.Field
	}
	return out
}
