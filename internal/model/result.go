package model

import "time"

// Counts summarizes the classification of one file, or of a whole run.
type Counts struct {
	Matched int `json:"matched"`
	Missing int `json:"missing_in_target"`
	Extra   int `json:"not_in_reference"`
	Exact   int `json:"exact"`
	Fuzzy   int `json:"fuzzy"`
}

// Add returns the field-wise sum of c and other.
func (c Counts) Add(other Counts) Counts {
	return Counts{
		Matched: c.Matched + other.Matched,
		Missing: c.Missing + other.Missing,
		Extra:   c.Extra + other.Extra,
		Exact:   c.Exact + other.Exact,
		Fuzzy:   c.Fuzzy + other.Fuzzy,
	}
}

// Compared returns the number of reference fields that were classified.
func (c Counts) Compared() int {
	return c.Matched + c.Missing
}

// CountResults tallies a list of results.
func CountResults(results []MatchResult) Counts {
	var c Counts
	for _, r := range results {
		switch r.Status {
		case StatusMatched:
			c.Matched++
			if r.Kind == KindFuzzy {
				c.Fuzzy++
			} else {
				c.Exact++
			}
		case StatusMissingInTarget:
			c.Missing++
		case StatusNotInReference:
			c.Extra++
		}
	}
	return c
}

// FileComparisonResult is the outcome of comparing one file with a
// reference schema. It is built once by the comparison engine and must
// not be modified afterwards.
type FileComparisonResult struct {
	// File is the path of the compared file as given by the caller.
	File string `json:"file"`
	// Schema is the name of the reference schema.
	Schema string `json:"schema"`
	// Fields is every field path extracted from the file.
	Fields FieldSet `json:"fields"`
	// Results holds one entry per reference field, in reference order,
	// followed by one entry per unexpected extracted field, sorted.
	Results []MatchResult `json:"results"`
	// Counts tallies Results.
	Counts Counts `json:"counts"`
	// RecordCount is the number of records in a multi-record document,
	// or 1 for a single object.
	RecordCount int `json:"record_count"`
	// Repaired is true when the input needed BOM or trailing-comma repair.
	Repaired bool `json:"repaired,omitempty"`
	// Duration is the time spent on the file.
	Duration time.Duration `json:"duration_ns"`
}

// NewFileComparisonResult creates a result and computes its Counts.
func NewFileComparisonResult(file, schema string, fields FieldSet, results []MatchResult) *FileComparisonResult {
	return &FileComparisonResult{
		File:        file,
		Schema:      schema,
		Fields:      fields,
		Results:     results,
		Counts:      CountResults(results),
		RecordCount: 1,
	}
}

// ByStatus returns the results with the given status, in stored order.
func (r *FileComparisonResult) ByStatus(status MatchStatus) []MatchResult {
	var out []MatchResult
	for _, res := range r.Results {
		if res.Status == status {
			out = append(out, res)
		}
	}
	return out
}
