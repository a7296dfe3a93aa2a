// Package aggregate builds the three-tier AggregateReport from the
// per-file results of a comparison run.
package aggregate

import (
	"sort"
	"time"

	"facette.io/natsort"

	"github.com/nao1215/fieldscan/internal/model"
)

// Option configures Aggregate.
type Option func(*options)

type options struct {
	schema string
	now    func() time.Time
}

// WithSchema sets the schema name of the report. By default it is taken
// from the first result.
func WithSchema(name string) Option {
	return func(o *options) {
		o.schema = name
	}
}

// WithClock sets the function providing the report timestamp.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// Aggregate builds the report in one pass over results.
//
// Files are ordered naturally, so file2.json precedes file10.json. Missing
// fields keep reference order, unexpected fields are sorted, and the unique
// field lists are sorted by name with the number of files each field was
// unmatched in. The inputs are not modified.
func Aggregate(results []*model.FileComparisonResult, errs []*model.FileError, opts ...Option) *model.AggregateReport {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.schema == "" && len(results) > 0 {
		o.schema = results[0].Schema
	}

	ordered := make([]*model.FileComparisonResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return natsort.Compare(ordered[i].File, ordered[j].File)
	})

	report := &model.AggregateReport{
		Schema:      o.schema,
		GeneratedAt: o.now(),
		Details:     make([]model.FileDetail, 0, len(ordered)),
		Summaries:   make([]model.FileSummary, 0, len(ordered)),
	}

	missing := newOccurrences()
	extra := newOccurrences()

	for _, r := range ordered {
		detail := model.FileDetail{
			File:    r.File,
			Missing: []string{},
			Extra:   []string{},
		}
		for _, res := range r.ByStatus(model.StatusMissingInTarget) {
			detail.Missing = append(detail.Missing, res.ReferenceField)
		}
		for _, res := range r.ByStatus(model.StatusNotInReference) {
			detail.Extra = append(detail.Extra, res.ExtractedField)
		}
		for _, res := range r.ByStatus(model.StatusMatched) {
			if res.Kind == model.KindFuzzy {
				detail.Fuzzy = append(detail.Fuzzy, res)
			}
		}
		sort.Strings(detail.Extra)

		missing.addFile(detail.Missing)
		extra.addFile(detail.Extra)

		report.Details = append(report.Details, detail)
		report.Summaries = append(report.Summaries, model.FileSummary{
			File:        r.File,
			Counts:      r.Counts,
			RecordCount: r.RecordCount,
		})
		report.Totals.Counts = report.Totals.Counts.Add(r.Counts)
	}

	report.UniqueMissing = missing.sorted()
	report.UniqueExtra = extra.sorted()

	report.Errors = make([]*model.FileError, len(errs))
	copy(report.Errors, errs)
	sort.SliceStable(report.Errors, func(i, j int) bool {
		return natsort.Compare(report.Errors[i].File, report.Errors[j].File)
	})

	report.Totals.Files = len(ordered)
	report.Totals.Failed = len(errs)
	return report
}

// occurrences counts in how many files each field was unmatched.
type occurrences struct {
	counts map[string]int
}

func newOccurrences() *occurrences {
	return &occurrences{counts: make(map[string]int)}
}

// addFile counts each distinct field of one file once.
func (o *occurrences) addFile(fields []string) {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		o.counts[f]++
	}
}

func (o *occurrences) sorted() []model.FieldOccurrence {
	out := make([]model.FieldOccurrence, 0, len(o.counts))
	for f, c := range o.counts {
		out = append(out, model.FieldOccurrence{Field: f, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Field < out[j].Field
	})
	return out
}
