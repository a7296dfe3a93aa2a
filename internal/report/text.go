package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/fieldscan/internal/model"
)

const (
	lineWidth = 80
)

var (
	heavyRule = strings.Repeat("=", lineWidth)
	lightRule = strings.Repeat("-", lineWidth)
)

// TextWriter outputs the canonical text report.
//
// Sections appear in a fixed order: overall results, per-file detail,
// per-file statistics, unique unmatched fields and, when any file failed,
// file errors. Identical reports produce identical output, except for the
// generation time which is only printed with WithTimestamp.
type TextWriter struct {
	baseWriter

	// verbose lists fuzzy matches in the per-file detail.
	verbose bool

	// timestamp prints the generation time in the header.
	timestamp bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithVerbose lists fuzzy matches and their scores per file.
func WithVerbose(verbose bool) TextWriterOption {
	return func(w *TextWriter) {
		w.verbose = verbose
	}
}

// WithTimestamp prints the report generation time.
func WithTimestamp(show bool) TextWriterOption {
	return func(w *TextWriter) {
		w.timestamp = show
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report.
func (w *TextWriter) Write(report *model.AggregateReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeOverall(&sb, report)
	w.writeDetails(&sb, report)
	w.writeStatistics(&sb, report)
	w.writeUnique(&sb, report)
	w.writeErrors(&sb, report)

	return io.WriteString(w.output, sb.String())
}

func (w *TextWriter) writeHeader(sb *strings.Builder, report *model.AggregateReport) {
	sb.WriteString("FIELD COMPARISON SUMMARY\n")
	sb.WriteString(heavyRule + "\n")
	if report.Schema != "" {
		fmt.Fprintf(sb, "Schema: %s\n", report.Schema)
	}
	if w.timestamp {
		fmt.Fprintf(sb, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	}
	sb.WriteString("\n")
}

func (w *TextWriter) writeOverall(sb *strings.Builder, report *model.AggregateReport) {
	t := report.Totals
	sb.WriteString("OVERALL COMPARISON RESULTS:\n")
	sb.WriteString(lightRule + "\n")
	fmt.Fprintf(sb, "Files Compared: %d\n", t.Files)
	if t.Failed > 0 {
		fmt.Fprintf(sb, "Files Failed: %d\n", t.Failed)
	}
	fmt.Fprintf(sb, "Matched Fields: %d (exact: %d, fuzzy: %d)\n", t.Matched, t.Exact, t.Fuzzy)
	fmt.Fprintf(sb, "Missing in JSON: %d\n", t.Missing)
	fmt.Fprintf(sb, "Not found under annexure: %d\n", t.Extra)
	fmt.Fprintf(sb, "Total Compared: %d\n\n", t.Matched+t.Missing+t.Extra)
}

func (w *TextWriter) writeDetails(sb *strings.Builder, report *model.AggregateReport) {
	if len(report.Details) == 0 {
		return
	}

	writeSection(sb, "DETAILED PER-FILE FIELD ANALYSIS")

	for _, d := range report.Details {
		sb.WriteString(lightRule + "\n")
		fmt.Fprintf(sb, "FILE: %s\n", d.File)
		sb.WriteString(lightRule + "\n")

		writeFieldList(sb, "Fields Missing in JSON", d.Missing)
		writeFieldList(sb, "Fields Not Found Under Annexure", d.Extra)

		if w.verbose && len(d.Fuzzy) > 0 {
			fmt.Fprintf(sb, "\n  Fuzzy Matches (%d):\n", len(d.Fuzzy))
			for _, f := range d.Fuzzy {
				fmt.Fprintf(sb, "    - %s -> %s: %s\n", f.ReferenceField, f.ExtractedField, f.Describe())
			}
		}
		sb.WriteString("\n")
	}
}

func writeFieldList(sb *strings.Builder, title string, fields []string) {
	if len(fields) == 0 {
		fmt.Fprintf(sb, "\n  %s: None\n", title)
		return
	}
	fmt.Fprintf(sb, "\n  %s (%d):\n", title, len(fields))
	for _, f := range fields {
		fmt.Fprintf(sb, "    - %s\n", f)
	}
}

func (w *TextWriter) writeStatistics(sb *strings.Builder, report *model.AggregateReport) {
	if len(report.Summaries) == 0 {
		return
	}

	writeSection(sb, "PER-FILE SUMMARY STATISTICS")

	for _, s := range report.Summaries {
		fmt.Fprintf(sb, "%s\n", s.File)
		fmt.Fprintf(sb, "  Matched: %d, Missing in JSON: %d, Not in Annexure: %d\n\n",
			s.Counts.Matched, s.Counts.Missing, s.Counts.Extra)
	}
}

func (w *TextWriter) writeUnique(sb *strings.Builder, report *model.AggregateReport) {
	if len(report.UniqueMissing) == 0 && len(report.UniqueExtra) == 0 {
		return
	}

	writeSection(sb, "UNIQUE UNMATCHED FIELDS (ACROSS ALL FILES)")

	if len(report.UniqueMissing) > 0 {
		fmt.Fprintf(sb, "Missing in JSON Fields (%d):\n", len(report.UniqueMissing))
		writeOccurrences(sb, report.UniqueMissing)
	}
	if len(report.UniqueExtra) > 0 {
		if len(report.UniqueMissing) > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(sb, "Fields not found under annexure (%d):\n", len(report.UniqueExtra))
		writeOccurrences(sb, report.UniqueExtra)
	}
	sb.WriteString("\n")
}

func writeOccurrences(sb *strings.Builder, occ []model.FieldOccurrence) {
	for _, o := range occ {
		fmt.Fprintf(sb, "  - %s (%s)\n", o.Field, pluralFiles(o.Count))
	}
}

func (w *TextWriter) writeErrors(sb *strings.Builder, report *model.AggregateReport) {
	if !report.HasErrors() {
		return
	}

	writeSection(sb, "FILE ERRORS")

	for _, e := range report.Errors {
		fmt.Fprintf(sb, "  - %s [%s]: %s\n", e.File, e.Kind, e.Message())
	}
	sb.WriteString("\n")
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(heavyRule + "\n")
	sb.WriteString(title + "\n")
	sb.WriteString(heavyRule + "\n\n")
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}
