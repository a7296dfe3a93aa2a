package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/fieldscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AggregateReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeOverall(md, report)
	w.writeSummaries(md, report)
	w.writeDetails(md, report)
	w.writeUnique(md, report)
	w.writeErrors(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AggregateReport) {
	md.H1("Field Comparison Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Schema", "`" + report.Schema + "`"},
			{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Files Compared", strconv.Itoa(report.Totals.Files)},
			{"Files Failed", strconv.Itoa(report.Totals.Failed)},
		},
	})
	md.PlainText("")
}

// writeOverall writes the totals table, a chart and an alert.
func (w *MarkdownWriter) writeOverall(md *markdown.Markdown, report *model.AggregateReport) {
	t := report.Totals

	md.H2("Overall Comparison Results")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Count"},
		Rows: [][]string{
			{"Matched (exact)", strconv.Itoa(t.Exact)},
			{"Matched (fuzzy)", strconv.Itoa(t.Fuzzy)},
			{model.StatusMissingInTarget.Label(), strconv.Itoa(t.Missing)},
			{model.StatusNotInReference.Label(), strconv.Itoa(t.Extra)},
			{"**Total Compared**", "**" + strconv.Itoa(t.Matched+t.Missing+t.Extra) + "**"},
		},
	})
	md.PlainText("")

	if t.Matched+t.Missing+t.Extra > 0 {
		w.writePieChart(md, t)
	}

	switch {
	case t.Failed > 0:
		md.Cautionf("%d file(s) could not be compared. See File Errors below.", t.Failed)
	case t.Missing > 0:
		md.Warningf("%d reference field occurrence(s) are missing in JSON.", t.Missing)
	case t.Extra > 0:
		md.Note("All reference fields were found, but some JSON fields are not in the schema.")
	default:
		md.Tip("All fields match the reference schema.")
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of the classification.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, t model.Totals) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Field Classification"),
		piechart.WithShowData(true),
	)

	if t.Exact > 0 {
		chart.LabelAndIntValue("Exact", uint64(t.Exact))
	}
	if t.Fuzzy > 0 {
		chart.LabelAndIntValue("Fuzzy", uint64(t.Fuzzy))
	}
	if t.Missing > 0 {
		chart.LabelAndIntValue("Missing in JSON", uint64(t.Missing))
	}
	if t.Extra > 0 {
		chart.LabelAndIntValue("Not in annexure", uint64(t.Extra))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeSummaries writes the per-file statistics table.
func (w *MarkdownWriter) writeSummaries(md *markdown.Markdown, report *model.AggregateReport) {
	if len(report.Summaries) == 0 {
		return
	}

	md.H2("Per-File Summary")
	md.PlainText("")

	rows := make([][]string, len(report.Summaries))
	for i, s := range report.Summaries {
		rows[i] = []string{
			"`" + s.File + "`",
			strconv.Itoa(s.Counts.Matched),
			strconv.Itoa(s.Counts.Missing),
			strconv.Itoa(s.Counts.Extra),
			strconv.Itoa(s.RecordCount),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"File", "Matched", "Missing in JSON", "Not in Annexure", "Records"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeDetails writes the unmatched fields of each file as collapsible
// sections.
func (w *MarkdownWriter) writeDetails(md *markdown.Markdown, report *model.AggregateReport) {
	var hasUnmatched bool
	for _, d := range report.Details {
		if len(d.Missing) > 0 || len(d.Extra) > 0 {
			hasUnmatched = true
			break
		}
	}
	if !hasUnmatched {
		return
	}

	md.H2("Per-File Field Analysis")
	md.PlainText("")

	for _, d := range report.Details {
		if len(d.Missing) == 0 && len(d.Extra) == 0 {
			continue
		}
		var body strings.Builder
		if len(d.Missing) > 0 {
			body.WriteString("Missing in JSON: " + codeJoin(d.Missing) + "\n\n")
		}
		if len(d.Extra) > 0 {
			body.WriteString("Not found under annexure: " + codeJoin(d.Extra))
		}
		md.Details(d.File, body.String())
	}
	md.PlainText("")
}

// writeUnique writes the unique unmatched fields with their file counts.
func (w *MarkdownWriter) writeUnique(md *markdown.Markdown, report *model.AggregateReport) {
	if len(report.UniqueMissing) == 0 && len(report.UniqueExtra) == 0 {
		return
	}

	md.H2("Unique Unmatched Fields")
	md.PlainText("")

	rows := make([][]string, 0, len(report.UniqueMissing)+len(report.UniqueExtra))
	for _, o := range report.UniqueMissing {
		rows = append(rows, []string{"`" + o.Field + "`", model.StatusMissingInTarget.Label(), strconv.Itoa(o.Count)})
	}
	for _, o := range report.UniqueExtra {
		rows = append(rows, []string{"`" + o.Field + "`", model.StatusNotInReference.Label(), strconv.Itoa(o.Count)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Field", "Status", "Files"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeErrors lists files that could not be compared.
func (w *MarkdownWriter) writeErrors(md *markdown.Markdown, report *model.AggregateReport) {
	if !report.HasErrors() {
		return
	}

	md.H2("File Errors")
	md.PlainText("")

	items := make([]string, len(report.Errors))
	for i, e := range report.Errors {
		items[i] = "`" + e.File + "` (" + e.Kind.String() + "): " + e.Message()
	}
	md.BulletList(items...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [fieldscan](https://github.com/nao1215/fieldscan)*")
}

func codeJoin(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = "`" + f + "`"
	}
	return strings.Join(quoted, ", ")
}
