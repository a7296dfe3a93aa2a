package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/nao1215/fieldscan/internal/model"
)

// TableWriter outputs a per-file summary table for terminals.
// Cells are colored unless color is disabled, either with WithColor(false)
// or globally through color.NoColor (set when stdout is not a terminal or
// NO_COLOR is present).
type TableWriter struct {
	baseWriter
	colored bool
}

// TableWriterOption configures a TableWriter.
type TableWriterOption func(*TableWriter)

// WithColor enables or disables colored cells.
func WithColor(enabled bool) TableWriterOption {
	return func(w *TableWriter) {
		w.colored = enabled
	}
}

// NewTableWriter creates a TableWriter that outputs to the given writer.
func NewTableWriter(output io.Writer, opts ...TableWriterOption) *TableWriter {
	w := &TableWriter{
		baseWriter: newBaseWriter(output),
		colored:    !color.NoColor,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the table followed by a totals line.
func (w *TableWriter) Write(report *model.AggregateReport) (int, error) {
	good, warn, bad := w.painters()

	buf := new(bytes.Buffer)
	table := tablewriter.NewTable(buf, tablewriter.WithRowAutoWrap(tw.WrapNone))
	table.Header([]string{"File", "Matched", "Exact", "Fuzzy", "Missing in JSON", "Not in Annexure"})

	for _, s := range report.Summaries {
		missing := strconv.Itoa(s.Counts.Missing)
		if s.Counts.Missing > 0 {
			missing = bad(missing)
		}
		extra := strconv.Itoa(s.Counts.Extra)
		if s.Counts.Extra > 0 {
			extra = warn(extra)
		}
		row := []string{
			s.File,
			good(strconv.Itoa(s.Counts.Matched)),
			strconv.Itoa(s.Counts.Exact),
			strconv.Itoa(s.Counts.Fuzzy),
			missing,
			extra,
		}
		if err := table.Append(row); err != nil {
			return 0, fmt.Errorf("failed to add table row for %s: %w", s.File, err)
		}
	}
	for _, e := range report.Errors {
		if err := table.Append([]string{e.File, bad(e.Kind.String()), "-", "-", "-", "-"}); err != nil {
			return 0, fmt.Errorf("failed to add table row for %s: %w", e.File, err)
		}
	}
	if err := table.Render(); err != nil {
		return 0, fmt.Errorf("failed to render table: %w", err)
	}

	t := report.Totals
	fmt.Fprintf(buf, "\n%d file(s) compared, %d failed: %s matched, %s missing in JSON, %s not in annexure\n",
		t.Files, t.Failed,
		good(strconv.Itoa(t.Matched)),
		bad(strconv.Itoa(t.Missing)),
		warn(strconv.Itoa(t.Extra)))

	return w.output.Write(buf.Bytes())
}

func (w *TableWriter) painters() (good, warn, bad func(a ...interface{}) string) {
	if !w.colored {
		plain := func(a ...interface{}) string { return fmt.Sprint(a...) }
		return plain, plain, plain
	}
	green := color.New(color.FgHiGreen)
	yellow := color.New(color.FgHiYellow)
	red := color.New(color.FgHiRed)
	for _, c := range []*color.Color{green, yellow, red} {
		c.EnableColor()
	}
	return green.SprintFunc(), yellow.SprintFunc(), red.SprintFunc()
}
