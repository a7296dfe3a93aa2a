package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/fieldscan/internal/config"
	"github.com/nao1215/fieldscan/internal/database"
)

// errDriftNeedsSchema is returned for --drift without a schema name.
var errDriftNeedsSchema = errors.New("a schema name is required with --drift")

// NewHistoryCmd creates the history command.
// This command lists the runs saved with 'compare --save'.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [schema]",
		Short: "Show saved comparison runs",
		Long: `History lists the comparison runs saved with 'fieldscan compare --save'.

With --drift, the two most recent runs of a schema are compared and the
fields that became missing or unexpected, or stopped being so, are listed.

Examples:
  # List every saved run
  fieldscan history

  # List the runs of one schema
  fieldscan history customers

  # Show what changed since the previous run
  fieldscan history customers --drift`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("drift", "d", false,
		"Compare the two most recent runs of the schema")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")
	cmd.Flags().String("db-dir", "",
		"Directory of the history database (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	drift, err := cmd.Flags().GetBool("drift")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	var schemaName string
	if len(args) > 0 {
		schemaName = args[0]
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	if drift && schemaName == "" {
		schemas, err := db.ListSchemas(ctx)
		if err != nil {
			return err
		}
		if len(schemas) == 0 {
			return fmt.Errorf("%w: no saved runs", errDriftNeedsSchema)
		}
		return fmt.Errorf("%w: saved schemas: %s", errDriftNeedsSchema, strings.Join(schemas, ", "))
	}

	if drift {
		d, err := db.Drift(ctx, schemaName)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(out, d)
		}
		outputDriftText(out, schemaName, d)
		return nil
	}

	runs, err := db.ListRuns(ctx, schemaName)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(out, runs)
	}
	outputHistoryText(out, schemaName, runs)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// outputHistoryText lists runs in human-readable text format.
func outputHistoryText(w io.Writer, schemaName string, runs []*database.RunRecord) {
	if len(runs) == 0 {
		if schemaName != "" {
			fmt.Fprintf(w, "No saved runs found for %s\n", schemaName)
		} else {
			fmt.Fprintln(w, "No saved runs found.")
		}
		fmt.Fprintln(w, "\nUse 'fieldscan compare --save' to save a run.")
		return
	}

	fmt.Fprintf(w, "Saved runs (%d):\n\n", len(runs))
	fmt.Fprintf(w, "  %-8s  %-20s  %-16s  %s\n", "ID", "Date", "Schema", "Summary")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 76))

	for _, run := range runs {
		t := run.Totals
		fmt.Fprintf(w, "  %-8s  %-20s  %-16s  files:%d failed:%d matched:%d missing:%d extra:%d\n",
			shortID(run.ID),
			run.Timestamp.Local().Format("2006-01-02 15:04:05"),
			run.Schema,
			t.Files, t.Failed, t.Matched, t.Missing, t.Extra,
		)
	}
}

// outputDriftText prints the drift between two runs.
func outputDriftText(w io.Writer, schemaName string, d *database.Drift) {
	fmt.Fprintf(w, "Field drift: %s\n", schemaName)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "\nPrevious run: %s  %s\n", shortID(d.Previous.ID), d.Previous.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Current run:  %s  %s\n", shortID(d.Current.ID), d.Current.Timestamp.Local().Format("2006-01-02 15:04:05"))

	fmt.Fprintf(w, "\n  %-10s  %-10s  %-10s  %-10s\n", "Category", "Previous", "Current", "Change")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 45))
	fmt.Fprintf(w, "  %-10s  %-10d  %-10d  %-10s\n", "Missing",
		len(d.Previous.UniqueMissing), len(d.Current.UniqueMissing),
		formatDelta(len(d.Current.UniqueMissing)-len(d.Previous.UniqueMissing)))
	fmt.Fprintf(w, "  %-10s  %-10d  %-10d  %-10s\n", "Extra",
		len(d.Previous.UniqueExtra), len(d.Current.UniqueExtra),
		formatDelta(len(d.Current.UniqueExtra)-len(d.Previous.UniqueExtra)))

	if d.IsEmpty() {
		fmt.Fprintln(w, "\nNo field changes.")
		return
	}

	writeDriftList(w, "Newly missing in JSON", "+", d.NewMissing)
	writeDriftList(w, "No longer missing", "-", d.ResolvedMissing)
	writeDriftList(w, "Newly not found under annexure", "+", d.NewExtra)
	writeDriftList(w, "No longer unexpected", "-", d.ResolvedExtra)
}

func writeDriftList(w io.Writer, title, marker string, fields []string) {
	if len(fields) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s (%d):\n", title, len(fields))
	for _, f := range fields {
		fmt.Fprintf(w, "  [%s] %s\n", marker, f)
	}
}

// shortID returns the first block of a run ID.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}
