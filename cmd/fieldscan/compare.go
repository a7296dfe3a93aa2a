package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/fieldscan/internal/aggregate"
	"github.com/nao1215/fieldscan/internal/config"
	"github.com/nao1215/fieldscan/internal/database"
	"github.com/nao1215/fieldscan/internal/match"
	"github.com/nao1215/fieldscan/internal/model"
	"github.com/nao1215/fieldscan/internal/pipeline"
	"github.com/nao1215/fieldscan/internal/report"
	"github.com/nao1215/fieldscan/internal/schema"
	"github.com/nao1215/fieldscan/internal/source"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [paths...]",
		Short: "Compare JSON files with a reference schema",
		Long: `Compare extracts the field paths of every JSON file and classifies each
reference field as matched or missing, and each extracted field that matches
no reference field as not in the reference.

Fields inside arrays of objects are listed both with their full path
(items.sku) and as a leaf (sku). Reference fields use the same dotted
syntax: a.b names key b inside object a, and a key that itself contains a
dot is written with a backslash escape (a\.b).

Matching ignores case and surrounding spaces unless --case-sensitive is
given, and falls back to fuzzy matching (Levenshtein similarity) unless
--no-fuzzy is given.

A file that cannot be read or parsed is reported in the FILE ERRORS section
and does not stop the others.

Examples:
  # Compare a directory with the customers schema of .fieldscan
  fieldscan compare data/ --schema customers

  # Only one category of a grouped schema
  fieldscan compare data/ --schema crm --category accounts

  # Compare records below a sub-document
  fieldscan compare export.json --schema orders --root data.items

  # Use the columns of a SQLite table as the reference
  fieldscan compare data/ --schema-db crm.sqlite --schema-table customers

  # Markdown report written to a file, and saved to the run history
  fieldscan compare data/ --schema customers --markdown -o report.md --save`,
		Args: cobra.ArbitraryArgs,
		RunE: runCompareCmd,
	}

	// Reference schema flags
	cmd.Flags().StringP("schema", "s", "",
		"Reference schema name from the configuration file")
	cmd.Flags().String("category", "",
		"Restrict the schema to one category")
	cmd.Flags().String("schema-db", "",
		"SQLite file (or configured database name) holding the reference table")
	cmd.Flags().String("schema-table", "",
		"Table whose columns are the reference fields")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .fieldscan in current or home directory)")

	// Matching flags
	cmd.Flags().Bool("case-sensitive", false,
		"Compare field names case-sensitively")
	cmd.Flags().Bool("no-fuzzy", false,
		"Disable fuzzy matching")
	cmd.Flags().Float64P("threshold", "t", config.DefaultSimilarityThreshold,
		"Minimum similarity (0-1) for a fuzzy match")

	// Extraction flags
	cmd.Flags().String("root", "",
		"Compare the sub-document at this path (e.g. data.items)")
	cmd.Flags().Int("max-depth", config.DefaultMaxDepth,
		"Maximum nesting depth of a document")
	cmd.Flags().Bool("no-repair", false,
		"Do not repair byte order marks and trailing commas")

	// Batch flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of files processed per chunk")
	cmd.Flags().IntP("workers", "w", config.DefaultConcurrency,
		"Number of files processed in parallel")
	cmd.Flags().BoolP("recursive", "r", false,
		"Descend into subdirectories")
	cmd.Flags().String("pattern", source.DefaultPattern,
		"File name pattern used inside directories")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report")
	cmd.Flags().Bool("table", false,
		"Output a summary table")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("save", false,
		"Save the run summary to the history database")
	cmd.Flags().String("db-dir", "",
		"Directory of the history database (default: XDG data directory)")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, err := setupLogger(cmd)
	if err != nil {
		return err
	}

	// Set up context with signal handling for graceful shutdown
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Warn("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runCompare(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
}

// buildConfig creates a Config from the configuration file and command flags.
// Flags given on the command line override the file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Paths = args

	var err error
	flags := cmd.Flags()

	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}
	f, err := loadConfigFile(cfg.ConfigFilePath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyFile(f)

	if cfg.Schema, err = flags.GetString("schema"); err != nil {
		return nil, err
	}
	if cfg.Category, err = flags.GetString("category"); err != nil {
		return nil, err
	}
	if cfg.SchemaDB, err = flags.GetString("schema-db"); err != nil {
		return nil, err
	}
	if cfg.SchemaTable, err = flags.GetString("schema-table"); err != nil {
		return nil, err
	}

	if flags.Changed("case-sensitive") {
		if cfg.CaseSensitive, err = flags.GetBool("case-sensitive"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("no-fuzzy") {
		noFuzzy, err := flags.GetBool("no-fuzzy")
		if err != nil {
			return nil, err
		}
		cfg.FuzzyMatch = !noFuzzy
	}
	if flags.Changed("threshold") {
		if cfg.SimilarityThreshold, err = flags.GetFloat64("threshold"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("root") {
		if cfg.Root, err = flags.GetString("root"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("max-depth") {
		if cfg.MaxDepth, err = flags.GetInt("max-depth"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("no-repair") {
		noRepair, err := flags.GetBool("no-repair")
		if err != nil {
			return nil, err
		}
		cfg.Repair = !noRepair
	}
	if flags.Changed("batch") {
		if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("workers") {
		if cfg.Concurrency, err = flags.GetInt("workers"); err != nil {
			return nil, err
		}
	}

	if cfg.Recursive, err = flags.GetBool("recursive"); err != nil {
		return nil, err
	}
	if cfg.Pattern, err = flags.GetString("pattern"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.TableReport, err = flags.GetBool("table"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.SaveToDB, err = flags.GetBool("save"); err != nil {
		return nil, err
	}
	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	return cfg, nil
}

// runCompare executes the comparison and writes the report.
// When ctx is cancelled, the files finished so far are still reported and
// the cancellation error is returned afterwards.
func runCompare(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer, logger *slog.Logger) error {
	ref, err := loadReferenceSchema(ctx, cfg)
	if err != nil {
		return err
	}

	files, err := source.New(
		source.WithRecursive(cfg.Recursive),
		source.WithPattern(cfg.Pattern),
	).Expand(cfg.Paths)
	if err != nil {
		return err
	}

	engine, err := pipeline.NewEngine(engineConfig(cfg),
		pipeline.WithEngineLogger(logger),
		pipeline.WithEngineProgress(func(done, total int, file string) {
			logger.Debug("file compared", "done", done, "total", total, "file", file)
		}),
	)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger.Debug("starting comparison",
		"schema", ref.Name,
		"referenceFields", ref.Len(),
		"files", len(files),
		"batchSize", cfg.BatchSize,
		"workers", cfg.Concurrency,
	)

	startTime := time.Now()
	run, runErr := engine.Compare(ctx, files, ref)
	if run == nil {
		return runErr
	}
	if runErr != nil {
		logger.Warn("comparison interrupted, reporting partial results",
			"compared", len(run.Results)+len(run.Errors),
			"total", len(files),
		)
	}

	aggregated := aggregate.Aggregate(run.Results, run.Errors,
		aggregate.WithSchema(ref.Name),
		aggregate.WithClock(func() time.Time { return startTime }),
	)
	logger.Debug("comparison finished", "elapsed", time.Since(startTime).Round(time.Millisecond))

	if err := outputReport(cfg, aggregated, stdout); err != nil {
		return err
	}

	if cfg.SaveToDB && runErr == nil {
		if err := saveRun(ctx, cfg, aggregated, stderr, logger); err != nil {
			return err
		}
	}

	return runErr
}

// engineConfig maps the CLI configuration onto the comparison engine.
func engineConfig(cfg *config.Config) pipeline.EngineConfig {
	var rules model.SpecialCharRules
	if cfg.File != nil {
		rules = cfg.File.SpecialCharRules()
	}
	ec := pipeline.DefaultEngineConfig()
	ec.Match = match.Config{
		CaseSensitive:       cfg.CaseSensitive,
		FuzzyMatch:          cfg.FuzzyMatch,
		SimilarityThreshold: cfg.SimilarityThreshold,
	}
	ec.SpecialChars = rules
	ec.BatchSize = cfg.BatchSize
	ec.Concurrency = cfg.Concurrency
	ec.MaxDepth = cfg.MaxDepth
	ec.Root = cfg.Root
	ec.Repair = cfg.Repair
	return ec
}

// loadReferenceSchema resolves the reference schema from a table or from
// the configuration file.
func loadReferenceSchema(ctx context.Context, cfg *config.Config) (model.ReferenceSchema, error) {
	if cfg.SchemaDB != "" {
		db, err := database.OpenSource(cfg.File.Database(cfg.SchemaDB))
		if err != nil {
			return model.ReferenceSchema{}, err
		}
		defer db.Close()

		return schema.NewTableSource(db).Load(ctx, cfg.SchemaTable, cfg.Category)
	}

	return schema.FromFile(cfg.File).Load(ctx, cfg.Schema, cfg.Category)
}

// outputReport writes the report in the requested format to stdout or, with
// an output file, to that file while stdout gets the summary table.
func outputReport(cfg *config.Config, aggregated *model.AggregateReport, stdout io.Writer) error {
	var writer report.Writer
	if cfg.ReportFile == "" {
		writer = newReportWriter(cfg, stdout, false)
	} else {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		writer = report.NewMultiWriter(
			newReportWriter(cfg, f, true),
			report.NewTableWriter(stdout),
		)
	}

	if _, err := writer.Write(aggregated); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// newReportWriter creates the writer for the selected format. Reports
// written to a file are uncolored and the text report carries its timestamp.
func newReportWriter(cfg *config.Config, output io.Writer, toFile bool) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	case cfg.TableReport:
		var opts []report.TableWriterOption
		if toFile {
			opts = append(opts, report.WithColor(false))
		}
		return report.NewTableWriter(output, opts...)
	default:
		return report.NewTextWriter(output,
			report.WithVerbose(cfg.Verbose),
			report.WithTimestamp(toFile),
		)
	}
}

// saveRun stores the run summary in the history database.
func saveRun(ctx context.Context, cfg *config.Config, aggregated *model.AggregateReport, stderr io.Writer, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rec := database.NewRunRecord(aggregated)
	if err := db.SaveRun(ctx, rec); err != nil {
		return err
	}

	logger.Debug("run saved", "id", rec.ID, "db", db.Path())
	fmt.Fprintf(stderr, "Saved run %s\n", rec.ID)
	return nil
}
