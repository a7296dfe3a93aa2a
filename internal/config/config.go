package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "fieldscan"

	// DefaultSimilarityThreshold is the minimum similarity for a fuzzy match.
	DefaultSimilarityThreshold = 0.8

	// DefaultBatchSize is the number of files processed per chunk.
	DefaultBatchSize = 100

	// DefaultConcurrency is the number of files processed in parallel within a chunk.
	DefaultConcurrency = 4

	// DefaultMaxDepth is the nesting limit for extracted documents.
	DefaultMaxDepth = 64
)

// Config holds all configuration options for a comparison run.
// It is populated from defaults, then the config file, then CLI flags, and
// passed through the application rather than kept in global state.
type Config struct {
	// SimilarityThreshold is the minimum score in [0, 1] for a fuzzy match.
	SimilarityThreshold float64

	// CaseSensitive disables case folding during normalization.
	CaseSensitive bool

	// FuzzyMatch enables the fuzzy pass after exact matching.
	FuzzyMatch bool

	// BatchSize is the number of files processed per chunk.
	BatchSize int

	// Concurrency is the number of files processed in parallel within a chunk.
	Concurrency int

	// MaxDepth limits how deeply nested a document may be.
	MaxDepth int

	// Repair enables BOM stripping and trailing-comma repair.
	Repair bool

	// Root selects a sub-document (gjson path) before extraction.
	Root string

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .fieldscan in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// File holds the loaded configuration file, if any.
	File *File

	// Schema is the reference schema name.
	Schema string

	// Category restricts the reference schema to one of its categories.
	Category string

	// SchemaDB and SchemaTable import the reference schema from a table's columns.
	SchemaDB    string
	SchemaTable string

	// Paths are the JSON files and directories to compare.
	Paths []string

	// Recursive descends into subdirectories of directory arguments.
	Recursive bool

	// Pattern selects the files taken from directories. Empty means *.json.
	Pattern string

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// TableReport selects the terminal summary table.
	TableReport bool

	// ReportFile is the output file path for the report.
	// When empty, the report is written to stdout.
	ReportFile string

	// SaveToDB stores the run summary in the history database.
	SaveToDB bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory.
	DBDir string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		SimilarityThreshold: DefaultSimilarityThreshold,
		FuzzyMatch:          true,
		BatchSize:           DefaultBatchSize,
		Concurrency:         DefaultConcurrency,
		MaxDepth:            DefaultMaxDepth,
		Repair:              true,
		DBDir:               XDGDataDir(),
	}
}

// ApplyFile copies the matching defaults of f into c and keeps f for
// schema lookups. Unset values in f leave c unchanged.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	c.File = f

	m := f.Matching
	if m.Threshold != nil {
		c.SimilarityThreshold = *m.Threshold
	}
	if m.CaseSensitive != nil {
		c.CaseSensitive = *m.CaseSensitive
	}
	if m.FuzzyMatch != nil {
		c.FuzzyMatch = *m.FuzzyMatch
	}
	if m.BatchSize != nil {
		c.BatchSize = *m.BatchSize
	}
	if m.Workers != nil {
		c.Concurrency = *m.Workers
	}
	if m.MaxDepth != nil {
		c.MaxDepth = *m.MaxDepth
	}
	if m.Repair != nil {
		c.Repair = *m.Repair
	}
	if m.Root != "" {
		c.Root = m.Root
	}
}

// XDGDataDir returns the XDG data directory for fieldscan.
// On Linux: ~/.local/share/fieldscan
// On macOS: ~/Library/Application Support/fieldscan
// On Windows: %LOCALAPPDATA%\fieldscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for fieldscan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first error found; configuration errors are fatal before
// any file is read.
func (c *Config) Validate() error {
	if len(c.Paths) == 0 {
		return ErrNoInput
	}

	if (c.SchemaDB == "") != (c.SchemaTable == "") {
		return ErrIncompleteSchemaDB
	}
	if c.Schema == "" && c.SchemaDB == "" {
		return ErrNoSchema
	}

	if !(c.SimilarityThreshold >= 0 && c.SimilarityThreshold <= 1) {
		return ErrInvalidThreshold
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.MaxDepth <= 0 {
		return ErrInvalidMaxDepth
	}

	formats := 0
	for _, selected := range []bool{c.JSONReport, c.MarkdownReport, c.TableReport} {
		if selected {
			formats++
		}
	}
	if formats > 1 {
		return ErrConflictingReportFormats
	}

	return nil
}
