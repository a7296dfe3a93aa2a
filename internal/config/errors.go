package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and LoadConfigFile so callers
// can use errors.Is() for programmatic handling.
var (
	// ErrNoInput is returned when no JSON file or directory is specified.
	ErrNoInput = errors.New("no input specified: provide JSON files or directories")

	// ErrNoSchema is returned when neither a schema name nor a schema table is specified.
	ErrNoSchema = errors.New("no reference schema specified: use --schema or --schema-db with --schema-table")

	// ErrIncompleteSchemaDB is returned when only one of --schema-db and --schema-table is set.
	ErrIncompleteSchemaDB = errors.New("--schema-db and --schema-table must be used together")

	// ErrInvalidThreshold is returned when the similarity threshold is outside [0, 1].
	ErrInvalidThreshold = errors.New("invalid similarity threshold: must be between 0 and 1")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidConcurrency is returned when the worker count is not positive.
	ErrInvalidConcurrency = errors.New("invalid worker count: must be positive")

	// ErrInvalidMaxDepth is returned when the nesting limit is not positive.
	ErrInvalidMaxDepth = errors.New("invalid max depth: must be positive")

	// ErrConflictingReportFormats is returned when more than one of --json,
	// --markdown and --table is specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: use only one of --json, --markdown and --table")

	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidConfigFile is returned when the configuration file does not
	// match the expected structure.
	ErrInvalidConfigFile = errors.New("invalid configuration file")
)
