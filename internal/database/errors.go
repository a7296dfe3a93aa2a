package database

import "errors"

var (
	// ErrDatabaseNotFound is returned when a database file that must exist is missing.
	ErrDatabaseNotFound = errors.New("database not found")

	// ErrTableNotFound is returned when a table does not exist or has no columns.
	ErrTableNotFound = errors.New("table not found")

	// ErrNotEnoughRuns is returned when drift needs two runs and fewer are stored.
	ErrNotEnoughRuns = errors.New("at least two runs are needed to compute drift")
)
