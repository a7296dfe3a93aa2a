// Package log builds the slog loggers used by fieldscan.
//
// The CompactHandler wraps any slog.Handler and keeps records readable when
// they carry field lists: a batch can produce thousands of field names, so
// long strings and slices are shortened before they reach the output.
// Attributes whose key names a credential (password, secret, token) are
// masked, since database connection strings may appear in logs.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("extracted fields", "fields", fieldNames)
//
//	slog.SetDefault(logger)
package log
