package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/fieldscan/internal/config"
	applog "github.com/nao1215/fieldscan/internal/log"
)

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// errUnknownLogFormat is returned for a --log-format other than text or json.
var errUnknownLogFormat = errors.New("unknown log format")

// Verbose runs keep more of long attribute values.
const (
	verboseMaxValueLen  = 1024
	verboseMaxListItems = 50
)

// setupLogger creates the logger for a command and makes it the default.
func setupLogger(cmd *cobra.Command) (*slog.Logger, error) {
	verbose := getVerboseFlag(cmd)
	var opts []applog.HandlerOption
	if verbose {
		opts = append(opts,
			applog.WithMaxValueLen(verboseMaxValueLen),
			applog.WithMaxListItems(verboseMaxListItems),
		)
	}

	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		format = logFormatText
	}

	var logger *slog.Logger
	switch format {
	case logFormatText:
		logger = applog.NewLogger(cmd.ErrOrStderr(), verbose, opts...)
	case logFormatJSON:
		logger = applog.NewJSONLogger(cmd.ErrOrStderr(), verbose, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownLogFormat, format)
	}
	slog.SetDefault(logger)
	return logger, nil
}

// loadConfigFile loads the configuration file.
// If the user explicitly specified a path, a missing file is an error.
// Otherwise a missing file yields an empty configuration.
func loadConfigFile(path string) (*config.File, error) {
	configPath := config.FindConfigFile(path)
	if configPath == "" {
		if path != "" {
			return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, path)
		}
		return config.ParseFile(nil)
	}

	f, err := config.LoadConfigFile(configPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: %s", err, configPath)
		}
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return f, nil
}
