// Package main provides the entry point for the fieldscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for fieldscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fieldscan",
		Short: "Compare JSON document fields with a reference schema",
		Long: `fieldscan extracts every field path of a set of JSON documents and compares
them with a reference field list (an annexure). It reports, per file and
across all files, which reference fields were found, which are missing and
which fields are not part of the reference.

Reference schemas come from the .fieldscan configuration file or from the
columns of a SQLite table.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("log-format", logFormatText, "Log output format (text or json)")

	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewSchemasCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
