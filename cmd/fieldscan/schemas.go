package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/fieldscan/internal/database"
	"github.com/nao1215/fieldscan/internal/model"
	"github.com/nao1215/fieldscan/internal/schema"
)

// NewSchemasCmd creates the schemas command and its subcommands.
func NewSchemasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemas",
		Short: "List, show and import reference schemas",
		Long: `Schemas inspects the reference schemas of the configuration file and
imports new ones from the columns of SQLite tables.

Examples:
  # List the configured schemas
  fieldscan schemas list

  # Show the fields of one schema, or of one of its categories
  fieldscan schemas show crm --category accounts

  # Print a configuration snippet for every table of a database
  fieldscan schemas import --db crm.sqlite >> .fieldscan`,
	}

	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .fieldscan in current or home directory)")

	cmd.AddCommand(newSchemasListCmd())
	cmd.AddCommand(newSchemasShowCmd())
	cmd.AddCommand(newSchemasImportCmd())

	return cmd
}

// loadRegistry loads the schema registry named by the --config flag.
func loadRegistry(cmd *cobra.Command) (*schema.Registry, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	f, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}
	return schema.FromFile(f), nil
}

func newSchemasListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured reference schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			return listSchemas(cmd.OutOrStdout(), registry)
		},
	}
}

// listSchemas prints every schema with its field count and categories.
func listSchemas(w io.Writer, registry *schema.Registry) error {
	if registry.Len() == 0 {
		fmt.Fprintln(w, "No schemas configured.")
		fmt.Fprintln(w, "\nUse 'fieldscan init' to create a configuration file.")
		return nil
	}

	fmt.Fprintf(w, "Schemas (%d):\n\n", registry.Len())
	for _, name := range registry.Names() {
		fields, err := registry.Fields(name, "")
		if err != nil {
			return err
		}
		categories, err := registry.Categories(name)
		if err != nil {
			return err
		}

		line := fmt.Sprintf("  • %s (%d fields)", name, len(fields))
		if len(categories) > 0 {
			line += " categories: " + strings.Join(categories, ", ")
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func newSchemasShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show the fields of a reference schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			category, err := cmd.Flags().GetString("category")
			if err != nil {
				return err
			}

			ref, err := registry.Load(cmd.Context(), args[0], category)
			if err != nil {
				return err
			}
			showSchema(cmd.OutOrStdout(), ref)
			return nil
		},
	}

	cmd.Flags().String("category", "", "Show only one category")

	return cmd
}

// showSchema prints the fields of a schema in display order.
func showSchema(w io.Writer, ref model.ReferenceSchema) {
	fmt.Fprintf(w, "%s (%d fields)\n", ref.Name, ref.Len())
	for _, field := range ref.Fields {
		fmt.Fprintf(w, "  - %s\n", field)
	}
}

func newSchemasImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Print a configuration snippet from SQLite table columns",
		Long: `Import reads the columns of SQLite tables and prints them as a schemas
section for the configuration file. Without --table every table of the
database is imported.`,
		Args: cobra.NoArgs,
		RunE: runSchemasImportCmd,
	}

	cmd.Flags().String("db", "", "SQLite file or configured database name")
	cmd.Flags().String("table", "", "Table to import (default: all tables)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// runSchemasImportCmd executes the schemas import command.
func runSchemasImportCmd(cmd *cobra.Command, _ []string) error {
	dbName, err := cmd.Flags().GetString("db")
	if err != nil {
		return err
	}
	table, err := cmd.Flags().GetString("table")
	if err != nil {
		return err
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	f, err := loadConfigFile(configPath)
	if err != nil {
		return err
	}

	db, err := database.OpenSource(f.Database(dbName))
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	snippet, err := importSchemas(ctx, db, table)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(snippet)
	return err
}

// importSchemas renders the columns of table, or of every table when table
// is empty, as a configuration snippet.
func importSchemas(ctx context.Context, db *database.SourceDB, table string) ([]byte, error) {
	tables := []string{table}
	if table == "" {
		var err error
		if tables, err = db.ListTables(ctx); err != nil {
			return nil, err
		}
		if len(tables) == 0 {
			return nil, fmt.Errorf("%w: %s has no tables", database.ErrTableNotFound, db.Path())
		}
	}

	src := schema.NewTableSource(db)
	refs := make([]model.ReferenceSchema, 0, len(tables))
	for _, t := range tables {
		ref, err := src.Load(ctx, t, "")
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return schema.Snippet(refs...)
}
