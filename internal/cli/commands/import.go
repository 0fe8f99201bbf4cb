package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapstore/internal/cli/output"
	"github.com/leapstack-labs/leapstore/internal/render"
	"github.com/leapstack-labs/leapstore/pkg/table"
	"github.com/leapstack-labs/leapstore/pkg/tableio"
	"github.com/spf13/cobra"
)

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	var format string
	var seed bool

	cmd := &cobra.Command{
		Use:   "import <name> <file>",
		Short: "Import a table from a CSV or TXT file",
		Long: `Parse an exported table file and validate it against the engine's rules:
header lines for column names, types, and primary-key markers, then data
rows. The file format carries no table name, so one is given on the
command line.

The database is rebuilt from the schema and seeds on every run, so a
plain import only inspects the file. Use --seed to also write the rows
as seeds/<name>.csv; together with a matching table in the schema
document, the data then becomes part of every load.`,
		Example: `  # Inspect an exported file
  leapstore import users users.csv

  # Import and keep the rows as seed data
  leapstore import users users.csv --seed`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], args[1], format, seed)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "File format: csv, txt (default: from extension)")
	cmd.Flags().BoolVar(&seed, "seed", false, "Write the imported rows to the seeds directory")

	return cmd
}

func runImport(cmd *cobra.Command, name, path, format string, seed bool) error {
	cc := NewCommandContextWithoutEngine(cmd)

	f, err := resolveFormat(format, path)
	if err != nil {
		return err
	}

	t, err := tableio.Import(name, path, f)
	if err != nil {
		return err
	}

	result := output.ImportOutput{
		Table:  name,
		File:   path,
		Format: f.String(),
		Rows:   t.RowCount(),
	}

	if seed {
		seedPath := filepath.Join(cc.Cfg.SeedsDir, name+".csv")
		if err := writeSeedFile(seedPath, t); err != nil {
			return err
		}
		result.SeedFile = seedPath
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(result)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Import"))
		r.Println("")
		r.Println(output.FormatKeyValue("Table", result.Table))
		r.Println(output.FormatKeyValue("File", result.File))
		r.Println(output.FormatKeyValue("Format", result.Format))
		r.Printf("**Rows:** %d\n", result.Rows)
		if result.SeedFile != "" {
			r.Println(output.FormatKeyValue("Seed", result.SeedFile))
		}
	default:
		render.Describe(r.Writer(), t)
		r.Println("")
		r.Success(fmt.Sprintf("Imported %s (%d rows) from %s", result.Table, result.Rows, result.File))
		if result.SeedFile != "" {
			r.Muted("Seed written to " + result.SeedFile)
		}
	}
	return nil
}

// writeSeedFile renders a table as a plain seed CSV: a header of column
// names followed by data rows. Null cells render as NULL, which parses
// back to null on load.
func writeSeedFile(path string, t *table.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create seeds directory: %w", err)
	}

	cols := t.Columns()
	var b strings.Builder

	names := make([]string, len(cols))
	for i := range cols {
		names[i] = cols[i].Name
	}
	b.WriteString(strings.Join(names, ","))
	b.WriteByte('\n')

	for r := 0; r < t.RowCount(); r++ {
		cells := make([]string, len(cols))
		for i := range cols {
			cells[i] = cols[i].Data[r].String()
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write seed file: %w", err)
	}
	return nil
}
