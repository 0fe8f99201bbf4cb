package commands

import (
	"fmt"

	"github.com/leapstack-labs/leapstore/internal/cli/output"
	"github.com/leapstack-labs/leapstore/pkg/tableio"
	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <table> <file>",
		Short: "Export a table to a CSV or TXT file",
		Long: `Write one loaded table to a text file, including its header lines:
column names, column types, and per-column primary-key markers.

The format is taken from --format, or inferred from the file extension
when the flag is not given. Exported files round-trip through
'leapstore import'.`,
		Example: `  # Export users as CSV (inferred from extension)
  leapstore export users users.csv

  # Export with an explicit format
  leapstore export users snapshot.dat --format txt`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], args[1], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "File format: csv, txt (default: from extension)")

	return cmd
}

func runExport(cmd *cobra.Command, tableName, path, format string) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	f, err := resolveFormat(format, path)
	if err != nil {
		return err
	}

	t, ok := cc.Engine.DB().Table(tableName)
	if !ok {
		return fmt.Errorf("table not found: %s", tableName)
	}

	exportErr := tableio.Export(t, path, f)
	cc.Engine.RecordOperation("export", tableName, int64(t.RowCount()), exportErr)
	if exportErr != nil {
		return exportErr
	}

	result := output.ExportOutput{
		Table:  tableName,
		File:   path,
		Format: f.String(),
		Rows:   t.RowCount(),
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(result)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Export"))
		r.Println("")
		r.Println(output.FormatKeyValue("Table", result.Table))
		r.Println(output.FormatKeyValue("File", result.File))
		r.Println(output.FormatKeyValue("Format", result.Format))
		r.Printf("**Rows:** %d\n", result.Rows)
	default:
		r.Success(fmt.Sprintf("Exported %s (%d rows) to %s", result.Table, result.Rows, result.File))
	}
	return nil
}

// resolveFormat picks the file format from the flag, falling back to the
// file extension.
func resolveFormat(flag, path string) (tableio.Format, error) {
	if flag != "" {
		return tableio.ParseFormat(flag)
	}
	return tableio.FormatForPath(path)
}
