// Package render prints tables and their schemas for the console.
package render

import (
	"fmt"
	"io"
	"strings"

	pretty "github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/leapstore/pkg/column"
	"github.com/leapstack-labs/leapstore/pkg/table"
)

// Show renders every column and row of the table.
func Show(w io.Writer, t *table.Table) {
	renderRows(w, t.Columns(), t.RowCount())
}

// Project renders the named columns in order; an empty name list means all
// columns.
func Project(w io.Writer, t *table.Table, names ...string) error {
	view, err := t.Project(names...)
	if err != nil {
		return err
	}
	Show(w, view)
	return nil
}

// Describe renders the table's schema: one row per column with its type,
// key roles, and non-null value count.
func Describe(w io.Writer, t *table.Table) {
	_, _ = fmt.Fprintf(w, "Table: %s\n", t.Name())
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 60))

	tw := pretty.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(pretty.StyleLight)
	tw.AppendHeader(pretty.Row{"Column", "Type", "Key", "References", "Non-null"})

	for _, col := range t.Columns() {
		key := ""
		if col.PrimaryKey {
			key = "primary key"
		}
		refs := ""
		if col.ForeignKey != nil {
			refs = col.ForeignKey.ReferenceTable + "." + col.ForeignKey.ReferenceColumn
		}
		n, _ := t.Count(col.Name)
		tw.AppendRow(pretty.Row{col.Name, col.DataType.String(), key, refs, n})
	}
	tw.Render()
}

func renderRows(w io.Writer, cols []column.Column, rowCount int) {
	if rowCount == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	tw := pretty.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(pretty.StyleLight)

	header := make(pretty.Row, len(cols))
	for i := range cols {
		header[i] = cols[i].Name
	}
	tw.AppendHeader(header)

	for r := 0; r < rowCount; r++ {
		row := make(pretty.Row, len(cols))
		for i := range cols {
			row[i] = cols[i].Data[r].String()
		}
		tw.AppendRow(row)
	}

	tw.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", rowCount)
}
