package tableio

import (
	"fmt"
	"os"
	"strings"

	"github.com/leapstack-labs/leapstore/pkg/table"
)

// Export writes the table to path in the given format. The whole file is
// rendered in memory first, so a failed write never leaves a usable-looking
// partial file behind a successful return.
func Export(t *table.Table, path string, f Format) error {
	var body string
	switch f {
	case CSV:
		body = renderCSV(t)
	case TXT:
		body = renderTXT(t)
	default:
		return &InvalidFormatError{Detail: fmt.Sprintf("format(%d)", int(f))}
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return &FileError{Path: path, Err: err}
	}
	return nil
}

func renderCSV(t *table.Table) string {
	cols := t.Columns()
	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString(strings.Join(cells, ","))
		b.WriteByte('\n')
	}
	writeRow(columnNames(cols))
	writeRow(typeTokens(cols))
	writeRow(pkMarkers(cols))
	for r := 0; r < t.RowCount(); r++ {
		cells := make([]string, len(cols))
		for i := range cols {
			cells[i] = cols[i].Data[r].String()
		}
		writeRow(cells)
	}
	return b.String()
}

// renderTXT pads every cell to the widest column name. Longer values still
// print in full; whitespace splitting on import does not depend on the
// columns lining up.
func renderTXT(t *table.Table) string {
	cols := t.Columns()
	width := 0
	for i := range cols {
		if n := len(cols[i].Name); n > width {
			width = n
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, leftAlign bool) {
		for _, cell := range cells {
			if leftAlign {
				fmt.Fprintf(&b, "%-*s ", width, cell)
			} else {
				fmt.Fprintf(&b, "%*s ", width, cell)
			}
		}
		b.WriteByte('\n')
	}

	writeRow(columnNames(cols), false)
	writeRow(typeTokens(cols), true)
	writeRow(pkMarkers(cols), true)
	if n := width*len(cols) + len(cols) - 1; n > 0 {
		b.WriteString(strings.Repeat("-", n))
	}
	b.WriteByte('\n')
	for r := 0; r < t.RowCount(); r++ {
		cells := make([]string, len(cols))
		for i := range cols {
			cells[i] = cols[i].Data[r].String()
		}
		writeRow(cells, true)
	}
	return b.String()
}
