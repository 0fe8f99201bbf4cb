package tableio

import (
	"fmt"
	"os"
	"strings"

	"github.com/leapstack-labs/leapstore/pkg/column"
	"github.com/leapstack-labs/leapstore/pkg/table"
)

// Import reads a file written by Export back into a table named name.
// Header problems surface as InvalidFormatError; malformed data rows reuse
// the table layer's MismatchedColumnCount and ParseError, with the parse
// index counting data rows from zero. The table is constructed through
// table.New, so the single-primary-key rule holds for imported files too.
func Import(name, path string, f Format) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	lines := splitLines(string(data))
	switch f {
	case CSV:
		return parseTable(name, lines, commaCells, false)
	case TXT:
		return parseTable(name, lines, strings.Fields, true)
	default:
		return nil, &InvalidFormatError{Detail: fmt.Sprintf("format(%d)", int(f))}
	}
}

func commaCells(line string) []string { return strings.Split(line, ",") }

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\r\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func parseTable(name string, lines []string, cells func(string) []string, skipSeparator bool) (*table.Table, error) {
	if len(lines) == 0 {
		return nil, &InvalidFormatError{Detail: "file is empty"}
	}
	names := cells(lines[0])

	if len(lines) < 2 {
		return nil, &InvalidFormatError{Detail: "missing data type line"}
	}
	tokens := cells(lines[1])
	if len(tokens) != len(names) {
		return nil, &InvalidFormatError{Detail: "data type count does not match column count"}
	}
	types := make([]column.DataType, len(tokens))
	for i, tok := range tokens {
		t, ok := column.ParseDataType(tok)
		if !ok {
			return nil, &InvalidFormatError{Detail: fmt.Sprintf("unknown data type %q", tok)}
		}
		types[i] = t
	}

	if len(lines) < 3 {
		return nil, &InvalidFormatError{Detail: "missing primary key line"}
	}
	markers := cells(lines[2])
	if len(markers) != len(names) {
		return nil, &InvalidFormatError{Detail: "primary key marker count does not match column count"}
	}
	cols := make([]column.Column, len(names))
	for i := range names {
		pk := false
		switch markers[i] {
		case primKeyMarker:
			pk = true
		case notPrimKeyMarker:
		default:
			return nil, &InvalidFormatError{Detail: fmt.Sprintf("unknown primary key marker %q", markers[i])}
		}
		cols[i] = column.New(names[i], types[i], pk, nil)
	}

	rows := lines[3:]
	if skipSeparator && len(rows) > 0 {
		// The fourth line is reserved for the separator, whatever it holds.
		rows = rows[1:]
	}
	for r, line := range rows {
		vals := cells(line)
		if len(vals) != len(cols) {
			return nil, &table.MismatchedColumnCountError{Expected: len(cols), Actual: len(vals)}
		}
		for i, cell := range vals {
			v, err := column.Parse(cell, types[i])
			if err != nil {
				return nil, &table.ParseError{Index: r, Literal: cell}
			}
			cols[i].Append(v)
		}
	}

	return table.New(name, cols)
}
