// Package tableio round-trips tables through delimited text files.
//
// Both formats share one layout: a line of column names, a line of data type
// tokens, a line of primary-key markers, then one line per row. CSV joins
// cells with commas; TXT pads cells with spaces and inserts a separator line
// of dashes after the headers. Cells hold the same literals the table
// operations accept, with NULL for null, so an exported file imports back to
// an equal table.
//
// The formats carry no foreign-key descriptors. An imported table is
// standalone until it is registered into a database by a schema operation.
package tableio

import (
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapstore/pkg/column"
)

// Format selects the file layout for Export and Import.
type Format int

const (
	CSV Format = iota
	TXT
)

// Primary-key markers in the third header line.
const (
	primKeyMarker    = "prim_key"
	notPrimKeyMarker = "nt_prim_key"
)

// ParseFormat maps a format token to its Format, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "csv":
		return CSV, nil
	case "txt":
		return TXT, nil
	default:
		return 0, &InvalidFormatError{Detail: s}
	}
}

// FormatForPath infers the format from the path's file extension.
func FormatForPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// String returns the format's token.
func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case TXT:
		return "txt"
	default:
		return "unknown"
	}
}

func columnNames(cols []column.Column) []string {
	out := make([]string, len(cols))
	for i := range cols {
		out[i] = cols[i].Name
	}
	return out
}

func typeTokens(cols []column.Column) []string {
	out := make([]string, len(cols))
	for i := range cols {
		out[i] = cols[i].DataType.String()
	}
	return out
}

func pkMarkers(cols []column.Column) []string {
	out := make([]string, len(cols))
	for i := range cols {
		if cols[i].PrimaryKey {
			out[i] = primKeyMarker
		} else {
			out[i] = notPrimKeyMarker
		}
	}
	return out
}
