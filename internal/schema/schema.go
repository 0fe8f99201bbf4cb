// Package schema loads table definitions from YAML documents. A document
// lists tables in creation order; converting definitions into columns
// happens here, while integrity rules (primary-key targets, existing
// tables) stay with the database registry.
package schema

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapstore/pkg/column"
)

// DefaultFileName is the schema document the CLI looks for when no path is
// configured.
const DefaultFileName = "leapstore.schema.yaml"

// Document is a parsed schema file.
type Document struct {
	Tables []TableDef `yaml:"tables"`
}

// TableDef declares one table.
type TableDef struct {
	Name    string      `yaml:"name"`
	Columns []ColumnDef `yaml:"columns"`
}

// ColumnDef declares one column. References has the form "table.column" and
// maps to a foreign key.
type ColumnDef struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	PrimaryKey bool   `yaml:"primary_key"`
	References string `yaml:"references"`
}

// DocumentError reports a problem in a schema document, with file and table
// context when known.
type DocumentError struct {
	File    string
	Table   string
	Message string
}

func (e *DocumentError) Error() string {
	msg := e.Message
	if e.Table != "" {
		msg = fmt.Sprintf("table %q: %s", e.Table, msg)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, msg)
	}
	return msg
}

// Load reads and parses the schema document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DocumentError{File: path, Message: fmt.Sprintf("read schema: %v", err)}
	}
	doc, err := Parse(data)
	if err != nil {
		var docErr *DocumentError
		if errors.As(err, &docErr) {
			docErr.File = path
		}
		return nil, err
	}
	return doc, nil
}

// Parse decodes and validates a schema document. Tables must be uniquely
// named and references must point at a column of a table defined earlier in
// the document, so creating tables in order satisfies the registry's
// foreign-key rules. An empty table list is valid and yields an empty
// database.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &DocumentError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	seen := make(map[string]map[string]bool, len(doc.Tables))
	for _, tbl := range doc.Tables {
		if tbl.Name == "" {
			return nil, &DocumentError{Message: "table without a name"}
		}
		if _, ok := seen[tbl.Name]; ok {
			return nil, &DocumentError{Table: tbl.Name, Message: "defined twice"}
		}
		if len(tbl.Columns) == 0 {
			return nil, &DocumentError{Table: tbl.Name, Message: "no columns defined"}
		}

		cols := make(map[string]bool, len(tbl.Columns))
		for _, col := range tbl.Columns {
			if col.Name == "" {
				return nil, &DocumentError{Table: tbl.Name, Message: "column without a name"}
			}
			if cols[col.Name] {
				return nil, &DocumentError{Table: tbl.Name,
					Message: fmt.Sprintf("column %q defined twice", col.Name)}
			}
			cols[col.Name] = true

			if _, ok := dataTypeFor(col.Type); !ok {
				return nil, &DocumentError{Table: tbl.Name,
					Message: fmt.Sprintf("column %q has unknown type %q", col.Name, col.Type)}
			}

			if col.References == "" {
				continue
			}
			refTable, refColumn, ok := strings.Cut(col.References, ".")
			if !ok || refTable == "" || refColumn == "" {
				return nil, &DocumentError{Table: tbl.Name,
					Message: fmt.Sprintf("column %q has malformed reference %q, want table.column", col.Name, col.References)}
			}
			refCols, ok := seen[refTable]
			if !ok {
				return nil, &DocumentError{Table: tbl.Name,
					Message: fmt.Sprintf("column %q references %q, which is not defined earlier in the document", col.Name, col.References)}
			}
			if !refCols[refColumn] {
				return nil, &DocumentError{Table: tbl.Name,
					Message: fmt.Sprintf("column %q references unknown column %q of table %q", col.Name, refColumn, refTable)}
			}
		}
		seen[tbl.Name] = cols
	}
	return &doc, nil
}

// ColumnDefs converts the table definition into engine columns.
func (t TableDef) ColumnDefs() ([]column.Column, error) {
	cols := make([]column.Column, 0, len(t.Columns))
	for _, def := range t.Columns {
		dt, ok := dataTypeFor(def.Type)
		if !ok {
			return nil, &DocumentError{Table: t.Name,
				Message: fmt.Sprintf("column %q has unknown type %q", def.Name, def.Type)}
		}
		var fk *column.ForeignKey
		if def.References != "" {
			refTable, refColumn, ok := strings.Cut(def.References, ".")
			if !ok {
				return nil, &DocumentError{Table: t.Name,
					Message: fmt.Sprintf("column %q has malformed reference %q", def.Name, def.References)}
			}
			fk = &column.ForeignKey{ReferenceTable: refTable, ReferenceColumn: refColumn}
		}
		cols = append(cols, column.New(def.Name, dt, def.PrimaryKey, fk))
	}
	return cols, nil
}

// dataTypeFor maps a schema type token, case-insensitively, to its data
// type.
func dataTypeFor(token string) (column.DataType, bool) {
	switch strings.ToLower(token) {
	case "integer":
		return column.Integer, true
	case "float":
		return column.Float, true
	case "text":
		return column.Text, true
	default:
		return 0, false
	}
}
