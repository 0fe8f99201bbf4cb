// Package table implements the single-relation engine: a named, ordered set
// of typed columns with insert/update/delete/filter operations, local
// primary-key checks, and the condition evaluator those operations share.
//
// A table's column list is fixed at creation. Row index i across every
// column denotes one logical record; all columns hold the same number of
// values whenever an operation returns.
package table

import (
	"github.com/leapstack-labs/leapstore/pkg/column"
)

// Reference identifies a column elsewhere whose foreign key targets this
// table.
type Reference struct {
	Table  string
	Column string
}

// Table is one relation.
type Table struct {
	name       string
	columns    []column.Column
	primaryKey string // name of the primary key column, "" when none
	references []Reference
}

// New builds a table over the given columns. More than one primary-key
// column fails with ErrMultiplePrimaryKeys. Column data is cloned, so the
// caller's slices stay independent of the table.
func New(name string, cols []column.Column) (*Table, error) {
	t := &Table{name: name, columns: make([]column.Column, 0, len(cols))}
	for i := range cols {
		if cols[i].PrimaryKey {
			if t.primaryKey != "" {
				return nil, ErrMultiplePrimaryKeys
			}
			t.primaryKey = cols[i].Name
		}
		t.columns = append(t.columns, cols[i].Clone())
	}
	return t, nil
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Columns returns a deep copy of the table's columns in declaration order.
func (t *Table) Columns() []column.Column {
	out := make([]column.Column, len(t.columns))
	for i := range t.columns {
		out[i] = t.columns[i].Clone()
	}
	return out
}

// Column returns a deep copy of the named column.
func (t *Table) Column(name string) (column.Column, bool) {
	if i := t.columnIndex(name); i >= 0 {
		return t.columns[i].Clone(), true
	}
	return column.Column{}, false
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool { return t.columnIndex(name) >= 0 }

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i := range t.columns {
		names[i] = t.columns[i].Name
	}
	return names
}

// PrimaryKey returns the name of the primary key column, if the table has
// one.
func (t *Table) PrimaryKey() (string, bool) {
	return t.primaryKey, t.primaryKey != ""
}

// References returns the (table, column) pairs whose foreign keys target
// this table.
func (t *Table) References() []Reference {
	out := make([]Reference, len(t.references))
	copy(out, t.references)
	return out
}

// AddReference records that refTable.refColumn declares a foreign key
// pointing at this table. The database registry maintains these when tables
// are created.
func (t *Table) AddReference(refTable, refColumn string) {
	t.references = append(t.references, Reference{Table: refTable, Column: refColumn})
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Len()
}

// Count returns the number of non-null values in the named column, or
// NonExistingColumnError.
func (t *Table) Count(name string) (int, error) {
	idx := t.columnIndex(name)
	if idx < 0 {
		return 0, &NonExistingColumnError{Name: name}
	}
	n := 0
	for _, v := range t.columns[idx].Data {
		if !v.IsNull() {
			n++
		}
	}
	return n, nil
}

// Copy returns a deep copy sharing nothing with the receiver.
func (t *Table) Copy() *Table {
	out := &Table{
		name:       t.name,
		columns:    make([]column.Column, len(t.columns)),
		primaryKey: t.primaryKey,
		references: make([]Reference, len(t.references)),
	}
	for i := range t.columns {
		out.columns[i] = t.columns[i].Clone()
	}
	copy(out.references, t.references)
	return out
}

// ContainsValue reports whether the named column currently holds a value
// equal to v.
func (t *Table) ContainsValue(name string, v column.Value) (bool, error) {
	idx := t.columnIndex(name)
	if idx < 0 {
		return false, &NonExistingColumnError{Name: name}
	}
	for _, have := range t.columns[idx].Data {
		if have.Equal(v) {
			return true, nil
		}
	}
	return false, nil
}

func (t *Table) columnIndex(name string) int {
	for i := range t.columns {
		if t.columns[i].Name == name {
			return i
		}
	}
	return -1
}

// matches evaluates cond once per row over the current index space and
// returns the set of matching row indices.
func (t *Table) matches(cond Condition) (map[int]bool, error) {
	matched := make(map[int]bool)
	for i := 0; i < t.RowCount(); i++ {
		ok, err := evaluate(cond, t.columns, i)
		if err != nil {
			return nil, err
		}
		if ok {
			matched[i] = true
		}
	}
	return matched, nil
}
