package table

import (
	"github.com/leapstack-labs/leapstore/pkg/column"
)

// Insert appends one row given a literal for every column, in declaration
// order. The whole row is parsed and checked before any column is touched,
// so a failed insert leaves the table unchanged.
func (t *Table) Insert(values []string) error {
	if len(values) != len(t.columns) {
		return &MismatchedColumnCountError{Expected: len(t.columns), Actual: len(values)}
	}

	parsed := make([]column.Value, 0, len(t.columns))
	for i := range t.columns {
		v, err := column.Parse(values[i], t.columns[i].DataType)
		if err != nil {
			return &ParseError{Index: i, Literal: values[i]}
		}
		parsed = append(parsed, v)
	}

	if err := t.checkPrimaryKey(parsed); err != nil {
		return err
	}

	for i := range t.columns {
		t.columns[i].Append(parsed[i])
	}
	return nil
}

// InsertWithColumns appends one row given literals for a subset of columns;
// omitted columns receive null. Every provided name must exist
// (NonExistingColumnsError lists all that do not), the name and value counts
// must match, and a table with a primary key requires that key's column in
// names (PrimaryKeyNotProvidedError). Like Insert, the append is
// all-or-nothing.
func (t *Table) InsertWithColumns(names, values []string) error {
	var missing []string
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		if !t.HasColumn(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return &NonExistingColumnsError{Names: missing}
	}

	if len(values) != len(names) {
		return &MismatchedColumnCountError{Expected: len(names), Actual: len(values)}
	}

	if t.primaryKey != "" && !seen[t.primaryKey] {
		return &PrimaryKeyNotProvidedError{Column: t.primaryKey}
	}

	parsed := make([]column.Value, len(t.columns))
	for i := range parsed {
		parsed[i] = column.Null()
	}
	for i, n := range names {
		idx := t.columnIndex(n)
		v, err := column.Parse(values[i], t.columns[idx].DataType)
		if err != nil {
			return &ParseError{Index: idx, Literal: values[i]}
		}
		parsed[idx] = v
	}

	if err := t.checkPrimaryKey(parsed); err != nil {
		return err
	}

	for i := range t.columns {
		t.columns[i].Append(parsed[i])
	}
	return nil
}

// checkPrimaryKey validates a fully parsed row against the primary key
// column: no null, no value already present.
func (t *Table) checkPrimaryKey(parsed []column.Value) error {
	if t.primaryKey == "" {
		return nil
	}
	idx := t.columnIndex(t.primaryKey)
	v := parsed[idx]
	if v.IsNull() {
		return ErrNullPrimaryKey
	}
	for _, have := range t.columns[idx].Data {
		if have.Equal(v) {
			return &DuplicatePrimaryKeyError{Value: v}
		}
	}
	return nil
}
