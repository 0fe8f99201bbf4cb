package table

import (
	"github.com/leapstack-labs/leapstore/pkg/column"
)

// parseUpdateValue parses the replacement literal for an update. Updates do
// not honor the "null" insert literal: a numeric column rejects it as
// unparseable and a text column stores it verbatim, so an update can never
// write null.
func parseUpdateValue(literal string, t column.DataType, errIndex int) (column.Value, error) {
	if t == column.Text {
		return column.NewText(literal), nil
	}
	v, err := column.Parse(literal, t)
	if err != nil || v.IsNull() {
		return column.Value{}, &ParseError{Index: errIndex, Literal: literal}
	}
	return v, nil
}

// UpdateColumn overwrites every row of the named column with one parsed
// value and returns the number of rows written. The primary key column is
// refused outright. A bad literal fails with ParseError at index 0.
func (t *Table) UpdateColumn(name, literal string) (int, error) {
	if t.primaryKey != "" && t.primaryKey == name {
		return 0, &CannotBatchUpdatePrimaryKeyError{Column: name}
	}
	idx := t.columnIndex(name)
	if idx < 0 {
		return 0, &NonExistingColumnError{Name: name}
	}
	v, err := parseUpdateValue(literal, t.columns[idx].DataType, 0)
	if err != nil {
		return 0, err
	}
	for i := range t.columns[idx].Data {
		t.columns[idx].Data[i] = v
	}
	return len(t.columns[idx].Data), nil
}

// UpdateWhere overwrites the named column with one parsed value on every row
// satisfying cond, in a single pass, and returns the number of rows
// rewritten. A bad literal fails with ParseError at index 1 before anything
// changes.
//
// When the target is the primary key column the pass runs speculatively:
// rows are rewritten first, then the column is scanned for duplicates, and
// on any collision the table is restored from a pre-pass snapshot and the
// call fails with DuplicatePrimaryKeyError. Multiple rows may be rewritten
// in one pass, so the collision is only knowable afterward.
func (t *Table) UpdateWhere(name, literal string, cond Condition) (int, error) {
	snapshot := t.Copy()

	idx := t.columnIndex(name)
	if idx < 0 {
		return 0, &NonExistingColumnError{Name: name}
	}
	v, err := parseUpdateValue(literal, t.columns[idx].DataType, 1)
	if err != nil {
		return 0, err
	}

	// Evaluate against a fixed view of the columns so rows already
	// rewritten in this pass cannot change later decisions.
	view := snapshot.columns

	changed := 0
	for i := range t.columns[idx].Data {
		ok, err := evaluate(cond, view, i)
		if err != nil {
			t.columns = snapshot.columns
			return 0, err
		}
		if ok {
			t.columns[idx].Data[i] = v
			changed++
		}
	}

	if t.columns[idx].PrimaryKey {
		if dup, found := firstDuplicate(t.columns[idx].Data); found {
			t.columns = snapshot.columns
			return 0, &DuplicatePrimaryKeyError{Value: dup}
		}
	}
	return changed, nil
}

// ReplaceValue rewrites every occurrence of from in the named column to to
// and returns how many cells changed. The database layer drives cascading
// primary-key rewrites through this; no primary-key or foreign-key checks
// happen here.
func (t *Table) ReplaceValue(name string, from, to column.Value) (int, error) {
	idx := t.columnIndex(name)
	if idx < 0 {
		return 0, &NonExistingColumnError{Name: name}
	}
	changed := 0
	for i, v := range t.columns[idx].Data {
		if v.Equal(from) {
			t.columns[idx].Data[i] = to
			changed++
		}
	}
	return changed, nil
}

func firstDuplicate(values []column.Value) (column.Value, bool) {
	for i := range values {
		for j := i + 1; j < len(values); j++ {
			if values[i].Equal(values[j]) {
				return values[i], true
			}
		}
	}
	return column.Value{}, false
}
