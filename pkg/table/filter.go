package table

import (
	"github.com/leapstack-labs/leapstore/pkg/column"
)

// Filter returns a detached copy of the table holding only the rows that
// satisfy cond, in their original order.
func (t *Table) Filter(cond Condition) (*Table, error) {
	matched, err := t.matches(cond)
	if err != nil {
		return nil, err
	}
	out := t.viewCopy()
	for c := range out.columns {
		kept := make([]column.Value, 0, len(matched))
		for i, v := range t.columns[c].Data {
			if matched[i] {
				kept = append(kept, v)
			}
		}
		out.columns[c].Data = kept
	}
	return out, nil
}

// Project returns a detached copy holding only the named columns, in the
// requested order. An empty name list means all columns. Names the table
// does not have fail with NonExistingColumnsError listing every one of them.
func (t *Table) Project(names ...string) (*Table, error) {
	if len(names) == 0 {
		return t.viewCopyAll(), nil
	}
	if err := t.checkNamesExist(names); err != nil {
		return nil, err
	}
	out := &Table{name: t.name}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		idx := t.columnIndex(n)
		out.columns = append(out.columns, t.columns[idx].Clone())
		if t.columns[idx].PrimaryKey {
			out.primaryKey = n
		}
	}
	return out, nil
}

// FilterProject combines Filter and Project: rows satisfying cond, columns
// as requested.
func (t *Table) FilterProject(cond Condition, names ...string) (*Table, error) {
	filtered, err := t.Filter(cond)
	if err != nil {
		return nil, err
	}
	// Validate against the source table so projection errors name columns
	// of the original, not the view.
	if err := t.checkNamesExist(names); err != nil {
		return nil, err
	}
	return filtered.Project(names...)
}

func (t *Table) checkNamesExist(names []string) error {
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
	return nil
}

// viewCopy duplicates table identity and column metadata without data;
// viewCopyAll also copies the data. Views never carry back-references; they
// are detached snapshots, not registered relations.
func (t *Table) viewCopy() *Table {
	out := &Table{name: t.name, primaryKey: t.primaryKey, columns: make([]column.Column, len(t.columns))}
	for i := range t.columns {
		c := t.columns[i].Clone()
		c.Data = nil
		out.columns[i] = c
	}
	return out
}

func (t *Table) viewCopyAll() *Table {
	out := t.viewCopy()
	for i := range t.columns {
		out.columns[i].Data = make([]column.Value, len(t.columns[i].Data))
		copy(out.columns[i].Data, t.columns[i].Data)
	}
	return out
}
