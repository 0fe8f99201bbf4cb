package table

import (
	"github.com/leapstack-labs/leapstore/pkg/column"
)

// DeleteWhere removes every row satisfying cond and returns how many were
// removed. Matches are collected over the original index space first, then
// every column is rewritten in one stable keep-filter pass, so positions
// never shift underneath the match set.
func (t *Table) DeleteWhere(cond Condition) (int, error) {
	matched, err := t.matches(cond)
	if err != nil {
		return 0, err
	}
	if len(matched) == 0 {
		return 0, nil
	}
	t.removeRows(matched)
	return len(matched), nil
}

// DeleteValueIn removes every row whose value in the named column equals any
// of the given values. The database layer drives cascading deletes through
// this.
func (t *Table) DeleteValueIn(name string, values []column.Value) (int, error) {
	idx := t.columnIndex(name)
	if idx < 0 {
		return 0, &NonExistingColumnError{Name: name}
	}
	matched := make(map[int]bool)
	for i, have := range t.columns[idx].Data {
		for _, v := range values {
			if have.Equal(v) {
				matched[i] = true
				break
			}
		}
	}
	if len(matched) == 0 {
		return 0, nil
	}
	t.removeRows(matched)
	return len(matched), nil
}

// removeRows drops the given original-index rows from every column.
func (t *Table) removeRows(matched map[int]bool) {
	for c := range t.columns {
		kept := t.columns[c].Data[:0]
		for i, v := range t.columns[c].Data {
			if !matched[i] {
				kept = append(kept, v)
			}
		}
		t.columns[c].Data = kept
	}
}
