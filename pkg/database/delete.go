package database

import (
	"github.com/leapstack-labs/leapstore/pkg/column"
	"github.com/leapstack-labs/leapstore/pkg/table"
)

// DeleteWhere removes the rows satisfying cond from the named table and
// returns how many it removed there. When the table has a primary key, the
// deleted key values propagate: every referencing table drops its rows
// holding those values, transitively through chained references. A table
// without a primary key cannot be referenced, so it only deletes locally.
//
// Cascades are not transactional across tables; a failure partway leaves
// earlier deletions in place.
func (db *Database) DeleteWhere(tableName string, cond table.Condition) (int, error) {
	t, ok := db.tables[tableName]
	if !ok {
		return 0, &TableNotFoundError{Name: tableName}
	}

	pkName, hasPK := t.PrimaryKey()
	var deleted []column.Value
	if hasPK {
		matched, err := t.Filter(cond)
		if err != nil {
			return 0, err
		}
		pkCol, _ := matched.Column(pkName)
		deleted = pkCol.Data
	}

	n, err := t.DeleteWhere(cond)
	if err != nil {
		return 0, err
	}

	if hasPK && len(deleted) > 0 {
		if err := db.cascadeDelete(t, deleted); err != nil {
			return n, err
		}
	}
	return n, nil
}

// cascadeDelete removes rows referencing any of the deleted key values. For
// each referencing table it first collects that table's own primary keys
// among the doomed rows, deletes, then recurses with the collected keys.
func (db *Database) cascadeDelete(t *table.Table, deleted []column.Value) error {
	for _, ref := range t.References() {
		refT, ok := db.tables[ref.Table]
		if !ok {
			return &TableNotFoundError{Name: ref.Table}
		}

		refPKName, refHasPK := refT.PrimaryKey()
		var next []column.Value
		if refHasPK {
			fkCol, ok := refT.Column(ref.Column)
			if !ok {
				return &table.NonExistingColumnError{Name: ref.Column}
			}
			pkCol, _ := refT.Column(refPKName)
			for i, v := range fkCol.Data {
				if valueIn(v, deleted) {
					next = append(next, pkCol.Data[i])
				}
			}
		}

		if _, err := refT.DeleteValueIn(ref.Column, deleted); err != nil {
			return err
		}
		if refHasPK && len(next) > 0 {
			if err := db.cascadeDelete(refT, next); err != nil {
				return err
			}
		}
	}
	return nil
}
