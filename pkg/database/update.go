package database

import (
	"github.com/leapstack-labs/leapstore/pkg/column"
	"github.com/leapstack-labs/leapstore/pkg/table"
)

// UpdateColumn overwrites every row of one column after validating the new
// value against the column's foreign key, if any. The primary key column is
// refused by the table layer, so no cascade can arise here.
func (db *Database) UpdateColumn(tableName, columnName, literal string) (int, error) {
	t, ok := db.tables[tableName]
	if !ok {
		return 0, &TableNotFoundError{Name: tableName}
	}
	col, ok := t.Column(columnName)
	if !ok {
		return 0, &table.NonExistingColumnError{Name: columnName}
	}
	if col.ForeignKey != nil {
		if err := db.checkForeignKey(&col, literal, 0); err != nil {
			return 0, err
		}
	}
	return t.UpdateColumn(columnName, literal)
}

// UpdateWhere rewrites the named column on rows satisfying cond, validating
// foreign keys first. When the target is the table's primary key the update
// must resolve to at most one row: assigning one new value to several rows
// is itself a collision, rejected before anything mutates. If the single
// key value actually changed, the change is rewritten into every
// referencing column, recursing wherever that column is its own table's
// primary key.
//
// A cascade failure partway through leaves earlier rewrites in place;
// cascades are not transactional across tables.
func (db *Database) UpdateWhere(tableName, columnName, literal string, cond table.Condition) (int, error) {
	t, ok := db.tables[tableName]
	if !ok {
		return 0, &TableNotFoundError{Name: tableName}
	}
	col, ok := t.Column(columnName)
	if !ok {
		return 0, &table.NonExistingColumnError{Name: columnName}
	}
	if col.ForeignKey != nil {
		if err := db.checkForeignKey(&col, literal, 1); err != nil {
			return 0, err
		}
	}

	pkName, hasPK := t.PrimaryKey()
	isPK := hasPK && pkName == columnName

	var before []column.Value
	if isPK {
		matched, err := t.Filter(cond)
		if err != nil {
			return 0, err
		}
		if matched.RowCount() > 1 {
			v, perr := column.Parse(literal, col.DataType)
			if perr != nil {
				v = column.Null()
			}
			return 0, &table.DuplicatePrimaryKeyError{Value: v}
		}
		pkCol, _ := t.Column(pkName)
		before = pkCol.Data
	}

	n, err := t.UpdateWhere(columnName, literal, cond)
	if err != nil {
		return 0, err
	}

	if isPK {
		pkCol, _ := t.Column(pkName)
		oldKey, newKey, changed := changedValue(before, pkCol.Data)
		if changed {
			if err := db.cascadeUpdate(t, oldKey, newKey); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// changedValue diffs the pre- and post-update key sets. At most one row was
// rewritten, so each side of the difference has at most one element; both
// present means the key actually changed.
func changedValue(before, after []column.Value) (column.Value, column.Value, bool) {
	oldKey, okOld := firstNotIn(before, after)
	newKey, okNew := firstNotIn(after, before)
	return oldKey, newKey, okOld && okNew
}

func firstNotIn(values, in []column.Value) (column.Value, bool) {
	for _, v := range values {
		if !valueIn(v, in) {
			return v, true
		}
	}
	return column.Value{}, false
}

func valueIn(v column.Value, values []column.Value) bool {
	for _, have := range values {
		if have.Equal(v) {
			return true
		}
	}
	return false
}

// cascadeUpdate rewrites oldKey to newKey in every column referencing t.
// When a referencing column is its own table's primary key, the rewrite
// there is a key change too: collisions with an existing key abort, and the
// change recurses into that table's dependents.
func (db *Database) cascadeUpdate(t *table.Table, oldKey, newKey column.Value) error {
	for _, ref := range t.References() {
		refT, ok := db.tables[ref.Table]
		if !ok {
			return &TableNotFoundError{Name: ref.Table}
		}

		refPK, refHasPK := refT.PrimaryKey()
		refIsPK := refHasPK && refPK == ref.Column
		if refIsPK {
			hasOld, err := refT.ContainsValue(ref.Column, oldKey)
			if err != nil {
				return err
			}
			if hasOld {
				hasNew, err := refT.ContainsValue(ref.Column, newKey)
				if err != nil {
					return err
				}
				if hasNew {
					return &table.DuplicatePrimaryKeyError{Value: newKey}
				}
			}
		}

		changed, err := refT.ReplaceValue(ref.Column, oldKey, newKey)
		if err != nil {
			return err
		}
		if refIsPK && changed > 0 {
			if err := db.cascadeUpdate(refT, oldKey, newKey); err != nil {
				return err
			}
		}
	}
	return nil
}
