// Package database implements the multi-table registry: named tables with
// foreign-key validation at schema-creation and mutation time, and
// transitive cascading of primary-key updates and deletes into referencing
// tables.
//
// Tables refer to each other by name only and are looked up per call, so
// cascades are plain recursive calls over the registry. Foreign keys can
// only target tables that already exist at create time, which keeps the
// reference graph acyclic and every cascade finite.
//
// A Database is not safe for concurrent use; the embedding application
// serializes access.
package database

import (
	"sort"

	"github.com/leapstack-labs/leapstore/pkg/column"
	"github.com/leapstack-labs/leapstore/pkg/table"
)

// Database is a registry of named tables.
type Database struct {
	name   string
	tables map[string]*table.Table
}

// New returns an empty database.
func New(name string) *Database {
	return &Database{name: name, tables: make(map[string]*table.Table)}
}

// Name returns the database name.
func (db *Database) Name() string { return db.name }

// Table returns the named table, or false when absent. The returned table
// is the registered instance, not a copy; mutating it bypasses foreign-key
// validation, so callers that need integrity go through the Database
// operations.
func (db *Database) Table(name string) (*table.Table, bool) {
	t, ok := db.tables[name]
	return t, ok
}

// TableNames returns the registered table names, sorted.
func (db *Database) TableNames() []string {
	names := make([]string, 0, len(db.tables))
	for n := range db.tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// CreateTable validates and registers a new table. Every foreign key must
// name a table that already exists and target that table's primary key
// column. The single-primary-key rule is checked by table construction.
// After registration each referenced table learns the new back-reference,
// so later cascades can find their dependents.
func (db *Database) CreateTable(name string, cols []column.Column) error {
	if _, ok := db.tables[name]; ok {
		return &TableAlreadyExistsError{Name: name}
	}

	for i := range cols {
		fk := cols[i].ForeignKey
		if fk == nil {
			continue
		}
		refT, ok := db.tables[fk.ReferenceTable]
		if !ok {
			return &ReferencedTableNotFoundError{Table: fk.ReferenceTable}
		}
		if !refT.HasColumn(fk.ReferenceColumn) {
			return &ReferencedColumnNotFoundError{Table: fk.ReferenceTable, Column: fk.ReferenceColumn}
		}
		if pk, ok := refT.PrimaryKey(); !ok || pk != fk.ReferenceColumn {
			return &ReferencedColumnNotPrimaryKeyError{Table: fk.ReferenceTable, Column: fk.ReferenceColumn}
		}
	}

	t, err := table.New(name, cols)
	if err != nil {
		return err
	}
	db.tables[name] = t

	for i := range cols {
		if fk := cols[i].ForeignKey; fk != nil {
			db.tables[fk.ReferenceTable].AddReference(name, cols[i].Name)
		}
	}
	return nil
}

// checkForeignKey validates one incoming literal against its column's
// foreign key: the referenced table and column must resolve, the value must
// not be null, and it must already exist in the referenced column. The read
// happens before any mutation of the target table, so validation always
// observes pre-call state.
func (db *Database) checkForeignKey(col *column.Column, literal string, errIndex int) error {
	fk := col.ForeignKey
	refT, ok := db.tables[fk.ReferenceTable]
	if !ok {
		return &ReferencedTableNotFoundError{Table: fk.ReferenceTable}
	}
	if !refT.HasColumn(fk.ReferenceColumn) {
		return &ReferencedColumnNotFoundError{Table: fk.ReferenceTable, Column: fk.ReferenceColumn}
	}

	v, err := column.Parse(literal, col.DataType)
	if err != nil {
		return &table.ParseError{Index: errIndex, Literal: literal}
	}
	if v.IsNull() {
		return &NullForeignKeyError{Column: col.Name}
	}

	present, err := refT.ContainsValue(fk.ReferenceColumn, v)
	if err != nil {
		return err
	}
	if !present {
		return &ForeignKeyViolationError{Value: v, Column: col.Name, ReferenceTable: fk.ReferenceTable}
	}
	return nil
}
