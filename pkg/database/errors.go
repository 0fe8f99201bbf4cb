package database

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapstore/pkg/column"
)

// TableAlreadyExistsError reports a create for a name already registered.
type TableAlreadyExistsError struct {
	Name string
}

func (e *TableAlreadyExistsError) Error() string {
	return fmt.Sprintf("table %q already exists", e.Name)
}

// TableNotFoundError reports an operation against an unknown table.
type TableNotFoundError struct {
	Name string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %q not found", e.Name)
}

// ReferencedTableNotFoundError reports a foreign key naming a table the
// database does not have.
type ReferencedTableNotFoundError struct {
	Table string
}

func (e *ReferencedTableNotFoundError) Error() string {
	return fmt.Sprintf("referenced table %q not found", e.Table)
}

// ReferencedColumnNotFoundError reports a foreign key naming a column its
// referenced table does not have.
type ReferencedColumnNotFoundError struct {
	Table  string
	Column string
}

func (e *ReferencedColumnNotFoundError) Error() string {
	return fmt.Sprintf("referenced column %q not found in table %q", e.Column, e.Table)
}

// ReferencedColumnNotPrimaryKeyError reports a foreign key targeting a
// column that is not its table's primary key. Cascading requires a
// well-defined one-to-one mapping from old to new key values, which only a
// primary key target provides.
type ReferencedColumnNotPrimaryKeyError struct {
	Table  string
	Column string
}

func (e *ReferencedColumnNotPrimaryKeyError) Error() string {
	return fmt.Sprintf("referenced column %q is not the primary key of table %q", e.Column, e.Table)
}

// NullForeignKeyError reports a write that would store null in a foreign-key
// column.
type NullForeignKeyError struct {
	Column string
}

func (e *NullForeignKeyError) Error() string {
	return fmt.Sprintf("foreign key column %q cannot be null", e.Column)
}

// ForeignKeyViolationError reports a foreign-key value with no matching row
// in the referenced table.
type ForeignKeyViolationError struct {
	Value          column.Value
	Column         string
	ReferenceTable string
}

func (e *ForeignKeyViolationError) Error() string {
	return fmt.Sprintf("foreign key value %s in column %q has no match in table %q",
		e.Value, e.Column, e.ReferenceTable)
}

// MissingForeignKeyColumnsError reports a sparse insert that omitted one or
// more foreign-key columns. A defaulted null would silently violate
// integrity, so the omission is rejected up front.
type MissingForeignKeyColumnsError struct {
	Names []string
}

func (e *MissingForeignKeyColumnsError) Error() string {
	return fmt.Sprintf("foreign key columns must be provided: %s", strings.Join(e.Names, ", "))
}
