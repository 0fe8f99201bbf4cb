package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapstore/pkg/column"
)

// Errors without payload.
var (
	// ErrMultiplePrimaryKeys is returned by New when more than one column is
	// flagged as the primary key.
	ErrMultiplePrimaryKeys = errors.New("table cannot have more than one primary key column")

	// ErrNullPrimaryKey is returned when an insert would store a null value
	// in the primary key column.
	ErrNullPrimaryKey = errors.New("primary key value cannot be null")
)

// MismatchedColumnCountError reports a row whose value count does not match
// the expected column count.
type MismatchedColumnCountError struct {
	Expected int
	Actual   int
}

func (e *MismatchedColumnCountError) Error() string {
	return fmt.Sprintf("mismatched column count: expected %d values, got %d", e.Expected, e.Actual)
}

// ParseError reports a literal that could not be parsed into its column's
// data type. Index identifies the failing position within the operation that
// produced it.
type ParseError struct {
	Index   int
	Literal string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse value %q at index %d", e.Literal, e.Index)
}

// NonExistingColumnError reports a reference to a column the table does not
// have.
type NonExistingColumnError struct {
	Name string
}

func (e *NonExistingColumnError) Error() string {
	return fmt.Sprintf("column %q does not exist", e.Name)
}

// NonExistingColumnsError reports every requested column name the table does
// not have.
type NonExistingColumnsError struct {
	Names []string
}

func (e *NonExistingColumnsError) Error() string {
	return fmt.Sprintf("columns do not exist: %s", strings.Join(e.Names, ", "))
}

// InvalidOperatorError reports a comparison symbol outside the supported set.
type InvalidOperatorError struct {
	Symbol string
}

func (e *InvalidOperatorError) Error() string {
	return fmt.Sprintf("invalid operator %q", e.Symbol)
}

// InvalidLogicError reports a logic token other than "and"/"or" passed to
// CombineConditions, or an empty condition list.
type InvalidLogicError struct {
	Token string
}

func (e *InvalidLogicError) Error() string {
	if e.Token == "" {
		return "invalid logic: no conditions provided"
	}
	return fmt.Sprintf("invalid logic %q: must be \"and\" or \"or\"", e.Token)
}

// DuplicatePrimaryKeyError reports a write that would duplicate an existing
// primary key value.
type DuplicatePrimaryKeyError struct {
	Value column.Value
}

func (e *DuplicatePrimaryKeyError) Error() string {
	return fmt.Sprintf("duplicate primary key value %s", e.Value)
}

// CannotBatchUpdatePrimaryKeyError reports an UpdateColumn call aimed at the
// primary key column. Collapsing every row to one key value always violates
// uniqueness, so the call is refused outright.
type CannotBatchUpdatePrimaryKeyError struct {
	Column string
}

func (e *CannotBatchUpdatePrimaryKeyError) Error() string {
	return fmt.Sprintf("cannot batch update primary key column %q", e.Column)
}

// PrimaryKeyNotProvidedError reports a sparse insert that omitted the
// primary key column.
type PrimaryKeyNotProvidedError struct {
	Column string
}

func (e *PrimaryKeyNotProvidedError) Error() string {
	return fmt.Sprintf("primary key column %q must be provided", e.Column)
}
