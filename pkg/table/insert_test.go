package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapstore/pkg/column"
)

// columnLengths captures every column's length so atomicity checks can
// assert nothing moved.
func columnLengths(t *Table) []int {
	out := make([]int, len(t.columns))
	for i := range t.columns {
		out[i] = t.columns[i].Len()
	}
	return out
}

func TestInsert(t *testing.T) {
	tbl := newUsersTable(t)
	require.Equal(t, 3, tbl.RowCount())

	err := tbl.Insert([]string{"4", "Dana", "28", "88.25"})
	require.NoError(t, err)
	assert.Equal(t, 4, tbl.RowCount())

	name, _ := tbl.Column("name")
	v, ok := name.Value(3)
	require.True(t, ok)
	assert.Equal(t, column.NewText("Dana"), v)
}

func TestInsertNullLiteral(t *testing.T) {
	tbl := newUsersTable(t)

	require.NoError(t, tbl.Insert([]string{"4", "NULL", "null", "NuLl"}))

	for _, colName := range []string{"name", "age", "score"} {
		c, _ := tbl.Column(colName)
		v, _ := c.Value(3)
		assert.True(t, v.IsNull(), "column %s should hold null", colName)
	}
}

func TestInsertMismatchedColumnCount(t *testing.T) {
	tbl := newUsersTable(t)
	before := columnLengths(tbl)

	err := tbl.Insert([]string{"4", "Dana"})
	var countErr *MismatchedColumnCountError
	require.ErrorAs(t, err, &countErr)
	assert.Equal(t, 4, countErr.Expected)
	assert.Equal(t, 2, countErr.Actual)
	assert.Equal(t, before, columnLengths(tbl), "failed insert must not change any column")
}

func TestInsertParseError(t *testing.T) {
	tbl := newUsersTable(t)
	before := columnLengths(tbl)

	err := tbl.Insert([]string{"4", "Dana", "notanumber", "88.0"})
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Index, "index identifies the failing position in the row")
	assert.Equal(t, "notanumber", parseErr.Literal)
	assert.Equal(t, before, columnLengths(tbl))
}

func TestInsertPrimaryKeyChecks(t *testing.T) {
	tbl := newUsersTable(t)
	before := columnLengths(tbl)

	err := tbl.Insert([]string{"1", "Carl", "40", "70.0"})
	var dupErr *DuplicatePrimaryKeyError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, column.NewInteger(1), dupErr.Value)
	assert.Equal(t, before, columnLengths(tbl))

	err = tbl.Insert([]string{"null", "Dan", "22", "60.0"})
	require.ErrorIs(t, err, ErrNullPrimaryKey)
	assert.Equal(t, before, columnLengths(tbl))
}

func TestInsertWithColumns(t *testing.T) {
	tbl := newUsersTable(t)

	err := tbl.InsertWithColumns([]string{"id", "name"}, []string{"4", "Dana"})
	require.NoError(t, err)
	require.Equal(t, 4, tbl.RowCount())

	age, _ := tbl.Column("age")
	v, _ := age.Value(3)
	assert.True(t, v.IsNull(), "omitted columns default to null")

	score, _ := tbl.Column("score")
	v, _ = score.Value(3)
	assert.True(t, v.IsNull())
}

func TestInsertWithColumnsListsAllMissing(t *testing.T) {
	tbl := newUsersTable(t)

	err := tbl.InsertWithColumns([]string{"id", "ghost", "phantom"}, []string{"4", "x", "y"})
	var missingErr *NonExistingColumnsError
	require.ErrorAs(t, err, &missingErr)
	assert.ElementsMatch(t, []string{"ghost", "phantom"}, missingErr.Names)
}

func TestInsertWithColumnsMismatchedCount(t *testing.T) {
	tbl := newUsersTable(t)

	err := tbl.InsertWithColumns([]string{"id", "name"}, []string{"4"})
	var countErr *MismatchedColumnCountError
	require.ErrorAs(t, err, &countErr)
	assert.Equal(t, 3, tbl.RowCount())
}

func TestInsertWithColumnsRequiresPrimaryKey(t *testing.T) {
	tbl := newUsersTable(t)

	err := tbl.InsertWithColumns([]string{"name", "age"}, []string{"Dana", "28"})
	var pkErr *PrimaryKeyNotProvidedError
	require.ErrorAs(t, err, &pkErr)
	assert.Equal(t, "id", pkErr.Column)

	// A table without a primary key takes sparse rows freely.
	plain, err := New("notes", []column.Column{
		column.New("body", column.Text, false, nil),
		column.New("stars", column.Integer, false, nil),
	})
	require.NoError(t, err)
	require.NoError(t, plain.InsertWithColumns([]string{"body"}, []string{"hello"}))
	assert.Equal(t, 1, plain.RowCount())
}

func TestInsertWithColumnsDuplicatePrimaryKey(t *testing.T) {
	tbl := newUsersTable(t)
	before := columnLengths(tbl)

	err := tbl.InsertWithColumns([]string{"id"}, []string{"2"})
	var dupErr *DuplicatePrimaryKeyError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, before, columnLengths(tbl))

	err = tbl.InsertWithColumns([]string{"id", "name"}, []string{"null", "Dan"})
	assert.True(t, errors.Is(err, ErrNullPrimaryKey))
	assert.Equal(t, before, columnLengths(tbl))
}

func TestInsertWithColumnsParseErrorUsesColumnIndex(t *testing.T) {
	tbl := newUsersTable(t)

	// "age" is the third table column (index 2), even though it is the
	// second provided name.
	err := tbl.InsertWithColumns([]string{"id", "age"}, []string{"4", "old"})
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Index)
	assert.Equal(t, "old", parseErr.Literal)
}
