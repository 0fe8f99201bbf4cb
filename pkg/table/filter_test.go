package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapstore/pkg/column"
)

func TestFilter(t *testing.T) {
	tbl := newUsersTable(t)

	out, err := tbl.Filter(Cmp("age", ">=", "30"))
	require.NoError(t, err)
	assert.Equal(t, 2, out.RowCount())
	assert.Equal(t, 3, tbl.RowCount(), "filtering must not touch the source")

	name, _ := out.Column("name")
	v, _ := name.Value(0)
	assert.Equal(t, column.NewText("Alice"), v, "row order is preserved")
	v, _ = name.Value(1)
	assert.Equal(t, column.NewText("Charlie"), v)
}

func TestFilterViewIsDetached(t *testing.T) {
	tbl := newUsersTable(t)

	out, err := tbl.Filter(Cmp("id", "=", "1"))
	require.NoError(t, err)
	_, err = out.UpdateColumn("age", "99")
	require.NoError(t, err)

	age, _ := tbl.Column("age")
	v, _ := age.Value(0)
	assert.Equal(t, column.NewInteger(30), v, "mutating the view must not affect the source")
}

func TestFilterConditionError(t *testing.T) {
	tbl := newUsersTable(t)

	_, err := tbl.Filter(Cmp("age", "<>", "30"))
	var opErr *InvalidOperatorError
	require.ErrorAs(t, err, &opErr)
}

func TestProject(t *testing.T) {
	tbl := newUsersTable(t)

	out, err := tbl.Project("name", "id")
	require.NoError(t, err)

	names := out.ColumnNames()
	assert.Equal(t, []string{"name", "id"}, names, "columns come back in requested order")
	assert.Equal(t, 3, out.RowCount())

	pk, ok := out.PrimaryKey()
	assert.True(t, ok)
	assert.Equal(t, "id", pk, "a projected primary key column keeps its role")
}

func TestProjectEmptyMeansAll(t *testing.T) {
	tbl := newUsersTable(t)

	out, err := tbl.Project()
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "age", "score"}, out.ColumnNames())
	assert.Equal(t, 3, out.RowCount())
}

func TestProjectNonExistingColumns(t *testing.T) {
	tbl := newUsersTable(t)

	_, err := tbl.Project("name", "ghost", "phantom")
	var missingErr *NonExistingColumnsError
	require.ErrorAs(t, err, &missingErr)
	assert.ElementsMatch(t, []string{"ghost", "phantom"}, missingErr.Names)
}

func TestFilterProject(t *testing.T) {
	tbl := newUsersTable(t)

	cond := AndCond(Cmp("age", ">", "24"), Cmp("score", ">=", "85.0"))
	out, err := tbl.FilterProject(cond, "name", "score")
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "score"}, out.ColumnNames())
	assert.Equal(t, 2, out.RowCount())

	name, _ := out.Column("name")
	v, _ := name.Value(1)
	assert.Equal(t, column.NewText("Bob"), v)
}

func TestFilterProjectValidatesAgainstSource(t *testing.T) {
	tbl := newUsersTable(t)

	_, err := tbl.FilterProject(Cmp("id", "=", "1"), "ghost")
	var missingErr *NonExistingColumnsError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []string{"ghost"}, missingErr.Names)
}
