package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapstore/pkg/column"
	"github.com/leapstack-labs/leapstore/pkg/table"
)

// newChainDB builds a chain where the middle table's foreign-key column is
// also its primary key: users <- profiles(user_id PK) <- settings.
func newChainDB(t *testing.T) *Database {
	t.Helper()
	db := New("chain")

	require.NoError(t, db.CreateTable("users", []column.Column{
		column.New("id", column.Integer, true, nil),
		column.New("name", column.Text, false, nil),
	}))
	require.NoError(t, db.CreateTable("profiles", []column.Column{
		column.New("user_id", column.Integer, true,
			&column.ForeignKey{ReferenceTable: "users", ReferenceColumn: "id"}),
		column.New("bio", column.Text, false, nil),
	}))
	require.NoError(t, db.CreateTable("settings", []column.Column{
		column.New("id", column.Integer, true, nil),
		column.New("profile_id", column.Integer, false,
			&column.ForeignKey{ReferenceTable: "profiles", ReferenceColumn: "user_id"}),
		column.New("theme", column.Text, false, nil),
	}))

	require.NoError(t, db.Insert("users", []string{"1", "Alice"}))
	require.NoError(t, db.Insert("users", []string{"2", "Bob"}))
	require.NoError(t, db.Insert("profiles", []string{"1", "likes go"}))
	require.NoError(t, db.Insert("profiles", []string{"2", "likes sql"}))
	require.NoError(t, db.Insert("settings", []string{"100", "1", "dark"}))
	require.NoError(t, db.Insert("settings", []string{"101", "2", "light"}))
	return db
}

func intValues(t *testing.T, db *Database, tableName, columnName string) []int64 {
	t.Helper()
	tbl, ok := db.Table(tableName)
	require.True(t, ok)
	col, ok := tbl.Column(columnName)
	require.True(t, ok)
	out := make([]int64, 0, len(col.Data))
	for _, v := range col.Data {
		out = append(out, v.Int())
	}
	return out
}

func TestDeleteCascadesThroughChain(t *testing.T) {
	db := newShopDB(t)

	n, err := db.DeleteWhere("users", table.Cmp("id", "=", "1"))
	require.NoError(t, err)
	assert.Equal(t, 1, n, "count reports local deletions only")

	// Alice's orders are gone, and the items of those orders with them.
	assert.Equal(t, []int64{2, 3}, intValues(t, db, "users", "id"))
	assert.Equal(t, []int64{12}, intValues(t, db, "orders", "id"))
	assert.Equal(t, []int64{102}, intValues(t, db, "items", "id"))
}

func TestDeleteCascadesThroughPrimaryKeyLink(t *testing.T) {
	db := newChainDB(t)

	n, err := db.DeleteWhere("users", table.Cmp("id", "=", "1"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, []int64{2}, intValues(t, db, "users", "id"))
	assert.Equal(t, []int64{2}, intValues(t, db, "profiles", "user_id"))
	assert.Equal(t, []int64{101}, intValues(t, db, "settings", "id"))
}

func TestDeleteWithoutMatchesLeavesDependentsAlone(t *testing.T) {
	db := newShopDB(t)

	n, err := db.DeleteWhere("users", table.Cmp("id", "=", "42"))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 3, rowCount(t, db, "users"))
	assert.Equal(t, 3, rowCount(t, db, "orders"))
	assert.Equal(t, 3, rowCount(t, db, "items"))
}

func TestDeleteUnreferencedRowTouchesNothingElse(t *testing.T) {
	db := newShopDB(t)

	// Charlie has no orders.
	n, err := db.DeleteWhere("users", table.Cmp("id", "=", "3"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 3, rowCount(t, db, "orders"))
	assert.Equal(t, 3, rowCount(t, db, "items"))
}

func TestUpdateCascadesIntoReferencingColumn(t *testing.T) {
	db := newShopDB(t)

	n, err := db.UpdateWhere("users", "id", "9", table.Cmp("id", "=", "1"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, []int64{9, 2, 3}, intValues(t, db, "users", "id"))
	assert.Equal(t, []int64{9, 9, 2}, intValues(t, db, "orders", "user_id"))
	// Items reference order ids, which did not change.
	assert.Equal(t, []int64{10, 11, 12}, intValues(t, db, "items", "order_id"))
}

func TestUpdateCascadesThroughPrimaryKeyLink(t *testing.T) {
	db := newChainDB(t)

	n, err := db.UpdateWhere("users", "id", "9", table.Cmp("id", "=", "1"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, []int64{9, 2}, intValues(t, db, "users", "id"))
	assert.Equal(t, []int64{9, 2}, intValues(t, db, "profiles", "user_id"))
	assert.Equal(t, []int64{9, 2}, intValues(t, db, "settings", "profile_id"))
}

func TestUpdateToSameValueDoesNotCascade(t *testing.T) {
	db := newShopDB(t)

	n, err := db.UpdateWhere("users", "id", "1", table.Cmp("id", "=", "1"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, []int64{1, 2, 3}, intValues(t, db, "users", "id"))
	assert.Equal(t, []int64{1, 1, 2}, intValues(t, db, "orders", "user_id"))
}

func TestUpdateMatchingSeveralKeyRowsIsRejected(t *testing.T) {
	db := newShopDB(t)

	n, err := db.UpdateWhere("users", "id", "9", table.Cmp("id", "<", "3"))

	var dupErr *table.DuplicatePrimaryKeyError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, column.NewInteger(9), dupErr.Value)
	assert.Zero(t, n)

	// Rejected before any row changed anywhere.
	assert.Equal(t, []int64{1, 2, 3}, intValues(t, db, "users", "id"))
	assert.Equal(t, []int64{1, 1, 2}, intValues(t, db, "orders", "user_id"))
}

func TestUpdateWhereChecksForeignKey(t *testing.T) {
	db := newShopDB(t)

	_, err := db.UpdateWhere("orders", "user_id", "99", table.Cmp("id", "=", "10"))
	var fkErr *ForeignKeyViolationError
	require.ErrorAs(t, err, &fkErr)
	assert.Equal(t, []int64{1, 1, 2}, intValues(t, db, "orders", "user_id"))

	n, err := db.UpdateWhere("orders", "user_id", "3", table.Cmp("id", "=", "10"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []int64{3, 1, 2}, intValues(t, db, "orders", "user_id"))
}

func TestUpdateColumnChecksForeignKey(t *testing.T) {
	db := newShopDB(t)

	_, err := db.UpdateColumn("orders", "user_id", "99")
	var fkErr *ForeignKeyViolationError
	require.ErrorAs(t, err, &fkErr)

	_, err = db.UpdateColumn("orders", "user_id", "null")
	var nullErr *NullForeignKeyError
	require.ErrorAs(t, err, &nullErr)

	n, err := db.UpdateColumn("orders", "user_id", "2")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []int64{2, 2, 2}, intValues(t, db, "orders", "user_id"))
}

func TestUpdateColumnWithoutForeignKeyIsUnchecked(t *testing.T) {
	db := newShopDB(t)

	n, err := db.UpdateColumn("users", "name", "Anon")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCascadeIntoTableWithoutPrimaryKey(t *testing.T) {
	db := newShopDB(t)
	require.NoError(t, db.CreateTable("logs", []column.Column{
		column.New("message", column.Text, false, nil),
		column.New("user_id", column.Integer, false,
			&column.ForeignKey{ReferenceTable: "users", ReferenceColumn: "id"}),
	}))
	require.NoError(t, db.Insert("logs", []string{"login", "2"}))
	require.NoError(t, db.Insert("logs", []string{"logout", "2"}))
	require.NoError(t, db.Insert("logs", []string{"login", "3"}))

	// Rows referencing the deleted key go away; with no primary key of its
	// own the log table cannot be referenced, so the cascade stops there.
	n, err := db.DeleteWhere("users", table.Cmp("id", "=", "2"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, rowCount(t, db, "logs"))
	assert.Equal(t, []int64{3}, intValues(t, db, "logs", "user_id"))
}

func TestDeleteOnTableWithoutPrimaryKeyIsLocal(t *testing.T) {
	db := New("d")
	require.NoError(t, db.CreateTable("notes", []column.Column{
		column.New("body", column.Text, false, nil),
	}))
	require.NoError(t, db.Insert("notes", []string{"first"}))
	require.NoError(t, db.Insert("notes", []string{"second"}))

	n, err := db.DeleteWhere("notes", table.Cmp("body", "=", "first"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, rowCount(t, db, "notes"))
}
