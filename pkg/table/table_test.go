package table

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/leapstore/pkg/column"
)

// newUsersTable builds the shared fixture: users(id PK Integer, name Text,
// age Integer, score Float) with three rows.
func newUsersTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := New("users", []column.Column{
		column.New("id", column.Integer, true, nil),
		column.New("name", column.Text, false, nil),
		column.New("age", column.Integer, false, nil),
		column.New("score", column.Float, false, nil),
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	rows := [][]string{
		{"1", "Alice", "30", "85.5"},
		{"2", "Bob", "25", "92.0"},
		{"3", "Charlie", "35", "75.0"},
	}
	for _, r := range rows {
		if err := tbl.Insert(r); err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}
	}
	return tbl
}

func TestNewRejectsMultiplePrimaryKeys(t *testing.T) {
	_, err := New("bad", []column.Column{
		column.New("a", column.Integer, true, nil),
		column.New("b", column.Integer, true, nil),
	})
	if !errors.Is(err, ErrMultiplePrimaryKeys) {
		t.Fatalf("expected ErrMultiplePrimaryKeys, got %v", err)
	}
}

func TestNewCachesPrimaryKey(t *testing.T) {
	tbl := newUsersTable(t)
	pk, ok := tbl.PrimaryKey()
	if !ok || pk != "id" {
		t.Errorf("PrimaryKey() = %q, %v; want \"id\", true", pk, ok)
	}

	noPK, err := New("plain", []column.Column{column.New("x", column.Text, false, nil)})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if _, ok := noPK.PrimaryKey(); ok {
		t.Error("table without a primary key should report none")
	}
}

func TestNewClonesInputColumns(t *testing.T) {
	cols := []column.Column{column.New("id", column.Integer, true, nil)}
	cols[0].Append(column.NewInteger(1))

	tbl, err := New("t", cols)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	cols[0].Data[0] = column.NewInteger(99)

	got, _ := tbl.Column("id")
	if v, _ := got.Value(0); !v.Equal(column.NewInteger(1)) {
		t.Error("table must not alias the caller's column data")
	}
}

func TestColumnsReturnsCopies(t *testing.T) {
	tbl := newUsersTable(t)
	cols := tbl.Columns()
	cols[0].Data[0] = column.NewInteger(999)

	got, _ := tbl.Column("id")
	if v, _ := got.Value(0); !v.Equal(column.NewInteger(1)) {
		t.Error("mutating the returned columns must not affect the table")
	}
}

func TestCopyIsDeep(t *testing.T) {
	tbl := newUsersTable(t)
	tbl.AddReference("orders", "user_id")

	cp := tbl.Copy()
	if _, err := cp.UpdateColumn("age", "99"); err != nil {
		t.Fatalf("update on copy failed: %v", err)
	}

	orig, _ := tbl.Column("age")
	if v, _ := orig.Value(0); !v.Equal(column.NewInteger(30)) {
		t.Error("mutating the copy must not affect the original")
	}
	if len(cp.References()) != 1 {
		t.Errorf("copy should carry references, got %d", len(cp.References()))
	}
}

func TestRowCountAndCount(t *testing.T) {
	tbl := newUsersTable(t)
	if got := tbl.RowCount(); got != 3 {
		t.Errorf("RowCount() = %d, want 3", got)
	}

	if err := tbl.InsertWithColumns([]string{"id", "name"}, []string{"4", "Dana"}); err != nil {
		t.Fatalf("sparse insert failed: %v", err)
	}

	n, err := tbl.Count("age")
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Count(age) = %d, want 3 non-null values", n)
	}

	if _, err := tbl.Count("ghost"); err == nil {
		t.Error("Count on a missing column should fail")
	}
}

func TestContainsValue(t *testing.T) {
	tbl := newUsersTable(t)

	ok, err := tbl.ContainsValue("id", column.NewInteger(2))
	if err != nil || !ok {
		t.Errorf("ContainsValue(id, 2) = %v, %v; want true", ok, err)
	}
	ok, err = tbl.ContainsValue("id", column.NewInteger(42))
	if err != nil || ok {
		t.Errorf("ContainsValue(id, 42) = %v, %v; want false", ok, err)
	}
	if _, err := tbl.ContainsValue("ghost", column.Null()); err == nil {
		t.Error("ContainsValue on a missing column should fail")
	}
}

func TestAddReference(t *testing.T) {
	tbl := newUsersTable(t)
	tbl.AddReference("orders", "user_id")
	tbl.AddReference("sessions", "uid")

	refs := tbl.References()
	if len(refs) != 2 {
		t.Fatalf("References() returned %d entries, want 2", len(refs))
	}
	if refs[0] != (Reference{Table: "orders", Column: "user_id"}) {
		t.Errorf("unexpected first reference: %+v", refs[0])
	}

	// The returned slice is a copy.
	refs[0].Table = "mutated"
	if tbl.References()[0].Table != "orders" {
		t.Error("mutating the returned references must not affect the table")
	}
}
