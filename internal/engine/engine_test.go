package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapstore/pkg/database"
)

const testSchema = `tables:
  - name: users
    columns:
      - name: id
        type: Integer
        primary_key: true
      - name: name
        type: Text
  - name: orders
    columns:
      - name: id
        type: Integer
        primary_key: true
      - name: user_id
        type: Integer
        references: users.id
      - name: amount
        type: Float
`

// newProject writes a schema document and seed files into a temp dir and
// returns an engine config pointing at them.
func newProject(t *testing.T) Config {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "seeds"), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "leapstore.schema.yaml"),
		[]byte(testSchema), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seeds", "users.csv"),
		[]byte("id,name\n1,Alice\n2,Bob\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seeds", "orders.csv"),
		[]byte("id,user_id,amount\n10,1,19.99\n11,2,5.50\n"), 0o644))

	return Config{
		DatabaseName: "test",
		SchemaPath:   filepath.Join(dir, "leapstore.schema.yaml"),
		SeedsDir:     filepath.Join(dir, "seeds"),
		StatePath:    filepath.Join(dir, ".leapstore", "history.db"),
	}
}

func newBuiltEngine(t *testing.T) *Engine {
	t.Helper()

	eng, err := New(newProject(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })

	require.NoError(t, eng.Build(context.Background()))
	return eng
}

func rowCount(t *testing.T, db *database.Database, name string) int {
	t.Helper()
	tbl, ok := db.Table(name)
	require.True(t, ok, "table %s missing", name)
	return tbl.RowCount()
}

func TestBuildLoadsSchemaAndSeeds(t *testing.T) {
	eng := newBuiltEngine(t)

	db := eng.DB()
	assert.Equal(t, []string{"orders", "users"}, db.TableNames())
	assert.Equal(t, 2, rowCount(t, db, "users"))
	assert.Equal(t, 2, rowCount(t, db, "orders"))

	// The foreign key must be live: back-references recorded on the parent.
	users, ok := db.Table("users")
	require.True(t, ok)
	require.Len(t, users.References(), 1)
	assert.Equal(t, "orders", users.References()[0].Table)
	assert.Equal(t, "user_id", users.References()[0].Column)
}

func TestSeedOrderFollowsSchemaNotFileNames(t *testing.T) {
	// orders.csv sorts before users.csv, but the schema defines users
	// first; inserts must follow the schema so the FK parent exists.
	eng := newBuiltEngine(t)
	assert.Equal(t, 2, rowCount(t, eng.DB(), "orders"))
}

func TestBuildMissingSchemaDocument(t *testing.T) {
	cfg := newProject(t)
	cfg.SchemaPath = filepath.Join(t.TempDir(), "absent.yaml")

	eng, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = eng.Close() }()

	err = eng.Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml")
}

func TestBuildMissingSeedsDirIsFine(t *testing.T) {
	cfg := newProject(t)
	cfg.SeedsDir = filepath.Join(t.TempDir(), "no-seeds-here")

	eng, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = eng.Close() }()

	require.NoError(t, eng.Build(context.Background()))
	assert.Equal(t, 0, rowCount(t, eng.DB(), "users"))
}

func TestLoadSeedsUnknownTable(t *testing.T) {
	cfg := newProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.SeedsDir, "ghost.csv"),
		[]byte("id\n1\n"), 0o644))

	eng, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = eng.Close() }()

	err = eng.Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost.csv has no table in the schema")
}

func TestLoadSeedsForeignKeyViolation(t *testing.T) {
	cfg := newProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.SeedsDir, "orders.csv"),
		[]byte("id,user_id,amount\n10,99,19.99\n"), 0o644))

	eng, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = eng.Close() }()

	err = eng.Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orders.csv row 1")

	var fkErr *database.ForeignKeyViolationError
	assert.True(t, errors.As(err, &fkErr))
}

func TestLoadSeedsWithoutSchema(t *testing.T) {
	eng, err := New(newProject(t))
	require.NoError(t, err)
	defer func() { _ = eng.Close() }()

	err = eng.LoadSeeds(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema not loaded")
}

func TestRecordOperation(t *testing.T) {
	eng := newBuiltEngine(t)

	eng.RecordOperation("insert", "users", 1, nil)
	entries, err := eng.StateStore().List(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "insert", entries[0].Operation)
	assert.Equal(t, "users", entries[0].TableName)
	assert.Equal(t, int64(1), entries[0].RowsAffected)
}

func TestRecordOperationAfterCloseDoesNotPanic(t *testing.T) {
	eng, err := New(newProject(t))
	require.NoError(t, err)
	require.NoError(t, eng.Close())

	// Must log and move on, not panic or error out.
	eng.RecordOperation("delete", "users", 0, nil)
}
