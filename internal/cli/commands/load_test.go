package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapstore/internal/cli/config"
	"github.com/leapstack-labs/leapstore/internal/cli/testutil"
)

// setProjectEnv points command configuration at a test project directory.
// Commands fall back to LEAPSTORE_ environment variables when no config
// has been loaded through the root command.
func setProjectEnv(t *testing.T, dir string) {
	t.Helper()
	config.ResetConfig()
	t.Setenv("LEAPSTORE_DATABASE_NAME", "test")
	t.Setenv("LEAPSTORE_SCHEMA_PATH", filepath.Join(dir, "leapstore.schema.yaml"))
	t.Setenv("LEAPSTORE_SEEDS_DIR", filepath.Join(dir, "seeds"))
	t.Setenv("LEAPSTORE_STATE_PATH", filepath.Join(dir, ".leapstore", "history.db"))
	t.Setenv("LEAPSTORE_OUTPUT", "markdown")
}

func TestLoadCommand(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	setProjectEnv(t, dir)

	cmd := NewLoadCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	got := out.String()
	assert.Contains(t, got, "Database Loaded")
	assert.Contains(t, got, "users")
	assert.Contains(t, got, "orders")
	assert.Contains(t, got, "**Total Tables:** 2")
	assert.Contains(t, got, "**Total Rows:** 4")
	testutil.AssertNoANSI(t, got)
	testutil.AssertValidMarkdown(t, got)
}

func TestLoadCommandJSON(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	setProjectEnv(t, dir)
	t.Setenv("LEAPSTORE_OUTPUT", "json")

	cmd := NewLoadCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"total_tables": 2`)
	assert.Contains(t, out.String(), `"total_rows": 4`)
}

func TestLoadCommandMissingSchema(t *testing.T) {
	dir := t.TempDir()
	setProjectEnv(t, dir)

	cmd := NewLoadCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file does not exist")
}

func TestLoadCommandBadSeed(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	// A row that repeats primary key 1 must fail the load.
	testutil.WriteFile(t, filepath.Join(dir, "seeds", "users.csv"),
		"id,name\n1,Alice\n1,Bob\n")
	setProjectEnv(t, dir)

	cmd := NewLoadCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "users.csv")
}
