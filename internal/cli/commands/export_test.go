package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapstore/internal/cli/testutil"
	"github.com/leapstack-labs/leapstore/pkg/tableio"
)

func TestExportCommand(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	setProjectEnv(t, dir)

	path := filepath.Join(dir, "users_export.csv")

	cmd := NewExportCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"users", path})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "id,name", lines[0])
	assert.Equal(t, "Integer,Text", lines[1])
	assert.Equal(t, "prim_key,nt_prim_key", lines[2])
	assert.Contains(t, lines[3:], "1,Alice")

	got := out.String()
	assert.Contains(t, got, "users")
	assert.Contains(t, got, "**Rows:** 2")
}

func TestExportCommandUnknownTable(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	setProjectEnv(t, dir)

	cmd := NewExportCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"missing", filepath.Join(dir, "out.csv")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table not found")
}

func TestExportCommandBadFormat(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	setProjectEnv(t, dir)

	cmd := NewExportCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"users", filepath.Join(dir, "out.csv"), "--format", "parquet"})

	err := cmd.Execute()
	require.Error(t, err)
	var formatErr *tableio.InvalidFormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestImportCommandRoundTrip(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	setProjectEnv(t, dir)

	path := filepath.Join(dir, "users_export.csv")

	export := NewExportCommand()
	export.SetOut(&bytes.Buffer{})
	export.SetErr(&bytes.Buffer{})
	export.SetArgs([]string{"users", path})
	require.NoError(t, export.Execute())

	imp := NewImportCommand()
	var out bytes.Buffer
	imp.SetOut(&out)
	imp.SetErr(&bytes.Buffer{})
	imp.SetArgs([]string{"people", path})
	require.NoError(t, imp.Execute())

	got := out.String()
	assert.Contains(t, got, "people")
	assert.Contains(t, got, "**Rows:** 2")
}

func TestImportCommandWritesSeed(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	setProjectEnv(t, dir)

	path := filepath.Join(dir, "users_export.csv")

	export := NewExportCommand()
	export.SetOut(&bytes.Buffer{})
	export.SetErr(&bytes.Buffer{})
	export.SetArgs([]string{"users", path})
	require.NoError(t, export.Execute())

	imp := NewImportCommand()
	imp.SetOut(&bytes.Buffer{})
	imp.SetErr(&bytes.Buffer{})
	imp.SetArgs([]string{"people", path, "--seed"})
	require.NoError(t, imp.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "seeds", "people.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "id,name", lines[0])
	assert.Len(t, lines, 3)
}

func TestImportCommandBadFile(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	setProjectEnv(t, dir)

	bad := filepath.Join(dir, "bad.csv")
	testutil.WriteFile(t, bad, "only,one,line\n")

	imp := NewImportCommand()
	imp.SetOut(&bytes.Buffer{})
	imp.SetErr(&bytes.Buffer{})
	imp.SetArgs([]string{"bad", bad})

	err := imp.Execute()
	require.Error(t, err)
	var formatErr *tableio.InvalidFormatError
	assert.ErrorAs(t, err, &formatErr)
}
