package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "board.db")
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  path: "+dbPath+"\n"), 0644))
	return path, dbPath
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "bulletin version "+cliVersion+"\n", out)
}

func TestHelp(t *testing.T) {
	out, err := run(t, "", "--help")
	require.NoError(t, err)
	for _, want := range []string{"serve", "db", "version"} {
		assert.Contains(t, out, want)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := run(t, "", "vanity")
	assert.Error(t, err)
}

func TestDBCommands(t *testing.T) {
	cfgPath, dbPath := writeConfig(t)

	out, err := run(t, "", "db", "init", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Database initialized successfully")
	assert.DirExists(t, dbPath)

	backupFile := filepath.Join(t.TempDir(), "board.bak")
	out, err = run(t, "", "db", "backup", backupFile, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, backupFile)
	assert.FileExists(t, backupFile)

	out, err = run(t, "n\n", "db", "clean", "--config", cfgPath)
	assert.Error(t, err)
	assert.Contains(t, out, "Operation cancelled")
	assert.DirExists(t, dbPath)

	out, err = run(t, "", "db", "restore", backupFile, "--yes", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Database restored successfully")

	out, err = run(t, "", "db", "clean", "-y", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Database cleaned successfully")
	assert.NoDirExists(t, dbPath)
}

func TestDBRestoreRequiresFile(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	_, err := run(t, "", "db", "restore", "--config", cfgPath)
	assert.Error(t, err)
}
