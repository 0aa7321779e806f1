package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STORAGE_BACKEND", "json")
	t.Setenv("INVENTORY_FILE", filepath.Join(dir, "inventory.json"))
	t.Setenv("INVENTORY_LOG_FILE", filepath.Join(dir, "inventory.log"))
	t.Setenv("LOW_STOCK_THRESHOLD", "")
	t.Setenv("LOG_CONSOLE", "")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootRunsDemo(t *testing.T) {
	dir := setupEnv(t)

	out, err := execute(t)
	require.NoError(t, err)

	assert.Equal(t, "Apple stock: 7\nLow items: [banana]\nItems Report\napple -> 7\nbanana -> 2\n", out)

	data, err := os.ReadFile(filepath.Join(dir, "inventory.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"apple\": 7,\n    \"banana\": 2\n}", string(data))

	logData, err := os.ReadFile(filepath.Join(dir, "inventory.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "tried to remove non-existent item")
}

func TestRootFailsWhenSaveFails(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("INVENTORY_FILE", filepath.Join(dir, "missing", "inventory.json"))

	_, err := execute(t)
	assert.Error(t, err)
}

func TestExecPersistsChanges(t *testing.T) {
	dir := setupEnv(t)

	out, err := execute(t, "exec", "add", "apple", "3")
	require.NoError(t, err)
	assert.Equal(t, "Added 3 of apple. Now 3 in stock.\n", out)

	out, err = execute(t, "exec", "qty", "apple")
	require.NoError(t, err)
	assert.Equal(t, "apple stock: 3\n", out)

	_, err = execute(t, "exec", "remove", "pear", "1")
	assert.Error(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "inventory.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"apple\": 3\n}", string(data))
}
