package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mamadbah2/inventory/internal/domain/models"
)

func newRepo(t *testing.T, name string) (*Repository, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewRepository(filepath.Join(t.TempDir(), name), zap.New(core)), logs
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, logs := newRepo(t, "inventory.json")
	orig := models.Snapshot{Items: []models.StockItem{
		{Name: "apple", Quantity: 7},
		{Name: "banana", Quantity: 2},
		{Name: "Grüne Äpfel", Quantity: 12},
	}}

	require.NoError(t, repo.Save(ctx, orig))
	assert.Equal(t, 1, logs.FilterMessage("data saved successfully").Len())

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, orig.ToMap(), loaded.ToMap())
	assert.Equal(t, orig.Items, loaded.Items)
}

func TestSaveWritesFourSpaceIndentAndOverwrites(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t, "inventory.json")

	require.NoError(t, repo.Save(ctx, models.Snapshot{Items: []models.StockItem{{Name: "old", Quantity: 1}, {Name: "older", Quantity: 2}}}))
	require.NoError(t, repo.Save(ctx, models.Snapshot{Items: []models.StockItem{{Name: "apple", Quantity: 7}, {Name: "banana", Quantity: 2}}}))

	data, err := os.ReadFile(repo.Path())
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"apple\": 7,\n    \"banana\": 2\n}", string(data))
}

func TestSaveEmptySnapshot(t *testing.T) {
	repo, _ := newRepo(t, "inventory.json")
	require.NoError(t, repo.Save(context.Background(), models.Snapshot{}))

	data, err := os.ReadFile(repo.Path())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	repo, logs := newRepo(t, "nope.json")

	snap, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Zero(t, snap.Len())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestLoadMalformedContentReturnsEmpty(t *testing.T) {
	tests := map[string]string{
		"truncated":       `{"apple": 7, "banana"`,
		"array":           `["apple", "banana"]`,
		"scalar":          `42`,
		"empty":           ``,
		"string quantity": `{"apple": "7"}`,
		"float quantity":  `{"apple": 1.5}`,
		"nested":          `{"apple": {"qty": 1}}`,
		"trailing data":   `{"apple": 1} {"banana": 2}`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			repo, logs := newRepo(t, "inventory.json")
			require.NoError(t, os.WriteFile(repo.Path(), []byte(content), 0o644))

			snap, err := repo.Load(context.Background())

			require.NoError(t, err)
			assert.Zero(t, snap.Len())
			assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
		})
	}
}

func TestLoadAcceptsAnyFormatting(t *testing.T) {
	repo, _ := newRepo(t, "inventory.json")
	content := "  {\"banana\":2,\n\t\"apple\" :   7 , \"apple\": 9}\n\n"
	require.NoError(t, os.WriteFile(repo.Path(), []byte(content), 0o644))

	snap, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.StockItem{{Name: "banana", Quantity: 2}, {Name: "apple", Quantity: 9}}, snap.Items)
}

func TestLoadPropagatesOtherIOErrors(t *testing.T) {
	dir := t.TempDir()
	// Reading a directory fails with something other than "not found".
	repo := NewRepository(dir, nil)

	_, err := repo.Load(context.Background())
	assert.Error(t, err)
}

func TestSavePropagatesIOErrors(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "missing-dir", "inventory.json"), nil)

	err := repo.Save(context.Background(), models.Snapshot{Items: []models.StockItem{{Name: "apple", Quantity: 1}}})
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, DefaultPath, NewRepository("", nil).Path())
}
