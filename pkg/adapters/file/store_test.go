package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/cellfill/pkg/adapters/file"
	"github.com/aretw0/cellfill/pkg/domain"
	"github.com/aretw0/cellfill/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunSequenceStoreContract(t, store)
}

func TestFileStore_WritesReadableJSON(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	snap := domain.NewSnapshot("readable")
	snap.Cells = domain.Sequence{domain.Alive, domain.Dead}
	require.NoError(t, store.Save(ctx, "readable", snap))

	data, err := os.ReadFile(filepath.Join(dir, "readable.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"alive"`)
	assert.Contains(t, string(data), `"dead"`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must be cleaned up")
}

func TestFileStore_RejectsPathIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, "", domain.NewSnapshot("")))
	assert.Error(t, store.Save(ctx, "../escape", domain.NewSnapshot("x")))
	assert.Error(t, store.Save(ctx, ".hidden", domain.NewSnapshot("x")))
	_, err := store.Load(ctx, "a/b")
	assert.Error(t, err)
}

func TestFileStore_ListIgnoresOnlyTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tmp-abc", domain.NewSnapshot("tmp-abc")))
	// A temp file left behind by an interrupted Save.
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tmp-abc-123.json"), []byte("{"), 0644))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tmp-abc"}, sessions)
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "nope"))
	sessions, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0644))

	_, err := file.New(dir).Load(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSessionNotFound)
}
