package artifact_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terassyi/gdvm/internal/artifact"
)

func TestEnsureExistsAndExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := artifact.New(dir)

	assert.False(t, c.Exists())
	require.NoError(t, c.EnsureExists())
	assert.True(t, c.Exists())
}

func TestCachedZipPath(t *testing.T) {
	c := artifact.New("/home/user/.gdvm/cache")
	got := c.CachedZipPath("https://example.com/mirror/Godot_v4.3-stable_linux.x86_64.zip")
	assert.Equal(t, filepath.Join("/home/user/.gdvm/cache", "Godot_v4.3-stable_linux.x86_64.zip"), got)
}

func TestClearFilesRemovesOnlyRegularFiles(t *testing.T) {
	dir := t.TempDir()
	c := artifact.New(dir)
	require.NoError(t, c.EnsureExists())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.zip"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.zip"), []byte("y"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "subdir"), 0o755))

	require.NoError(t, c.ClearFiles())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsDir())
}

func TestClearFilesOnMissingDirIsNoop(t *testing.T) {
	c := artifact.New(filepath.Join(t.TempDir(), "missing"))
	assert.NoError(t, c.ClearFiles())
}
