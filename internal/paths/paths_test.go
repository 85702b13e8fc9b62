package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terassyi/gdvm/internal/paths"
)

func TestNewCreatesLayout(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(paths.EnvTestHome, tmp)

	p, err := paths.New()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmp, ".gdvm"), p.Base())
	for _, dir := range []string{p.Base(), p.InstallsDir(), p.ArchiveCacheDir(), p.BinDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestInstallDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(paths.EnvTestHome, tmp)

	p, err := paths.New()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(p.InstallsDir(), "4.3-stable"), p.InstallDir("4.3-stable"))
}
