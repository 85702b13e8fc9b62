package launcher_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terassyi/gdvm/internal/launcher"
	"github.com/terassyi/gdvm/internal/paths"
	"github.com/terassyi/gdvm/internal/version"
)

func newTestPaths(t *testing.T) *paths.Paths {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv(paths.EnvTestHome, tmp)
	p, err := paths.New()
	require.NoError(t, err)
	return p
}

func TestExecutablePathMissingVersionFails(t *testing.T) {
	p := newTestPaths(t)
	l := launcher.New(p)

	gv, err := version.ParseMatch("4.2-stable")
	require.NoError(t, err)

	_, err = l.ExecutablePath(gv.ToDeterminate(), false)
	require.Error(t, err)
}

func TestExecutablePathFindsPlatformBinary(t *testing.T) {
	p := newTestPaths(t)
	l := launcher.New(p)

	gv, err := version.ParseMatch("4.2-stable")
	require.NoError(t, err)
	concrete := gv.ToDeterminate()

	dir := p.InstallDir(concrete.ToInstallStr())
	require.NoError(t, os.MkdirAll(dir, 0o755))

	var expected string
	switch runtime.GOOS {
	case "windows":
		expected = filepath.Join(dir, "Godot_v4.2-stable_win64.exe")
		require.NoError(t, os.WriteFile(expected, []byte{}, 0o755))
	case "darwin":
		appDir := filepath.Join(dir, "Godot.app", "Contents", "MacOS")
		require.NoError(t, os.MkdirAll(appDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(appDir, "Godot"), []byte{}, 0o755))
		expected = filepath.Join(appDir, "Godot")
	default:
		expected = filepath.Join(dir, "Godot_v4.2-stable_linux.x86_64")
		require.NoError(t, os.WriteFile(expected, []byte{}, 0o755))
	}

	got, err := l.ExecutablePath(concrete, false)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestExecutablePathNoBinaryFails(t *testing.T) {
	p := newTestPaths(t)
	l := launcher.New(p)

	gv, err := version.ParseMatch("4.2-stable")
	require.NoError(t, err)
	concrete := gv.ToDeterminate()

	dir := p.InstallDir(concrete.ToInstallStr())
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte{}, 0o644))

	_, err = l.ExecutablePath(concrete, false)
	require.Error(t, err)
}
