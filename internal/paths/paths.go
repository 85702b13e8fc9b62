// Package paths computes and creates gdvm's home directory layout
// (spec §6 "Home layout"): <home>/.gdvm/{default, config.toml, cache.json,
// cache/, installs/, bin/}.
package paths

import (
	"os"
	"path/filepath"
)

const homeDirName = ".gdvm"

// EnvTestHome overrides the home directory; honored only for integration
// tests (spec §6 environment variables, GDVM_TEST_HOME).
const EnvTestHome = "GDVM_TEST_HOME"

// Paths holds the computed home directory layout.
type Paths struct {
	base string
}

// New resolves the base directory, honoring GDVM_TEST_HOME, and creates
// base, installs/, cache/, and bin/ if they don't already exist.
func New() (*Paths, error) {
	base, err := resolveBase()
	if err != nil {
		return nil, err
	}

	p := &Paths{base: base}
	for _, dir := range []string{p.Base(), p.InstallsDir(), p.ArchiveCacheDir(), p.BinDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func resolveBase() (string, error) {
	if override := os.Getenv(EnvTestHome); override != "" {
		return filepath.Join(override, homeDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeDirName), nil
}

// Base returns <home>/.gdvm.
func (p *Paths) Base() string { return p.base }

// InstallsDir returns <base>/installs.
func (p *Paths) InstallsDir() string { return filepath.Join(p.base, "installs") }

// InstallDir returns the install directory for an install-folder-form name.
func (p *Paths) InstallDir(installFolder string) string {
	return filepath.Join(p.InstallsDir(), installFolder)
}

// ArchiveCacheDir returns <base>/cache.
func (p *Paths) ArchiveCacheDir() string { return filepath.Join(p.base, "cache") }

// BinDir returns <base>/bin.
func (p *Paths) BinDir() string { return filepath.Join(p.base, "bin") }

// CacheIndexFile returns <base>/cache.json, the FullCache document.
func (p *Paths) CacheIndexFile() string { return filepath.Join(p.base, "cache.json") }

// DefaultFile returns <base>/default, the install-folder-form pointer.
func (p *Paths) DefaultFile() string { return filepath.Join(p.base, "default") }

// CurrentSymlink returns <base>/bin/current_godot, the default-version
// directory symlink.
func (p *Paths) CurrentSymlink() string { return filepath.Join(p.BinDir(), "current_godot") }

// ConfigFile returns <base>/config.toml.
func (p *Paths) ConfigFile() string { return filepath.Join(p.base, "config.toml") }

// PinFileName is the per-project pin filename (spec §6 ".gdvmrc").
const PinFileName = ".gdvmrc"
