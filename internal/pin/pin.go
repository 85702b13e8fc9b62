// Package pin manages the default installed version (the base directory's
// "default" file and bin/current_godot symlink) and the per-project
// .gdvmrc pin, and combines them with a project hint into the version a
// bare "gdvm run" should use (spec §4.12 "Default/pin manager").
package pin

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gdvmerrors "github.com/terassyi/gdvm/internal/errors"
	"github.com/terassyi/gdvm/internal/paths"
	"github.com/terassyi/gdvm/internal/project"
	"github.com/terassyi/gdvm/internal/version"
)

// Manager reads and writes the default pointer and .gdvmrc pins.
type Manager struct {
	Paths  *paths.Paths
	Warner project.Warner
}

// New builds a Manager. If warner is nil, warnings from project-file
// detection are discarded.
func New(p *paths.Paths, warner project.Warner) *Manager {
	if warner == nil {
		warner = noopWarner{}
	}
	return &Manager{Paths: p, Warner: warner}
}

type noopWarner struct{}

func (noopWarner) Warnf(string, ...any) {}

// SetDefault writes gv as the default version and repoints
// bin/current_godot at its install directory. If gv's install directory
// does not exist, it returns VersionNotFoundError and changes nothing.
func (m *Manager) SetDefault(gv version.Concrete) error {
	installFolder := gv.ToInstallStr()
	targetDir := m.Paths.InstallDir(installFolder)
	if _, err := os.Stat(targetDir); err != nil {
		return gdvmerrors.NewVersionNotFoundError(gv.ToDisplayStr())
	}

	if err := os.WriteFile(m.Paths.DefaultFile(), []byte(installFolder), 0o644); err != nil {
		return err
	}

	symlink := m.Paths.CurrentSymlink()
	if err := os.MkdirAll(filepath.Dir(symlink), 0o755); err != nil {
		return err
	}
	if _, err := os.Lstat(symlink); err == nil {
		if err := os.RemoveAll(symlink); err != nil {
			return err
		}
	}
	slog.Debug("rewriting default symlink", "symlink", symlink, "target", targetDir)
	if err := symlinkDir(targetDir, symlink); err != nil {
		if isPrivilegeError(err) {
			return gdvmerrors.NewSymlinkPrivilegeError(symlink, err)
		}
		return err
	}
	return nil
}

// UnsetDefault removes the default file and the current_godot symlink,
// if either exists.
func (m *Manager) UnsetDefault() error {
	if err := removeIfExists(m.Paths.DefaultFile()); err != nil {
		return err
	}
	return removeIfExists(m.Paths.CurrentSymlink())
}

// GetDefault reads the default file, returning false if none is set.
func (m *Manager) GetDefault() (version.Concrete, bool, error) {
	contents, err := os.ReadFile(m.Paths.DefaultFile())
	if os.IsNotExist(err) {
		return version.Concrete{}, false, nil
	}
	if err != nil {
		return version.Concrete{}, false, err
	}
	p, err := version.ParseInstall(strings.TrimSpace(string(contents)))
	if err != nil {
		return version.Concrete{}, false, err
	}
	return p.ToDeterminate(), true, nil
}

// PinVersion writes gv to .gdvmrc in the current directory.
func (m *Manager) PinVersion(gv version.Concrete) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cwd, paths.PinFileName), []byte(gv.ToPinnedStr()), 0o644)
}

// GetPinned searches startPath and each of its ancestors for a .gdvmrc
// file, returning the pattern in the first one found.
func GetPinned(startPath string) (version.Partial, bool) {
	current, err := filepath.Abs(startPath)
	if err != nil {
		return version.Partial{}, false
	}
	for {
		candidate := filepath.Join(current, paths.PinFileName)
		if contents, err := os.ReadFile(candidate); err == nil {
			s := strings.TrimSpace(string(contents))
			parse := version.ParseMatch
			if strings.HasSuffix(s, "-csharp") {
				parse = version.ParseInstall
			}
			if p, err := parse(s); err == nil {
				return p, true
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return version.Partial{}, false
		}
		current = parent
	}
}

// removeIfExists removes path if it exists, treating "already gone" as
// success.
func removeIfExists(path string) error {
	err := os.RemoveAll(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// DetermineVersion resolves the version pattern startPath itself asks
// for, by precedence: the .gdvmrc pin found by searching upward from
// startPath, then the project.godot hint found the same way. It reports
// false when neither exists; the default version is not consulted here.
// Callers that have an explicit flag skip DetermineVersion entirely
// (spec: explicit flag wins over every other source).
//
// If both a pin and a project hint are present and disagree on a field
// either specifies, ProjectVersionMismatchError-style conflict detection
// is left to the caller via version.Partial.ConflictsWith; DetermineVersion
// itself just returns the pin when present, since a pin is the user's
// explicit per-project choice.
func (m *Manager) DetermineVersion(startPath string) (version.Partial, bool) {
	if pinned, ok := GetPinned(startPath); ok {
		return pinned, true
	}
	if hint, ok := project.DetectInPath(startPath, m.Warner); ok {
		return hint, true
	}
	return version.Partial{}, false
}
