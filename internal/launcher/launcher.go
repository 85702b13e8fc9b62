// Package launcher locates and starts installed Godot engine binaries
// (spec §4.11 "Launcher").
package launcher

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	gdvmerrors "github.com/terassyi/gdvm/internal/errors"
	"github.com/terassyi/gdvm/internal/paths"
	"github.com/terassyi/gdvm/internal/version"
)

// Launcher resolves and runs engine binaries inside the installs directory.
type Launcher struct {
	Paths *paths.Paths
}

// New builds a Launcher.
func New(p *paths.Paths) *Launcher {
	return &Launcher{Paths: p}
}

// findExecutable searches versionDir for the Godot binary or app bundle
// appropriate to the running OS. console only affects Windows, where a
// console-subsystem build is preferred if present.
func findExecutable(versionDir string, console bool) (string, error) {
	entries, err := os.ReadDir(versionDir)
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "windows":
		if console {
			if p := findSuffix(versionDir, entries, "_console.exe"); p != "" {
				return p, nil
			}
		}
		if p := findSuffix(versionDir, entries, ".exe"); p != "" {
			return p, nil
		}
	case "darwin":
		for _, e := range entries {
			name := e.Name()
			if name == "Godot.app" || name == "Godot_mono.app" {
				return filepath.Join(versionDir, name), nil
			}
		}
	default:
		for _, e := range entries {
			name := e.Name()
			if strings.HasPrefix(name, "Godot_v") ||
				strings.HasSuffix(name, ".x86_64") ||
				strings.HasSuffix(name, ".x86_32") ||
				strings.HasSuffix(name, ".arm64") {
				return filepath.Join(versionDir, name), nil
			}
		}
	}

	return "", nil
}

func findSuffix(dir string, entries []os.DirEntry, suffix string) string {
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), suffix) {
			return filepath.Join(dir, e.Name())
		}
	}
	return ""
}

// resolveAppBundle turns a macOS .app bundle path into the actual
// executable inside it, preferring Godot_mono for C# builds.
func resolveAppBundle(appPath string, isCSharp bool) (string, error) {
	candidates := []string{"Contents/MacOS/Godot"}
	if isCSharp {
		candidates = []string{"Contents/MacOS/Godot_mono", "Contents/MacOS/Godot"}
	}
	for _, c := range candidates {
		inner := filepath.Join(appPath, c)
		if _, err := os.Stat(inner); err == nil {
			return inner, nil
		}
	}
	return "", gdvmerrors.NewExecutableNotFoundError(appPath)
}

// ExecutablePath resolves gv's installed engine executable, descending
// into a macOS .app bundle if that's what was found.
func (l *Launcher) ExecutablePath(gv version.Concrete, console bool) (string, error) {
	versionDir := l.Paths.InstallDir(gv.ToInstallStr())
	if _, err := os.Stat(versionDir); err != nil {
		return "", gdvmerrors.NewVersionNotFoundError(gv.ToDisplayStr())
	}

	found, err := findExecutable(versionDir, console)
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", gdvmerrors.NewExecutableNotFoundError(gv.ToDisplayStr())
	}

	if strings.HasSuffix(found, ".app") {
		isCSharp := gv.CSharp != nil && *gv.CSharp
		return resolveAppBundle(found, isCSharp)
	}
	return found, nil
}
