// Package installer downloads, verifies, caches, and extracts Godot
// engine release archives into the installs directory (spec §4.10
// "Installer").
package installer

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/vbauerster/mpb/v8"

	"github.com/terassyi/gdvm/internal/artifact"
	"github.com/terassyi/gdvm/internal/catalog"
	"github.com/terassyi/gdvm/internal/checksum"
	gdvmerrors "github.com/terassyi/gdvm/internal/errors"
	"github.com/terassyi/gdvm/internal/host"
	"github.com/terassyi/gdvm/internal/paths"
	"github.com/terassyi/gdvm/internal/version"
)

// Outcome reports whether Install actually performed a fresh install or
// found the version already in place.
type Outcome int

const (
	Installed Outcome = iota
	AlreadyInstalled
)

// Installer turns a resolved concrete version into a populated install
// directory under Paths.InstallsDir().
type Installer struct {
	Catalog  *catalog.Catalog
	Artifact *artifact.Cache
	Paths    *paths.Paths
	Platform host.Platform
	Client   *http.Client

	// ShowProgress controls whether Install renders download/verify
	// progress bars. Tests leave it false.
	ShowProgress bool
}

// New builds an Installer.
func New(cat *catalog.Catalog, art *artifact.Cache, p *paths.Paths, platform host.Platform, client *http.Client) *Installer {
	if client == nil {
		client = http.DefaultClient
	}
	return &Installer{Catalog: cat, Artifact: art, Paths: p, Platform: platform, Client: client}
}

// Install ensures gv is installed. If its install directory already
// exists, it returns AlreadyInstalled unless force is set, in which case
// the existing directory is removed and reinstalled. redownload ignores
// any cached archive for gv's asset and refetches it.
func (inst *Installer) Install(ctx context.Context, gv version.Concrete, force, redownload bool) (Outcome, error) {
	installDir := inst.Paths.InstallDir(gv.ToInstallStr())

	if info, err := os.Stat(installDir); err == nil && info.IsDir() {
		if !force {
			return AlreadyInstalled, nil
		}
		if err := os.RemoveAll(installDir); err != nil {
			return 0, fmt.Errorf("remove existing install at %s: %w", installDir, err)
		}
	}

	meta, err := inst.Catalog.MetadataFor(ctx, gv)
	if err != nil {
		return 0, err
	}

	binary, err := selectBinary(meta, inst.Platform, gv)
	if err != nil {
		return 0, err
	}

	if err := inst.Artifact.EnsureExists(); err != nil {
		return 0, err
	}

	zipPath, err := inst.ensureCachedArchive(ctx, binary, redownload)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return 0, err
	}
	if err := extractZip(zipPath, installDir); err != nil {
		if rmErr := os.RemoveAll(installDir); rmErr != nil {
			return 0, fmt.Errorf("%w (cleanup also failed: %v)", err, rmErr)
		}
		return 0, err
	}

	return Installed, nil
}

// ensureCachedArchive returns the path of a verified, cached copy of
// binary's archive, downloading it first if redownload is set or no
// cached copy exists.
func (inst *Installer) ensureCachedArchive(ctx context.Context, binary selected, redownload bool) (string, error) {
	cachedPath := inst.Artifact.CachedZipPath(binary.url)

	if !redownload {
		if _, err := os.Stat(cachedPath); err == nil {
			return cachedPath, nil
		}
	}

	tmpPath := cachedPath + ".download"

	var progress *mpb.Progress
	if inst.ShowProgress {
		progress = NewProgress()
	}

	if err := DownloadFile(ctx, inst.Client, binary.url, tmpPath, progress); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	if progress != nil {
		progress.Wait()
	}

	if err := checksum.Verify(tmpPath, binary.url, binary.sha512); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	if err := os.Rename(tmpPath, cachedPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("cache verified archive: %w", err)
	}
	return cachedPath, nil
}

// Remove deletes gv's install directory.
func (inst *Installer) Remove(gv version.Concrete) error {
	installDir := inst.Paths.InstallDir(gv.ToInstallStr())
	if _, err := os.Stat(installDir); err != nil {
		if os.IsNotExist(err) {
			return gdvmerrors.NewVersionNotFoundError(gv.ToDisplayStr())
		}
		return err
	}
	return os.RemoveAll(installDir)
}

// ListInstalled returns the concrete version of every directory under
// the installs directory whose name parses as an install-folder name,
// whether or not it holds any files, in no particular order; callers
// sort with version.SortDescending.
func ListInstalled(p *paths.Paths) ([]version.Concrete, error) {
	entries, err := os.ReadDir(p.InstallsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []version.Concrete
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		partial, err := version.ParseInstall(entry.Name())
		if err != nil {
			continue
		}
		out = append(out, partial.ToDeterminate())
	}
	return out, nil
}
