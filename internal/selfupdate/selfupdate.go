// Package selfupdate checks GitHub Releases for newer gdvm builds and
// replaces the running binary in place (spec §4.13 "Self-updater").
package selfupdate

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/terassyi/gdvm/internal/cache"
	"github.com/terassyi/gdvm/internal/checksum"
	gdvmerrors "github.com/terassyi/gdvm/internal/errors"
	"github.com/terassyi/gdvm/internal/github"
	"github.com/terassyi/gdvm/internal/host"
	"github.com/terassyi/gdvm/internal/installer"
	"github.com/terassyi/gdvm/internal/paths"
)

// Owner and Repo identify the GitHub repository gdvm releases are
// published under.
const (
	Owner = "terassyi"
	Repo  = "gdvm"
)

// CacheTTL is how long a negative or positive update-check result is
// trusted before check_for_upgrades re-queries GitHub.
const CacheTTL = 48 * time.Hour

// Updater checks for and installs newer gdvm releases.
type Updater struct {
	Paths    *paths.Paths
	Cache    *cache.Store
	Client   *http.Client
	Platform host.Platform

	// CurrentVersion is the running binary's semver, e.g. "1.4.0".
	CurrentVersion string

	// Migrate runs after the executable swap succeeds, given the
	// version gdvm upgraded from and to, so a release can carry its own
	// on-disk layout migrations. Defaults to a no-op.
	Migrate func(oldVersion, newVersion string) error
}

// New builds an Updater with a no-op Migrate hook.
func New(p *paths.Paths, c *cache.Store, client *http.Client, platform host.Platform, currentVersion string) *Updater {
	return &Updater{
		Paths:          p,
		Cache:          c,
		Client:         client,
		Platform:       platform,
		CurrentVersion: currentVersion,
		Migrate:        func(string, string) error { return nil },
	}
}

// Status reports what CheckForUpgrades found.
type Status struct {
	// NewVersion is the latest stable release within the current major
	// version, if newer than CurrentVersion.
	NewVersion string
	// NewMajorVersion is the latest stable release across all majors,
	// if newer than CurrentVersion and different from NewVersion.
	NewMajorVersion string
}

// Available reports whether either field is populated.
func (s Status) Available() bool { return s.NewVersion != "" || s.NewMajorVersion != "" }

// CheckForUpgrades queries GitHub for newer releases, respecting the
// cache TTL, and records the result for the next call to reuse.
func (u *Updater) CheckForUpgrades(ctx context.Context) (Status, error) {
	gdvmCache, err := u.Cache.LoadGdvmCache()
	if err != nil {
		return Status{}, err
	}

	if time.Since(gdvmCache.LastUpdateCheck) <= CacheTTL {
		return statusFromCache(gdvmCache, u.CurrentVersion), nil
	}

	releases, err := github.ListReleases(ctx, u.Client, Owner, Repo)
	if err != nil {
		return Status{}, err
	}

	current, err := semver.NewVersion(u.CurrentVersion)
	if err != nil {
		return Status{}, err
	}

	var newVersion, newMajorVersion string
	if tag, ok := findLatestStableRelease(releases, fmt.Sprintf("^%d", current.Major())); ok {
		if v, err := semver.NewVersion(strings.TrimPrefix(tag, "v")); err == nil && v.GreaterThan(current) {
			newVersion = tag
		}
	}
	if tag, ok := findLatestStableRelease(releases, "*"); ok {
		if v, err := semver.NewVersion(strings.TrimPrefix(tag, "v")); err == nil && v.GreaterThan(current) && tag != newVersion {
			newMajorVersion = tag
		}
	}

	if err := u.Cache.SaveGdvmCache(cache.GdvmCache{
		LastUpdateCheck: time.Now(),
		NewVersion:      newVersion,
		NewMajorVersion: newMajorVersion,
	}); err != nil {
		return Status{}, err
	}

	return Status{NewVersion: newVersion, NewMajorVersion: newMajorVersion}, nil
}

// statusFromCache re-validates a cached result against CurrentVersion,
// since the running binary may itself have changed since the cache was
// written.
func statusFromCache(c cache.GdvmCache, currentVersion string) Status {
	current, err := semver.NewVersion(currentVersion)
	if err != nil {
		return Status{}
	}

	var out Status
	if c.NewVersion != "" {
		if v, err := semver.NewVersion(strings.TrimPrefix(c.NewVersion, "v")); err == nil && v.GreaterThan(current) {
			out.NewVersion = c.NewVersion
		}
	}
	if c.NewMajorVersion != "" {
		if v, err := semver.NewVersion(strings.TrimPrefix(c.NewMajorVersion, "v")); err == nil && v.GreaterThan(current) {
			out.NewMajorVersion = c.NewMajorVersion
		}
	}
	return out
}

// findLatestStableRelease returns the newest non-draft, non-prerelease
// release tag satisfying constraint, e.g. "^1" or "*".
func findLatestStableRelease(releases []github.Release, constraint string) (string, bool) {
	req, err := semver.NewConstraint(constraint)
	if err != nil {
		return "", false
	}

	type candidate struct {
		tag string
		v   *semver.Version
	}
	var matches []candidate
	for _, rel := range releases {
		if rel.Draft || rel.Prerelease {
			continue
		}
		v, err := semver.NewVersion(strings.TrimPrefix(rel.TagName, "v"))
		if err != nil {
			continue
		}
		if v.Prerelease() != "" {
			continue
		}
		if req.Check(v) {
			matches = append(matches, candidate{tag: rel.TagName, v: v})
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].v.GreaterThan(matches[j].v) })
	return matches[0].tag, true
}

// assetName is the self-update binary's filename for this platform:
// gdvm-<triple>[.exe].
func (u *Updater) assetName() (string, error) {
	triple, err := u.Platform.TargetTriple()
	if err != nil {
		return "", err
	}
	return "gdvm-" + triple + u.Platform.ExeSuffix(), nil
}

// Upgrade installs the latest stable release, restricted to the current
// major version unless allowMajor is set, and replaces the running
// executable with it.
func (u *Updater) Upgrade(ctx context.Context, allowMajor bool) error {
	current, err := semver.NewVersion(u.CurrentVersion)
	if err != nil {
		return err
	}

	constraint := fmt.Sprintf("^%d", current.Major())
	if allowMajor {
		constraint = "*"
	}

	releases, err := github.ListReleases(ctx, u.Client, Owner, Repo)
	if err != nil {
		return err
	}

	tag, ok := findLatestStableRelease(releases, constraint)
	if !ok {
		return gdvmerrors.NewVersionNotFoundError(constraint)
	}

	latest, err := semver.NewVersion(strings.TrimPrefix(tag, "v"))
	if err != nil {
		return err
	}
	if !latest.GreaterThan(current) {
		return nil
	}

	file, err := u.assetName()
	if err != nil {
		return err
	}

	binURL := "https://github.com/" + Owner + "/" + Repo + "/releases/download/" + tag + "/" + file
	newPath := filepath.Join(u.Paths.BinDir(), "gdvm.new")
	if err := os.MkdirAll(u.Paths.BinDir(), 0o755); err != nil {
		return err
	}

	progress := installer.NewProgress()
	if err := installer.DownloadFile(ctx, u.Client, binURL, newPath, progress); err != nil {
		progress.Wait()
		return err
	}
	progress.Wait()

	if digest, ok := assetDigest(releases, tag, file); ok {
		if err := checksum.Verify(newPath, binURL, digest); err != nil {
			os.Remove(newPath)
			return err
		}
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(newPath, 0o755); err != nil {
			return err
		}
	}

	if err := swapExecutable(newPath); err != nil {
		return err
	}

	newVersion := strings.TrimPrefix(tag, "v")
	if err := u.Cache.ClearGdvmCache(time.Now()); err != nil {
		return err
	}
	return u.Migrate(u.CurrentVersion, newVersion)
}

// assetDigest finds the sha256 digest GitHub recorded for the named
// asset of the named release, if any.
func assetDigest(releases []github.Release, tag, name string) (string, bool) {
	for _, rel := range releases {
		if rel.TagName != tag {
			continue
		}
		for _, a := range rel.Assets {
			if a.Name == name {
				if d, ok := strings.CutPrefix(a.Digest, "sha256:"); ok {
					return d, true
				}
			}
		}
		break
	}
	return "", false
}

// swapExecutable renames the running executable to a .bak sibling and
// puts newPath in its place.
func swapExecutable(newPath string) error {
	currentExe, err := os.Executable()
	if err != nil {
		return err
	}
	currentExe, err = filepath.EvalSymlinks(currentExe)
	if err != nil {
		return err
	}

	backup := currentExe + ".bak"
	if err := os.Rename(currentExe, backup); err != nil {
		return fmt.Errorf("failed to back up current executable: %w", err)
	}
	if err := os.Rename(newPath, currentExe); err != nil {
		return fmt.Errorf("failed to install new executable: %w", err)
	}
	return nil
}
