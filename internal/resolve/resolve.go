// Package resolve implements the three version-resolution modes and the
// run-time resolution wrapper used by run/show/link (spec §4.8 "Version
// resolver").
package resolve

import (
	"context"

	"github.com/terassyi/gdvm/internal/cache"
	"github.com/terassyi/gdvm/internal/catalog"
	gdvmerrors "github.com/terassyi/gdvm/internal/errors"
	"github.com/terassyi/gdvm/internal/host"
	"github.com/terassyi/gdvm/internal/i18n"
	"github.com/terassyi/gdvm/internal/registry"
	"github.com/terassyi/gdvm/internal/version"
)

// Warner receives the localized conflict warning ResolveRunTime emits
// whenever a pin/explicit version disagrees with the project.godot
// hint, regardless of whether Force downgrades that conflict from an
// error to a warning (spec §4.12).
type Warner interface {
	Warnf(format string, args ...any)
}

type noopWarner struct{}

func (noopWarner) Warnf(string, ...any) {}

// Resolver picks concrete versions against installed lists and the
// release catalog.
type Resolver struct {
	Catalog  *catalog.Catalog
	Platform host.Platform
	Warner   Warner
}

// New builds a Resolver. If warner is nil, conflict warnings are
// discarded.
func New(cat *catalog.Catalog, platform host.Platform, warner Warner) *Resolver {
	if warner == nil {
		warner = noopWarner{}
	}
	return &Resolver{Catalog: cat, Platform: platform, Warner: warner}
}

// ResolveInstalled filters installed concrete versions by a partial
// pattern, returning all matches sorted newest-first. Zero, one, or
// many results may come back; disambiguating is the caller's job.
func (r *Resolver) ResolveInstalled(installed []version.Concrete, pattern version.Partial) []version.Concrete {
	var out []version.Concrete
	for _, v := range installed {
		if pattern.Matches(v) {
			out = append(out, v)
		}
	}
	version.SortDescending(out)
	return out
}

// ResolveAvailable lists catalog releases matching pattern, keeps only
// those whose capability record advertises a binary compatible with the
// resolver's host platform, and returns the newest stable candidate (or
// the newest candidate at all, if none is stable). If csharp is
// non-nil, it overrides the C#/mono flag on the result.
func (r *Resolver) ResolveAvailable(ctx context.Context, pattern version.Partial, csharp *bool) (version.Concrete, error) {
	releases, err := r.Catalog.ListReleases(ctx, &pattern, false)
	if err != nil {
		return version.Concrete{}, err
	}

	var candidates []version.Concrete
	for _, rel := range releases {
		entry, err := r.Catalog.CapabilitiesFor(ctx, rel.ToRemoteStr())
		if err != nil {
			continue
		}
		if isHostCompatible(entry, r.Platform) {
			candidates = append(candidates, rel)
		}
	}

	if len(candidates) == 0 {
		return version.Concrete{}, gdvmerrors.NewVersionNotFoundError(displayPattern(pattern))
	}

	chosen := candidates[0]
	for _, c := range candidates {
		if c.IsStable() {
			chosen = c
			break
		}
	}

	if csharp != nil {
		chosen.CSharp = csharp
	}
	return chosen, nil
}

// ResolveAutoInstall passes a fully-qualified pattern through unchanged
// (copying the C#/mono flag), otherwise delegates to ResolveAvailable.
func (r *Resolver) ResolveAutoInstall(ctx context.Context, pattern version.Partial, csharp *bool) (version.Concrete, error) {
	if !pattern.IsIncomplete() {
		concrete := pattern.ToDeterminate()
		if csharp != nil {
			concrete.CSharp = csharp
		}
		return concrete, nil
	}
	return r.ResolveAvailable(ctx, pattern, csharp)
}

// isHostCompatible reports whether entry's flattened platform-arch set
// advertises a binary runnable on platform: any platform key for
// platform.OS (with or without the -csharp suffix) paired with
// platform's arch key, or with "universal" on macOS.
func isHostCompatible(entry cache.CapabilityEntry, platform host.Platform) bool {
	plain := registry.PlatformKey(platform, false)
	csharp := registry.PlatformKey(platform, true)
	arch := registry.ArchKey(platform)

	suffixes := []string{arch}
	if platform.OS == host.Macos {
		suffixes = append(suffixes, "universal")
	}

	for _, pa := range entry.PlatformArch {
		for _, prefix := range []string{plain, csharp} {
			for _, suffix := range suffixes {
				if pa == prefix+"-"+suffix {
					return true
				}
			}
		}
	}
	return false
}

// RunTimeRequest holds the inputs the run-time resolution wrapper
// chooses among, in precedence order: Explicit, Pin, ProjectHint,
// Default.
type RunTimeRequest struct {
	// Explicit is the version given directly on the CLI, if any.
	Explicit *version.Partial
	// Pin is the nearest ancestor .gdvmrc's parsed content, if any.
	Pin *version.Partial
	// PinPath is the path of the file Pin came from, for error messages.
	PinPath string
	// ProjectHint is the version detected from a project.godot file.
	ProjectHint *version.Partial
	// Default is the global default install, if one is set.
	Default *version.Concrete
	// CSharp is an explicit CLI override for the C#/mono flag.
	CSharp *bool
	// Force suppresses the project-version-mismatch error, leaving only
	// the conflict warning ResolveRunTime emits through its Warner.
	Force bool
}

// ResolveRunTime implements the run/show/link precedence: explicit CLI
// version, then nearest ancestor pin, then project-file hint, then
// global default. An explicit or pinned request that conflicts with the
// project hint fails unless Force is set. The chosen pattern still needs
// to be matched against an installed list by the caller, except when the
// default is chosen, which is already a concrete installed version.
func (r *Resolver) ResolveRunTime(req RunTimeRequest) (version.Partial, error) {
	var candidate *version.Partial
	kind := "explicit"

	switch {
	case req.Explicit != nil:
		candidate = req.Explicit
	case req.Pin != nil:
		candidate = req.Pin
		kind = "pinned"
	}

	if candidate != nil && req.ProjectHint != nil && candidate.ConflictsWith(*req.ProjectHint) {
		r.Warner.Warnf("%s", i18n.T("warning.project_version_conflict", kind, displayPattern(*candidate), displayPattern(*req.ProjectHint), req.PinPath))
		if !req.Force {
			return version.Partial{}, gdvmerrors.NewProjectVersionMismatchError(req.PinPath, displayPattern(*candidate))
		}
	}

	if candidate != nil {
		if req.CSharp != nil {
			candidate.CSharp = req.CSharp
		}
		return *candidate, nil
	}

	if req.ProjectHint != nil {
		hint := *req.ProjectHint
		if req.CSharp != nil {
			hint.CSharp = req.CSharp
		}
		return hint, nil
	}

	if req.Default != nil {
		pattern := req.Default.ToIndeterminate()
		if req.CSharp != nil {
			pattern.CSharp = req.CSharp
		}
		return pattern, nil
	}

	return version.Partial{}, gdvmerrors.NewNoDefaultError()
}

func displayPattern(p version.Partial) string {
	return p.ToDeterminate().ToDisplayStr()
}
