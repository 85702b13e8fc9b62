// Package catalog orchestrates the registry client and the metadata
// cache store into the release listing and lookup operations the rest
// of gdvm consumes (spec §4.5 "Release catalog").
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/terassyi/gdvm/internal/cache"
	gdvmerrors "github.com/terassyi/gdvm/internal/errors"
	"github.com/terassyi/gdvm/internal/i18n"
	"github.com/terassyi/gdvm/internal/registry"
	"github.com/terassyi/gdvm/internal/version"
)

// TTL is how long a cached registry index is considered fresh.
const TTL = 48 * time.Hour

// Warner receives non-fatal warnings (spec: registry-refresh failures
// downgrade to a warning when usable cached data exists).
type Warner interface {
	Warnf(format string, args ...any)
}

type noopWarner struct{}

func (noopWarner) Warnf(string, ...any) {}

// Catalog combines a registry client and a cache store.
type Catalog struct {
	Registry *registry.Registry
	Cache    *cache.Store
	Warner   Warner

	group singleflight.Group
}

// New builds a Catalog. If warner is nil, warnings are discarded.
func New(reg *registry.Registry, store *cache.Store, warner Warner) *Catalog {
	if warner == nil {
		warner = noopWarner{}
	}
	return &Catalog{Registry: reg, Cache: store, Warner: warner}
}

// ListReleases returns concrete versions matching the optional filter,
// newest first, refreshing the cached index first if it's older than
// TTL (unless cacheOnly is set).
func (c *Catalog) ListReleases(ctx context.Context, filter *version.Partial, cacheOnly bool) ([]version.Concrete, error) {
	regCache, err := c.Cache.LoadRegistryCache()
	if err != nil {
		return nil, err
	}

	stale := time.Since(regCache.LastFetched) > TTL || regCache.LastFetched.IsZero()
	if stale {
		slog.Debug("registry cache is stale", "lastFetched", regCache.LastFetched)
		if err := c.Cache.ClearCapabilitiesCache(regCache.LastFetched); err != nil {
			return nil, err
		}
	}

	if stale && !cacheOnly {
		if err := c.UpdateCache(ctx); err != nil {
			if len(regCache.Releases) == 0 {
				return nil, err
			}
			msg := i18n.T("warning.catalog_refresh_failed", err)
			slog.Warn("release index refresh failed, using cached data", "error", err)
			c.Warner.Warnf("%s", msg)
		} else {
			regCache, err = c.Cache.LoadRegistryCache()
			if err != nil {
				return nil, err
			}
		}
	}

	var out []version.Concrete
	for _, entry := range regCache.Releases {
		p, err := version.ParseRegistry(entry.Name, nil)
		if err != nil {
			continue
		}
		concrete := p.ToDeterminate()
		if filter != nil && !filter.Matches(concrete) {
			continue
		}
		out = append(out, concrete)
	}
	version.SortDescending(out)
	return out, nil
}

// MetadataFor fetches full release metadata for an exact concrete
// version's registry tag, refreshing the index once if the tag isn't
// found in the cached entries.
func (c *Catalog) MetadataFor(ctx context.Context, v version.Concrete) (registry.ReleaseMetadata, error) {
	tag := v.ToRemoteStr()

	regCache, err := c.Cache.LoadRegistryCache()
	if err != nil {
		return registry.ReleaseMetadata{}, err
	}

	entry, ok := findEntry(regCache.Releases, tag)
	if !ok {
		if err := c.UpdateCache(ctx); err != nil {
			return registry.ReleaseMetadata{}, err
		}
		regCache, err = c.Cache.LoadRegistryCache()
		if err != nil {
			return registry.ReleaseMetadata{}, err
		}
		entry, ok = findEntry(regCache.Releases, tag)
		if !ok {
			return registry.ReleaseMetadata{}, gdvmerrors.NewVersionNotFoundError(tag)
		}
	}

	return c.Registry.FetchRelease(ctx, entry.ID, entry.Name)
}

// CapabilitiesFor returns the derived capability record for tag,
// fetching and caching it if not already present. Concurrent calls for
// the same tag within one process are deduplicated.
func (c *Catalog) CapabilitiesFor(ctx context.Context, tag string) (cache.CapabilityEntry, error) {
	result, err, _ := c.group.Do(tag, func() (any, error) {
		return c.capabilitiesFor(ctx, tag)
	})
	if err != nil {
		return cache.CapabilityEntry{}, err
	}
	return result.(cache.CapabilityEntry), nil
}

func (c *Catalog) capabilitiesFor(ctx context.Context, tag string) (cache.CapabilityEntry, error) {
	capCache, err := c.Cache.LoadCapabilitiesCache()
	if err != nil {
		return cache.CapabilityEntry{}, err
	}
	for _, entry := range capCache.Entries {
		if entry.Tag == tag {
			return entry, nil
		}
	}

	regCache, err := c.Cache.LoadRegistryCache()
	if err != nil {
		return cache.CapabilityEntry{}, err
	}
	idxEntry, ok := findEntry(regCache.Releases, tag)
	if !ok {
		return cache.CapabilityEntry{}, gdvmerrors.NewVersionNotFoundError(tag)
	}

	meta, err := c.Registry.FetchRelease(ctx, idxEntry.ID, idxEntry.Name)
	if err != nil {
		return cache.CapabilityEntry{}, err
	}

	derived := deriveCapabilities(tag, meta)
	capCache.Entries = append(capCache.Entries, derived)
	capCache.LastFetched = regCache.LastFetched
	if err := c.Cache.SaveCapabilitiesCache(capCache); err != nil {
		return cache.CapabilityEntry{}, err
	}
	return derived, nil
}

// UpdateCache refreshes the cached index from the registry and
// invalidates the derived capability cache, since the set of known
// tags may have changed.
func (c *Catalog) UpdateCache(ctx context.Context) error {
	slog.Debug("refreshing release index")
	entries, err := c.Registry.FetchIndex(ctx)
	if err != nil {
		return fmt.Errorf("update release catalog: %w", err)
	}
	slog.Debug("release index refreshed", "releases", len(entries))

	now := time.Now().UTC()
	if err := c.Cache.SaveRegistryCache(cache.RegistryCache{LastFetched: now, Releases: entries}); err != nil {
		return err
	}
	return c.Cache.ClearCapabilitiesCache(now)
}

func findEntry(entries []registry.IndexEntry, tag string) (registry.IndexEntry, bool) {
	for _, e := range entries {
		if e.Name == tag {
			return e, true
		}
	}
	return registry.IndexEntry{}, false
}

// deriveCapabilities projects release metadata into a capability record:
// whether any platform key carries a "-csharp" suffix, and the
// flattened "platform-arch" strings across the binary matrix.
func deriveCapabilities(tag string, meta registry.ReleaseMetadata) cache.CapabilityEntry {
	entry := cache.CapabilityEntry{Tag: tag}
	for platformKey, archs := range meta.Binaries {
		if strings.Contains(platformKey, "csharp") {
			entry.HasCSharp = true
		}
		for archKey := range archs {
			entry.PlatformArch = append(entry.PlatformArch, platformKey+"-"+archKey)
		}
	}
	return entry
}
