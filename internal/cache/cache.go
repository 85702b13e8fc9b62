// Package cache persists the metadata cache index (spec §4.4 "Metadata
// cache store"): the tool-update check timestamp, the fetched registry
// index, and derived release capability records, all in one JSON
// document guarded by an advisory file lock.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/terassyi/gdvm/internal/registry"
)

// GdvmCache tracks gdvm's own self-update check state.
type GdvmCache struct {
	LastUpdateCheck time.Time `json:"last_update_check"`
	NewVersion      string    `json:"new_version,omitempty"`
	NewMajorVersion string    `json:"new_major_version,omitempty"`
}

// RegistryCache holds the last-fetched release index.
type RegistryCache struct {
	LastFetched time.Time             `json:"last_fetched"`
	Releases    []registry.IndexEntry `json:"releases"`
}

// CapabilityEntry is a derived summary of one release's binary matrix.
type CapabilityEntry struct {
	Tag          string   `json:"tag"`
	HasCSharp    bool     `json:"has_csharp"`
	PlatformArch []string `json:"platform_arch"`
}

// CapabilitiesCache holds derived capability records, one per tag.
type CapabilitiesCache struct {
	LastFetched time.Time         `json:"last_fetched"`
	Entries     []CapabilityEntry `json:"entries"`
}

// FullCache is the complete persisted document at cache.json.
type FullCache struct {
	Gdvm                GdvmCache         `json:"gdvm"`
	GodotRegistry       RegistryCache     `json:"godot_registry"`
	ReleaseCapabilities CapabilitiesCache `json:"release_capabilities"`
}

// Store wraps an on-disk FullCache document, serializing read-modify-
// write access across processes with an advisory file lock.
type Store struct {
	path string
	lock *flock.Flock
}

// New builds a Store backed by path (typically Paths.CacheIndexFile()).
func New(path string) *Store {
	return &Store{path: path, lock: flock.New(path + ".lock")}
}

// load reads the full document. An absent file yields a default document
// without writing anything; a file that fails to parse is overwritten
// with a default document (spec: cache corruption is recovered
// silently, never surfaced).
func (s *Store) load() (FullCache, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return FullCache{}, nil
		}
		return FullCache{}, err
	}

	var full FullCache
	if err := json.Unmarshal(data, &full); err != nil {
		full = FullCache{}
		if writeErr := s.writeAtomic(full); writeErr != nil {
			return FullCache{}, writeErr
		}
		return full, nil
	}
	return full, nil
}

// writeAtomic serializes full and persists it via tmp-file + rename,
// retrying the rename once if the target already exists (some
// filesystems refuse to replace in place).
func (s *Store) writeAtomic(full FullCache) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(full, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, s.path); err != nil {
		if os.IsExist(err) {
			if rmErr := os.Remove(s.path); rmErr == nil {
				if err := os.Rename(tmp, s.path); err == nil {
					return nil
				}
			}
		}
		os.Remove(tmp)
		return err
	}
	return nil
}

// withLock runs fn while holding the store's advisory file lock.
func (s *Store) withLock(fn func() error) error {
	if err := s.lock.Lock(); err != nil {
		return err
	}
	defer s.lock.Unlock()
	return fn()
}

// LoadGdvmCache returns the gdvm self-update substructure.
func (s *Store) LoadGdvmCache() (GdvmCache, error) {
	var out GdvmCache
	err := s.withLock(func() error {
		full, err := s.load()
		if err != nil {
			return err
		}
		out = full.Gdvm
		return nil
	})
	return out, err
}

// LoadRegistryCache returns the cached release index.
func (s *Store) LoadRegistryCache() (RegistryCache, error) {
	var out RegistryCache
	err := s.withLock(func() error {
		full, err := s.load()
		if err != nil {
			return err
		}
		out = full.GodotRegistry
		return nil
	})
	return out, err
}

// LoadCapabilitiesCache returns the cached capability records.
func (s *Store) LoadCapabilitiesCache() (CapabilitiesCache, error) {
	var out CapabilitiesCache
	err := s.withLock(func() error {
		full, err := s.load()
		if err != nil {
			return err
		}
		out = full.ReleaseCapabilities
		return nil
	})
	return out, err
}

// SaveGdvmCache read-modify-writes the gdvm substructure.
func (s *Store) SaveGdvmCache(value GdvmCache) error {
	return s.withLock(func() error {
		full, err := s.load()
		if err != nil {
			return err
		}
		full.Gdvm = value
		return s.writeAtomic(full)
	})
}

// SaveRegistryCache read-modify-writes the registry substructure.
func (s *Store) SaveRegistryCache(value RegistryCache) error {
	return s.withLock(func() error {
		full, err := s.load()
		if err != nil {
			return err
		}
		full.GodotRegistry = value
		return s.writeAtomic(full)
	})
}

// SaveCapabilitiesCache read-modify-writes the capabilities substructure.
func (s *Store) SaveCapabilitiesCache(value CapabilitiesCache) error {
	return s.withLock(func() error {
		full, err := s.load()
		if err != nil {
			return err
		}
		full.ReleaseCapabilities = value
		return s.writeAtomic(full)
	})
}

// ClearGdvmCache resets the tool-update substructure, recording now as
// the last check time.
func (s *Store) ClearGdvmCache(now time.Time) error {
	return s.SaveGdvmCache(GdvmCache{LastUpdateCheck: now})
}

// ClearCapabilitiesCache empties the capability entries, aligning
// last_fetched with ts.
func (s *Store) ClearCapabilitiesCache(ts time.Time) error {
	return s.SaveCapabilitiesCache(CapabilitiesCache{LastFetched: ts})
}
