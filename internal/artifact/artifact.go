// Package artifact manages the downloaded-archive cache directory
// (spec §4.9 "Artifact cache"): cached zips keyed by the last path
// segment of their source URL.
package artifact

import (
	"os"
	"path"
	"path/filepath"
)

// Cache wraps a single directory of cached archive files.
type Cache struct {
	dir string
}

// New builds a Cache rooted at dir.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Exists reports whether the cache directory exists.
func (c *Cache) Exists() bool {
	info, err := os.Stat(c.dir)
	return err == nil && info.IsDir()
}

// EnsureExists creates the cache directory if it doesn't exist.
func (c *Cache) EnsureExists() error {
	return os.MkdirAll(c.dir, 0o755)
}

// CachedZipPath returns the path an archive downloaded from a URL whose
// last path segment is name would be cached at, regardless of whether
// it's currently present.
func (c *Cache) CachedZipPath(url string) string {
	return filepath.Join(c.dir, path.Base(url))
}

// ClearFiles deletes every regular file directly inside the cache
// directory, leaving any subdirectories untouched.
func (c *Cache) ClearFiles() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
