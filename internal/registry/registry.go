// Package registry fetches Godot engine release metadata from gdvm's
// fixed registry host (spec §4.3 "Registry client").
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	gdvmgithub "github.com/terassyi/gdvm/internal/github"
	"github.com/terassyi/gdvm/internal/host"
)

// defaultBaseURL is the fixed registry host all index and release
// metadata is served from.
const defaultBaseURL = "https://raw.githubusercontent.com/gdvm-project/registry/refs/heads/main/v1"

// IndexEntry is one row of the registry's top-level index.
type IndexEntry struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// BinaryInfo describes a single downloadable asset for one platform/arch
// pair: its declared checksum and the mirrors it can be fetched from.
type BinaryInfo struct {
	SHA512 string   `json:"sha512"`
	URLs   []string `json:"urls"`
}

// ReleaseMetadata is a single release's full binary matrix, keyed first
// by registry platform key (e.g. "linux-csharp") then by registry arch
// key (e.g. "x86_64").
type ReleaseMetadata struct {
	ID       uint64                           `json:"id"`
	Name     string                           `json:"name"`
	URL      string                           `json:"url"`
	Binaries map[string]map[string]BinaryInfo `json:"binaries"`
}

// Registry fetches index and release documents over HTTPS.
type Registry struct {
	client  *http.Client
	baseURL string
}

// Option configures a Registry.
type Option func(*Registry)

// WithBaseURL overrides the registry host, for tests and mirrors.
func WithBaseURL(url string) Option {
	return func(r *Registry) { r.baseURL = url }
}

// New builds a Registry using gdvm's GitHub-aware HTTP client, so
// requests against raw.githubusercontent.com carry GITHUB_TOKEN/GH_TOKEN
// authentication when available.
func New(token string, opts ...Option) *Registry {
	r := &Registry{client: gdvmgithub.NewHTTPClient(token), baseURL: defaultBaseURL}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FetchIndex retrieves the full list of known releases.
func (r *Registry) FetchIndex(ctx context.Context) ([]IndexEntry, error) {
	var entries []IndexEntry
	if err := r.getJSON(ctx, r.baseURL+"/index.json", &entries); err != nil {
		return nil, fmt.Errorf("fetch registry index: %w", err)
	}
	return entries, nil
}

// FetchRelease retrieves one release's full metadata document.
func (r *Registry) FetchRelease(ctx context.Context, id uint64, name string) (ReleaseMetadata, error) {
	url := fmt.Sprintf("%s/releases/%d_%s.json", r.baseURL, id, name)
	var meta ReleaseMetadata
	if err := r.getJSON(ctx, url, &meta); err != nil {
		return ReleaseMetadata{}, fmt.Errorf("fetch release metadata for %s: %w", name, err)
	}
	return meta, nil
}

func (r *Registry) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// PlatformKey returns the registry's binary-matrix key for a platform's
// OS plus the C#/mono flag, e.g. "linux-csharp".
func PlatformKey(p host.Platform, isCSharp bool) string {
	osKey := string(p.OS)
	if isCSharp {
		return osKey + "-csharp"
	}
	return osKey
}

// ArchKey returns the registry's binary-matrix key for a platform's
// architecture, e.g. "x86_64", "arm64".
func ArchKey(p host.Platform) string {
	if p.Arch == host.Aarch64 {
		return "arm64"
	}
	return string(p.Arch)
}
