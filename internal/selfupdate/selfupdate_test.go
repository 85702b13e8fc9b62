package selfupdate_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terassyi/gdvm/internal/cache"
	"github.com/terassyi/gdvm/internal/github"
	"github.com/terassyi/gdvm/internal/host"
	"github.com/terassyi/gdvm/internal/paths"
	"github.com/terassyi/gdvm/internal/selfupdate"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func jsonBody(t *testing.T, v any) io.ReadCloser {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return io.NopCloser(strings.NewReader(string(b)))
}

func newTestPaths(t *testing.T) *paths.Paths {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv(paths.EnvTestHome, tmp)
	p, err := paths.New()
	require.NoError(t, err)
	return p
}

func releasesClient(t *testing.T, releases []github.Release) *http.Client {
	t.Helper()
	return &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "/repos/terassyi/gdvm/releases", req.URL.Path)
			return &http.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{"Content-Type": []string{"application/json"}},
				Body:       jsonBody(t, releases),
			}, nil
		}),
	}
}

func TestCheckForUpgradesFindsNewerMinor(t *testing.T) {
	p := newTestPaths(t)
	store := cache.New(p.CacheIndexFile())
	releases := []github.Release{
		{TagName: "v1.5.0"},
		{TagName: "v1.4.0"},
		{TagName: "v0.9.0"},
	}
	client := releasesClient(t, releases)
	platform := host.Platform{OS: host.Linux, Arch: host.X86_64}

	u := selfupdate.New(p, store, client, platform, "1.4.0")
	status, err := u.CheckForUpgrades(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.5.0", status.NewVersion)
	assert.Empty(t, status.NewMajorVersion)
}

func TestCheckForUpgradesFindsMajorSeparately(t *testing.T) {
	p := newTestPaths(t)
	store := cache.New(p.CacheIndexFile())
	releases := []github.Release{
		{TagName: "v2.0.0"},
		{TagName: "v1.4.0"},
	}
	client := releasesClient(t, releases)
	platform := host.Platform{OS: host.Linux, Arch: host.X86_64}

	u := selfupdate.New(p, store, client, platform, "1.4.0")
	status, err := u.CheckForUpgrades(context.Background())
	require.NoError(t, err)
	assert.Empty(t, status.NewVersion)
	assert.Equal(t, "v2.0.0", status.NewMajorVersion)
}

func TestCheckForUpgradesSkipsDraftsAndPrereleases(t *testing.T) {
	p := newTestPaths(t)
	store := cache.New(p.CacheIndexFile())
	releases := []github.Release{
		{TagName: "v1.6.0", Draft: true},
		{TagName: "v1.5.0-rc1", Prerelease: true},
		{TagName: "v1.4.0"},
	}
	client := releasesClient(t, releases)
	platform := host.Platform{OS: host.Linux, Arch: host.X86_64}

	u := selfupdate.New(p, store, client, platform, "1.4.0")
	status, err := u.CheckForUpgrades(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Available())
}

func TestCheckForUpgradesHonorsCacheTTL(t *testing.T) {
	p := newTestPaths(t)
	store := cache.New(p.CacheIndexFile())
	require.NoError(t, store.SaveGdvmCache(cache.GdvmCache{
		LastUpdateCheck: time.Now(),
		NewVersion:      "v9.9.9",
	}))

	called := false
	client := &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			called = true
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader("[]"))}, nil
		}),
	}
	platform := host.Platform{OS: host.Linux, Arch: host.X86_64}

	u := selfupdate.New(p, store, client, platform, "1.4.0")
	status, err := u.CheckForUpgrades(context.Background())
	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, "v9.9.9", status.NewVersion)
}

func TestUpgradeNoNewerReleaseIsNoop(t *testing.T) {
	p := newTestPaths(t)
	store := cache.New(p.CacheIndexFile())
	releases := []github.Release{
		{TagName: "v1.4.0"},
	}
	client := releasesClient(t, releases)
	platform := host.Platform{OS: host.Linux, Arch: host.X86_64}

	u := selfupdate.New(p, store, client, platform, "1.4.0")
	require.NoError(t, u.Upgrade(context.Background(), false))

	_, err := os.Stat(filepath.Join(p.BinDir(), "gdvm.new"))
	assert.True(t, os.IsNotExist(err))
}

func TestUpgradeMajorConstraintExcludesLowerMajor(t *testing.T) {
	p := newTestPaths(t)
	store := cache.New(p.CacheIndexFile())
	releases := []github.Release{
		{TagName: "v1.9.0"},
	}
	client := releasesClient(t, releases)
	platform := host.Platform{OS: host.Linux, Arch: host.X86_64}

	u := selfupdate.New(p, store, client, platform, "2.0.0")
	err := u.Upgrade(context.Background(), false)
	require.Error(t, err)
}
