package installer_test

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terassyi/gdvm/internal/artifact"
	"github.com/terassyi/gdvm/internal/cache"
	"github.com/terassyi/gdvm/internal/catalog"
	"github.com/terassyi/gdvm/internal/host"
	"github.com/terassyi/gdvm/internal/installer"
	"github.com/terassyi/gdvm/internal/paths"
	"github.com/terassyi/gdvm/internal/registry"
	"github.com/terassyi/gdvm/internal/version"
)

func buildZip(t *testing.T, topDir string, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		full := name
		if topDir != "" {
			full = topDir + "/" + name
		}
		fw, err := w.Create(full)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func newTestPaths(t *testing.T) *paths.Paths {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv(paths.EnvTestHome, tmp)
	p, err := paths.New()
	require.NoError(t, err)
	return p
}

func TestInstallDownloadsVerifiesAndExtracts(t *testing.T) {
	zipData := buildZip(t, "Godot_v4.2-stable_linux.x86_64", map[string]string{
		"Godot_v4.2-stable_linux.x86_64": "binary-contents",
	})
	sum := fmt.Sprintf("%x", sha256.Sum256(zipData))

	var assetURL string
	assetSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(zipData)
	}))
	defer assetSrv.Close()
	assetURL = assetSrv.URL + "/Godot_v4.2-stable_linux.x86_64.zip"

	regSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/index.json":
			w.Write([]byte(`[{"id":1,"name":"4.2-stable"}]`))
		case "/releases/1_4.2-stable.json":
			fmt.Fprintf(w, `{"id":1,"name":"4.2-stable","url":"u","binaries":{"linux":{"x86_64":{"sha512":"%s","urls":["%s"]}}}}`, sum, assetURL)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer regSrv.Close()

	reg := registry.New("", registry.WithBaseURL(regSrv.URL))
	p := newTestPaths(t)
	store := cache.New(p.CacheIndexFile())
	cat := catalog.New(reg, store, nil)
	art := artifact.New(p.ArchiveCacheDir())

	inst := installer.New(cat, art, p, host.Platform{OS: host.Linux, Arch: host.X86_64}, http.DefaultClient)

	gv, err := version.ParseMatch("4.2-stable")
	require.NoError(t, err)
	concrete := gv.ToDeterminate()

	outcome, err := inst.Install(context.Background(), concrete, false, false)
	require.NoError(t, err)
	assert.Equal(t, installer.Installed, outcome)

	installedFile := filepath.Join(p.InstallDir(concrete.ToInstallStr()), "Godot_v4.2-stable_linux.x86_64")
	data, err := os.ReadFile(installedFile)
	require.NoError(t, err)
	assert.Equal(t, "binary-contents", string(data))

	outcome, err = inst.Install(context.Background(), concrete, false, false)
	require.NoError(t, err)
	assert.Equal(t, installer.AlreadyInstalled, outcome)
}

func TestInstallForceReinstalls(t *testing.T) {
	zipData := buildZip(t, "", map[string]string{"Godot_v4.2-stable_linux.x86_64": "v1"})
	sum := fmt.Sprintf("%x", sha256.Sum256(zipData))

	assetSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(zipData)
	}))
	defer assetSrv.Close()
	assetURL := assetSrv.URL + "/godot.zip"

	regSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/index.json":
			w.Write([]byte(`[{"id":1,"name":"4.2-stable"}]`))
		case "/releases/1_4.2-stable.json":
			fmt.Fprintf(w, `{"id":1,"name":"4.2-stable","url":"u","binaries":{"linux":{"x86_64":{"sha512":"%s","urls":["%s"]}}}}`, sum, assetURL)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer regSrv.Close()

	reg := registry.New("", registry.WithBaseURL(regSrv.URL))
	p := newTestPaths(t)
	store := cache.New(p.CacheIndexFile())
	cat := catalog.New(reg, store, nil)
	art := artifact.New(p.ArchiveCacheDir())
	inst := installer.New(cat, art, p, host.Platform{OS: host.Linux, Arch: host.X86_64}, http.DefaultClient)

	gv, err := version.ParseMatch("4.2-stable")
	require.NoError(t, err)
	concrete := gv.ToDeterminate()

	_, err = inst.Install(context.Background(), concrete, false, false)
	require.NoError(t, err)

	outcome, err := inst.Install(context.Background(), concrete, true, false)
	require.NoError(t, err)
	assert.Equal(t, installer.Installed, outcome)
}

func TestInstallChecksumMismatchFails(t *testing.T) {
	zipData := buildZip(t, "", map[string]string{"Godot_v4.2-stable_linux.x86_64": "v1"})

	assetSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(zipData)
	}))
	defer assetSrv.Close()
	assetURL := assetSrv.URL + "/godot.zip"

	regSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/index.json":
			w.Write([]byte(`[{"id":1,"name":"4.2-stable"}]`))
		case "/releases/1_4.2-stable.json":
			fmt.Fprintf(w, `{"id":1,"name":"4.2-stable","url":"u","binaries":{"linux":{"x86_64":{"sha512":"%s","urls":["%s"]}}}}`,
				"0000000000000000000000000000000000000000000000000000000000000000", assetURL)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer regSrv.Close()

	reg := registry.New("", registry.WithBaseURL(regSrv.URL))
	p := newTestPaths(t)
	store := cache.New(p.CacheIndexFile())
	cat := catalog.New(reg, store, nil)
	art := artifact.New(p.ArchiveCacheDir())
	inst := installer.New(cat, art, p, host.Platform{OS: host.Linux, Arch: host.X86_64}, http.DefaultClient)

	gv, err := version.ParseMatch("4.2-stable")
	require.NoError(t, err)

	_, err = inst.Install(context.Background(), gv.ToDeterminate(), false, false)
	require.Error(t, err)
}

func TestInstallUnsupportedPlatformFails(t *testing.T) {
	regSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/index.json":
			w.Write([]byte(`[{"id":1,"name":"4.2-stable"}]`))
		case "/releases/1_4.2-stable.json":
			w.Write([]byte(`{"id":1,"name":"4.2-stable","url":"u","binaries":{"windows":{"x86_64":{"sha512":"a","urls":["u"]}}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer regSrv.Close()

	reg := registry.New("", registry.WithBaseURL(regSrv.URL))
	p := newTestPaths(t)
	store := cache.New(p.CacheIndexFile())
	cat := catalog.New(reg, store, nil)
	art := artifact.New(p.ArchiveCacheDir())
	inst := installer.New(cat, art, p, host.Platform{OS: host.Linux, Arch: host.X86_64}, http.DefaultClient)

	gv, err := version.ParseMatch("4.2-stable")
	require.NoError(t, err)

	_, err = inst.Install(context.Background(), gv.ToDeterminate(), false, false)
	require.Error(t, err)
}

func TestRemoveAndListInstalled(t *testing.T) {
	p := newTestPaths(t)

	v1, err := version.ParseMatch("4.1-stable")
	require.NoError(t, err)
	v2, err := version.ParseMatch("4.2-stable")
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(p.InstallDir(v1.ToDeterminate().ToInstallStr()), 0o755))
	require.NoError(t, os.MkdirAll(p.InstallDir(v2.ToDeterminate().ToInstallStr()), 0o755))

	inst := installer.New(nil, nil, p, host.Platform{}, nil)

	installed, err := installer.ListInstalled(p)
	require.NoError(t, err)
	assert.Len(t, installed, 2)

	require.NoError(t, inst.Remove(v1.ToDeterminate()))
	installed, err = installer.ListInstalled(p)
	require.NoError(t, err)
	assert.Len(t, installed, 1)

	err = inst.Remove(v1.ToDeterminate())
	assert.Error(t, err)
}

func TestZipExtractionRejectsPathTraversal(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, err := w.Create("top/../../evil.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("evil"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	zipData := buf.Bytes()
	sum := fmt.Sprintf("%x", sha256.Sum256(zipData))

	assetSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(zipData)
	}))
	defer assetSrv.Close()
	assetURL := assetSrv.URL + "/godot.zip"

	regSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/index.json":
			w.Write([]byte(`[{"id":1,"name":"4.2-stable"}]`))
		case "/releases/1_4.2-stable.json":
			fmt.Fprintf(w, `{"id":1,"name":"4.2-stable","url":"u","binaries":{"linux":{"x86_64":{"sha512":"%s","urls":["%s"]}}}}`, sum, assetURL)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer regSrv.Close()

	reg := registry.New("", registry.WithBaseURL(regSrv.URL))
	p := newTestPaths(t)
	store := cache.New(p.CacheIndexFile())
	cat := catalog.New(reg, store, nil)
	art := artifact.New(p.ArchiveCacheDir())
	inst := installer.New(cat, art, p, host.Platform{OS: host.Linux, Arch: host.X86_64}, http.DefaultClient)

	gv, err := version.ParseMatch("4.2-stable")
	require.NoError(t, err)

	_, err = inst.Install(context.Background(), gv.ToDeterminate(), false, false)
	require.Error(t, err)
}
