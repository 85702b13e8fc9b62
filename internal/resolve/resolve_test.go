package resolve_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terassyi/gdvm/internal/cache"
	"github.com/terassyi/gdvm/internal/catalog"
	"github.com/terassyi/gdvm/internal/host"
	"github.com/terassyi/gdvm/internal/registry"
	"github.com/terassyi/gdvm/internal/resolve"
	"github.com/terassyi/gdvm/internal/version"
)

func mustPartial(t *testing.T, s string) version.Partial {
	t.Helper()
	p, err := version.ParseMatch(s)
	require.NoError(t, err)
	return p
}

func TestResolveInstalledFiltersAndSorts(t *testing.T) {
	r := resolve.New(nil, host.Platform{}, nil)
	installed := []version.Concrete{
		mustPartial(t, "4.1-stable").ToDeterminate(),
		mustPartial(t, "4.2-stable").ToDeterminate(),
		mustPartial(t, "3.5-stable").ToDeterminate(),
	}

	got := r.ResolveInstalled(installed, mustPartial(t, "4"))
	require.Len(t, got, 2)
	assert.Equal(t, "4.2-stable", got[0].ToRemoteStr())
	assert.Equal(t, "4.1-stable", got[1].ToRemoteStr())
}

func newResolverWithServer(t *testing.T, handler http.HandlerFunc, platform host.Platform) *resolve.Resolver {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	reg := registry.New("", registry.WithBaseURL(srv.URL))
	store := cache.New(filepath.Join(t.TempDir(), "cache.json"))
	cat := catalog.New(reg, store, nil)
	return resolve.New(cat, platform, nil)
}

func TestResolveAvailablePrefersStable(t *testing.T) {
	r := newResolverWithServer(t, func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/index.json":
			w.Write([]byte(`[{"id":1,"name":"4.2-rc1"},{"id":2,"name":"4.1-stable"}]`))
		case "/releases/1_4.2-rc1.json":
			w.Write([]byte(`{"id":1,"name":"4.2-rc1","url":"u","binaries":{"linux":{"x86_64":{"sha512":"a","urls":["u"]}}}}`))
		case "/releases/2_4.1-stable.json":
			w.Write([]byte(`{"id":2,"name":"4.1-stable","url":"u","binaries":{"linux":{"x86_64":{"sha512":"a","urls":["u"]}}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, host.Platform{OS: host.Linux, Arch: host.X86_64})

	got, err := r.ResolveAvailable(context.Background(), mustPartial(t, "4"), nil)
	require.NoError(t, err)
	assert.Equal(t, "4.1-stable", got.ToRemoteStr())
}

func TestResolveAvailableFallsBackWhenNoStable(t *testing.T) {
	r := newResolverWithServer(t, func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/index.json":
			w.Write([]byte(`[{"id":1,"name":"4.2-rc1"}]`))
		case "/releases/1_4.2-rc1.json":
			w.Write([]byte(`{"id":1,"name":"4.2-rc1","url":"u","binaries":{"linux":{"x86_64":{"sha512":"a","urls":["u"]}}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, host.Platform{OS: host.Linux, Arch: host.X86_64})

	got, err := r.ResolveAvailable(context.Background(), mustPartial(t, "4"), nil)
	require.NoError(t, err)
	assert.Equal(t, "4.2-rc1", got.ToRemoteStr())
}

func TestResolveAvailableFiltersIncompatibleHost(t *testing.T) {
	r := newResolverWithServer(t, func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/index.json":
			w.Write([]byte(`[{"id":1,"name":"4.1-stable"}]`))
		case "/releases/1_4.1-stable.json":
			w.Write([]byte(`{"id":1,"name":"4.1-stable","url":"u","binaries":{"windows":{"x86_64":{"sha512":"a","urls":["u"]}}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, host.Platform{OS: host.Linux, Arch: host.X86_64})

	_, err := r.ResolveAvailable(context.Background(), mustPartial(t, "4"), nil)
	require.Error(t, err)
}

func TestResolveAvailableAcceptsMacosUniversal(t *testing.T) {
	r := newResolverWithServer(t, func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/index.json":
			w.Write([]byte(`[{"id":1,"name":"4.1-stable"}]`))
		case "/releases/1_4.1-stable.json":
			w.Write([]byte(`{"id":1,"name":"4.1-stable","url":"u","binaries":{"macos":{"universal":{"sha512":"a","urls":["u"]}}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, host.Platform{OS: host.Macos, Arch: host.Aarch64})

	got, err := r.ResolveAvailable(context.Background(), mustPartial(t, "4"), nil)
	require.NoError(t, err)
	assert.Equal(t, "4.1-stable", got.ToRemoteStr())
}

func TestResolveAutoInstallPassesThroughFullyQualified(t *testing.T) {
	r := resolve.New(nil, host.Platform{}, nil)
	full := mustPartial(t, "4.2.1-stable")
	got, err := r.ResolveAutoInstall(context.Background(), full, nil)
	require.NoError(t, err)
	assert.Equal(t, "4.2.1-stable", got.ToRemoteStr())
}

func TestResolveRunTimePrefersExplicitOverPin(t *testing.T) {
	r := resolve.New(nil, host.Platform{}, nil)
	explicit := mustPartial(t, "4.2")
	pin := mustPartial(t, "4.1")

	got, err := r.ResolveRunTime(resolve.RunTimeRequest{Explicit: &explicit, Pin: &pin})
	require.NoError(t, err)
	assert.Equal(t, 4, *got.Major)
	assert.Equal(t, 2, *got.Minor)
}

func TestResolveRunTimeFallsBackToDefault(t *testing.T) {
	r := resolve.New(nil, host.Platform{}, nil)
	def := mustPartial(t, "4.3-stable").ToDeterminate()

	got, err := r.ResolveRunTime(resolve.RunTimeRequest{Default: &def})
	require.NoError(t, err)
	assert.Equal(t, 4, *got.Major)
}

func TestResolveRunTimeNoDefaultFails(t *testing.T) {
	r := resolve.New(nil, host.Platform{}, nil)
	_, err := r.ResolveRunTime(resolve.RunTimeRequest{})
	require.Error(t, err)
}

func TestResolveRunTimeConflictFailsWithoutForce(t *testing.T) {
	r := resolve.New(nil, host.Platform{}, nil)
	explicit := mustPartial(t, "4.2")
	hint := mustPartial(t, "3")

	_, err := r.ResolveRunTime(resolve.RunTimeRequest{Explicit: &explicit, ProjectHint: &hint})
	require.Error(t, err)
}

func TestResolveRunTimeConflictAllowedWithForce(t *testing.T) {
	r := resolve.New(nil, host.Platform{}, nil)
	explicit := mustPartial(t, "4.2")
	hint := mustPartial(t, "3")

	got, err := r.ResolveRunTime(resolve.RunTimeRequest{Explicit: &explicit, ProjectHint: &hint, Force: true})
	require.NoError(t, err)
	assert.Equal(t, 4, *got.Major)
}

type fakeWarner struct{ warnings []string }

func (w *fakeWarner) Warnf(format string, args ...any) {
	w.warnings = append(w.warnings, format)
}

func TestResolveRunTimeWarnsOnConflictEvenWithoutForce(t *testing.T) {
	warner := &fakeWarner{}
	r := resolve.New(nil, host.Platform{}, warner)
	explicit := mustPartial(t, "4.2")
	hint := mustPartial(t, "3")

	_, err := r.ResolveRunTime(resolve.RunTimeRequest{Explicit: &explicit, ProjectHint: &hint})
	require.Error(t, err)
	require.Len(t, warner.warnings, 1)
}

func TestResolveRunTimeWarnsOnConflictWithForce(t *testing.T) {
	warner := &fakeWarner{}
	r := resolve.New(nil, host.Platform{}, warner)
	explicit := mustPartial(t, "4.2")
	hint := mustPartial(t, "3")

	_, err := r.ResolveRunTime(resolve.RunTimeRequest{Explicit: &explicit, ProjectHint: &hint, Force: true})
	require.NoError(t, err)
	require.Len(t, warner.warnings, 1)
}
