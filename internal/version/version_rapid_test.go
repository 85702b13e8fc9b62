package version_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/terassyi/gdvm/internal/version"
)

func genReleaseType(t *rapid.T) string {
	return rapid.SampledFrom([]string{"stable", "rc1", "rc2", "beta1", "dev3"}).Draw(t, "releaseType")
}

func genConcrete(t *rapid.T) version.Concrete {
	major := rapid.IntRange(0, 5).Draw(t, "major")
	minor := rapid.IntRange(0, 5).Draw(t, "minor")
	patch := rapid.IntRange(0, 5).Draw(t, "patch")
	csharp := rapid.Bool().Draw(t, "csharp")
	return version.Concrete{
		Major:       major,
		Minor:       minor,
		Patch:       patch,
		ReleaseType: genReleaseType(t),
		CSharp:      &csharp,
	}
}

// TestRapidInstallStringRoundTrips checks that formatting a concrete
// version to install form and parsing it back yields an equivalent
// concrete version (spec property: parse/format round-trip).
func TestRapidInstallStringRoundTrips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := genConcrete(t)
		s := c.ToInstallStr()
		p, err := version.ParseInstall(s)
		require.NoError(t, err)
		got := p.ToDeterminate()
		require.Equal(t, c.Major, got.Major)
		require.Equal(t, c.Minor, got.Minor)
		require.Equal(t, c.Patch, got.Patch)
		require.Equal(t, c.ReleaseType, got.ReleaseType)
		require.NotNil(t, got.CSharp)
		require.Equal(t, *c.CSharp, *got.CSharp)
	})
}

// TestRapidExactMatchSelfMatches checks that a pattern built from a
// concrete version's own fields always matches that version (spec
// property: an exact-form pattern always matches its source).
func TestRapidExactMatchSelfMatches(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := genConcrete(t)
		p := c.ToIndeterminate()
		require.True(t, p.Matches(c))
	})
}

// TestRapidSortDescendingIsOrdered checks that after SortDescending, no
// element is smaller than the one following it under the
// (major,minor,patch,subpatch,priority) comparator (spec property: sort
// order is newest-first and stable under repeated application).
func TestRapidSortDescendingIsOrdered(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 12).Draw(t, "n")
		versions := make([]version.Concrete, n)
		for i := range versions {
			versions[i] = genConcrete(t)
		}
		version.SortDescending(versions)
		for i := 1; i < len(versions); i++ {
			require.False(t, less(versions[i-1], versions[i]),
				"element %d (%v) sorted before %d (%v) out of order", i-1, versions[i-1], i, versions[i])
		}
	})
}

func less(a, b version.Concrete) bool {
	if a.Major != b.Major {
		return a.Major < b.Major
	}
	if a.Minor != b.Minor {
		return a.Minor < b.Minor
	}
	if a.Patch != b.Patch {
		return a.Patch < b.Patch
	}
	if a.Subpatch != b.Subpatch {
		return a.Subpatch < b.Subpatch
	}
	return version.ReleaseTypePriority(a.ReleaseType) < version.ReleaseTypePriority(b.ReleaseType)
}
