package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terassyi/gdvm/internal/version"
)

func concrete(major, minor, patch, subpatch int, releaseType string, csharp *bool) version.Concrete {
	return version.Concrete{
		Major: major, Minor: minor, Patch: patch, Subpatch: subpatch,
		ReleaseType: releaseType, CSharp: csharp,
	}
}

func TestParseInstall(t *testing.T) {
	tests := []struct {
		in   string
		want version.Concrete
	}{
		{"4.1.1-rc1-csharp", concrete(4, 1, 1, 0, "rc1", boolPtr(true))},
		{"2.0.4.1-stable", concrete(2, 0, 4, 1, "stable", boolPtr(false))},
		{"3-csharp", concrete(3, 0, 0, 0, "", boolPtr(true))},
	}
	for _, tt := range tests {
		p, err := version.ParseInstall(tt.in)
		require.NoError(t, err, tt.in)
		got := p.ToDeterminate()
		assert.Equal(t, tt.want.Major, got.Major, tt.in)
		assert.Equal(t, tt.want.Minor, got.Minor, tt.in)
		assert.Equal(t, tt.want.Patch, got.Patch, tt.in)
		assert.Equal(t, tt.want.Subpatch, got.Subpatch, tt.in)
		if tt.want.ReleaseType != "" {
			assert.Equal(t, tt.want.ReleaseType, got.ReleaseType, tt.in)
		}
		require.NotNil(t, got.CSharp, tt.in)
		assert.Equal(t, *tt.want.CSharp, *got.CSharp, tt.in)
	}
}

func TestParseInstallRejectsTooManyParts(t *testing.T) {
	_, err := version.ParseInstall("1.2.3.4.5")
	require.Error(t, err)
}

func TestToVersionStringTruncation(t *testing.T) {
	tests := []struct {
		name string
		c    version.Concrete
		want string
	}{
		{"2.0.4.1-stable-csharp", concrete(2, 0, 4, 1, "stable", boolPtr(true)), "2.0.4.1-stable"},
		{"2.0.0.0-stable-csharp", concrete(2, 0, 0, 0, "stable", boolPtr(true)), "2.0-stable"},
		{"4.3.0-stable", concrete(4, 3, 0, 0, "stable", nil), "4.3-stable"},
		{"4.3.1-stable", concrete(4, 3, 1, 0, "stable", nil), "4.3.1-stable"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.c.ToRemoteStr(), tt.name)
	}
}

func TestToInstallStr(t *testing.T) {
	c := concrete(4, 1, 1, 0, "rc1", boolPtr(true))
	assert.Equal(t, "4.1.1-rc1-csharp", c.ToInstallStr())
	c2 := concrete(4, 1, 1, 0, "rc1", boolPtr(false))
	assert.Equal(t, "4.1.1-rc1", c2.ToInstallStr())
}

func TestToPinnedStr(t *testing.T) {
	c := concrete(4, 3, 0, 0, "stable", boolPtr(true))
	assert.Equal(t, "4.3.0-stable-csharp", c.ToPinnedStr())
}

func TestToDisplayStr(t *testing.T) {
	c := concrete(4, 1, 1, 0, "rc1", boolPtr(true))
	assert.Equal(t, "4.1.1-rc1 (C#)", c.ToDisplayStr())
	c2 := concrete(4, 1, 1, 0, "rc1", boolPtr(false))
	assert.Equal(t, "4.1.1-rc1", c2.ToDisplayStr())
}

func TestMatches(t *testing.T) {
	tests := []struct {
		pattern string
		target  string
		want    bool
	}{
		{"4", "4.1.1-rc1", true},
		{"4.1", "4.1.1-rc1", true},
		{"4.2", "4.1.1-rc1", false},
		{"stable", "4.3-stable", true},
		{"stable", "4.3-rc1", false},
	}
	for _, tt := range tests {
		p, err := version.ParseMatch(tt.pattern)
		require.NoError(t, err, tt.pattern)
		c, err := version.ParseRegistry(tt.target, nil)
		require.NoError(t, err, tt.target)
		got := p.Matches(c.ToDeterminate())
		assert.Equal(t, tt.want, got, "%s vs %s", tt.pattern, tt.target)
	}
}

func TestIsIncomplete(t *testing.T) {
	stable := "stable"
	complete := version.Partial{Major: intPtr(4), Minor: intPtr(3), Patch: intPtr(0), ReleaseType: &stable}
	assert.False(t, complete.IsIncomplete())

	missingPatch := version.Partial{Major: intPtr(4), Minor: intPtr(3), ReleaseType: &stable}
	assert.True(t, missingPatch.IsIncomplete())

	v204WithSubpatch := version.Partial{Major: intPtr(2), Minor: intPtr(0), Patch: intPtr(4), Subpatch: intPtr(1), ReleaseType: &stable}
	assert.False(t, v204WithSubpatch.IsIncomplete())

	v204WithoutSubpatch := version.Partial{Major: intPtr(2), Minor: intPtr(0), Patch: intPtr(4), ReleaseType: &stable}
	assert.True(t, v204WithoutSubpatch.IsIncomplete())
}

func TestSortDescending(t *testing.T) {
	versions := []version.Concrete{
		concrete(4, 1, 0, 0, "rc1", nil),
		concrete(4, 2, 0, 0, "stable", nil),
		concrete(4, 1, 0, 0, "stable", nil),
		concrete(3, 5, 0, 0, "stable", nil),
	}
	version.SortDescending(versions)
	want := []string{"4.2-stable", "4.1-stable", "4.1-rc1", "3.5-stable"}
	for i, v := range versions {
		assert.Equal(t, want[i], v.ToRemoteStr())
	}
}

func TestReleaseTypePriority(t *testing.T) {
	assert.Greater(t, version.ReleaseTypePriority("stable"), version.ReleaseTypePriority("rc1"))
	assert.Greater(t, version.ReleaseTypePriority("rc1"), version.ReleaseTypePriority("beta2"))
	assert.Greater(t, version.ReleaseTypePriority("beta2"), version.ReleaseTypePriority("dev3"))
	assert.Greater(t, version.ReleaseTypePriority("dev3"), version.ReleaseTypePriority("custom"))
}

func TestConflictsWith(t *testing.T) {
	a, err := version.ParseMatch("4.1")
	require.NoError(t, err)
	b, err := version.ParseMatch("4.2")
	require.NoError(t, err)
	assert.True(t, a.ConflictsWith(b))

	c, err := version.ParseMatch("4")
	require.NoError(t, err)
	assert.False(t, a.ConflictsWith(c))
}

func TestValidateGodotVersion(t *testing.T) {
	assert.True(t, version.ValidateGodotVersion("4.3"))
	assert.True(t, version.ValidateGodotVersion("4.3.0-rc1"))
	assert.False(t, version.ValidateGodotVersion("stable"))
	assert.False(t, version.ValidateGodotVersion("not-a-version"))
}

func TestValidateRemoteVersion(t *testing.T) {
	assert.True(t, version.ValidateRemoteVersion("stable"))
	assert.True(t, version.ValidateRemoteVersion("4.3"))
	assert.False(t, version.ValidateRemoteVersion("garbage!"))
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }
