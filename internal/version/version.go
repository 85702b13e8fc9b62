// Package version parses and formats Godot engine version strings and
// implements the match/sort semantics used by the catalog and resolver.
//
// A version is modeled in two shapes: Partial, where any field may be
// absent (a wildcard during matching), and Concrete, where every numeric
// field and the release type are set. Concrete is produced from Partial
// by zero-filling absent fields.
package version

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	gdvmerrors "github.com/terassyi/gdvm/internal/errors"
)

// Partial is a version with any field possibly absent, used for pins,
// project hints, and user-entered match strings.
//
// Invariant: if Subpatch is set then Patch is set; if Patch is set then
// Minor is set. Only the historical release 2.0.4.1 ever sets Subpatch.
type Partial struct {
	Major       *int
	Minor       *int
	Patch       *int
	Subpatch    *int
	ReleaseType *string
	CSharp      *bool
}

// Concrete is a version with every field set, used anywhere a unique
// install directory name or registry tag must be produced.
type Concrete struct {
	Major       int
	Minor       int
	Patch       int
	Subpatch    int
	ReleaseType string
	CSharp      *bool
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

var versionPartRe = regexp.MustCompile(`^\d+(\.\d+){0,3}(-[A-Za-z0-9]+)?$`)

// ValidateGodotVersion reports whether s matches the CLI "Godot version"
// input shape: 1-4 dot-separated integers plus an optional -type suffix.
func ValidateGodotVersion(s string) bool {
	return versionPartRe.MatchString(s)
}

// ValidateRemoteVersion is ValidateGodotVersion plus the literal "stable".
func ValidateRemoteVersion(s string) bool {
	return s == "stable" || ValidateGodotVersion(s)
}

// ParseInstall parses an install-folder-form string, e.g.
// "4.1.1-rc1-csharp", "2.0.4.1-stable", "3-csharp". The -csharp suffix,
// if present, sets the C#/mono flag explicitly to true; its absence sets
// it explicitly to false (install-form strings always commit to a variant).
func ParseInstall(s string) (Partial, error) {
	return parseWithCSharpAndType(s, false)
}

// ParseRegistry parses a registry-tag-form string, e.g. "4.1-stable",
// "3-rc1", with the C#/mono flag supplied externally (registry tags carry
// no -csharp suffix of their own).
func ParseRegistry(s string, csharp *bool) (Partial, error) {
	p, err := parseWithCSharpAndType(s, true)
	if err != nil {
		return Partial{}, err
	}
	p.CSharp = csharp
	return p, nil
}

// ParseMatch parses a user-entered shorthand version. The literal "stable"
// is accepted and parses as "release type = stable, all numeric parts
// wildcard"; anything else is parsed like a registry tag.
func ParseMatch(s string) (Partial, error) {
	if s == "stable" {
		return Partial{ReleaseType: strPtr("stable")}, nil
	}
	return ParseRegistry(s, nil)
}

// parseWithCSharpAndType implements the shared parsing core for install
// and registry dialects, distinguished by the remote flag: remote=false
// dialects (install form) look for a trailing "-csharp" suffix and
// default the flag to false when absent; remote=true dialects leave the
// flag unset for the caller to supply.
func parseWithCSharpAndType(raw string, remote bool) (Partial, error) {
	withoutCSharp := raw
	var csharp *bool
	if !remote && strings.HasSuffix(raw, "-csharp") {
		withoutCSharp = raw[:len(raw)-len("-csharp")]
		csharp = boolPtr(true)
	} else if !remote {
		csharp = boolPtr(false)
	}

	versionPart := withoutCSharp
	var releaseType *string
	if idx := strings.LastIndex(withoutCSharp, "-"); idx >= 0 {
		versionPart = withoutCSharp[:idx]
		rt := withoutCSharp[idx+1:]
		releaseType = &rt
	}

	pieces := strings.Split(versionPart, ".")
	if versionPart == "" {
		pieces = nil
	}
	if len(pieces) > 4 {
		return Partial{}, gdvmerrors.NewInvalidVersionStringError(raw)
	}

	var major, minor, patch, subpatch *int
	for i, piece := range pieces {
		n, err := strconv.Atoi(piece)
		if err != nil || n < 0 {
			return Partial{}, gdvmerrors.NewInvalidVersionStringError(raw)
		}
		switch i {
		case 0:
			major = intPtr(n)
		case 1:
			minor = intPtr(n)
		case 2:
			patch = intPtr(n)
		case 3:
			subpatch = intPtr(n)
		}
	}

	return Partial{
		Major:       major,
		Minor:       minor,
		Patch:       patch,
		Subpatch:    subpatch,
		ReleaseType: releaseType,
		CSharp:      csharp,
	}, nil
}

// versionString renders the numeric components, eliding trailing zeros,
// per the registry-tag dialect (fullyQualified=false) or the pin dialect
// (fullyQualified=true, which always includes patch).
func versionString(c Concrete, fullyQualified bool) string {
	base := fmt.Sprintf("%d.%d", c.Major, c.Minor)
	if c.Patch != 0 || c.Subpatch != 0 || fullyQualified {
		base += fmt.Sprintf(".%d", c.Patch)
		if c.Subpatch != 0 {
			base += fmt.Sprintf(".%d", c.Subpatch)
		}
	}
	return base
}

// ToRemoteStr formats c as a registry tag, e.g. "4.3-stable", "2.0.4.1-stable".
func (c Concrete) ToRemoteStr() string {
	return versionString(c, false) + "-" + c.ReleaseType
}

// ToInstallStr formats c as an install-folder name: the registry tag with
// a "-csharp" suffix iff the C#/mono flag is true.
func (c Concrete) ToInstallStr() string {
	base := c.ToRemoteStr()
	if c.CSharp != nil && *c.CSharp {
		base += "-csharp"
	}
	return base
}

// ToPinnedStr formats c for a .gdvmrc pin file: patch is always present.
func (c Concrete) ToPinnedStr() string {
	base := versionString(c, true) + "-" + c.ReleaseType
	if c.CSharp != nil && *c.CSharp {
		base += "-csharp"
	}
	return base
}

// ToDisplayStr formats c for human display: the registry tag with " (C#)"
// appended iff the C#/mono flag is true.
func (c Concrete) ToDisplayStr() string {
	base := c.ToRemoteStr()
	if c.CSharp != nil && *c.CSharp {
		base += " (C#)"
	}
	return base
}

// IsStable reports whether c's release type is "stable".
func (c Concrete) IsStable() bool { return c.ReleaseType == "stable" }

// ToIndeterminate projects c back to a Partial with every field present,
// for use in comparisons against partials (spec §8 property 1).
func (c Concrete) ToIndeterminate() Partial {
	rt := c.ReleaseType
	return Partial{
		Major:       intPtr(c.Major),
		Minor:       intPtr(c.Minor),
		Patch:       intPtr(c.Patch),
		Subpatch:    intPtr(c.Subpatch),
		ReleaseType: &rt,
		CSharp:      c.CSharp,
	}
}

// ToDeterminate zero-fills every absent field of p, producing a Concrete
// suitable for forming an install directory name or registry tag.
func (p Partial) ToDeterminate() Concrete {
	deref := func(v *int) int {
		if v == nil {
			return 0
		}
		return *v
	}
	rt := "stable"
	if p.ReleaseType != nil {
		rt = *p.ReleaseType
	}
	return Concrete{
		Major:       deref(p.Major),
		Minor:       deref(p.Minor),
		Patch:       deref(p.Patch),
		Subpatch:    deref(p.Subpatch),
		ReleaseType: rt,
		CSharp:      p.CSharp,
	}
}

// IsIncomplete reports whether p is missing any of major, minor, patch,
// or release type — except for the historical 2.0.4.* line, where
// subpatch also counts, since 2.0.4.1 is the only release that carries one.
func (p Partial) IsIncomplete() bool {
	is204 := p.Major != nil && *p.Major == 2 && p.Minor != nil && *p.Minor == 0 && p.Patch != nil && *p.Patch == 4
	if is204 {
		return p.Subpatch == nil || p.ReleaseType == nil
	}
	return p.Major == nil || p.Minor == nil || p.Patch == nil || p.ReleaseType == nil
}

// Matches reports whether every present field of p equals the
// corresponding field of c. The C#/mono flag is treated uniformly with
// the numeric fields: a p with no flag ignores c's flag.
func (p Partial) Matches(c Concrete) bool {
	ci := c.ToIndeterminate()
	if p.Major != nil && (ci.Major == nil || *ci.Major != *p.Major) {
		return false
	}
	if p.Minor != nil && (ci.Minor == nil || *ci.Minor != *p.Minor) {
		return false
	}
	if p.Patch != nil && (ci.Patch == nil || *ci.Patch != *p.Patch) {
		return false
	}
	if p.Subpatch != nil && (ci.Subpatch == nil || *ci.Subpatch != *p.Subpatch) {
		return false
	}
	if p.ReleaseType != nil && (ci.ReleaseType == nil || *ci.ReleaseType != *p.ReleaseType) {
		return false
	}
	if p.CSharp != nil && (ci.CSharp == nil || *ci.CSharp != *p.CSharp) {
		return false
	}
	return true
}

// ConflictsWith reports whether a and b disagree on any field present in
// both, including the C#/mono flag when either specifies it. Used to
// compare a pinned/explicit request against a project-detected hint.
func (a Partial) ConflictsWith(b Partial) bool {
	intConflict := func(x, y *int) bool { return x != nil && y != nil && *x != *y }
	if intConflict(a.Major, b.Major) || intConflict(a.Minor, b.Minor) ||
		intConflict(a.Patch, b.Patch) || intConflict(a.Subpatch, b.Subpatch) {
		return true
	}
	if a.ReleaseType != nil && b.ReleaseType != nil && *a.ReleaseType != *b.ReleaseType {
		return true
	}
	if a.CSharp != nil && b.CSharp != nil && *a.CSharp != *b.CSharp {
		return true
	}
	return false
}

// ReleaseTypePriority orders release-type tokens for sorting: stable > rc*
// > beta* > dev* > unknown, newest first.
func ReleaseTypePriority(releaseType string) int {
	switch {
	case releaseType == "" || strings.HasPrefix(releaseType, "stable"):
		return 4
	case strings.HasPrefix(releaseType, "rc"):
		return 3
	case strings.HasPrefix(releaseType, "beta"):
		return 2
	case strings.HasPrefix(releaseType, "dev"):
		return 1
	default:
		return 0
	}
}

// SortDescending sorts concrete versions newest-first by
// (major, minor, patch, subpatch, release-type-priority).
func SortDescending(versions []Concrete) {
	sort.SliceStable(versions, func(i, j int) bool {
		a, b := versions[i], versions[j]
		if a.Major != b.Major {
			return a.Major > b.Major
		}
		if a.Minor != b.Minor {
			return a.Minor > b.Minor
		}
		if a.Patch != b.Patch {
			return a.Patch > b.Patch
		}
		if a.Subpatch != b.Subpatch {
			return a.Subpatch > b.Subpatch
		}
		return ReleaseTypePriority(a.ReleaseType) > ReleaseTypePriority(b.ReleaseType)
	})
}
