package installer

import (
	gdvmerrors "github.com/terassyi/gdvm/internal/errors"
	"github.com/terassyi/gdvm/internal/host"
	"github.com/terassyi/gdvm/internal/registry"
	"github.com/terassyi/gdvm/internal/version"
)

// selected is the resolved download target for one (version, platform) pair.
type selected struct {
	url    string
	sha512 string
}

// selectBinary picks the asset in meta matching platform and gv's C#/mono
// flag, preferring a macOS "universal" build over an arch-specific one
// when both are published.
func selectBinary(meta registry.ReleaseMetadata, platform host.Platform, gv version.Concrete) (selected, error) {
	isCSharp := gv.CSharp != nil && *gv.CSharp
	platformKey := registry.PlatformKey(platform, isCSharp)

	platformMap, ok := meta.Binaries[platformKey]
	if !ok {
		return selected{}, gdvmerrors.NewUnsupportedPlatformError(string(platform.OS))
	}

	archKey := registry.ArchKey(platform)
	archChoice := archKey
	if platform.OS == host.Macos {
		if _, hasUniversal := platformMap["universal"]; hasUniversal {
			archChoice = "universal"
		}
	}

	binary, ok := platformMap[archChoice]
	if !ok {
		return selected{}, gdvmerrors.NewUnsupportedArchError(string(platform.OS), string(platform.Arch))
	}

	if len(binary.URLs) == 0 {
		return selected{}, gdvmerrors.NewMissingBinaryURLError(gv.ToDisplayStr(), string(platform.OS), string(platform.Arch))
	}

	return selected{url: binary.URLs[0], sha512: binary.SHA512}, nil
}
