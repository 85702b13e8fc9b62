package main

import (
	"context"
	"os"

	gdvmerrors "github.com/terassyi/gdvm/internal/errors"
	"github.com/terassyi/gdvm/internal/i18n"
	"github.com/terassyi/gdvm/internal/installer"
	"github.com/terassyi/gdvm/internal/version"
)

// parseVersionArg parses an optional positional version argument,
// returning ok=false when none was given (every source below the
// explicit CLI argument then gets a chance to supply one).
func parseVersionArg(args []string, csharp *bool) (version.Partial, bool, error) {
	if len(args) == 0 {
		return version.Partial{}, false, nil
	}
	p, err := version.ParseMatch(args[0])
	if err != nil {
		return version.Partial{}, false, err
	}
	if csharp != nil {
		p.CSharp = csharp
	}
	return p, true, nil
}

// splitForwardedArgs returns run's forwarded args unchanged as the engine
// args (a "--path <dir>" pair included), and reports that pair's
// directory, if present, as the project-root override.
func splitForwardedArgs(args []string) (engineArgs []string, pathOverride string) {
	for i := 0; i < len(args); i++ {
		if args[i] == "--path" && i+1 < len(args) {
			pathOverride = args[i+1]
		}
	}
	return args, pathOverride
}

// projectRoot returns pathOverride if set, otherwise the current
// working directory.
func projectRoot(pathOverride string) (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	return os.Getwd()
}

// displayPartial renders a Partial the way error messages and table
// output do, by zero-filling it into a Concrete first.
func displayPartial(p version.Partial) string {
	return p.ToDeterminate().ToDisplayStr()
}

// pickInstalled narrows installed versions matching pattern down to
// exactly one, surfacing ambiguity as MultipleVersionsFoundError.
func pickInstalled(a *app, pattern version.Partial, installed []version.Concrete) (version.Concrete, error) {
	display := displayPartial(pattern)
	matches := a.Resolver.ResolveInstalled(installed, pattern)
	switch len(matches) {
	case 0:
		return version.Concrete{}, gdvmerrors.NewVersionNotFoundError(display)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, m.ToDisplayStr())
		}
		return version.Concrete{}, gdvmerrors.NewMultipleVersionsFoundError(display, names)
	}
}

// ensureInstalled installs pattern's resolved version if it's not
// already present, reporting whether an install actually ran.
func ensureInstalled(ctx context.Context, a *app, pattern version.Partial, force bool) (version.Concrete, installer.Outcome, error) {
	gv, err := a.Resolver.ResolveAutoInstall(ctx, pattern, pattern.CSharp)
	if err != nil {
		return version.Concrete{}, 0, err
	}
	outcome, err := a.Installer.Install(ctx, gv, force, false)
	if err != nil {
		return version.Concrete{}, 0, err
	}
	return gv, outcome, nil
}

// gdvmPrereleaseError reports that the only match for a bare pattern was
// a pre-release, which --include-pre must be given to accept.
func gdvmPrereleaseError(gv version.Concrete) error {
	return gdvmerrors.NewVersionNotFoundError(
		gv.ToDisplayStr() + i18n.T("error.prerelease_hint_suffix"))
}
