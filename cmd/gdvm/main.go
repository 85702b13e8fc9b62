package main

import (
	"os"
	"strings"

	gdvmerrors "github.com/terassyi/gdvm/internal/errors"
)

// version is the tool's own semver, compared against GitHub releases by
// the self-updater. Overridden at build time via -ldflags.
var version = "0.0.0-dev"

func main() {
	if alias, ok := shimAlias(); ok {
		os.Exit(runAsShimAlias(alias, os.Args[1:]))
		return
	}

	if _, err := rootCmd.ExecuteC(); err != nil {
		fmtr := gdvmerrors.NewFormatter(os.Stderr, noColor || os.Getenv("NO_COLOR") != "")
		fmtr.Print(err)
		os.Exit(1)
	}
}

// shimAlias reads GDVM_ALIAS, falling back to the binary's own file
// stem, and reports whether it names a Godot invocation (spec §4.14:
// the main binary short-circuits argument parsing whenever the alias
// contains "godot").
func shimAlias() (string, bool) {
	alias := os.Getenv("GDVM_ALIAS")
	if alias == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", false
		}
		alias = exeStem(exe)
	}
	alias = strings.ToLower(alias)
	if strings.Contains(alias, "godot") {
		return alias, true
	}
	return "", false
}

func exeStem(exePath string) string {
	base := exePath
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, ".exe")
	return base
}
