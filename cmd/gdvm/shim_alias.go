package main

import (
	"os"
	"runtime"
	"strings"

	gdvmerrors "github.com/terassyi/gdvm/internal/errors"
	"github.com/terassyi/gdvm/internal/installer"
	"github.com/terassyi/gdvm/internal/resolve"
)

// runAsShimAlias implements spec §4.14: a binary invoked under a
// "*godot*" alias picks a version from the .gdvmrc pin or project.godot
// hint (via DetermineVersion), else the default, chooses only among
// installed versions (nothing is auto-installed), and forwards args
// verbatim to that engine. It returns 0 on success and 1 on any error,
// including a non-zero exit of the engine.
func runAsShimAlias(alias string, args []string) int {
	fmtr := gdvmerrors.NewFormatter(os.Stderr, os.Getenv("NO_COLOR") != "")

	a, err := newApp(fmtr)
	if err != nil {
		fmtr.Print(err)
		return 1
	}

	console := runtime.GOOS != "windows"
	if runtime.GOOS == "windows" {
		console = strings.Contains(alias, "console")
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmtr.Print(err)
		return 1
	}

	req := resolve.RunTimeRequest{}
	if hint, ok := a.Pin.DetermineVersion(cwd); ok {
		req.Pin = &hint
	}
	if def, ok, err := a.Pin.GetDefault(); err == nil && ok {
		req.Default = &def
	}

	pattern, err := a.Resolver.ResolveRunTime(req)
	if err != nil {
		fmtr.Print(err)
		return 1
	}

	installed, err := installer.ListInstalled(a.Paths)
	if err != nil {
		fmtr.Print(err)
		return 1
	}

	gv, err := pickInstalled(a, pattern, installed)
	if err != nil {
		fmtr.Print(err)
		return 1
	}

	if err := a.Launcher.Run(gv, console, args); err != nil {
		fmtr.Print(err)
		return 1
	}
	return 0
}
