package main

import (
	"github.com/spf13/cobra"

	"github.com/terassyi/gdvm/internal/installer"
	"github.com/terassyi/gdvm/internal/printer"
	"github.com/terassyi/gdvm/internal/version"
)

var (
	listRemote    bool
	listPre       bool
	listCacheOnly bool
	listLimit     int
	listJSON      bool
)

var listCmd = &cobra.Command{
	Use:   "list [pattern]",
	Short: "List installed or available Godot releases",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listRemote, "remote", false, "list releases from the registry instead of installed ones")
	listCmd.Flags().BoolVar(&listPre, "include-pre", false, "include pre-release versions")
	listCmd.Flags().BoolVar(&listCacheOnly, "cache-only", false, "never refresh the registry index over the network")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "cap the number of rows printed (0 = unlimited)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print the list as JSON instead of a table")
}

func runList(cmd *cobra.Command, args []string) error {
	fmtr := formatter(cmd)
	a, err := newApp(fmtr)
	if err != nil {
		return err
	}

	pattern, hasPattern, err := parseVersionArg(args, nil)
	if err != nil {
		return err
	}

	var versions []version.Concrete
	if listRemote {
		var filter *version.Partial
		if hasPattern {
			filter = &pattern
		}
		versions, err = a.Catalog.ListReleases(cmd.Context(), filter, listCacheOnly)
		if err != nil {
			return err
		}
		if !listPre {
			versions = filterStable(versions)
		}
	} else {
		versions, err = installer.ListInstalled(a.Paths)
		if err != nil {
			return err
		}
		if hasPattern {
			versions = a.Resolver.ResolveInstalled(versions, pattern)
		} else {
			version.SortDescending(versions)
		}
	}

	if listLimit > 0 && len(versions) > listLimit {
		versions = versions[:listLimit]
	}

	opts := printer.Options{JSON: listJSON}
	if def, hasDefault, _ := a.Pin.GetDefault(); hasDefault {
		opts.Default = &def
	}
	return printer.PrintVersions(cmd.OutOrStdout(), versions, opts)
}

// filterStable drops pre-release entries, unless that would empty the
// list (spec: the newest stable line should never hide a series that
// only has pre-releases out from under --remote list without a flag).
func filterStable(versions []version.Concrete) []version.Concrete {
	var stable []version.Concrete
	for _, v := range versions {
		if v.IsStable() {
			stable = append(stable, v)
		}
	}
	if len(stable) == 0 {
		return versions
	}
	return stable
}
