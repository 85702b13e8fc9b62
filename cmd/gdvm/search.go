package main

import (
	"github.com/spf13/cobra"

	"github.com/terassyi/gdvm/internal/printer"
	"github.com/terassyi/gdvm/internal/version"
)

var (
	searchPre       bool
	searchCacheOnly bool
	searchLimit     int
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search [pattern]",
	Short: "Search the registry for available Godot releases",
	Long:  `search is list --remote with no installed/default marker column.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchPre, "include-pre", false, "include pre-release versions")
	searchCmd.Flags().BoolVar(&searchCacheOnly, "cache-only", false, "never refresh the registry index over the network")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "cap the number of rows printed (0 = unlimited)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print the list as JSON instead of a table")
}

func runSearch(cmd *cobra.Command, args []string) error {
	fmtr := formatter(cmd)
	a, err := newApp(fmtr)
	if err != nil {
		return err
	}

	pattern, hasPattern, err := parseVersionArg(args, nil)
	if err != nil {
		return err
	}

	var filter *version.Partial
	if hasPattern {
		filter = &pattern
	}

	versions, err := a.Catalog.ListReleases(cmd.Context(), filter, searchCacheOnly)
	if err != nil {
		return err
	}
	if !searchPre {
		versions = filterStable(versions)
	}
	if searchLimit > 0 && len(versions) > searchLimit {
		versions = versions[:searchLimit]
	}

	return printer.PrintVersions(cmd.OutOrStdout(), versions, printer.Options{JSON: searchJSON})
}
