package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/terassyi/gdvm/internal/cache"
	"github.com/terassyi/gdvm/internal/i18n"
)

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Clear every on-disk cache (registry index, capabilities, downloaded archives)",
	Long: `clear-cache always zeroes every cache uniformly: the registry
index, the derived capability records, the self-update check
timestamp, and any cached release archives.`,
	Args: cobra.NoArgs,
	RunE: runClearCache,
}

func runClearCache(cmd *cobra.Command, _ []string) error {
	fmtr := formatter(cmd)
	a, err := newApp(fmtr)
	if err != nil {
		return err
	}

	now := time.Time{}
	if err := a.Cache.ClearGdvmCache(now); err != nil {
		return err
	}
	if err := a.Cache.ClearCapabilitiesCache(now); err != nil {
		return err
	}
	if err := a.Cache.SaveRegistryCache(cache.RegistryCache{}); err != nil {
		return err
	}
	if a.Artifact.Exists() {
		if err := a.Artifact.ClearFiles(); err != nil {
			return err
		}
	}

	cmd.Println(i18n.T("cli.clear_cache_done"))
	return nil
}
