package main

import (
	"github.com/spf13/cobra"

	"github.com/terassyi/gdvm/internal/i18n"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the cached release index from the registry",
	Args:  cobra.NoArgs,
	RunE:  runRefresh,
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	fmtr := formatter(cmd)
	a, err := newApp(fmtr)
	if err != nil {
		return err
	}

	if err := a.Catalog.UpdateCache(cmd.Context()); err != nil {
		return err
	}

	cmd.Println(i18n.T("cli.refresh_done"))
	return nil
}
