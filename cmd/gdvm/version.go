package main

import (
	"github.com/spf13/cobra"

	"github.com/terassyi/gdvm/internal/i18n"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gdvm version",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println(i18n.T("cli.version_label"), version)
	},
}
