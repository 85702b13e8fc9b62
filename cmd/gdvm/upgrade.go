package main

import (
	"github.com/spf13/cobra"

	"github.com/terassyi/gdvm/internal/i18n"
)

var (
	upgradeMajor bool
	upgradeYes   bool
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade gdvm itself to the latest release",
	Long: `upgrade checks GitHub releases for a newer gdvm build in the
running binary's major version, downloads and verifies it, and swaps
it into place. --major also considers releases in a newer major
version; either kind of upgrade requires --yes to actually apply,
otherwise upgrade only reports what it found.`,
	Args: cobra.NoArgs,
	RunE: runUpgrade,
}

func init() {
	upgradeCmd.Flags().BoolVar(&upgradeMajor, "major", false, "also consider a newer major version")
	upgradeCmd.Flags().BoolVar(&upgradeYes, "yes", false, "apply the upgrade instead of only reporting it")
}

func runUpgrade(cmd *cobra.Command, _ []string) error {
	fmtr := formatter(cmd)
	a, err := newApp(fmtr)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	status, err := a.Updater.CheckForUpgrades(ctx)
	if err != nil {
		return err
	}

	if !status.Available() {
		cmd.Println(i18n.T("cli.upgrade_up_to_date"))
		return nil
	}
	if status.NewVersion != "" {
		cmd.Print(i18n.T("cli.upgrade_new_version", status.NewVersion))
	}
	if status.NewMajorVersion != "" {
		cmd.Print(i18n.T("cli.upgrade_new_major", status.NewMajorVersion))
	}

	if !upgradeYes {
		cmd.Println(i18n.T("cli.upgrade_pass_yes"))
		return nil
	}

	if err := a.Updater.Upgrade(ctx, upgradeMajor); err != nil {
		return err
	}
	cmd.Println(i18n.T("cli.upgrade_done"))
	return nil
}
