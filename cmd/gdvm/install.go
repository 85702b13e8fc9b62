package main

import (
	"github.com/spf13/cobra"

	"github.com/terassyi/gdvm/internal/i18n"
	"github.com/terassyi/gdvm/internal/installer"
	"github.com/terassyi/gdvm/internal/version"
)

var (
	installCSharp  bool
	installForce   bool
	installRefresh bool
	installPre     bool
)

var installCmd = &cobra.Command{
	Use:   "install [version]",
	Short: "Install a Godot engine release",
	Long: `Install downloads and unpacks an engine release into its own
directory under the gdvm home. A pattern without a release type
resolves to the newest matching stable release; when only pre-releases
match, the newest of them is installed only if --include-pre is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&installCSharp, "csharp", false, "install the C#/mono build")
	installCmd.Flags().BoolVar(&installForce, "force", false, "reinstall even if already present")
	installCmd.Flags().BoolVar(&installRefresh, "refresh", false, "refresh the release index before resolving")
	installCmd.Flags().BoolVar(&installPre, "include-pre", false, "allow pre-release candidates")
}

func runInstall(cmd *cobra.Command, args []string) error {
	fmtr := formatter(cmd)
	a, err := newApp(fmtr)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if installRefresh {
		if err := a.Catalog.UpdateCache(ctx); err != nil {
			return err
		}
	}

	var csharp *bool
	if cmd.Flags().Changed("csharp") {
		csharp = &installCSharp
	}

	pattern, ok, err := parseVersionArg(args, csharp)
	if err != nil {
		return err
	}
	if !ok {
		pattern = version.Partial{}
	}

	gv, err := a.Resolver.ResolveAutoInstall(ctx, pattern, pattern.CSharp)
	if err != nil {
		return err
	}
	if !installPre && pattern.ReleaseType == nil && !gv.IsStable() {
		return gdvmPrereleaseError(gv)
	}
	outcome, err := a.Installer.Install(ctx, gv, installForce, false)
	if err != nil {
		return err
	}

	switch outcome {
	case installer.AlreadyInstalled:
		cmd.Print(i18n.T("cli.install_already", gv.ToDisplayStr()))
	default:
		cmd.Print(i18n.T("cli.install_done", gv.ToDisplayStr()))
	}
	return nil
}
