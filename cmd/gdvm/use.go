package main

import (
	"github.com/spf13/cobra"

	"github.com/terassyi/gdvm/internal/i18n"
	"github.com/terassyi/gdvm/internal/installer"
)

var (
	useCSharp bool
	useUnset  bool
)

var useCmd = &cobra.Command{
	Use:   "use [version]",
	Short: "Set (or clear) the global default Godot version",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runUse,
}

func init() {
	useCmd.Flags().BoolVar(&useCSharp, "csharp", false, "match the C#/mono build")
	useCmd.Flags().BoolVar(&useUnset, "unset", false, "clear the global default instead of setting it")
}

func runUse(cmd *cobra.Command, args []string) error {
	fmtr := formatter(cmd)
	a, err := newApp(fmtr)
	if err != nil {
		return err
	}

	if useUnset {
		if err := a.Pin.UnsetDefault(); err != nil {
			return err
		}
		cmd.Println(i18n.T("cli.use_cleared"))
		return nil
	}

	var csharp *bool
	if cmd.Flags().Changed("csharp") {
		csharp = &useCSharp
	}

	pattern, _, err := parseVersionArg(args, csharp)
	if err != nil {
		return err
	}

	installed, err := installer.ListInstalled(a.Paths)
	if err != nil {
		return err
	}
	gv, err := pickInstalled(a, pattern, installed)
	if err != nil {
		return err
	}

	if err := a.Pin.SetDefault(gv); err != nil {
		return err
	}
	cmd.Print(i18n.T("cli.use_set", gv.ToDisplayStr()))
	return nil
}
