package main

import (
	"github.com/spf13/cobra"

	"github.com/terassyi/gdvm/internal/i18n"
	"github.com/terassyi/gdvm/internal/installer"
	"github.com/terassyi/gdvm/internal/paths"
)

var pinCSharp bool

var pinCmd = &cobra.Command{
	Use:   "pin <version>",
	Short: "Write a .gdvmrc pin in the current directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runPin,
}

func init() {
	pinCmd.Flags().BoolVar(&pinCSharp, "csharp", false, "pin the C#/mono build")
}

func runPin(cmd *cobra.Command, args []string) error {
	fmtr := formatter(cmd)
	a, err := newApp(fmtr)
	if err != nil {
		return err
	}

	var csharp *bool
	if cmd.Flags().Changed("csharp") {
		csharp = &pinCSharp
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

	if err := a.Pin.PinVersion(gv); err != nil {
		return err
	}
	cmd.Print(i18n.T("cli.pin_done", gv.ToDisplayStr(), paths.PinFileName))
	return nil
}
