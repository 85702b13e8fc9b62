package main

import (
	"github.com/spf13/cobra"

	"github.com/terassyi/gdvm/internal/installer"
	"github.com/terassyi/gdvm/internal/pin"
	"github.com/terassyi/gdvm/internal/project"
	"github.com/terassyi/gdvm/internal/resolve"
)

var (
	showCSharp  bool
	showForce   bool
	showConsole bool
)

var showCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "Print the resolved engine executable path without running it",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showCSharp, "csharp", false, "resolve the C#/mono build")
	showCmd.Flags().BoolVar(&showForce, "force", false, "ignore a project/version mismatch")
	showCmd.Flags().BoolVar(&showConsole, "console", false, "prefer the console-subsystem build on Windows")
}

func runShow(cmd *cobra.Command, args []string) error {
	fmtr := formatter(cmd)
	a, err := newApp(fmtr)
	if err != nil {
		return err
	}

	root, err := projectRoot("")
	if err != nil {
		return err
	}

	var csharp *bool
	if cmd.Flags().Changed("csharp") {
		csharp = &showCSharp
	}

	explicit, hasExplicit, err := parseVersionArg(args, csharp)
	if err != nil {
		return err
	}

	req := resolve.RunTimeRequest{CSharp: csharp, Force: showForce}
	if hasExplicit {
		req.Explicit = &explicit
	}
	if pinned, ok := pin.GetPinned(root); ok {
		req.Pin = &pinned
		req.PinPath = root
	}
	if hint, ok := project.DetectInPath(root, fmtr); ok {
		req.ProjectHint = &hint
	}
	if def, ok, err := a.Pin.GetDefault(); err == nil && ok {
		req.Default = &def
	}

	pattern, err := a.Resolver.ResolveRunTime(req)
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

	path, err := a.Launcher.ExecutablePath(gv, showConsole)
	if err != nil {
		return err
	}

	cmd.Println(path)
	return nil
}
