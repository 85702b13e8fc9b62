package main

import (
	"github.com/spf13/cobra"

	"github.com/terassyi/gdvm/internal/pin"
	"github.com/terassyi/gdvm/internal/project"
	"github.com/terassyi/gdvm/internal/resolve"
)

var (
	runCSharp  bool
	runForce   bool
	runConsole bool
)

var runCmd = &cobra.Command{
	Use:   "run [version] [-- engine args...]",
	Short: "Run an installed (or auto-installed) Godot release",
	Long: `run resolves a version by precedence: the version given here,
then the nearest ancestor .gdvmrc pin, then the project.godot hint in
the current directory, then the global default. Anything after "--" is
forwarded to the engine untouched; a "--path <dir>" pair inside that
forwarded block overrides the directory run searches for a pin and
project file.`,
	Args: cobra.ArbitraryArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runCSharp, "csharp", false, "run the C#/mono build")
	runCmd.Flags().BoolVar(&runForce, "force", false, "run despite a project/version mismatch")
	runCmd.Flags().BoolVar(&runConsole, "console", true, "attach to the current terminal and wait for exit")
}

func runRun(cmd *cobra.Command, args []string) error {
	fmtr := formatter(cmd)
	a, err := newApp(fmtr)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	versionArgs, forwarded := splitLeadingVersion(cmd, args)
	engineArgs, pathOverride := splitForwardedArgs(forwarded)

	root, err := projectRoot(pathOverride)
	if err != nil {
		return err
	}

	var csharp *bool
	if cmd.Flags().Changed("csharp") {
		csharp = &runCSharp
	}

	explicit, hasExplicit, err := parseVersionArg(versionArgs, csharp)
	if err != nil {
		return err
	}

	req := resolve.RunTimeRequest{CSharp: csharp, Force: runForce}
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

	gv, _, err := ensureInstalled(ctx, a, pattern, false)
	if err != nil {
		return err
	}

	return a.Launcher.Run(gv, runConsole, engineArgs)
}

// splitLeadingVersion separates a leading bare version argument (when
// cobra's ArgsLenAtDash reports one came before "--") from the args
// meant to be forwarded to the engine.
func splitLeadingVersion(cmd *cobra.Command, args []string) ([]string, []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}
