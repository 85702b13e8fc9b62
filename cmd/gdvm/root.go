package main

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	gdvmerrors "github.com/terassyi/gdvm/internal/errors"
)

var (
	noColor bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gdvm",
	Short: "Version manager for the Godot game engine",
	Long: `gdvm installs and switches between Godot engine releases, side
by side, under your home directory, and exposes the selected one
through stable entry points and per-project pins.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if noColor {
			color.NoColor = true
		}
		configureLogging()
	},
}

// configureLogging sets the default slog handler's level from
// --verbose or GDVM_LOG (values: debug, info, warn, error; any other
// value, including unset, falls back to warn). --verbose forces debug.
func configureLogging() {
	level := slog.LevelWarn
	if v := os.Getenv("GDVM_LOG"); v != "" {
		_ = level.UnmarshalText([]byte(v))
	}
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging (or set GDVM_LOG=debug)")

	rootCmd.AddCommand(
		installCmd,
		listCmd,
		runCmd,
		showCmd,
		linkCmd,
		removeCmd,
		searchCmd,
		clearCacheCmd,
		refreshCmd,
		useCmd,
		upgradeCmd,
		pinCmd,
		configCmd,
		versionCmd,
	)
}

// formatter builds the error formatter used to print a command's
// terminal error, honoring --no-color.
func formatter(cmd *cobra.Command) *gdvmerrors.Formatter {
	return gdvmerrors.NewFormatter(cmd.ErrOrStderr(), noColor || os.Getenv("NO_COLOR") != "")
}
