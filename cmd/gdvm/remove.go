package main

import (
	"github.com/spf13/cobra"

	gdvmerrors "github.com/terassyi/gdvm/internal/errors"
	"github.com/terassyi/gdvm/internal/i18n"
	"github.com/terassyi/gdvm/internal/installer"
)

var removeCSharp bool

var removeCmd = &cobra.Command{
	Use:   "remove <version>",
	Short: "Remove an installed Godot release",
	Long: `remove deletes an installed version's directory. If version is
ambiguous (matches more than one installed release), nothing is removed
and every candidate is printed so the caller can narrow the pattern.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVar(&removeCSharp, "csharp", false, "match the C#/mono build")
}

func runRemove(cmd *cobra.Command, args []string) error {
	fmtr := formatter(cmd)
	a, err := newApp(fmtr)
	if err != nil {
		return err
	}

	var csharp *bool
	if cmd.Flags().Changed("csharp") {
		csharp = &removeCSharp
	}

	pattern, _, err := parseVersionArg(args, csharp)
	if err != nil {
		return err
	}

	installed, err := installer.ListInstalled(a.Paths)
	if err != nil {
		return err
	}

	matches := a.Resolver.ResolveInstalled(installed, pattern)
	switch len(matches) {
	case 0:
		return gdvmerrors.NewVersionNotFoundError(displayPartial(pattern))
	case 1:
		if err := a.Installer.Remove(matches[0]); err != nil {
			return err
		}
		cmd.Print(i18n.T("cli.remove_done", matches[0].ToDisplayStr()))
		return nil
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, m.ToDisplayStr())
		}
		return gdvmerrors.NewMultipleVersionsFoundError(displayPartial(pattern), names)
	}
}
