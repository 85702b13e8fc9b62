package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/terassyi/gdvm/internal/i18n"
	"github.com/terassyi/gdvm/internal/installer"
	"github.com/terassyi/gdvm/internal/pin"
	"github.com/terassyi/gdvm/internal/project"
	"github.com/terassyi/gdvm/internal/resolve"
)

var (
	linkCSharp bool
	linkForce  bool
	linkCopy   bool
)

var linkCmd = &cobra.Command{
	Use:   "link [version] <linkpath>",
	Short: "Link (or copy) a resolved engine executable to a fixed path",
	Long: `link points linkpath at the executable for a resolved version, so
external tools (editors, build scripts) can invoke Godot through a
stable path instead of gdvm's own layout. --copy duplicates the file
instead of symlinking it, useful on filesystems that reject symlinks.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLink,
}

func init() {
	linkCmd.Flags().BoolVar(&linkCSharp, "csharp", false, "resolve the C#/mono build")
	linkCmd.Flags().BoolVar(&linkForce, "force", false, "overwrite an existing file at linkpath")
	linkCmd.Flags().BoolVar(&linkCopy, "copy", false, "copy the executable instead of symlinking it")
}

func runLink(cmd *cobra.Command, args []string) error {
	fmtr := formatter(cmd)
	a, err := newApp(fmtr)
	if err != nil {
		return err
	}

	var versionArgs []string
	linkPath := args[len(args)-1]
	if len(args) == 2 {
		versionArgs = args[:1]
	}

	root, err := projectRoot("")
	if err != nil {
		return err
	}

	var csharp *bool
	if cmd.Flags().Changed("csharp") {
		csharp = &linkCSharp
	}

	explicit, hasExplicit, err := parseVersionArg(versionArgs, csharp)
	if err != nil {
		return err
	}

	req := resolve.RunTimeRequest{CSharp: csharp, Force: linkForce}
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

	exePath, err := a.Launcher.ExecutablePath(gv, false)
	if err != nil {
		return err
	}

	if err := prepareLinkPath(linkPath, linkForce); err != nil {
		return err
	}
	if linkCopy {
		if err := copyFile(exePath, linkPath); err != nil {
			return err
		}
	} else {
		abs, err := filepath.Abs(exePath)
		if err != nil {
			return err
		}
		if err := os.Symlink(abs, linkPath); err != nil {
			return err
		}
	}

	verb := i18n.T("cli.link_verb_linked")
	if linkCopy {
		verb = i18n.T("cli.link_verb_copied")
	}
	cmd.Print(i18n.T("cli.link_done", gv.ToDisplayStr(), verb, linkPath))
	return nil
}

// prepareLinkPath creates linkpath's parent directory and, if something
// already exists at linkpath, removes it when force is set or reports
// an error otherwise.
func prepareLinkPath(linkPath string, force bool) error {
	if parent := filepath.Dir(linkPath); parent != "" && parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return err
		}
	}
	if _, err := os.Lstat(linkPath); err == nil {
		if !force {
			return errors.New(i18n.T("error.link_exists", linkPath))
		}
		if err := os.RemoveAll(linkPath); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
