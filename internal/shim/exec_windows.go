//go:build windows

package shim

import (
	"os"
	"os/exec"
)

// gdvmExeSuffix is the Windows executable suffix.
func gdvmExeSuffix() string { return ".exe" }

// execGdvm spawns gdvm and waits for it, since Windows has no exec()
// syscall to replace the current process image with; it exits with
// gdvm's own exit code, mirroring the original shim's Windows branch.
func execGdvm(gdvmPath string, args []string, env []string) error {
	cmd := exec.Command(gdvmPath, args...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if exitErr, ok := err.(*exec.ExitError); ok {
		os.Exit(exitErr.ExitCode())
	}
	if err != nil {
		return err
	}
	os.Exit(0)
	return nil
}
