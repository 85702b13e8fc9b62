//go:build !windows

package launcher

import (
	"os/exec"
	"syscall"
)

// configureDetached puts the child in its own session so it survives
// gdvm's exit, mirroring the teacher's Unix daemonize-then-spawn step.
func configureDetached(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setsid = true
}
