//go:build windows

package launcher

import (
	"os/exec"
	"syscall"
)

// detachedProcessFlag is windows' DETACHED_PROCESS creation flag.
const detachedProcessFlag = 0x00000008

// configureDetached starts the child without a console window attached,
// mirroring the teacher's Windows DETACHED_PROCESS spawn flag.
func configureDetached(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= detachedProcessFlag
}
