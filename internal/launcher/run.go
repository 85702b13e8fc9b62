package launcher

import (
	"fmt"
	"os"
	"os/exec"

	gdvmerrors "github.com/terassyi/gdvm/internal/errors"
	"github.com/terassyi/gdvm/internal/version"
)

// Run starts gv's executable with args. console runs it attached to the
// current terminal (inherited stdio, waits for exit); otherwise it is
// started detached and Run returns as soon as the process has launched.
func (l *Launcher) Run(gv version.Concrete, console bool, args []string) error {
	path, err := l.ExecutablePath(gv, console)
	if err != nil {
		return err
	}

	cmd := exec.Command(path, args...)

	if console {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("failed to start engine: %w", err)
		}
		return nil
	}

	detachStdio(cmd)
	configureDetached(cmd)
	if err := cmd.Start(); err != nil {
		return gdvmerrors.NewExecutableNotFoundError(gv.ToDisplayStr())
	}
	return nil
}

func detachStdio(cmd *exec.Cmd) {
	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return
	}
	cmd.Stdin = devNull
	cmd.Stdout = devNull
	cmd.Stderr = devNull
}
