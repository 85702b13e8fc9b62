//go:build windows

package pin

import (
	"errors"
	"os"
	"syscall"
)

// errPrivilegeNotHeld is Windows' ERROR_PRIVILEGE_NOT_HELD, returned when
// the current user lacks SeCreateSymbolicLinkPrivilege (and Developer
// Mode is not enabled).
const errPrivilegeNotHeld = syscall.Errno(1314)

// symlinkDir creates a directory symlink at linkPath pointing at target.
func symlinkDir(target, linkPath string) error {
	return os.Symlink(target, linkPath)
}

// isPrivilegeError reports whether err is Windows' ERROR_PRIVILEGE_NOT_HELD.
func isPrivilegeError(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == errPrivilegeNotHeld
	}
	return false
}
