//go:build !windows

package pin

import "os"

// symlinkDir creates a directory symlink at linkPath pointing at target.
func symlinkDir(target, linkPath string) error {
	return os.Symlink(target, linkPath)
}

// isPrivilegeError is always false on Unix; symlink creation needs no
// special privilege there.
func isPrivilegeError(err error) bool {
	return false
}
