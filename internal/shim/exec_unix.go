//go:build !windows

package shim

import "syscall"

// gdvmExeSuffix is empty on every OS gdvm ships a non-Windows build for.
func gdvmExeSuffix() string { return "" }

// execGdvm replaces the current process image with gdvm, the same way
// the original shim's Unix branch calls exec() instead of spawning a
// child it would have to wait on.
func execGdvm(gdvmPath string, args []string, env []string) error {
	argv := append([]string{gdvmPath}, args...)
	return syscall.Exec(gdvmPath, argv, env)
}
