// Package shim implements the alias-binary re-exec trick: a copy (or
// hardlink) of this binary named e.g. "godot4" forwards to the real
// gdvm executable with GDVM_ALIAS set to its own name, letting gdvm
// dispatch "run" by alias without a wrapper shell script (spec §4.14
// "Shim").
package shim

import (
	"os"
	"path/filepath"
	"strings"
)

// AliasEnv is the environment variable gdvm reads to learn which alias
// it was invoked as.
const AliasEnv = "GDVM_ALIAS"

// gdvmName is the real executable's filename for the running OS.
func gdvmName() string {
	if gdvmExeSuffix() != "" {
		return "gdvm" + gdvmExeSuffix()
	}
	return "gdvm"
}

// Alias derives the alias name from an executable path: its basename,
// lowercased, with any OS executable suffix stripped.
func Alias(exePath string) string {
	base := filepath.Base(exePath)
	base = strings.TrimSuffix(base, gdvmExeSuffix())
	return strings.ToLower(base)
}

// GdvmPath resolves the real gdvm executable's path, a sibling of
// exePath in the same directory.
func GdvmPath(exePath string) string {
	return filepath.Join(filepath.Dir(exePath), gdvmName())
}

// Run resolves the current executable's alias and re-execs (or, on
// platforms without exec, spawns-and-waits-for) gdvm with it, passing
// through argv[1:] and the current environment plus GDVM_ALIAS.
func Run(args []string) error {
	exePath, err := os.Executable()
	if err != nil {
		return err
	}

	alias := Alias(exePath)
	gdvmPath := GdvmPath(exePath)
	env := append(os.Environ(), AliasEnv+"="+alias)

	return execGdvm(gdvmPath, args, env)
}
