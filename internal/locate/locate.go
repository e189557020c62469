// Package locate finds the directory fixturegen works in. Both the source
// document and the fixture live next to the program, not in the caller's
// working directory.
package locate

import (
	"fmt"
	"os"
	"path/filepath"
)

// BaseDir returns the directory holding sourceFile when it exists on disk,
// which is the case under `go run` and `go generate`. Binaries built with
// -trimpath or moved elsewhere fall back to the executable's directory.
func BaseDir(sourceFile string) (string, error) {
	if sourceFile != "" && filepath.IsAbs(sourceFile) {
		dir := filepath.Dir(sourceFile)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return ExecutableDir()
}

// ExecutableDir returns the directory of the running binary with symlinks resolved
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Override validates a user supplied base directory and makes it absolute
func Override(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid directory '%s': %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("directory '%s' is not accessible: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("'%s' is not a directory", dir)
	}
	return abs, nil
}

// Resolve joins a relative name onto base. Absolute names are returned cleaned.
func Resolve(base, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(base, name)
}
