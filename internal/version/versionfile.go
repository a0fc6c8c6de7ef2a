package version

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PinFileName is the per-project version pin consulted when no explicit
// specifier is given.
const PinFileName = ".terragrunt-version"

// FileLookup locates the version pin governing a directory: the nearest
// .terragrunt-version walking up from the start directory, falling back to
// the global default file in the tgenv root.
type FileLookup struct {
	// GlobalPath is the global default version file ($TGENV_ROOT/version).
	GlobalPath string
}

// Find returns the governing version file path and whether it is the global
// default. The global path is returned even when it does not exist.
func (l FileLookup) Find(startDir string) (path string, global bool) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, PinFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return l.GlobalPath, true
		}
		dir = parent
	}
}

// Requested returns the specifier string pinned for the start directory.
// When the lookup resolves to the global default file, nothing was requested
// and the empty string is returned; callers treat that as "no specifier".
func (l FileLookup) Requested(startDir string) (string, error) {
	path, global := l.Find(startDir)
	if global {
		return "", nil
	}
	return readVersionFile(path)
}

// Current returns the version string in effect for the start directory,
// consulting the project pin first and the global default second. The empty
// string means no version is pinned anywhere.
func (l FileLookup) Current(startDir string) (string, error) {
	path, global := l.Find(startDir)
	if global {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return "", nil
			}
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return readVersionFile(path)
}

// readVersionFile reads the first non-empty line of a version file.
func readVersionFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read version file %s: %w", path, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
	}
	return "", nil
}
