// Package testutil provides utilities for testing tgenv in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupTestEnv points tgenv at an isolated temporary root so tests never
// touch the user's real ~/.tgenv, and returns that root. Cleanup is handled
// by t.TempDir.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "tgenv-root")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("failed to create test root %s: %v", root, err)
	}

	t.Setenv("TGENV_ROOT", root)
	// Keep host-level knobs from leaking into tests. Load treats the empty
	// string the same as unset.
	t.Setenv("TGENV_ARCH", "amd64")
	t.Setenv("TGENV_SKIP_SHA256SUM", "")
	t.Setenv("TGENV_DEBUG", "")

	return root
}

// WriteFile writes a file under dir, creating parents, and fails the test
// on error.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
