package verify

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrChecksumMismatch reports that the artifact digest disagrees with the
// manifest. It distinguishes "tampered" from "verification infrastructure
// missing", which is only ever a warning.
var ErrChecksumMismatch = errors.New("SHA256 hash does not match")

// SHA256File computes the hex-encoded SHA-256 digest of a file.
func SHA256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// FindChecksum extracts the recorded digest for filename from a SHA256SUMS
// manifest. Lines have the form "abc123...  filename"; entries carrying a
// path are matched by basename as well.
func FindChecksum(manifestPath, filename string) (string, error) {
	f, err := os.Open(manifestPath)
	if err != nil {
		return "", fmt.Errorf("open checksum manifest: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}
		name := strings.TrimPrefix(parts[1], "*") // BSD-style binary marker
		if name == filename || filepath.Base(name) == filename {
			return parts[0], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan checksum manifest: %w", err)
	}

	return "", fmt.Errorf("no checksum recorded for %s", filename)
}

// Checksum verifies the artifact's SHA-256 digest against the manifest line
// matching its filename. A mismatch wraps ErrChecksumMismatch.
func Checksum(artifactPath, manifestPath string) error {
	actual, err := SHA256File(artifactPath)
	if err != nil {
		return fmt.Errorf("compute artifact digest: %w", err)
	}

	expected, err := FindChecksum(manifestPath, filepath.Base(artifactPath))
	if err != nil {
		return err
	}

	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, expected, actual)
	}

	return nil
}
