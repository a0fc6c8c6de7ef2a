package verify

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func digestOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func TestSHA256File(t *testing.T) {
	path := writeArtifact(t, "artifact", []byte("hello"))

	got, err := SHA256File(path)
	require.NoError(t, err)
	assert.Equal(t, digestOf([]byte("hello")), got)
}

func TestFindChecksum(t *testing.T) {
	manifest := writeArtifact(t, "SHA256SUMS", []byte(
		"aaaa  terragrunt_linux_386\n"+
			"bbbb  terragrunt_linux_amd64\n"+
			"cccc *terragrunt_darwin_amd64\n"+
			"dddd  dist/terragrunt_linux_arm64\n"+
			"malformed-line\n"))

	t.Run("plain_entry", func(t *testing.T) {
		sum, err := FindChecksum(manifest, "terragrunt_linux_amd64")
		require.NoError(t, err)
		assert.Equal(t, "bbbb", sum)
	})

	t.Run("bsd_binary_marker", func(t *testing.T) {
		sum, err := FindChecksum(manifest, "terragrunt_darwin_amd64")
		require.NoError(t, err)
		assert.Equal(t, "cccc", sum)
	})

	t.Run("path_entry_matched_by_basename", func(t *testing.T) {
		sum, err := FindChecksum(manifest, "terragrunt_linux_arm64")
		require.NoError(t, err)
		assert.Equal(t, "dddd", sum)
	})

	t.Run("missing_entry", func(t *testing.T) {
		_, err := FindChecksum(manifest, "terragrunt_windows_amd64")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no checksum recorded")
	})
}

func TestChecksum(t *testing.T) {
	artifact := []byte("terragrunt binary bytes")

	t.Run("match", func(t *testing.T) {
		artifactPath := writeArtifact(t, "terragrunt_linux_amd64", artifact)
		manifestPath := writeArtifact(t, "SHA256SUMS",
			[]byte(digestOf(artifact)+"  terragrunt_linux_amd64\n"))

		assert.NoError(t, Checksum(artifactPath, manifestPath))
	})

	t.Run("uppercase_digest_matches", func(t *testing.T) {
		artifactPath := writeArtifact(t, "terragrunt_linux_amd64", artifact)
		upper := []byte(digestOf(artifact))
		for i, c := range upper {
			if c >= 'a' && c <= 'f' {
				upper[i] = c - 'a' + 'A'
			}
		}
		manifestPath := writeArtifact(t, "SHA256SUMS",
			append(upper, []byte("  terragrunt_linux_amd64\n")...))

		assert.NoError(t, Checksum(artifactPath, manifestPath))
	})

	t.Run("mismatch", func(t *testing.T) {
		artifactPath := writeArtifact(t, "terragrunt_linux_amd64", artifact)
		manifestPath := writeArtifact(t, "SHA256SUMS",
			[]byte(digestOf([]byte("tampered"))+"  terragrunt_linux_amd64\n"))

		err := Checksum(artifactPath, manifestPath)
		assert.ErrorIs(t, err, ErrChecksumMismatch)
	})
}
