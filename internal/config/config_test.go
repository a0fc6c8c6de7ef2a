package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(lookupFrom(map[string]string{"TGENV_ROOT": root}))
	require.NoError(t, err)

	assert.Equal(t, root, cfg.RootDir)
	assert.Equal(t, DefaultArch, cfg.Arch)
	assert.Equal(t, DefaultRemote, cfg.RemoteBase)
	assert.Equal(t, DefaultListURL, cfg.ListURL)
	assert.False(t, cfg.SkipChecksum)
	assert.False(t, cfg.Debug)
	assert.Equal(t, SignatureAuto, cfg.Signature.Mode)
}

func TestLoadOverrides(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(lookupFrom(map[string]string{
		"TGENV_ROOT":           root,
		"TGENV_ARCH":           "arm64",
		"TGENV_REMOTE":         "https://mirror.example.com/terragrunt/",
		"TGENV_LIST_URL":       "https://mirror.example.com/index",
		"TGENV_SKIP_SHA256SUM": "1",
		"TGENV_DEBUG":          "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, "arm64", cfg.Arch)
	assert.Equal(t, "https://mirror.example.com/terragrunt", cfg.RemoteBase, "trailing slash should be trimmed")
	assert.Equal(t, "https://mirror.example.com/index", cfg.ListURL)
	assert.True(t, cfg.SkipChecksum)
	assert.True(t, cfg.Debug)
}

func TestLoadEmptyValuesFallBackToDefaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(lookupFrom(map[string]string{
		"TGENV_ROOT":           root,
		"TGENV_ARCH":           "",
		"TGENV_SKIP_SHA256SUM": "",
	}))
	require.NoError(t, err)

	assert.Equal(t, DefaultArch, cfg.Arch)
	assert.False(t, cfg.SkipChecksum)
}

func TestPaths(t *testing.T) {
	root := t.TempDir()
	cfg, err := Load(lookupFrom(map[string]string{"TGENV_ROOT": root}))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "versions"), cfg.VersionsDir())
	assert.Equal(t, filepath.Join(root, "versions", "1.2.3"), cfg.VersionDir("1.2.3"))
	assert.Equal(t, filepath.Join(root, "versions", "1.2.3", "terragrunt"), cfg.BinaryPath("1.2.3"))
	assert.Equal(t, filepath.Join(root, "version"), cfg.GlobalVersionFile())
	assert.Equal(t, filepath.Join(root, "share", "tgenv.pub"), cfg.KeyringPath())
}

func TestSignatureModeGPGMarker(t *testing.T) {
	root := t.TempDir()
	writeMarker(t, root, "use-gpg", "binary: gpg2\n")

	cfg, err := Load(lookupFrom(map[string]string{"TGENV_ROOT": root}))
	require.NoError(t, err)

	assert.Equal(t, SignatureGPG, cfg.Signature.Mode)
	assert.Equal(t, "gpg2", cfg.Signature.Binary)
	assert.False(t, cfg.Signature.TrustBundledKeyring)
}

func TestSignatureModeGPGVMarker(t *testing.T) {
	tests := []struct {
		name       string
		contents   string
		wantBinary string
		wantTrust  bool
	}{
		{name: "empty_marker", contents: "", wantBinary: "", wantTrust: false},
		{name: "trust_enabled", contents: "trust-tgenv: yes\n", wantTrust: true},
		{name: "trust_disabled", contents: "trust-tgenv: no\n", wantTrust: false},
		{name: "binary_and_trust", contents: "binary: gpgv2\ntrust-tgenv: true\n", wantBinary: "gpgv2", wantTrust: true},
		{name: "comments_and_noise", contents: "# marker\nnot-a-setting\ntrust-tgenv: on\n", wantTrust: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeMarker(t, root, "use-gpgv", tt.contents)

			cfg, err := Load(lookupFrom(map[string]string{"TGENV_ROOT": root}))
			require.NoError(t, err)

			assert.Equal(t, SignatureGPGV, cfg.Signature.Mode)
			assert.Equal(t, tt.wantBinary, cfg.Signature.Binary)
			assert.Equal(t, tt.wantTrust, cfg.Signature.TrustBundledKeyring)
		})
	}
}

func TestSignatureModeGPGWinsOverGPGV(t *testing.T) {
	root := t.TempDir()
	writeMarker(t, root, "use-gpg", "")
	writeMarker(t, root, "use-gpgv", "trust-tgenv: yes\n")

	cfg, err := Load(lookupFrom(map[string]string{"TGENV_ROOT": root}))
	require.NoError(t, err)

	assert.Equal(t, SignatureGPG, cfg.Signature.Mode)
}

func writeMarker(t *testing.T, root, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, name), []byte(contents), 0o644); err != nil {
		t.Fatalf("write marker %s: %v", name, err)
	}
}
