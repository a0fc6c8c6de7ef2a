package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Defaults for environment-derived settings.
const (
	// DefaultArch is the architecture used when TGENV_ARCH is unset.
	DefaultArch = "amd64"
	// DefaultRemote is the base URL release artifacts are downloaded from.
	DefaultRemote = "https://github.com/gruntwork-io/terragrunt/releases/download"
	// DefaultListURL is the endpoint returning the published version index.
	DefaultListURL = "https://api.github.com/repos/gruntwork-io/terragrunt/tags"
)

// SignatureMode selects which OpenPGP signature mechanism verifies the
// checksum manifest. It is resolved exactly once, before the install
// pipeline runs, from the opt-in marker files in the tgenv root.
type SignatureMode int

const (
	// SignatureAuto probes for keybase at install time and falls back to
	// no signature verification when it is absent or unusable.
	SignatureAuto SignatureMode = iota
	// SignatureGPG verifies with a gpg-style command ($TGENV_ROOT/use-gpg).
	SignatureGPG
	// SignatureGPGV verifies with a gpgv-style command ($TGENV_ROOT/use-gpgv).
	SignatureGPGV
)

// String returns the string representation of the signature mode.
func (m SignatureMode) String() string {
	switch m {
	case SignatureGPG:
		return "gpg"
	case SignatureGPGV:
		return "gpgv"
	default:
		return "auto"
	}
}

// SignatureConfig is the resolved state of the use-gpg / use-gpgv marker
// files. Binary overrides the command name; TrustBundledKeyring switches
// gpgv from its own trust store to the keyring shipped with tgenv.
type SignatureConfig struct {
	Mode                SignatureMode
	Binary              string
	TrustBundledKeyring bool
}

// Config holds all environment-derived configuration for a single run.
// It is constructed once at process start and threaded explicitly into
// each component; nothing reads the ambient environment after Load.
type Config struct {
	// RootDir is the tgenv installation root (TGENV_ROOT, default ~/.tgenv).
	// All destination and temporary paths are built under it.
	RootDir string
	// Arch is the target CPU architecture (TGENV_ARCH, default amd64).
	Arch string
	// RemoteBase is the release download base URL (TGENV_REMOTE).
	RemoteBase string
	// ListURL is the remote version index endpoint (TGENV_LIST_URL).
	ListURL string
	// SkipChecksum bypasses SHA256 verification entirely (TGENV_SKIP_SHA256SUM).
	SkipChecksum bool
	// Debug enables debug-level logging (TGENV_DEBUG).
	Debug bool

	Signature SignatureConfig
}

// Load builds a Config from the environment. lookupEnv is injectable for
// tests; production callers pass os.LookupEnv.
func Load(lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := &Config{
		Arch:       DefaultArch,
		RemoteBase: DefaultRemote,
		ListURL:    DefaultListURL,
	}

	if root, ok := lookupEnv("TGENV_ROOT"); ok && root != "" {
		cfg.RootDir = root
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("determine home directory: %w", err)
		}
		cfg.RootDir = filepath.Join(home, ".tgenv")
	}

	if arch, ok := lookupEnv("TGENV_ARCH"); ok && arch != "" {
		cfg.Arch = arch
	}
	if remote, ok := lookupEnv("TGENV_REMOTE"); ok && remote != "" {
		cfg.RemoteBase = strings.TrimRight(remote, "/")
	}
	if listURL, ok := lookupEnv("TGENV_LIST_URL"); ok && listURL != "" {
		cfg.ListURL = listURL
	}
	if v, ok := lookupEnv("TGENV_SKIP_SHA256SUM"); ok && v != "" {
		cfg.SkipChecksum = true
	}
	if v, ok := lookupEnv("TGENV_DEBUG"); ok && v != "" {
		cfg.Debug = true
	}

	sig, err := resolveSignatureConfig(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("resolve signature configuration: %w", err)
	}
	cfg.Signature = sig

	return cfg, nil
}

// VersionsDir returns the directory holding installed versions.
func (c *Config) VersionsDir() string {
	return filepath.Join(c.RootDir, "versions")
}

// VersionDir returns the install directory for a resolved version.
func (c *Config) VersionDir(version string) string {
	return filepath.Join(c.VersionsDir(), version)
}

// BinaryPath returns the path of the installed terragrunt executable for a
// version. Its presence means the version is considered installed.
func (c *Config) BinaryPath(version string) string {
	return filepath.Join(c.VersionDir(version), "terragrunt")
}

// GlobalVersionFile returns the path of the global version pin written by
// `tgenv use`.
func (c *Config) GlobalVersionFile() string {
	return filepath.Join(c.RootDir, "version")
}

// KeyringPath returns the path of the bundled publisher keyring, used only
// when the gpgv trust-tgenv mode is enabled.
func (c *Config) KeyringPath() string {
	return filepath.Join(c.RootDir, "share", "tgenv.pub")
}

// resolveSignatureConfig reads the opt-in marker files once. use-gpg wins
// over use-gpgv, mirroring the priority order of the verification layers.
func resolveSignatureConfig(rootDir string) (SignatureConfig, error) {
	for _, candidate := range []struct {
		name string
		mode SignatureMode
	}{
		{"use-gpg", SignatureGPG},
		{"use-gpgv", SignatureGPGV},
	} {
		path := filepath.Join(rootDir, candidate.name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return SignatureConfig{}, fmt.Errorf("stat %s: %w", path, err)
		}
		if info.IsDir() {
			continue
		}

		sig := SignatureConfig{Mode: candidate.mode}
		if err := parseMarkerFile(path, &sig); err != nil {
			return SignatureConfig{}, fmt.Errorf("parse %s: %w", path, err)
		}
		return sig, nil
	}

	return SignatureConfig{Mode: SignatureAuto}, nil
}

// parseMarkerFile reads the optional "key: value" lines of a marker file.
// Recognized keys: "binary" (command override) and "trust-tgenv"
// (boolean-like, gpgv only). Unknown keys and blank lines are ignored.
func parseMarkerFile(path string, sig *SignatureConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "binary":
			sig.Binary = value
		case "trust-tgenv":
			sig.TrustBundledKeyring = isTruthy(value)
		}
	}

	return scanner.Err()
}

// isTruthy interprets the boolean-like values accepted in marker files.
func isTruthy(value string) bool {
	switch strings.ToLower(value) {
	case "yes", "true", "1", "on":
		return true
	default:
		return false
	}
}
