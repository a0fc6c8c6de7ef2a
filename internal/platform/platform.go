// Package platform derives the release artifact platform key for the host.
//
// Release artifacts are published per OS family and architecture as
// terragrunt_{os}_{arch}. The OS family comes from the Go runtime; the
// architecture defaults to amd64 and is overridden with TGENV_ARCH, because
// the published artifact set does not track every host architecture.
package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v4/host"
)

// Key identifies the release artifact flavor for a host, e.g. "linux_amd64".
// It is computed once per run and immutable afterwards.
type Key string

// String returns the key as a plain string.
func (k Key) String() string {
	return string(k)
}

// TarballName returns the release artifact file name for this key.
func (k Key) TarballName() string {
	return "terragrunt_" + string(k)
}

// NewKey builds a platform key from an OS family and architecture.
// Only the three published OS families are accepted.
func NewKey(goos, arch string) (Key, error) {
	switch goos {
	case "linux", "darwin", "windows":
	default:
		return "", fmt.Errorf("unsupported OS for terragrunt releases: %s", goos)
	}
	if arch == "" {
		return "", fmt.Errorf("architecture must not be empty")
	}
	return Key(goos + "_" + arch), nil
}

// Detect computes the platform key for the current host using the configured
// architecture. When host introspection shows the machine's kernel
// architecture disagrees with the configured one, a warning is logged; the
// configured value still wins, since cross-arch installs (e.g. amd64 under
// Rosetta) are legitimate.
func Detect(ctx context.Context, arch string, log zerolog.Logger) (Key, error) {
	key, err := NewKey(runtime.GOOS, arch)
	if err != nil {
		return "", err
	}

	kernelArch, err := host.KernelArch()
	if err != nil {
		// Graceful fallback: introspection is advisory only.
		log.Debug().Err(err).Msg("host architecture detection failed")
		return key, nil
	}

	if normalized := normalizeArch(kernelArch); normalized != "" && normalized != arch {
		log.Warn().
			Str("configured", arch).
			Str("host", normalized).
			Msg("configured architecture differs from host architecture")
	}

	return key, nil
}

// normalizeArch maps kernel architecture names to release artifact names.
// Unknown values normalize to "" and suppress the mismatch warning.
func normalizeArch(kernelArch string) string {
	switch kernelArch {
	case "x86_64", "amd64":
		return "amd64"
	case "aarch64", "arm64":
		return "arm64"
	case "i386", "i686", "386":
		return "386"
	case "armv7l", "armv6l", "arm":
		return "arm"
	default:
		return ""
	}
}
