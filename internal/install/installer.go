package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/rinrailin/tgenv/internal/config"
	"github.com/rinrailin/tgenv/internal/platform"
	"github.com/rinrailin/tgenv/internal/verify"
)

// Fatal download outcomes, one per fetched resource so operators can tell
// which leg of the release failed.
var (
	// ErrTarballDownload reports a failed artifact fetch.
	ErrTarballDownload = errors.New("tarball download failed")
	// ErrManifestDownload reports a failed SHA256SUMS fetch.
	ErrManifestDownload = errors.New("SHA256SUMS download failed")
	// ErrSignatureDownload reports a failed SHA256SUMS.sig fetch.
	ErrSignatureDownload = errors.New("SHA256SUMS signature download failed")
	// ErrNotInstalled reports an uninstall of a version that is not there.
	ErrNotInstalled = errors.New("version is not installed")
)

// release locates the three resources a published version consists of.
type release struct {
	TarballName  string
	TarballURL   string
	ManifestURL  string
	SignatureURL string
}

// releaseFor builds the deterministic resource URLs for a resolved version
// and platform key: {base}/v{version}/terragrunt_{platform} plus the
// SHA256SUMS manifest and its detached signature.
func releaseFor(base, version string, key platform.Key) release {
	dir := fmt.Sprintf("%s/v%s", base, version)
	name := key.TarballName()
	return release{
		TarballName:  name,
		TarballURL:   dir + "/" + name,
		ManifestURL:  dir + "/SHA256SUMS",
		SignatureURL: dir + "/SHA256SUMS.sig",
	}
}

// Installer runs the install pipeline: fetch the release artifact into a
// temporary scope, verify it, and materialize it under the versioned
// install directory.
type Installer struct {
	cfg        *config.Config
	downloader *Downloader
	log        zerolog.Logger
}

// New creates an installer. Download progress is shown only when stderr is
// a terminal.
func New(cfg *config.Config, log zerolog.Logger) *Installer {
	var progress io.Writer
	if term.IsTerminal(int(os.Stderr.Fd())) {
		progress = os.Stderr
	}
	return &Installer{
		cfg:        cfg,
		downloader: NewDownloader(progress),
		log:        log,
	}
}

// IsInstalled reports whether a version's binary is present and executable.
func (i *Installer) IsInstalled(version string) (bool, error) {
	info, err := os.Stat(i.cfg.BinaryPath(version))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat binary: %w", err)
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}
	return info.Mode().Perm()&0o111 != 0, nil
}

// Install downloads, verifies, and installs a resolved version for the
// given platform. Installing an already-present version is a success no-op
// without any network activity. Any failure aborts the whole pipeline; the
// deferred scope removal covers every exit path.
func (i *Installer) Install(ctx context.Context, version string, key platform.Key) error {
	installed, err := i.IsInstalled(version)
	if err != nil {
		return err
	}
	if installed {
		i.log.Info().Str("version", version).Msg("terragrunt is already installed")
		return nil
	}

	rel := releaseFor(i.cfg.RemoteBase, version, key)

	scope, err := NewScope(i.cfg.RootDir, i.log)
	if err != nil {
		return err
	}
	defer scope.Close()

	i.log.Info().Str("version", version).Str("url", rel.TarballURL).Msg("downloading terragrunt")
	artifactPath := scope.Path(rel.TarballName)
	if err := i.downloader.Fetch(ctx, rel.TarballURL, artifactPath); err != nil {
		return fmt.Errorf("%w: %v", ErrTarballDownload, err)
	}

	if i.cfg.SkipChecksum {
		i.log.Warn().Msg("SHA-256 checksum verification disabled, installing unverified artifact")
	} else {
		manifestPath := scope.Path("SHA256SUMS")
		if err := i.downloader.Fetch(ctx, rel.ManifestURL, manifestPath); err != nil {
			return fmt.Errorf("%w: %v", ErrManifestDownload, err)
		}

		if err := i.verifySignature(ctx, scope, rel, manifestPath); err != nil {
			return err
		}

		if err := verify.Checksum(artifactPath, manifestPath); err != nil {
			return err
		}
		i.log.Info().Str("version", version).Msg("SHA-256 checksum verified")
	}

	if err := i.materialize(artifactPath, version); err != nil {
		return err
	}

	i.log.Info().Str("version", version).Msg("installation of terragrunt successful")
	i.log.Info().Msgf("to make this your default version, run 'tgenv use %s'", version)
	return nil
}

// verifySignature runs the strongest configured signature mechanism over
// the checksum manifest. No configured mechanism means skip-with-warning;
// a configured mechanism that rejects the signature is fatal.
func (i *Installer) verifySignature(ctx context.Context, scope *Scope, rel release, manifestPath string) error {
	verifier := verify.Select(ctx, i.cfg, i.log)
	if verifier == nil {
		return nil
	}

	signaturePath := scope.Path("SHA256SUMS.sig")
	if err := i.downloader.Fetch(ctx, rel.SignatureURL, signaturePath); err != nil {
		return fmt.Errorf("%w: %v", ErrSignatureDownload, err)
	}

	if err := verifier.Verify(ctx, manifestPath, signaturePath); err != nil {
		return err
	}
	return nil
}

// materialize copies the verified artifact into the version directory under
// the canonical executable name and marks it executable.
func (i *Installer) materialize(artifactPath, version string) error {
	destDir := i.cfg.VersionDir(version)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create version directory: %w", err)
	}

	destPath := i.cfg.BinaryPath(version)
	if err := copyFile(artifactPath, destPath); err != nil {
		return fmt.Errorf("install binary: %w", err)
	}

	if err := os.Chmod(destPath, 0o755); err != nil {
		return fmt.Errorf("set executable permissions: %w", err)
	}

	return nil
}

// Uninstall removes an installed version directory.
func (i *Installer) Uninstall(version string) error {
	dir := i.cfg.VersionDir(version)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotInstalled, version)
		}
		return fmt.Errorf("stat version directory: %w", err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove version directory: %w", err)
	}

	i.log.Info().Str("version", version).Msg("uninstalled terragrunt")
	return nil
}

// ListInstalled returns the installed version names in lexical order.
func (i *Installer) ListInstalled() ([]string, error) {
	entries, err := os.ReadDir(i.cfg.VersionsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read versions directory: %w", err)
	}

	var versions []string
	for _, entry := range entries {
		if entry.IsDir() {
			versions = append(versions, entry.Name())
		}
	}
	sort.Strings(versions)
	return versions, nil
}

// copyFile copies src to dst, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
