package verify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/rinrailin/tgenv/internal/config"
	"github.com/rinrailin/tgenv/internal/keyring"
)

// publisher is the keybase identity that signs terragrunt releases.
const publisher = "gruntwork-io"

// Default command names for the marker-file mechanisms.
const (
	defaultGPGBinary  = "gpg"
	defaultGPGVBinary = "gpgv"
)

// Fatal signature outcomes. A failed verification is always fatal; only the
// absence of verification infrastructure degrades to a warning.
var (
	// ErrSignatureMismatch reports a keybase signature that does not match
	// the checksum manifest.
	ErrSignatureMismatch = errors.New("SHA256SUMS signature does not match")
	// ErrSignatureRejected reports a gpg/gpgv verification failure.
	ErrSignatureRejected = errors.New("PGP signature rejected")
)

// Verifier checks the detached OpenPGP signature over the checksum manifest.
// Each implementation wraps one external verification tool as a black box:
// exit status zero means the signature is good.
type Verifier interface {
	// Name identifies the mechanism in logs.
	Name() string
	// Verify checks signaturePath against manifestPath.
	Verify(ctx context.Context, manifestPath, signaturePath string) error
}

// Select resolves which signature mechanism runs for this invocation, in
// priority order: keybase when present and usable, then the use-gpg marker,
// then the use-gpgv marker. A nil return means no mechanism is configured;
// the caller skips signature verification entirely. That trust gap is
// deliberate and always announced with a warning, never silent.
func Select(ctx context.Context, cfg *config.Config, log zerolog.Logger) Verifier {
	switch cfg.Signature.Mode {
	case config.SignatureGPG:
		bin := cfg.Signature.Binary
		if bin == "" {
			bin = defaultGPGBinary
		}
		return &gpgVerifier{bin: bin, log: log}

	case config.SignatureGPGV:
		bin := cfg.Signature.Binary
		if bin == "" {
			bin = defaultGPGVBinary
		}
		v := &gpgvVerifier{bin: bin, log: log}
		if cfg.Signature.TrustBundledKeyring {
			v.keyringPath = cfg.KeyringPath()
		}
		return v
	}

	if kb := probeKeybase(ctx, log); kb != nil {
		return kb
	}

	log.Warn().Msg("no keybase install found, skipping OpenPGP signature verification")
	return nil
}

// keybaseVerifier verifies through the keybase identity tool.
type keybaseVerifier struct {
	bin string
	log zerolog.Logger
}

var keybaseLoggedIn = regexp.MustCompile(`Logged in:\s*yes`)

// probeKeybase returns a keybase verifier when the tool is installed, the
// caller is authenticated, and the caller follows the publisher. Failed
// prechecks skip signature verification with a warning rather than failing
// the install: the manifest may legitimately lack a signature infrastructure
// on this machine.
func probeKeybase(ctx context.Context, log zerolog.Logger) Verifier {
	bin, err := exec.LookPath("keybase")
	if err != nil {
		return nil
	}

	status, err := exec.CommandContext(ctx, bin, "status").CombinedOutput()
	if err != nil || !keybaseLoggedIn.Match(status) {
		log.Warn().Msg("keybase is installed but you are not logged in, skipping OpenPGP signature verification")
		return nil
	}

	following, err := exec.CommandContext(ctx, bin, "list-following").CombinedOutput()
	if err != nil || !containsLine(following, publisher) {
		log.Warn().Str("publisher", publisher).
			Msg("you do not follow the publisher on keybase, skipping OpenPGP signature verification")
		return nil
	}

	return &keybaseVerifier{bin: bin, log: log}
}

func (v *keybaseVerifier) Name() string { return "keybase" }

func (v *keybaseVerifier) Verify(ctx context.Context, manifestPath, signaturePath string) error {
	out, err := exec.CommandContext(ctx, v.bin, "pgp", "verify",
		"--infile", manifestPath, "--detached", signaturePath).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSignatureMismatch, firstLine(out))
	}
	v.log.Info().Msg("keybase signature verification succeeded")
	return nil
}

// gpgVerifier verifies with a gpg-style command using its own trust store.
type gpgVerifier struct {
	bin string
	log zerolog.Logger
}

func (v *gpgVerifier) Name() string { return v.bin }

func (v *gpgVerifier) Verify(ctx context.Context, manifestPath, signaturePath string) error {
	out, err := exec.CommandContext(ctx, v.bin, "--verify", signaturePath, manifestPath).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSignatureRejected, firstLine(out))
	}
	v.log.Info().Str("binary", v.bin).Msg("PGP signature verification succeeded")
	return nil
}

// gpgvVerifier verifies with a lower-level gpgv-style command. When
// keyringPath is set (trust-tgenv mode) the bundled publisher keyring is
// passed explicitly; otherwise the command's own trust store decides.
type gpgvVerifier struct {
	bin         string
	keyringPath string
	log         zerolog.Logger
}

func (v *gpgvVerifier) Name() string { return v.bin }

func (v *gpgvVerifier) Verify(ctx context.Context, manifestPath, signaturePath string) error {
	args := []string{}
	if v.keyringPath != "" {
		// Fail on an unreadable or malformed keyring before invoking the
		// tool; gpgv's own diagnostic for that case is famously opaque.
		ring, err := keyring.Load(v.keyringPath)
		if err != nil {
			return fmt.Errorf("%w: bundled keyring unusable: %v", ErrSignatureRejected, err)
		}
		v.log.Debug().Str("fingerprint", keyring.Fingerprint(ring)).Msg("using bundled publisher keyring")
		args = append(args, "--keyring", v.keyringPath)
	}
	args = append(args, signaturePath, manifestPath)

	out, err := exec.CommandContext(ctx, v.bin, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSignatureRejected, firstLine(out))
	}
	v.log.Info().Str("binary", v.bin).Msg("PGP signature verification succeeded")
	return nil
}

// containsLine reports whether output contains value as a whole line.
func containsLine(output []byte, value string) bool {
	for _, line := range bytes.Split(output, []byte("\n")) {
		if string(bytes.TrimSpace(line)) == value {
			return true
		}
	}
	return false
}

// firstLine trims subprocess output down to a one-line diagnostic.
func firstLine(output []byte) string {
	trimmed := bytes.TrimSpace(output)
	if i := bytes.IndexByte(trimmed, '\n'); i >= 0 {
		trimmed = trimmed[:i]
	}
	if len(trimmed) == 0 {
		return "verification command failed"
	}
	return string(trimmed)
}
