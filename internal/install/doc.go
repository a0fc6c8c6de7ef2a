// Package install downloads, verifies, and installs terragrunt release
// binaries.
//
// # Pipeline
//
// One install is one strictly forward pass: fetch the platform artifact and
// its SHA256SUMS manifest into a temporary scope, verify the manifest
// signature with the strongest configured mechanism, verify the artifact
// checksum against the manifest, then copy the artifact into
// $TGENV_ROOT/versions/<version>/terragrunt. Any stage failure aborts the
// whole pipeline; the scope is removed on every exit path.
//
// # Security model
//
// Verification is layered and degrading by design. A failed verification is
// always fatal, but the absence of verification infrastructure is only a
// warning: the upstream publisher may not provide signatures, and checksum
// bypass is an explicit operator escape hatch (TGENV_SKIP_SHA256SUM). The
// installer never claims a verification it did not perform.
//
// # Concurrency
//
// Strictly sequential, one install per process invocation. Two concurrent
// installs of the same version race on the filesystem; that is an accepted
// limitation of interactive single-actor usage, not a guarantee.
package install
