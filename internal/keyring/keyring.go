// Package keyring loads the publisher keyring bundled with tgenv.
//
// The keyring lives at $TGENV_ROOT/share/tgenv.pub and is consulted only
// when the gpgv trust-tgenv mode is enabled; the default is to rely on the
// verifying command's own trust store.
package keyring

import (
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Load reads an OpenPGP keyring from disk, accepting both armored and
// binary serializations.
func Load(path string) (openpgp.EntityList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	defer f.Close()

	ring, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		if _, seekErr := f.Seek(0, io.SeekStart); seekErr != nil {
			return nil, fmt.Errorf("rewind keyring: %w", seekErr)
		}
		ring, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
	}

	if len(ring) == 0 {
		return nil, fmt.Errorf("keyring %s contains no keys", path)
	}

	return ring, nil
}

// Fingerprint returns the primary key fingerprint of the first entity in
// the keyring, formatted as uppercase hex.
func Fingerprint(ring openpgp.EntityList) string {
	if len(ring) == 0 || ring[0].PrimaryKey == nil {
		return ""
	}
	return fmt.Sprintf("%X", ring[0].PrimaryKey.Fingerprint)
}
