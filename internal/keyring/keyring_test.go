package keyring

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEntity(t *testing.T) *openpgp.Entity {
	t.Helper()
	entity, err := openpgp.NewEntity("Gruntwork Test", "", "security@example.com", nil)
	require.NoError(t, err)
	return entity
}

func writeKeyring(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tgenv.pub")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadBinaryKeyring(t *testing.T) {
	entity := newTestEntity(t)

	var buf bytes.Buffer
	require.NoError(t, entity.Serialize(&buf))

	ring, err := Load(writeKeyring(t, buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, ring, 1)
	assert.Equal(t, entity.PrimaryKey.Fingerprint, ring[0].PrimaryKey.Fingerprint)
}

func TestLoadArmoredKeyring(t *testing.T) {
	entity := newTestEntity(t)

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	require.NoError(t, err)
	require.NoError(t, entity.Serialize(w))
	require.NoError(t, w.Close())

	ring, err := Load(writeKeyring(t, buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, ring, 1)
	assert.Equal(t, entity.PrimaryKey.Fingerprint, ring[0].PrimaryKey.Fingerprint)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.pub"))
		assert.ErrorContains(t, err, "open keyring")
	})

	t.Run("garbage_content", func(t *testing.T) {
		_, err := Load(writeKeyring(t, []byte("not a keyring")))
		assert.ErrorContains(t, err, "read keyring")
	})
}

func TestFingerprint(t *testing.T) {
	entity := newTestEntity(t)

	var buf bytes.Buffer
	require.NoError(t, entity.Serialize(&buf))
	ring, err := Load(writeKeyring(t, buf.Bytes()))
	require.NoError(t, err)

	fp := Fingerprint(ring)
	assert.NotEmpty(t, fp)
	assert.Equal(t, strings.ToUpper(fp), fp)

	assert.Empty(t, Fingerprint(nil))
}
