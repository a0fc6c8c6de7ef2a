package install

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeLifecycle(t *testing.T) {
	root := filepath.Join(t.TempDir(), "tgenv")

	scope, err := NewScope(root, zerolog.Nop())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(scope.Dir()), "tgenv-download-"))
	info, err := os.Stat(scope.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Files inside the scope disappear with it.
	require.NoError(t, os.WriteFile(scope.Path("SHA256SUMS"), []byte("x"), 0o644))

	scope.Close()
	_, err = os.Stat(scope.Dir())
	assert.True(t, os.IsNotExist(err))
}

func TestScopesAreUnique(t *testing.T) {
	root := t.TempDir()

	a, err := NewScope(root, zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()

	b, err := NewScope(root, zerolog.Nop())
	require.NoError(t, err)
	defer b.Close()

	assert.NotEqual(t, a.Dir(), b.Dir())
}
