package install

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Scope is the temporary download directory for one install attempt. It
// holds exactly the artifact, the checksum manifest, and the optional
// detached signature, and is removed on every exit path: callers defer
// Close immediately after creation, and signal-driven termination unwinds
// through the same defer via context cancellation.
type Scope struct {
	dir string
	log zerolog.Logger
}

// NewScope creates a uniquely-named scratch directory under the install
// root.
func NewScope(rootDir string, log zerolog.Logger) (*Scope, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("create install root: %w", err)
	}

	dir, err := os.MkdirTemp(rootDir, "tgenv-download-")
	if err != nil {
		return nil, fmt.Errorf("create download directory: %w", err)
	}

	log.Debug().Str("dir", dir).Msg("created download scope")
	return &Scope{dir: dir, log: log}, nil
}

// Dir returns the scratch directory path.
func (s *Scope) Dir() string {
	return s.dir
}

// Path returns the path of a file inside the scope.
func (s *Scope) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Close removes the scratch directory and everything in it. A removal
// failure is logged, not returned: cleanup must never mask the pipeline's
// own outcome.
func (s *Scope) Close() {
	if err := os.RemoveAll(s.dir); err != nil {
		s.log.Warn().Err(err).Str("dir", s.dir).Msg("failed to remove download scope")
		return
	}
	s.log.Debug().Str("dir", s.dir).Msg("removed download scope")
}
