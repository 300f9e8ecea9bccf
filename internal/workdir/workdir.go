// Package workdir manages the scratch directory intermediate CSV files are
// written to before being handed to the external encoder.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Dir is a per-invocation scratch directory.
type Dir struct {
	path string
	keep bool
}

// New creates a uniquely named scratch directory under parent. When keep is
// set, Cleanup leaves the directory (and the intermediate files inside it)
// on disk.
func New(parent string, keep bool) (*Dir, error) {
	path := filepath.Join(parent, ".w3sx-"+uuid.NewString()[:8])
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}
	return &Dir{path: path, keep: keep}, nil
}

// File returns the path for a named scratch file.
func (d *Dir) File(name string) string {
	return filepath.Join(d.path, name)
}

// Cleanup removes the scratch directory unless it is being kept.
func (d *Dir) Cleanup() {
	if d.keep {
		log.Info().Str("path", d.path).Msg("Keeping intermediate files")
		return
	}
	if err := os.RemoveAll(d.path); err != nil {
		log.Warn().Err(err).Str("path", d.path).Msg("Failed to remove scratch directory")
	}
}
