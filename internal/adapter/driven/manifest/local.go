package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ericfisherdev/verifyversion/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.LocalManifestSource = (*LocalSource)(nil)

// LocalSource reads the manifest from the checked-out workspace.
type LocalSource struct {
	path string
}

// NewLocalSource returns a LocalSource for relPath under workspace. An empty
// relPath means DefaultPath; an absolute relPath is used as-is.
func NewLocalSource(workspace, relPath string) *LocalSource {
	if relPath == "" {
		relPath = DefaultPath
	}
	path := relPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(workspace, relPath)
	}
	return &LocalSource{path: path}
}

// Path returns the resolved manifest path.
func (s *LocalSource) Path() string {
	return s.path
}

// ReadVersion reads and parses the manifest, returning its version field.
func (s *LocalSource) ReadVersion(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("reading manifest: %w", err)
	}
	return decodeVersion(data, s.path)
}
