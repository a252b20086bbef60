// Package manifest implements the manifest source ports: reading package.json
// from the local checkout and fetching it from a fork's branch over HTTP.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ericfisherdev/verifyversion/internal/domain/model"
)

// DefaultPath is the manifest location relative to a repository root.
const DefaultPath = "package.json"

// ErrNoVersion is returned when a manifest parses but carries no version string.
var ErrNoVersion = errors.New("manifest has no version field")

// decodeVersion extracts the version field from a package.json document.
func decodeVersion(data []byte, source string) (string, error) {
	var m model.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return "", fmt.Errorf("parsing manifest %s: %w", source, err)
	}
	if m.Version == "" {
		return "", fmt.Errorf("%s: %w", source, ErrNoVersion)
	}
	return m.Version, nil
}
