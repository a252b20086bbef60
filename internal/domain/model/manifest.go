package model

// Manifest is the subset of a package.json document the verifier cares about.
type Manifest struct {
	Version string `json:"version"`
}

// ManifestOrigin records where a manifest version was read from.
type ManifestOrigin string

const (
	ManifestOriginBase ManifestOrigin = "base"
	ManifestOriginFork ManifestOrigin = "fork"
)
