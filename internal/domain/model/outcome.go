package model

// FailureReason classifies why a verification did not pass.
type FailureReason string

const (
	FailureNone            FailureReason = ""
	FailureMissingContent  FailureReason = "missing_content"
	FailureVersionMismatch FailureReason = "version_mismatch"
)

// Outcome is the immutable result of one verification run. It is the sole
// input to comment rendering and terminal status reporting.
type Outcome struct {
	Passed            bool
	Reason            FailureReason
	Message           string // Human-readable failure message; empty on pass.
	ManifestVersion   string // Empty when the version check did not run.
	TitleVersionToken string
}

// HasManifestVersion reports whether a manifest version was actually resolved.
func (o Outcome) HasManifestVersion() bool {
	return o.ManifestVersion != ""
}
