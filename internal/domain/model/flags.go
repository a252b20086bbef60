package model

// Flags is the immutable set of switches that drive a single verification run.
type Flags struct {
	RequiredTitleSubstring string // Empty disables the content check.
	EnforceVersionMatch    bool
	PostComment            bool
}
