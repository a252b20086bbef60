package model

// IssueComment represents a PR-level general comment (from the GitHub Issues API,
// not the Pull Requests review comments API). Only the fields needed to find
// the marker-tagged comment are kept.
type IssueComment struct {
	ID   int64
	Body string
}
