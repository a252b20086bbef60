package model

// EventPullRequest is the only trigger type the verifier acts on.
const EventPullRequest = "pull_request"

// PullRequestHead identifies where a pull request's changes come from.
// For same-repository branches Owner equals the base repository owner.
type PullRequestHead struct {
	Owner  string
	Branch string
}

// PullRequestEvent holds the pull request fields the verifier reads.
type PullRequestEvent struct {
	Number int
	Title  string
	Head   PullRequestHead
}

// Trigger is the run context handed over by the automation runner.
// PullRequest is nil for any event other than pull_request.
type Trigger struct {
	EventName   string
	Owner       string
	Repo        string
	PullRequest *PullRequestEvent
}

// IsPullRequest reports whether the trigger carries a pull request payload.
func (t Trigger) IsPullRequest() bool {
	return t.EventName == EventPullRequest && t.PullRequest != nil
}

// IsFork reports whether the pull request originates from an owner other
// than the base repository's. Non-PR triggers are never forks.
func (t Trigger) IsFork() bool {
	if t.PullRequest == nil {
		return false
	}
	return t.PullRequest.Head.Owner != t.Owner
}

// RepoFullName returns "owner/repo".
func (t Trigger) RepoFullName() string {
	return t.Owner + "/" + t.Repo
}
