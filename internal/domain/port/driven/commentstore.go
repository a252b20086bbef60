package driven

import (
	"context"

	"github.com/ericfisherdev/verifyversion/internal/domain/model"
)

// CommentStore defines the driven port for PR-level comments on the hosting
// service. Comments are addressed by (repoFullName, prNumber) for listing and
// creation and by comment ID for updates.
type CommentStore interface {
	// ListIssueComments returns every PR-level comment in ascending creation order.
	ListIssueComments(ctx context.Context, repoFullName string, prNumber int) ([]model.IssueComment, error)
	// CreateIssueComment adds a PR-level comment and returns its ID.
	CreateIssueComment(ctx context.Context, repoFullName string, prNumber int, body string) (int64, error)
	// UpdateIssueComment replaces the body of an existing comment.
	UpdateIssueComment(ctx context.Context, repoFullName string, commentID int64, body string) error
}
