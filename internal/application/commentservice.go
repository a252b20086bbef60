package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ericfisherdev/verifyversion/internal/domain/model"
	"github.com/ericfisherdev/verifyversion/internal/domain/port/driven"
)

// CommentMarker tags every comment this tool writes. It is the idempotency key
// used to find the previous comment on a pull request.
const CommentMarker = "<!-- Created by verify-package-version. Do not remove. -->"

// ReconcileAction describes what ReconcileComment did.
type ReconcileAction string

const (
	ReconcileSkipped ReconcileAction = "skipped"
	ReconcileCreated ReconcileAction = "created"
	ReconcileUpdated ReconcileAction = "updated"
)

// ReconcileResult reports the action taken and the comment it touched.
type ReconcileResult struct {
	Action    ReconcileAction
	CommentID int64 // Zero when skipped, or when a dry run would have created.
}

// CommentService keeps a single marker-tagged status comment per pull request.
type CommentService struct {
	store  driven.CommentStore
	dryRun bool
	logger *slog.Logger
}

// NewCommentService creates a new CommentService. With dryRun set, the
// existing comments are still read but no comment is created or updated.
func NewCommentService(store driven.CommentStore, dryRun bool, logger *slog.Logger) *CommentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommentService{
		store:  store,
		dryRun: dryRun,
		logger: logger,
	}
}

// ReconcileComment creates or updates the status comment for outcome. It is a
// no-op when commenting is disabled or the pull request comes from a fork.
// At most one write happens per call.
func (s *CommentService) ReconcileComment(
	ctx context.Context,
	outcome model.Outcome,
	trigger model.Trigger,
	flags model.Flags,
) (ReconcileResult, error) {
	if !flags.PostComment {
		return ReconcileResult{Action: ReconcileSkipped}, nil
	}
	if trigger.PullRequest == nil {
		return ReconcileResult{}, errNotPullRequest
	}
	if trigger.IsFork() {
		s.logger.Info("comment only supported for base repository pull requests",
			"fork_owner", trigger.PullRequest.Head.Owner,
			"base_owner", trigger.Owner,
		)
		return ReconcileResult{Action: ReconcileSkipped}, nil
	}

	repo := trigger.RepoFullName()
	number := trigger.PullRequest.Number

	comments, err := s.store.ListIssueComments(ctx, repo, number)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("loading existing comments: %w", err)
	}

	body := RenderComment(outcome)
	commentID, found := FindMarkerComment(comments)

	if s.dryRun {
		s.logger.Info("dry run, comment not written", "pr", number, "body", body)
	}

	if found {
		result := ReconcileResult{Action: ReconcileUpdated, CommentID: commentID}
		if !s.dryRun {
			if err := s.store.UpdateIssueComment(ctx, repo, commentID, body); err != nil {
				return ReconcileResult{}, err
			}
		}
		s.logger.Info("update-comment", "pr", number, "comment_id", commentID, "dry_run", s.dryRun)
		return result, nil
	}

	result := ReconcileResult{Action: ReconcileCreated}
	if !s.dryRun {
		id, err := s.store.CreateIssueComment(ctx, repo, number, body)
		if err != nil {
			return ReconcileResult{}, err
		}
		result.CommentID = id
	}
	s.logger.Info("create-comment", "pr", number, "comment_id", result.CommentID, "dry_run", s.dryRun)
	return result, nil
}

// FindMarkerComment returns the ID of the marker-tagged comment to update.
// When several carry the marker the last one in the given order wins; with
// comments listed oldest first that is the most recent one.
func FindMarkerComment(comments []model.IssueComment) (int64, bool) {
	var (
		id    int64
		found bool
	)
	for _, c := range comments {
		if strings.Contains(c.Body, CommentMarker) {
			id = c.ID
			found = true
		}
	}
	return id, found
}

// RenderComment builds the markdown body for outcome: a header, the failure
// message on fail, the marker, and a version table when a manifest version
// was resolved.
func RenderComment(outcome model.Outcome) string {
	var b strings.Builder

	if outcome.Passed {
		b.WriteString("### 🎉 Verify package version passed!\n\n")
	} else {
		b.WriteString("### 🚨 Verify package version failed!\n\n")
		b.WriteString(outcome.Message)
		b.WriteString("\n\n")
	}
	b.WriteString(CommentMarker)

	if outcome.HasManifestVersion() {
		b.WriteString("\n\n")
		b.WriteString("| PR package version | PR title version |\n")
		b.WriteString("| -- | -- |\n")
		fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(outcome.ManifestVersion), escapeCell(outcome.TitleVersionToken))
	}

	return b.String()
}

// escapeCell keeps a value from breaking out of its table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
