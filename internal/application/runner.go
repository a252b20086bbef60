package application

import (
	"context"
	"log/slog"

	"github.com/ericfisherdev/verifyversion/internal/domain/model"
)

// Runner drives one verification run end to end: verify the title, then
// reconcile the status comment.
type Runner struct {
	verifier *Verifier
	comments *CommentService
	logger   *slog.Logger
}

// NewRunner creates a new Runner with the required dependencies.
func NewRunner(verifier *Verifier, comments *CommentService, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		verifier: verifier,
		comments: comments,
		logger:   logger,
	}
}

// Run verifies the trigger and reconciles the comment. It returns a nil
// outcome for triggers other than pull_request. A returned error is an
// infrastructure failure; a failed verification is reported through the
// outcome. The comment write, if any, is not rolled back on later errors.
func (r *Runner) Run(ctx context.Context, trigger model.Trigger, flags model.Flags) (*model.Outcome, error) {
	if !trigger.IsPullRequest() {
		r.logger.Info("only pull_request triggers are supported, nothing to verify",
			"event", trigger.EventName,
		)
		return nil, nil
	}

	outcome, err := r.verifier.Verify(ctx, trigger, flags)
	if err != nil {
		return nil, err
	}

	result, err := r.comments.ReconcileComment(ctx, *outcome, trigger, flags)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("comment reconciled",
		"pr", trigger.PullRequest.Number,
		"action", result.Action,
		"comment_id", result.CommentID,
	)

	if outcome.Passed {
		r.logger.Info("verify package version passed",
			"pr", trigger.PullRequest.Number,
			"manifest_version", outcome.ManifestVersion,
		)
	}
	return outcome, nil
}
