package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ericfisherdev/verifyversion/internal/domain/model"
	"github.com/ericfisherdev/verifyversion/internal/domain/port/driven"
)

// titleVersionPlaceholder is reported when the title has no token with a digit.
const titleVersionPlaceholder = "-"

// errNotPullRequest is returned when version resolution is asked for a
// trigger without a pull request payload.
var errNotPullRequest = errors.New("trigger has no pull request")

// Verifier decides whether a pull request title satisfies the configured checks.
// It depends only on port interfaces.
type Verifier struct {
	local  driven.LocalManifestSource
	remote driven.RemoteManifestSource
	logger *slog.Logger
}

// NewVerifier creates a new Verifier with the required dependencies.
func NewVerifier(
	local driven.LocalManifestSource,
	remote driven.RemoteManifestSource,
	logger *slog.Logger,
) *Verifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{
		local:  local,
		remote: remote,
		logger: logger,
	}
}

// ResolveManifestVersion returns the manifest version for the pull request's
// head. Same-repository branches read the local checkout; forks are fetched
// from the fork's branch. When requiredMatch is false nothing is read and an
// empty version is returned.
func (v *Verifier) ResolveManifestVersion(ctx context.Context, trigger model.Trigger, requiredMatch bool) (string, error) {
	if !requiredMatch {
		return "", nil
	}
	if trigger.PullRequest == nil {
		return "", errNotPullRequest
	}

	if !trigger.IsFork() {
		version, err := v.local.ReadVersion(ctx)
		if err != nil {
			return "", fmt.Errorf("resolving base manifest version: %w", err)
		}
		v.logger.Info("query base repo version", "origin", model.ManifestOriginBase, "version", version)
		return version, nil
	}

	head := trigger.PullRequest.Head
	version, err := v.remote.FetchVersion(ctx, head.Owner, trigger.Repo, head.Branch)
	if err != nil {
		return "", fmt.Errorf("resolving fork manifest version for %s:%s: %w", head.Owner, head.Branch, err)
	}
	v.logger.Info("query fork repo version",
		"origin", model.ManifestOriginFork,
		"version", version,
		"fork_owner", head.Owner,
		"fork_branch", head.Branch,
	)
	return version, nil
}

// verification carries the state shared by the ordered title checks.
type verification struct {
	trigger         model.Trigger
	flags           model.Flags
	manifestVersion string
}

// titleCheck returns a non-empty reason and message when the title fails it.
type titleCheck func(ctx context.Context, st *verification) (model.FailureReason, string, error)

// Verify runs the content check and then the version check against the pull
// request title. The first failing check decides the outcome and later checks
// are skipped. Errors are infrastructure failures, never verification ones.
func (v *Verifier) Verify(ctx context.Context, trigger model.Trigger, flags model.Flags) (*model.Outcome, error) {
	if trigger.PullRequest == nil {
		return nil, errNotPullRequest
	}

	st := &verification{trigger: trigger, flags: flags}
	outcome := &model.Outcome{
		Passed:            true,
		TitleVersionToken: ExtractTitleVersionToken(trigger.PullRequest.Title),
	}

	for _, check := range []titleCheck{v.checkContent, v.checkVersion} {
		reason, message, err := check(ctx, st)
		if err != nil {
			return nil, err
		}
		if reason != model.FailureNone {
			outcome.Passed = false
			outcome.Reason = reason
			outcome.Message = message
			break
		}
	}

	outcome.ManifestVersion = st.manifestVersion

	v.logger.Debug("verification complete",
		"passed", outcome.Passed,
		"reason", outcome.Reason,
		"manifest_version", outcome.ManifestVersion,
		"title_version", outcome.TitleVersionToken,
	)
	return outcome, nil
}

func (v *Verifier) checkContent(_ context.Context, st *verification) (model.FailureReason, string, error) {
	if !TitleContains(st.trigger.PullRequest.Title, st.flags.RequiredTitleSubstring) {
		return model.FailureMissingContent,
			fmt.Sprintf("The PR title should include %s!", st.flags.RequiredTitleSubstring),
			nil
	}
	return model.FailureNone, "", nil
}

func (v *Verifier) checkVersion(ctx context.Context, st *verification) (model.FailureReason, string, error) {
	if !st.flags.EnforceVersionMatch {
		return model.FailureNone, "", nil
	}

	version, err := v.ResolveManifestVersion(ctx, st.trigger, true)
	if err != nil {
		return model.FailureNone, "", err
	}
	st.manifestVersion = version

	if !TitleContains(st.trigger.PullRequest.Title, version) {
		return model.FailureVersionMismatch,
			fmt.Sprintf("The version of the PR title is not same with the package version %s. Please check!", version),
			nil
	}
	return model.FailureNone, "", nil
}

// TitleContains reports whether title contains want as a literal,
// case-sensitive substring. An empty want always matches.
func TitleContains(title, want string) bool {
	return strings.Contains(title, want)
}

// ExtractTitleVersionToken returns the first whitespace-separated token of the
// title that contains an ASCII digit, or "-" when there is none. The token is
// only reported; it never decides pass or fail.
func ExtractTitleVersionToken(title string) string {
	for _, token := range strings.Fields(title) {
		if strings.ContainsAny(token, "0123456789") {
			return token
		}
	}
	return titleVersionPlaceholder
}
