package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/verifyversion/internal/domain/model"
)

type runnerDeps struct {
	local  *mockLocalSource
	remote *mockRemoteSource
	store  *mockCommentStore
	runner *Runner
}

func newTestRunner(t *testing.T, localVersion, remoteVersion string) runnerDeps {
	t.Helper()
	logger, _ := newTestLogger()
	d := runnerDeps{
		local:  &mockLocalSource{version: localVersion},
		remote: &mockRemoteSource{version: remoteVersion},
		store:  &mockCommentStore{},
	}
	d.runner = NewRunner(
		NewVerifier(d.local, d.remote, logger),
		NewCommentService(d.store, false, logger),
		logger,
	)
	return d
}

func TestRun_NonPullRequestTrigger(t *testing.T) {
	d := newTestRunner(t, "1.0.0", "")
	logger, logs := newTestLogger()
	d.runner.logger = logger

	outcome, err := d.runner.Run(context.Background(), model.Trigger{EventName: "push", Owner: "acme", Repo: "widgets"}, model.Flags{EnforceVersionMatch: true, PostComment: true})

	require.NoError(t, err)
	assert.Nil(t, outcome)
	assert.Zero(t, d.local.calls)
	assert.Zero(t, d.store.listCalls)
	assert.Contains(t, logs.String(), "only pull_request triggers are supported")
}

func TestRun_PassAndComment(t *testing.T) {
	d := newTestRunner(t, "1.2.0", "")

	outcome, err := d.runner.Run(context.Background(), sameRepoTrigger("release 1.2.0"), model.Flags{EnforceVersionMatch: true, PostComment: true})

	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.True(t, outcome.Passed)
	require.Len(t, d.store.creates, 1)
	assert.Contains(t, d.store.creates[0], "passed")
}

func TestRun_FailureStillComments(t *testing.T) {
	d := newTestRunner(t, "1.3.0", "")

	outcome, err := d.runner.Run(context.Background(), sameRepoTrigger("release 1.2.0"), model.Flags{EnforceVersionMatch: true, PostComment: true})

	require.NoError(t, err)
	assert.False(t, outcome.Passed)
	assert.Equal(t, model.FailureVersionMismatch, outcome.Reason)
	require.Len(t, d.store.creates, 1)
	assert.Contains(t, d.store.creates[0], "| 1.3.0 | 1.2.0 |")
}

func TestRun_ForkWithCommentEnabled(t *testing.T) {
	d := newTestRunner(t, "", "1.3.0")

	outcome, err := d.runner.Run(context.Background(), forkTrigger("release 1.3.0"), model.Flags{EnforceVersionMatch: true, PostComment: true})

	require.NoError(t, err)
	assert.True(t, outcome.Passed)
	assert.Zero(t, d.local.calls)
	assert.Len(t, d.remote.calls, 1)
	assert.Zero(t, d.store.listCalls)
	assert.Empty(t, d.store.creates)
	assert.Empty(t, d.store.updates)
}

func TestRun_UpdatesPriorComment(t *testing.T) {
	d := newTestRunner(t, "1.2.0", "")
	d.store.comments = []model.IssueComment{{ID: 42, Body: CommentMarker}}

	_, err := d.runner.Run(context.Background(), sameRepoTrigger("release 1.2.0"), model.Flags{EnforceVersionMatch: true, PostComment: true})

	require.NoError(t, err)
	require.Len(t, d.store.updates, 1)
	assert.Equal(t, int64(42), d.store.updates[0].commentID)
	assert.Empty(t, d.store.creates)
}

func TestRun_TwiceKeepsOneComment(t *testing.T) {
	d := newTestRunner(t, "1.2.0", "")
	flags := model.Flags{EnforceVersionMatch: true, PostComment: true}

	_, err := d.runner.Run(context.Background(), sameRepoTrigger("release 1.2.0"), flags)
	require.NoError(t, err)
	_, err = d.runner.Run(context.Background(), sameRepoTrigger("release 1.2.0"), flags)
	require.NoError(t, err)

	assert.Len(t, d.store.comments, 1)
	assert.Len(t, d.store.creates, 1)
	assert.Len(t, d.store.updates, 1)
}

func TestRun_InfrastructureErrorSkipsComment(t *testing.T) {
	d := newTestRunner(t, "", "")
	d.local.err = errors.New("reading manifest: open package.json: no such file or directory")

	outcome, err := d.runner.Run(context.Background(), sameRepoTrigger("release 1.2.0"), model.Flags{EnforceVersionMatch: true, PostComment: true})

	require.Error(t, err)
	assert.Nil(t, outcome)
	assert.Zero(t, d.store.listCalls, "no comment is posted when verification could not complete")
}

func TestRun_CommentErrorIsFatal(t *testing.T) {
	d := newTestRunner(t, "1.2.0", "")
	d.store.listErr = errors.New("rate limited")

	outcome, err := d.runner.Run(context.Background(), sameRepoTrigger("release 1.2.0"), model.Flags{EnforceVersionMatch: true, PostComment: true})

	require.Error(t, err)
	assert.Nil(t, outcome)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestRun_LogsReconcileResult(t *testing.T) {
	tests := []struct {
		name       string
		existing   []model.IssueComment
		wantAction string
		wantID     string
	}{
		{name: "created", wantAction: "action=created", wantID: "comment_id=1"},
		{
			name:       "updated",
			existing:   []model.IssueComment{{ID: 77, Body: CommentMarker + "\nold"}},
			wantAction: "action=updated",
			wantID:     "comment_id=77",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestRunner(t, "1.2.0", "")
			d.store.comments = tc.existing
			logger, logs := newTestLogger()
			d.runner.logger = logger

			_, err := d.runner.Run(context.Background(), sameRepoTrigger("release 1.2.0"), model.Flags{EnforceVersionMatch: true, PostComment: true})

			require.NoError(t, err)
			assert.Contains(t, logs.String(), "comment reconciled")
			assert.Contains(t, logs.String(), tc.wantAction)
			assert.Contains(t, logs.String(), tc.wantID)
		})
	}
}
