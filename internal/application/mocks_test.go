package application

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"github.com/ericfisherdev/verifyversion/internal/domain/model"
)

// --- Mock implementations of the driven ports ---

type mockLocalSource struct {
	version string
	err     error
	calls   int
}

func (m *mockLocalSource) ReadVersion(_ context.Context) (string, error) {
	m.calls++
	return m.version, m.err
}

type remoteCall struct {
	owner, repo, branch string
}

type mockRemoteSource struct {
	version string
	err     error
	calls   []remoteCall
}

func (m *mockRemoteSource) FetchVersion(_ context.Context, owner, repo, branch string) (string, error) {
	m.calls = append(m.calls, remoteCall{owner: owner, repo: repo, branch: branch})
	return m.version, m.err
}

type updateCall struct {
	repo      string
	commentID int64
	body      string
}

// mockCommentStore is an in-memory comment thread for a single pull request.
type mockCommentStore struct {
	comments  []model.IssueComment
	nextID    int64
	listErr   error
	createErr error
	updateErr error

	listCalls int
	creates   []string
	updates   []updateCall
}

func (m *mockCommentStore) ListIssueComments(_ context.Context, _ string, _ int) ([]model.IssueComment, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.IssueComment, len(m.comments))
	copy(out, m.comments)
	return out, nil
}

func (m *mockCommentStore) CreateIssueComment(_ context.Context, _ string, _ int, body string) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.nextID++
	m.creates = append(m.creates, body)
	m.comments = append(m.comments, model.IssueComment{ID: m.nextID, Body: body})
	return m.nextID, nil
}

func (m *mockCommentStore) UpdateIssueComment(_ context.Context, repo string, commentID int64, body string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updates = append(m.updates, updateCall{repo: repo, commentID: commentID, body: body})
	for i := range m.comments {
		if m.comments[i].ID == commentID {
			m.comments[i].Body = body
			return nil
		}
	}
	return errors.New("comment not found")
}

// --- Helpers ---

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

func sameRepoTrigger(title string) model.Trigger {
	return model.Trigger{
		EventName: model.EventPullRequest,
		Owner:     "acme",
		Repo:      "widgets",
		PullRequest: &model.PullRequestEvent{
			Number: 17,
			Title:  title,
			Head:   model.PullRequestHead{Owner: "acme", Branch: "release"},
		},
	}
}

func forkTrigger(title string) model.Trigger {
	tr := sameRepoTrigger(title)
	tr.PullRequest.Head = model.PullRequestHead{Owner: "contributor", Branch: "bump-version"}
	return tr
}
