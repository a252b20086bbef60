// Package action adapts the GitHub Actions runner to the application: it
// decodes the triggering event and reports the run's terminal status.
package action

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/verifyversion/internal/domain/model"
)

// ErrMalformedHeadLabel is returned when a pull request head label is not of
// the form "<owner>:<branch>".
var ErrMalformedHeadLabel = errors.New("malformed pull request head label")

// LoadTrigger builds the run trigger from the event name and the JSON payload
// at eventPath. owner and repo come from GITHUB_REPOSITORY; when empty they are
// taken from the payload's repository. The payload is only read for
// pull_request events.
func LoadTrigger(eventName, eventPath, owner, repo string) (model.Trigger, error) {
	trigger := model.Trigger{EventName: eventName, Owner: owner, Repo: repo}
	if eventName != model.EventPullRequest {
		return trigger, nil
	}

	if eventPath == "" {
		return model.Trigger{}, errors.New("GITHUB_EVENT_PATH is not set")
	}
	data, err := os.ReadFile(eventPath)
	if err != nil {
		return model.Trigger{}, fmt.Errorf("reading event payload: %w", err)
	}

	var event gh.PullRequestEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return model.Trigger{}, fmt.Errorf("parsing event payload: %w", err)
	}

	pr := event.GetPullRequest()
	if pr == nil {
		return model.Trigger{}, errors.New("event payload has no pull_request")
	}

	if trigger.Owner == "" || trigger.Repo == "" {
		trigger.Owner = event.GetRepo().GetOwner().GetLogin()
		trigger.Repo = event.GetRepo().GetName()
	}

	head, err := ParseHeadLabel(pr.GetHead().GetLabel())
	if err != nil {
		return model.Trigger{}, err
	}

	trigger.PullRequest = &model.PullRequestEvent{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		Head:   head,
	}
	return trigger, nil
}

// ParseHeadLabel splits "<owner>:<branch>" on its first colon.
func ParseHeadLabel(label string) (model.PullRequestHead, error) {
	owner, branch, ok := strings.Cut(label, ":")
	if !ok || owner == "" || branch == "" {
		return model.PullRequestHead{}, fmt.Errorf("%w: %q", ErrMalformedHeadLabel, label)
	}
	return model.PullRequestHead{Owner: owner, Branch: branch}, nil
}
