package ghclient

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/go-github/v73/github"
	"github.com/huangsam/prgate/internal/contract"
	"github.com/huangsam/prgate/schema"
)

// LoadEvent reads the Actions event payload and extracts the pull request.
// It returns contract.ErrNotPullRequest for any other kind of event.
func LoadEvent(path string) (schema.PullRequest, error) {
	if path == "" {
		return schema.PullRequest{}, fmt.Errorf("no event payload: %w", contract.ErrNotPullRequest)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.PullRequest{}, fmt.Errorf("failed to read event payload %q: %w", path, err)
	}
	return ParseEvent(data)
}

// ParseEvent decodes a pull_request event payload.
func ParseEvent(data []byte) (schema.PullRequest, error) {
	var event github.PullRequestEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return schema.PullRequest{}, fmt.Errorf("failed to decode event payload: %w", err)
	}
	pr := event.GetPullRequest()
	if pr == nil {
		return schema.PullRequest{}, contract.ErrNotPullRequest
	}

	number := pr.GetNumber()
	if number == 0 {
		number = event.GetNumber()
	}
	return schema.PullRequest{
		Number:  number,
		Title:   pr.GetTitle(),
		Body:    pr.GetBody(),
		HeadSHA: pr.GetHead().GetSHA(),
		Actor:   event.GetSender().GetLogin(),
	}, nil
}
