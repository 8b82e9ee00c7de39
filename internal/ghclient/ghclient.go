// Package ghclient talks to the GitHub API on behalf of a gate run: it lists
// the files changed by a pull request and upserts the report comment.
package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v73/github"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/huangsam/prgate/internal/contract"
	"github.com/huangsam/prgate/schema"
	"golang.org/x/oauth2"
)

// Defaults for the GitHub client.
const (
	DefaultAPIURL = "https://api.github.com"
	PerPage       = 100
	RetryMax      = 3
)

// Options configures a Client.
type Options struct {
	Token      string
	Repository string // owner/repo
	APIURL     string // empty or DefaultAPIURL for github.com
	RetryMax   int
	HTTPClient *http.Client // overrides the retrying transport when set
}

// Client implements contract.PullRequestHost against the GitHub REST API.
type Client struct {
	gh    *github.Client
	owner string
	repo  string
}

var _ contract.PullRequestHost = &Client{} // Compile-time check

// NewClient creates a GitHub client with token auth and retrying transport.
func NewClient(opts Options) (*Client, error) {
	owner, repo, err := ParseRepository(opts.Repository)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient(opts.Token, opts.RetryMax)
	}

	gh := github.NewClient(httpClient)
	if api := strings.TrimRight(opts.APIURL, "/"); api != "" && api != DefaultAPIURL {
		gh, err = gh.WithEnterpriseURLs(api, api)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", opts.APIURL, err)
		}
	}
	return &Client{gh: gh, owner: owner, repo: repo}, nil
}

// newHTTPClient stacks oauth2 token auth on top of a retrying transport.
func newHTTPClient(token string, retryMax int) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	rc.Logger = zapLeveledLogger{}
	base := rc.StandardClient().Transport
	if token == "" {
		return &http.Client{Transport: base}
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &http.Client{Transport: &oauth2.Transport{Source: src, Base: base}}
}

// ParseRepository splits "owner/repo".
func ParseRepository(full string) (string, string, error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(full), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/repo", full)
	}
	return owner, repo, nil
}

// ListChangedFiles implements the ChangedFileLister interface.
// It follows pagination until GitHub reports no next page.
func (c *Client) ListChangedFiles(ctx context.Context, number int) ([]schema.ChangedFile, error) {
	var out []schema.ChangedFile
	opts := &github.ListOptions{PerPage: PerPage}
	for {
		files, resp, err := c.gh.PullRequests.ListFiles(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list files of %s/%s#%d: %w", c.owner, c.repo, number, err)
		}
		for _, f := range files {
			out = append(out, schema.ChangedFile{
				Filename:  f.GetFilename(),
				Additions: f.GetAdditions(),
				Deletions: f.GetDeletions(),
				Status:    schema.NormalizeFileStatus(f.GetStatus()),
			})
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	if out == nil {
		out = []schema.ChangedFile{}
	}
	return out, nil
}

// UpsertComment implements the CommentPublisher interface. The body is
// prefixed with the hidden marker so later runs can find and edit it.
func (c *Client) UpsertComment(ctx context.Context, number int, body string, update bool) error {
	full := WithMarker(body)

	if update {
		existing, err := c.findMarkedComment(ctx, number)
		if err != nil {
			return err
		}
		if existing != nil {
			_, _, err := c.gh.Issues.EditComment(ctx, c.owner, c.repo, existing.GetID(), &github.IssueComment{Body: github.Ptr(full)})
			if err != nil {
				return fmt.Errorf("failed to update comment %d: %w", existing.GetID(), err)
			}
			contract.Logger().Infow("Updated report comment", "pr", number, "comment", existing.GetID())
			return nil
		}
	}

	created, _, err := c.gh.Issues.CreateComment(ctx, c.owner, c.repo, number, &github.IssueComment{Body: github.Ptr(full)})
	if err != nil {
		return fmt.Errorf("failed to create comment on #%d: %w", number, err)
	}
	contract.Logger().Infow("Created report comment", "pr", number, "comment", created.GetID())
	return nil
}

func (c *Client) findMarkedComment(ctx context.Context, number int) (*github.IssueComment, error) {
	opts := &github.IssueListCommentsOptions{ListOptions: github.ListOptions{PerPage: PerPage}}
	for {
		comments, resp, err := c.gh.Issues.ListComments(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments of #%d: %w", number, err)
		}
		for _, cm := range comments {
			if strings.Contains(cm.GetBody(), schema.CommentMarker) {
				return cm, nil
			}
		}
		if resp == nil || resp.NextPage == 0 {
			return nil, nil
		}
		opts.Page = resp.NextPage
	}
}

// WithMarker prefixes the body with the hidden comment marker once.
func WithMarker(body string) string {
	if strings.HasPrefix(body, schema.CommentMarker) {
		return body
	}
	return schema.CommentMarker + "\n" + body
}
