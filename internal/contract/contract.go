// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"

	"github.com/huangsam/prgate/schema"
)

// ErrNotPullRequest is returned when the triggering event carries no pull request.
var ErrNotPullRequest = errors.New("not a pull_request event")

// ChangedFileLister lists every file changed by a pull request.
// Implementations must follow pagination until the listing is exhausted.
type ChangedFileLister interface {
	ListChangedFiles(ctx context.Context, number int) ([]schema.ChangedFile, error)
}

// CommentPublisher publishes the report comment on a pull request.
// When update is true, an existing comment carrying schema.CommentMarker is
// edited in place instead of creating a new one.
type CommentPublisher interface {
	UpsertComment(ctx context.Context, number int, body string, update bool) error
}

// PullRequestHost is the full surface of a code host used by a gate run.
type PullRequestHost interface {
	ChangedFileLister
	CommentPublisher
}

// FileReader reads repository files by their repo-relative path.
// The bool is false when the file is missing, unreadable or larger than maxBytes.
type FileReader interface {
	ReadFile(rel string, maxBytes int64) ([]byte, bool)
}

// GitClient defines the git operations needed to evaluate a local branch.
// This allows the diff logic to be tested without a real git executable.
type GitClient interface {
	// Run executes a git command and returns its stdout.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoRoot returns the absolute path to the root of the repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetDiff returns the unified diff between the merge base of base and head, and head.
	GetDiff(ctx context.Context, repoPath, base, head string) ([]byte, error)

	// GetSubject returns the subject line and body of the commit at ref.
	GetSubject(ctx context.Context, repoPath, ref string) (subject, body string, err error)
}
