package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// commitSeparator splits subject from body in GetSubject output.
const commitSeparator = "\x1f"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetDiff implements the GitClient interface.
// It uses Git's "..." (three-dot) range syntax which diffs targetRef against
// the merge base, matching what a pull request shows.
func (c *LocalGitClient) GetDiff(ctx context.Context, repoPath, base, head string) ([]byte, error) {
	args := []string{
		"diff",
		"--no-color",
		"--no-ext-diff",
		"-M",
		base + "..." + head,
	}
	return c.Run(ctx, repoPath, args...)
}

// GetSubject implements the GitClient interface.
func (c *LocalGitClient) GetSubject(ctx context.Context, repoPath, ref string) (string, string, error) {
	args := []string{
		"log", "-n", "1",
		"--pretty=format:%s" + commitSeparator + "%b",
		ref,
	}
	out, err := c.Run(ctx, repoPath, args...)
	if err != nil {
		return "", "", err
	}
	subject, body, _ := strings.Cut(string(out), commitSeparator)
	return strings.TrimSpace(subject), strings.TrimSpace(body), nil
}
