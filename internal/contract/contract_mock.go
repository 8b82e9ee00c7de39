package contract

import (
	"context"

	"github.com/huangsam/prgate/schema"
	"github.com/stretchr/testify/mock"
)

// MockPullRequestHost is a mock implementation of PullRequestHost for testing.
type MockPullRequestHost struct {
	mock.Mock
}

var _ PullRequestHost = &MockPullRequestHost{} // Compile-time check

// ListChangedFiles implements the ChangedFileLister interface.
func (m *MockPullRequestHost) ListChangedFiles(ctx context.Context, number int) ([]schema.ChangedFile, error) {
	args := m.Called(ctx, number)
	files, _ := args.Get(0).([]schema.ChangedFile)
	return files, args.Error(1)
}

// UpsertComment implements the CommentPublisher interface.
func (m *MockPullRequestHost) UpsertComment(ctx context.Context, number int, body string, update bool) error {
	args := m.Called(ctx, number, body, update)
	return args.Error(0)
}

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	ret := m.Called(ctx, repoPath, args)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	return ret.String(0), ret.Error(1)
}

// GetDiff implements the GitClient interface.
func (m *MockGitClient) GetDiff(ctx context.Context, repoPath, base, head string) ([]byte, error) {
	ret := m.Called(ctx, repoPath, base, head)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// GetSubject implements the GitClient interface.
func (m *MockGitClient) GetSubject(ctx context.Context, repoPath, ref string) (string, string, error) {
	ret := m.Called(ctx, repoPath, ref)
	return ret.String(0), ret.String(1), ret.Error(2)
}
