// Package schema has models and constants shared by every part of prgate.
package schema

// Finding is one severity-tagged observation produced by a single check.
// Findings carry no identity beyond their content; duplicates are legal.
type Finding struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Details  []string `json:"details,omitempty"`
	RuleID   string   `json:"ruleId,omitempty"` // Stable slug of the producing check or rule
	File     string   `json:"file,omitempty"`   // Repo-relative location, when one is known
}

// ChangedFile is a file touched by the pull request.
type ChangedFile struct {
	Filename  string     `json:"filename"`
	Additions int        `json:"additions"`
	Deletions int        `json:"deletions"`
	Status    FileStatus `json:"status"`
}

// Lines returns additions plus deletions.
func (f ChangedFile) Lines() int {
	return f.Additions + f.Deletions
}

// PullRequest is the PR identity the checks need.
type PullRequest struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	HeadSHA string `json:"headSha,omitempty"`
	Actor   string `json:"actor,omitempty"`
}

// Paths returns the filenames of the changed files in order.
func Paths(files []ChangedFile) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Filename
	}
	return paths
}
