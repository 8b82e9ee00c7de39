// Package gitdiff turns a unified git diff into the changed-file list a
// gate run evaluates, so branches can be checked without the GitHub API.
package gitdiff

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/prgate/internal/contract"
	"github.com/huangsam/prgate/schema"
	"github.com/sourcegraph/go-diff/diff"
)

const devNull = "/dev/null"

// ChangedFiles diffs head against the merge base with base and parses the result.
func ChangedFiles(ctx context.Context, client contract.GitClient, repoPath, base, head string) ([]schema.ChangedFile, error) {
	out, err := client.GetDiff(ctx, repoPath, base, head)
	if err != nil {
		return nil, fmt.Errorf("failed to diff %q...%q: %w. Verify both refs exist in the repository", base, head, err)
	}
	return Parse(out)
}

// ResolveRef turns a branch, tag or symbolic ref like HEAD into its full commit SHA.
func ResolveRef(ctx context.Context, client contract.GitClient, repoPath, ref string) (string, error) {
	out, err := client.Run(ctx, repoPath, "rev-parse", "--verify", ref+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q to a commit: %w", ref, err)
	}
	sha := strings.TrimSpace(string(out))
	if sha == "" {
		return "", fmt.Errorf("git rev-parse returned no commit for %q", ref)
	}
	return sha, nil
}

// Parse converts a multi-file unified diff into changed files, in diff order.
func Parse(data []byte) ([]schema.ChangedFile, error) {
	files := []schema.ChangedFile{}
	if len(bytes.TrimSpace(data)) == 0 {
		return files, nil
	}

	fileDiffs, err := diff.NewMultiFileDiffReader(bytes.NewReader(data)).ReadAllFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to parse diff: %w", err)
	}

	for _, fd := range fileDiffs {
		cf := toChangedFile(fd)
		if cf.Filename == "" {
			continue
		}
		files = append(files, cf)
	}
	return files, nil
}

func toChangedFile(fd *diff.FileDiff) schema.ChangedFile {
	orig, next := stripPrefix(fd.OrigName), stripPrefix(fd.NewName)
	renameFrom, renameTo := "", ""
	for _, ext := range fd.Extended {
		switch {
		case strings.HasPrefix(ext, "rename from "):
			renameFrom = strings.TrimPrefix(ext, "rename from ")
		case strings.HasPrefix(ext, "rename to "):
			renameTo = strings.TrimPrefix(ext, "rename to ")
		case strings.HasPrefix(ext, "new file mode"):
			orig = devNull
		case strings.HasPrefix(ext, "deleted file mode"):
			next = devNull
		case strings.HasPrefix(ext, "diff --git ") && (orig == "" || next == ""):
			a, b := splitGitHeader(strings.TrimPrefix(ext, "diff --git "))
			if orig == "" {
				orig = a
			}
			if next == "" {
				next = b
			}
		}
	}
	if renameFrom != "" {
		orig = renameFrom
	}
	if renameTo != "" {
		next = renameTo
	}

	cf := schema.ChangedFile{Filename: next, Status: schema.StatusModified}
	switch {
	case orig == devNull:
		cf.Status = schema.StatusAdded
	case next == devNull:
		cf.Filename = orig
		cf.Status = schema.StatusRemoved
	case orig != "" && orig != next:
		cf.Status = schema.StatusRenamed
	}

	for _, h := range fd.Hunks {
		for _, line := range strings.Split(string(h.Body), "\n") {
			switch {
			case strings.HasPrefix(line, "+"):
				cf.Additions++
			case strings.HasPrefix(line, "-"):
				cf.Deletions++
			}
		}
	}
	return cf
}

// stripPrefix removes the a/ or b/ prefix git adds to diff paths.
func stripPrefix(name string) string {
	name = strings.TrimSpace(name)
	if name == devNull {
		return name
	}
	if strings.HasPrefix(name, "a/") || strings.HasPrefix(name, "b/") {
		return name[2:]
	}
	return name
}

// splitGitHeader splits "a/x b/y" from a diff --git line. Paths with
// spaces are ambiguous, so the split happens on the " b/" separator.
func splitGitHeader(s string) (string, string) {
	if i := strings.Index(s, " b/"); i >= 0 {
		return stripPrefix(s[:i]), stripPrefix(s[i+1:])
	}
	return "", ""
}
