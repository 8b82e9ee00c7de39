package core

import (
	"fmt"
	"testing"

	"github.com/huangsam/prgate/internal/contract"
	"github.com/huangsam/prgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeFiles creates n files whose line counts sum to lines.
func makeFiles(n, lines int) []schema.ChangedFile {
	files := make([]schema.ChangedFile, n)
	for i := range files {
		files[i] = schema.ChangedFile{Filename: fmt.Sprintf("src/f%d.go", i), Status: schema.StatusModified}
	}
	if n > 0 {
		files[0].Additions = lines
	}
	return files
}

func TestRunSizeChecks(t *testing.T) {
	cfg := contract.DefaultConfig().Size

	tests := []struct {
		name          string
		files         int
		lines         int
		expectedWarns []string
	}{
		{"small PR", 3, 50, nil},
		{"exactly at thresholds", 25, 400, nil},
		{"too many files", 26, 10, []string{"PR touches many files"}},
		{"too many lines", 2, 401, []string{"PR changes many lines"}},
		{"both thresholds", 30, 500, []string{"PR touches many files", "PR changes many lines"}},
		{"empty PR", 0, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings, size := RunSizeChecks(cfg, makeFiles(tt.files, tt.lines))

			require.NotEmpty(t, findings)
			assert.Equal(t, schema.SeverityInfo, findings[0].Severity)
			assert.Equal(t, "PR size summary", findings[0].Title)
			assert.Equal(t, 1, countSeverity(findings, schema.SeverityInfo))
			assert.Equal(t, len(tt.expectedWarns), countSeverity(findings, schema.SeverityWarn))
			for i, title := range tt.expectedWarns {
				assert.Equal(t, title, findings[i+1].Title)
			}
			assert.Equal(t, schema.SizeSummary{Files: tt.files, Lines: tt.lines}, size)
		})
	}
}

func TestRunSizeChecksDetails(t *testing.T) {
	files := []schema.ChangedFile{
		{Filename: "a", Additions: 3, Deletions: 2},
		{Filename: "b", Additions: 1, Deletions: 4},
	}
	findings, _ := RunSizeChecks(contract.DefaultConfig().Size, files)
	assert.Equal(t, []string{"Files changed: 2", "Lines changed (add+del): 10"}, findings[0].Details)
}
