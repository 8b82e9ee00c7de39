package core

import (
	"fmt"

	"github.com/huangsam/prgate/internal/contract"
	"github.com/huangsam/prgate/schema"
)

// SummarizeSize counts changed files and the summed additions plus deletions.
func SummarizeSize(files []schema.ChangedFile) schema.SizeSummary {
	lines := 0
	for _, f := range files {
		lines += f.Lines()
	}
	return schema.SizeSummary{Files: len(files), Lines: lines}
}

// RunSizeChecks always reports the PR size, then warns independently when
// the file or line thresholds are exceeded.
func RunSizeChecks(cfg contract.SizeConfig, files []schema.ChangedFile) ([]schema.Finding, schema.SizeSummary) {
	size := SummarizeSize(files)

	findings := []schema.Finding{{
		Severity: schema.SeverityInfo,
		Title:    "PR size summary",
		Details: []string{
			fmt.Sprintf("Files changed: %d", size.Files),
			fmt.Sprintf("Lines changed (add+del): %d", size.Lines),
		},
		RuleID: schema.RuleSizeSummary,
	}}

	if size.Files > cfg.WarnFilesChangedOver {
		findings = append(findings, schema.Finding{
			Severity: schema.SeverityWarn,
			Title:    "PR touches many files",
			Details: []string{
				fmt.Sprintf("Threshold: %d", cfg.WarnFilesChangedOver),
				fmt.Sprintf("Current: %d", size.Files),
				"Tip: consider splitting into smaller PRs.",
			},
			RuleID: schema.RuleSizeFiles,
		})
	}

	if size.Lines > cfg.WarnLinesChangedOver {
		findings = append(findings, schema.Finding{
			Severity: schema.SeverityWarn,
			Title:    "PR changes many lines",
			Details: []string{
				fmt.Sprintf("Threshold: %d", cfg.WarnLinesChangedOver),
				fmt.Sprintf("Current: %d", size.Lines),
				"Tip: add tests and a clear rollout plan.",
			},
			RuleID: schema.RuleSizeLines,
		})
	}

	return findings, size
}
