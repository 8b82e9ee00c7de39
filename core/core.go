// Package core has core logic for PR checks, risk scoring and the gate decision.
package core

import (
	"context"
	"fmt"

	"github.com/huangsam/prgate/internal/contract"
	"github.com/huangsam/prgate/schema"
)

// CheckInput is everything the checks need for one run.
type CheckInput struct {
	Config contract.Config
	PR     schema.PullRequest
	Files  []schema.ChangedFile
	Reader contract.FileReader
}

// RunChecks runs every check in a fixed order and aggregates their findings:
// title/body, size, tests, custom rules, then risk. Findings are concatenated
// without dedup. Size and risk results are attached as structured data.
func RunChecks(ctx context.Context, in CheckInput) (*schema.Report, error) {
	cfg := in.Config
	paths := schema.Paths(in.Files)
	report := &schema.Report{}

	report.Findings = append(report.Findings, RunTitleBodyChecks(cfg.PR, in.PR.Title, in.PR.Body)...)

	sizeFindings, size := RunSizeChecks(cfg.Size, in.Files)
	report.Findings = append(report.Findings, sizeFindings...)
	report.Size = &size

	report.Findings = append(report.Findings, RunTestHeuristics(cfg.Tests, paths)...)

	reader := in.Reader
	if reader == nil {
		reader = contract.MapFileReader{}
	}
	ruleFindings, err := RunRuleChecks(ctx, cfg.Rules, reader, paths)
	if err != nil {
		return nil, fmt.Errorf("failed to run custom rules: %w", err)
	}
	report.Findings = append(report.Findings, ruleFindings...)

	riskFindings, risk := RunRiskScore(cfg.Risk, in.Files, TestsTouched(cfg.Tests, paths))
	report.Findings = append(report.Findings, riskFindings...)
	report.Risk = risk

	if report.Findings == nil {
		report.Findings = []schema.Finding{}
	}
	return report, nil
}

// BuildMeta returns the run metadata lines shown under the report header.
func BuildMeta(number int, mode schema.Mode, changedFiles int) []string {
	return []string{
		fmt.Sprintf("PR: #%d", number),
		fmt.Sprintf("Mode: `%s`", mode),
		fmt.Sprintf("Changed files: `%d`", changedFiles),
	}
}
