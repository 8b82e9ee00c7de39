package core

import (
	"fmt"
	"strings"

	"github.com/huangsam/prgate/internal/contract"
	"github.com/huangsam/prgate/internal/match"
	"github.com/huangsam/prgate/schema"
)

// Risk score weights and caps.
const (
	linesPerPoint      = 20
	maxSizeLinesPts    = 35
	pointsPerFile      = 2
	maxSizeFilesPts    = 20
	pointsPerSensitive = 6
	maxSensitivePts    = 25
	pointsPerDep       = 5
	maxDepsPts         = 10
	noTestsPts         = 10
	maxScore           = 100
	highBandScore      = 75
	mediumBandScore    = 40
	maxListedPaths     = 8
)

// ComputeRiskScore derives the risk assessment of a pull request.
// It is a pure function of its inputs.
func ComputeRiskScore(cfg contract.RiskConfig, files []schema.ChangedFile, testsTouched bool) schema.RiskScoreResult {
	size := SummarizeSize(files)
	paths := schema.Paths(files)

	sensitive := match.Filter(paths, cfg.SensitivePaths)
	deps := match.Filter(paths, cfg.DependencyFiles)

	comp := schema.RiskComponents{
		SizeLines: clamp(roundDiv(size.Lines, linesPerPoint), 0, maxSizeLinesPts),
		SizeFiles: clamp(size.Files*pointsPerFile, 0, maxSizeFilesPts),
		Sensitive: clamp(len(sensitive)*pointsPerSensitive, 0, maxSensitivePts),
		Deps:      clamp(len(deps)*pointsPerDep, 0, maxDepsPts),
	}
	if !testsTouched {
		comp.Tests = noTestsPts
	}
	score := clamp(comp.Sum(), 0, maxScore)

	reasons := []string{fmt.Sprintf(
		"Score components: size(lines)=%d, size(files)=%d, sensitive=%d, deps=%d, tests=%d",
		comp.SizeLines, comp.SizeFiles, comp.Sensitive, comp.Deps, comp.Tests,
	)}
	if len(sensitive) > 0 {
		listed := sensitive
		suffix := ""
		if len(listed) > maxListedPaths {
			listed = listed[:maxListedPaths]
			suffix = "…"
		}
		reasons = append(reasons, "Sensitive paths touched: "+strings.Join(listed, ", ")+suffix)
	}
	if len(deps) > 0 {
		reasons = append(reasons, "Dependency files changed: "+strings.Join(deps, ", "))
	}
	if !testsTouched {
		reasons = append(reasons, "No tests detected in this PR (based on testGlobs).")
	}

	return schema.RiskScoreResult{
		Score:      score,
		Band:       RiskBandOf(score),
		Severity:   riskSeverity(score, cfg.BlockIfScoreAbove),
		Reasons:    reasons,
		Components: comp,
		Sensitive:  sensitive,
		Deps:       deps,
	}
}

// RunRiskScore returns the risk finding and its structured result, or
// nothing when the risk score is disabled.
func RunRiskScore(cfg contract.RiskConfig, files []schema.ChangedFile, testsTouched bool) ([]schema.Finding, *schema.RiskScoreResult) {
	if !cfg.Enabled {
		return nil, nil
	}
	res := ComputeRiskScore(cfg, files, testsTouched)
	return []schema.Finding{{
		Severity: res.Severity,
		Title:    RiskTitle(res),
		Details:  res.Reasons,
		RuleID:   schema.RuleRiskScore,
	}}, &res
}

// RiskTitle formats the title of the risk finding.
func RiskTitle(res schema.RiskScoreResult) string {
	return fmt.Sprintf("Risk Score: %d/100 (%s)", res.Score, res.Band)
}

// RiskBandOf buckets a score into Low, Medium or High.
func RiskBandOf(score int) schema.RiskBand {
	switch {
	case score >= highBandScore:
		return schema.RiskHigh
	case score >= mediumBandScore:
		return schema.RiskMedium
	default:
		return schema.RiskLow
	}
}

// riskSeverity warns on high scores; a configured block threshold takes priority.
func riskSeverity(score int, blockAbove *int) schema.Severity {
	if blockAbove != nil && score >= *blockAbove {
		return schema.SeverityError
	}
	if score >= highBandScore {
		return schema.SeverityWarn
	}
	return schema.SeverityInfo
}

// roundDiv divides non-negative n by d rounding half up.
func roundDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d/2) / d
}

func clamp(n, lo, hi int) int {
	return max(lo, min(hi, n))
}
