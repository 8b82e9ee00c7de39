package core

import (
	"github.com/huangsam/prgate/internal/contract"
	"github.com/huangsam/prgate/internal/match"
	"github.com/huangsam/prgate/schema"
)

// CodeTouched reports whether any changed path matches the code globs.
func CodeTouched(cfg contract.TestsConfig, paths []string) bool {
	return anyMatch(paths, cfg.CodeGlobs)
}

// TestsTouched reports whether any changed path matches the test globs.
// It ignores the enabled flag; the risk score needs it either way.
func TestsTouched(cfg contract.TestsConfig, paths []string) bool {
	return anyMatch(paths, cfg.TestGlobs)
}

// RunTestHeuristics emits exactly one finding about tests accompanying code,
// or nothing when the heuristic is disabled.
func RunTestHeuristics(cfg contract.TestsConfig, paths []string) []schema.Finding {
	if !cfg.WarnIfCodeChangedWithoutTests {
		return nil
	}

	code := CodeTouched(cfg, paths)
	tests := TestsTouched(cfg, paths)

	switch {
	case code && !tests:
		return []schema.Finding{{
			Severity: schema.SeverityWarn,
			Title:    "Code changed but no tests detected in this PR",
			Details:  []string{"If the change affects behavior, add or update tests."},
			RuleID:   schema.RuleTestCoverage,
		}}
	case code && tests:
		return []schema.Finding{{
			Severity: schema.SeverityInfo,
			Title:    "Tests updated alongside code changes",
			RuleID:   schema.RuleTestCoverage,
		}}
	default:
		return []schema.Finding{{
			Severity: schema.SeverityInfo,
			Title:    "No code files detected (based on codeGlobs)",
			RuleID:   schema.RuleTestCoverage,
		}}
	}
}

func anyMatch(paths, globs []string) bool {
	for _, p := range paths {
		if match.Any(p, globs) {
			return true
		}
	}
	return false
}
