package core

import (
	"context"
	"fmt"

	"github.com/huangsam/prgate/internal/contract"
	"github.com/huangsam/prgate/internal/match"
	"github.com/huangsam/prgate/schema"
	"golang.org/x/sync/errgroup"
)

// ruleScanResult holds the violations found in one file.
type ruleScanResult struct {
	path       string
	violations []string
}

// RunRuleChecks evaluates every user-defined rule against the changed files.
// A rule produces at most one finding, and only when at least one changed
// file matches its globs and at least one violation is found.
func RunRuleChecks(ctx context.Context, rules []contract.Rule, reader contract.FileReader, paths []string) ([]schema.Finding, error) {
	var findings []schema.Finding
	for _, rule := range rules {
		finding, err := runRule(ctx, rule, reader, paths)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", rule.Name, err)
		}
		if finding != nil {
			findings = append(findings, *finding)
		}
	}
	return findings, nil
}

func runRule(ctx context.Context, rule contract.Rule, reader contract.FileReader, paths []string) (*schema.Finding, error) {
	toScan := match.Filter(paths, rule.FileGlobs)
	if len(toScan) == 0 {
		return nil, nil
	}

	forbid := match.Compile(rule.ForbidRegex)
	require := match.Compile(rule.RequireRegex)

	results := make([]ruleScanResult, len(toScan))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(contract.DefaultRuleScanWorker)
	for i, rel := range toScan {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = scanFile(rel, reader, forbid, require)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var violations []string
	files := map[string]struct{}{}
	for _, r := range results {
		if len(r.violations) == 0 {
			continue
		}
		violations = append(violations, r.violations...)
		files[r.path] = struct{}{}
	}
	if len(violations) == 0 {
		return nil, nil
	}
	if len(violations) > contract.MaxViolationsPerRule {
		violations = violations[:contract.MaxViolationsPerRule]
	}

	finding := &schema.Finding{
		Severity: rule.Severity,
		Title:    rule.Name,
		Details:  violations,
		RuleID:   schema.RuleCustomPrefix + schema.Slugify(rule.Name),
	}
	if len(files) == 1 {
		for f := range files {
			finding.File = f
		}
	}
	return finding, nil
}

// scanFile reads one file and lists its violations. Missing and oversized
// files yield no violations.
func scanFile(rel string, reader contract.FileReader, forbid, require []*match.Pattern) ruleScanResult {
	res := ruleScanResult{path: rel}
	data, ok := reader.ReadFile(rel, contract.MaxRuleFileBytes)
	if !ok {
		return res
	}
	text := string(data)

	for _, p := range forbid {
		if p.MatchString(text) {
			res.violations = append(res.violations, fmt.Sprintf("%s matches forbidRegex: /%s/", rel, p.Source))
		}
	}
	if len(require) > 0 && !match.TestAny(text, require) {
		res.violations = append(res.violations, rel+" did not match any requireRegex")
	}
	return res
}
