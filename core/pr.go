package core

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/huangsam/prgate/internal/contract"
	"github.com/huangsam/prgate/internal/match"
	"github.com/huangsam/prgate/schema"
)

// RunTitleBodyChecks evaluates the PR title prefix and the description quality.
// Every check runs independently; none short-circuits another.
func RunTitleBodyChecks(cfg contract.PRConfig, title, body string) []schema.Finding {
	var findings []schema.Finding
	prBody := strings.TrimSpace(body)

	if titleHasPrefix(title, cfg.TitlePrefixes) {
		findings = append(findings, schema.Finding{
			Severity: schema.SeverityInfo,
			Title:    "PR title prefix looks good",
			RuleID:   schema.RuleTitlePrefix,
		})
	} else {
		findings = append(findings, schema.Finding{
			Severity: schema.SeverityWarn,
			Title:    "PR title does not match expected prefixes",
			Details: []string{
				"Expected one of: " + strings.Join(cfg.TitlePrefixes, ", "),
				fmt.Sprintf("Current: %q", title),
			},
			RuleID: schema.RuleTitlePrefix,
		})
	}

	if n := NormalizedLength(prBody); n < cfg.MinBodyChars {
		findings = append(findings, schema.Finding{
			Severity: schema.SeverityWarn,
			Title:    "PR description is too short",
			Details: []string{
				fmt.Sprintf("Minimum: %d", cfg.MinBodyChars),
				fmt.Sprintf("Current: %d", n),
				"Tip: explain What/Why/How and How tested",
			},
			RuleID: schema.RuleBodyLength,
		})
	}

	for _, section := range cfg.RequiredSections {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(section) + `\b`)
		if !re.MatchString(prBody) {
			findings = append(findings, schema.Finding{
				Severity: schema.SeverityWarn,
				Title:    "Missing required section: " + section,
				Details:  []string{fmt.Sprintf("Add a %q section to your PR description.", section)},
				RuleID:   schema.RuleRequiredSection,
			})
		}
	}

	taskRe, err := match.CompileOne(cfg.TaskRegex)
	switch {
	case err != nil:
		findings = append(findings, schema.Finding{
			Severity: schema.SeverityWarn,
			Title:    "Config taskRegex is invalid",
			Details:  []string{"taskRegex: " + cfg.TaskRegex},
			RuleID:   schema.RuleTaskRegexInvalid,
		})
	case !taskRe.MatchString(prBody):
		findings = append(findings, schema.Finding{
			Severity: schema.SeverityWarn,
			Title:    "No task/issue reference detected in PR description",
			Details: []string{
				"Expected: " + cfg.TaskRegex,
				`Example: "#123" or "TASK-123"`,
			},
			RuleID: schema.RuleTaskReference,
		})
	}

	return findings
}

// NormalizedLength counts the characters of text after trimming it and
// collapsing every Unicode whitespace run (NBSP and \v included) into a single space.
func NormalizedLength(text string) int {
	return utf8.RuneCountInString(strings.Join(strings.Fields(text), " "))
}

func titleHasPrefix(title string, prefixes []string) bool {
	lower := strings.ToLower(title)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
