package outwriter

import (
	"fmt"
	"strings"

	"github.com/huangsam/prgate/schema"
)

// Section labels in render order.
const (
	ErrorsLabel   = "⛔ Errors (merge blockers)"
	WarningsLabel = "⚠️ Warnings"
	InfoLabel     = "ℹ️ Info"
	ClosingNote   = "> prgate refreshes this report on every PR update."
	riskSummary   = "Why this score"
)

// RenderMarkdown renders the report as the PR comment body.
// The hidden marker is added by the publisher, not here.
func RenderMarkdown(header string, report *schema.Report) string {
	if report == nil {
		report = &schema.Report{}
	}
	var lines []string
	lines = append(lines, "## "+schema.FlattenLine(header))

	if summary := summaryLine(report); summary != "" {
		lines = append(lines, "", "**"+summary+"**")
	}

	if len(report.Meta) > 0 {
		lines = append(lines, "")
		for _, m := range report.Meta {
			lines = append(lines, "- "+schema.FlattenLine(m))
		}
	}

	errs, warns, infos := report.Grouped()
	lines = renderSection(lines, ErrorsLabel, errs)
	lines = renderSection(lines, WarningsLabel, warns)
	lines = renderSection(lines, InfoLabel, infos)

	lines = append(lines, "", ClosingNote)
	return strings.Join(lines, "\n")
}

// summaryLine joins the available risk, file and line figures.
func summaryLine(report *schema.Report) string {
	var parts []string
	if r := report.Risk; r != nil {
		parts = append(parts, fmt.Sprintf("Risk: %d/100 (%s)", r.Score, r.Band))
	}
	if s := report.Size; s != nil {
		parts = append(parts, fmt.Sprintf("Files: %d", s.Files), fmt.Sprintf("Lines: %d", s.Lines))
	}
	return strings.Join(parts, " • ")
}

func renderSection(lines []string, label string, items []schema.Finding) []string {
	if len(items) == 0 {
		return lines
	}
	lines = append(lines, "", "### "+label)
	for _, item := range items {
		lines = append(lines, "- **"+schema.FlattenLine(item.Title)+"**")
		if len(item.Details) == 0 {
			continue
		}
		if item.RuleID == schema.RuleRiskScore {
			lines = append(lines, "  <details><summary>"+riskSummary+"</summary>", "")
			for _, d := range item.Details {
				lines = append(lines, "  - "+schema.FlattenLine(d))
			}
			lines = append(lines, "", "  </details>")
			continue
		}
		for _, d := range item.Details {
			lines = append(lines, "  - "+schema.FlattenLine(d))
		}
	}
	return lines
}
