package outwriter

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/prgate/schema"
)

// BuildJSONReport builds the machine-readable summary of a report.
func BuildJSONReport(report *schema.Report, version string, now time.Time) schema.JSONReport {
	errs, warns, infos := report.Counts()
	findings := report.Findings
	if findings == nil {
		findings = []schema.Finding{}
	}
	return schema.JSONReport{
		Tool:        schema.JSONTool{Name: schema.ToolName, Version: version},
		GeneratedAt: now.UTC().Format(time.RFC3339),
		RunID:       uuid.NewString(),
		Summary: schema.JSONSummary{
			Errors:   errs,
			Warnings: warns,
			Info:     infos,
			Total:    len(findings),
		},
		Risk:     report.Risk,
		Findings: findings,
	}
}

// WriteJSONReport writes the JSON report, creating parent directories.
// An empty path writes to stdout.
func WriteJSONReport(path string, doc schema.JSONReport) error {
	return writeWithFile(path, func(w io.Writer) error {
		return writeJSON(w, doc)
	}, "Wrote JSON report")
}
