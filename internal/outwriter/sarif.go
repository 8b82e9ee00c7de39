package outwriter

import (
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/huangsam/prgate/schema"
)

// SARIF document constants.
const (
	SarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	SarifVersion = "2.1.0"
)

// BuildSARIF converts findings into a SARIF 2.1.0 log. Each distinct rule ID
// becomes one rule in first-seen order; every finding becomes one result.
// Findings without a file keep their result but carry no locations.
func BuildSARIF(findings []schema.Finding, version string) schema.SarifLog {
	var rules []schema.SarifRule
	index := map[string]int{}
	results := make([]schema.SarifResult, 0, len(findings))

	for _, f := range findings {
		id := schema.RuleIDOf(f)
		idx, ok := index[id]
		if !ok {
			idx = len(rules)
			index[id] = idx
			rules = append(rules, schema.SarifRule{
				ID:                   id,
				Name:                 id,
				ShortDescription:     schema.SarifMessage{Text: f.Title},
				FullDescription:      schema.SarifMessage{Text: f.Title},
				DefaultConfiguration: schema.SarifConfiguration{Level: f.Severity.SarifLevel()},
			})
		}

		result := schema.SarifResult{
			RuleID:    id,
			RuleIndex: idx,
			Level:     f.Severity.SarifLevel(),
			Message:   schema.SarifMessage{Text: sarifMessage(f)},
		}
		if f.File != "" {
			result.Locations = []schema.SarifLocation{{
				PhysicalLocation: schema.SarifPhysicalLocation{
					ArtifactLocation: schema.SarifArtifactLocation{URI: f.File},
					Region:           &schema.SarifRegion{StartLine: 1},
				},
			}}
		}
		results = append(results, result)
	}
	if rules == nil {
		rules = []schema.SarifRule{}
	}

	return schema.SarifLog{
		Schema:  SarifSchema,
		Version: SarifVersion,
		Runs: []schema.SarifRun{{
			Tool: schema.SarifTool{Driver: schema.SarifDriver{
				Name:           schema.ToolName,
				Version:        version,
				InformationURI: schema.ToolURI,
				Rules:          rules,
			}},
			AutomationDetails: schema.SarifAutomationDetails{
				ID:   schema.ToolName + "/",
				GUID: uuid.NewString(),
			},
			Results: results,
		}},
	}
}

// WriteSARIFReport writes the SARIF log, creating parent directories.
func WriteSARIFReport(path string, doc schema.SarifLog) error {
	return writeWithFile(path, func(w io.Writer) error {
		return writeJSON(w, doc)
	}, "Wrote SARIF report")
}

func sarifMessage(f schema.Finding) string {
	if len(f.Details) == 0 {
		return f.Title
	}
	return f.Title + "\n" + strings.Join(f.Details, "\n")
}
