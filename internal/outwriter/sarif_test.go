package outwriter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/prgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSARIF(t *testing.T) {
	findings := []schema.Finding{
		{Severity: schema.SeverityError, Title: "No secrets", RuleID: "rule/no-secrets", File: "a.go", Details: []string{"a.go matches forbidRegex: /secret/"}},
		{Severity: schema.SeverityWarn, Title: "Missing required section: What", RuleID: schema.RuleRequiredSection},
		{Severity: schema.SeverityWarn, Title: "Missing required section: Why", RuleID: schema.RuleRequiredSection},
		{Severity: schema.SeverityInfo, Title: "Untagged finding"},
	}
	log := BuildSARIF(findings, "v1")

	assert.Equal(t, SarifVersion, log.Version)
	require.Len(t, log.Runs, 1)
	run := log.Runs[0]

	require.Len(t, run.Tool.Driver.Rules, 3, "rules are deduplicated by id")
	assert.Equal(t, "rule/no-secrets", run.Tool.Driver.Rules[0].ID)
	assert.Equal(t, schema.RuleRequiredSection, run.Tool.Driver.Rules[1].ID)
	assert.Equal(t, "untagged-finding", run.Tool.Driver.Rules[2].ID)

	require.Len(t, run.Results, 4, "every finding becomes a result")
	assert.Equal(t, "error", run.Results[0].Level)
	assert.Equal(t, "warning", run.Results[1].Level)
	assert.Equal(t, "note", run.Results[3].Level)
	assert.Equal(t, 1, run.Results[2].RuleIndex)

	require.Len(t, run.Results[0].Locations, 1)
	assert.Equal(t, "a.go", run.Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Empty(t, run.Results[1].Locations)
	assert.NotEmpty(t, run.AutomationDetails.GUID)
}

func TestBuildSARIFOmitsLocationsKey(t *testing.T) {
	log := BuildSARIF([]schema.Finding{{Severity: schema.SeverityInfo, Title: "x"}}, "")
	data, err := json.Marshal(log.Runs[0].Results[0])
	require.NoError(t, err)
	assert.NotContains(t, string(data), "locations")
}

func TestBuildSARIFEmpty(t *testing.T) {
	log := BuildSARIF(nil, "")
	data, err := json.Marshal(log)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rules":[]`)
	assert.Contains(t, string(data), `"results":[]`)
}

func TestWriteSARIFReportCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "prgate.sarif")
	require.NoError(t, WriteSARIFReport(path, BuildSARIF(sampleReport().Findings, "dev")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"$schema"`)
	assert.Contains(t, string(data), `"version": "2.1.0"`)
}
