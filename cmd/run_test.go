package cmd

import (
	"testing"

	"github.com/huangsam/prgate/schema"
	"github.com/stretchr/testify/assert"
)

func TestGateOutputs(t *testing.T) {
	result := &schema.GateResult{
		Report: &schema.Report{
			Findings: []schema.Finding{
				{Severity: schema.SeverityError, Title: "No secrets"},
				{Severity: schema.SeverityWarn, Title: "PR changes many lines"},
				{Severity: schema.SeverityWarn, Title: "PR touches many files"},
			},
			Risk: &schema.RiskScoreResult{Score: 42, Band: schema.RiskMedium},
		},
		Failed:   true,
		JSONPath: "/repo/prgate-report.json",
	}

	assert.Equal(t, map[string]string{
		"errors":     "1",
		"warnings":   "2",
		"failed":     "true",
		"risk-score": "42",
		"risk-band":  "Medium",
		"json-path":  "/repo/prgate-report.json",
	}, gateOutputs(result))
}

func TestGateOutputsWithoutRisk(t *testing.T) {
	outputs := gateOutputs(&schema.GateResult{Report: &schema.Report{}})
	assert.NotContains(t, outputs, "risk-score")
	assert.NotContains(t, outputs, "sarif-path")
	assert.Equal(t, "false", outputs["failed"])
}

func TestToolVersion(t *testing.T) {
	t.Setenv("GITHUB_ACTION_REF", "v1.2.0")
	assert.Equal(t, "v1.2.0", toolVersion())

	t.Setenv("GITHUB_ACTION_REF", "")
	assert.Equal(t, version, toolVersion())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "GITHUB_TOKEN", envKey("github-token"))
}

func TestResolveRepoRoot(t *testing.T) {
	assert.Equal(t, "/explicit", resolveRepoRoot(rootCtx, "/explicit"))

	t.Setenv("GITHUB_WORKSPACE", "/workspace")
	assert.Equal(t, "/workspace", resolveRepoRoot(rootCtx, ""))
}
