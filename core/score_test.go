package core

import (
	"fmt"
	"testing"

	"github.com/huangsam/prgate/internal/contract"
	"github.com/huangsam/prgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestComputeRiskScoreEmptyPR(t *testing.T) {
	res := ComputeRiskScore(contract.DefaultConfig().Risk, nil, false)

	assert.Equal(t, 10, res.Score)
	assert.Equal(t, schema.RiskLow, res.Band)
	assert.Equal(t, schema.SeverityInfo, res.Severity)
	assert.Equal(t, schema.RiskComponents{Tests: 10}, res.Components)
	assert.Equal(t, []string{
		"Score components: size(lines)=0, size(files)=0, sensitive=0, deps=0, tests=10",
		"No tests detected in this PR (based on testGlobs).",
	}, res.Reasons)
}

func TestComputeRiskScoreComponents(t *testing.T) {
	cfg := contract.DefaultConfig().Risk
	files := []schema.ChangedFile{
		{Filename: "src/auth/login.go", Additions: 100, Deletions: 10},
		{Filename: "go.mod", Additions: 2},
		{Filename: "README.md", Additions: 8},
	}
	res := ComputeRiskScore(cfg, files, true)

	// 120 lines -> 6, 3 files -> 6, 1 sensitive -> 6, 1 dep -> 5, tests -> 0
	assert.Equal(t, schema.RiskComponents{SizeLines: 6, SizeFiles: 6, Sensitive: 6, Deps: 5}, res.Components)
	assert.Equal(t, 23, res.Score)
	assert.Equal(t, []string{"src/auth/login.go"}, res.Sensitive)
	assert.Equal(t, []string{"go.mod"}, res.Deps)
	assert.Contains(t, res.Reasons, "Sensitive paths touched: src/auth/login.go")
	assert.Contains(t, res.Reasons, "Dependency files changed: go.mod")
	assert.NotContains(t, res.Reasons, "No tests detected in this PR (based on testGlobs).")
}

func TestComputeRiskScoreRounding(t *testing.T) {
	cfg := contract.RiskConfig{Enabled: true}
	tests := []struct {
		lines    int
		expected int
	}{
		{9, 0},
		{10, 1}, // half rounds up
		{29, 1},
		{30, 2},
		{700, 35},
		{5000, 35},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.lines), func(t *testing.T) {
			res := ComputeRiskScore(cfg, []schema.ChangedFile{{Filename: "x", Additions: tt.lines}}, true)
			assert.Equal(t, tt.expected, res.Components.SizeLines)
		})
	}
}

func TestComputeRiskScoreClamps(t *testing.T) {
	cfg := contract.DefaultConfig().Risk
	var files []schema.ChangedFile
	for i := range 40 {
		files = append(files,
			schema.ChangedFile{Filename: fmt.Sprintf("infra/m%d/main.tf", i), Additions: 500},
			schema.ChangedFile{Filename: fmt.Sprintf("svc%d/package.json", i), Additions: 1},
		)
	}
	res := ComputeRiskScore(cfg, files, false)

	assert.Equal(t, schema.RiskComponents{SizeLines: 35, SizeFiles: 20, Sensitive: 25, Deps: 10, Tests: 10}, res.Components)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, schema.RiskHigh, res.Band)
	assert.Equal(t, schema.SeverityWarn, res.Severity)

	var sensitiveReason string
	for _, r := range res.Reasons {
		if len(r) > 24 && r[:24] == "Sensitive paths touched:" {
			sensitiveReason = r
		}
	}
	require.NotEmpty(t, sensitiveReason)
	assert.Contains(t, sensitiveReason, "infra/m7/main.tf…")
	assert.NotContains(t, sensitiveReason, "infra/m8/")
}

func TestRiskBandOf(t *testing.T) {
	assert.Equal(t, schema.RiskLow, RiskBandOf(0))
	assert.Equal(t, schema.RiskLow, RiskBandOf(39))
	assert.Equal(t, schema.RiskMedium, RiskBandOf(40))
	assert.Equal(t, schema.RiskMedium, RiskBandOf(74))
	assert.Equal(t, schema.RiskHigh, RiskBandOf(75))
}

func TestRiskSeverityThresholdOverride(t *testing.T) {
	tests := []struct {
		name      string
		score     int
		threshold *int
		expected  schema.Severity
	}{
		{"low without threshold", 10, nil, schema.SeverityInfo},
		{"high without threshold", 80, nil, schema.SeverityWarn},
		{"threshold reached", 50, intPtr(50), schema.SeverityError},
		{"below threshold", 49, intPtr(50), schema.SeverityInfo},
		{"high below threshold stays warn", 80, intPtr(90), schema.SeverityWarn},
		{"zero threshold always errors", 0, intPtr(0), schema.SeverityError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, riskSeverity(tt.score, tt.threshold))
		})
	}
}

func TestRunRiskScore(t *testing.T) {
	cfg := contract.DefaultConfig().Risk

	findings, res := RunRiskScore(cfg, nil, false)
	require.Len(t, findings, 1)
	require.NotNil(t, res)
	assert.Equal(t, "Risk Score: 10/100 (Low)", findings[0].Title)
	assert.Equal(t, schema.RuleRiskScore, findings[0].RuleID)
	assert.Equal(t, res.Reasons, findings[0].Details)

	cfg.Enabled = false
	findings, res = RunRiskScore(cfg, nil, false)
	assert.Empty(t, findings)
	assert.Nil(t, res)
}

func TestComputeRiskScoreDeterministic(t *testing.T) {
	cfg := contract.DefaultConfig().Risk
	cfg.BlockIfScoreAbove = intPtr(30)
	files := makeFiles(7, 321)
	first := ComputeRiskScore(cfg, files, false)
	for range 5 {
		assert.Equal(t, first, ComputeRiskScore(cfg, files, false))
	}
}

func TestComputeRiskScoreCountsDotfilesAsSensitive(t *testing.T) {
	files := []schema.ChangedFile{
		{Filename: ".env", Additions: 1, Status: schema.StatusAdded},
		{Filename: "deploy/.env.production", Additions: 1, Status: schema.StatusModified},
	}
	res := ComputeRiskScore(contract.DefaultConfig().Risk, files, true)

	assert.Equal(t, []string{".env", "deploy/.env.production"}, res.Sensitive)
	assert.Equal(t, 12, res.Components.Sensitive)
}
