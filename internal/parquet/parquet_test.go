package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/prgate/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindingRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	s := parquet.SchemaOf(new(FindingRow))
	require.NotNil(t, s)

	expectedColumns := []string{
		"pr_number",
		"head_sha",
		"generated_at",
		"position",
		"severity",
		"rule_id",
		"title",
		"file",
		"details",
	}
	for _, colName := range expectedColumns {
		_, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestBuildFindingRows(t *testing.T) {
	now := time.Now()
	findings := []schema.Finding{
		{Severity: schema.SeverityWarn, Title: "PR touches many files", RuleID: schema.RuleSizeFiles, Details: []string{"a", "b"}},
		{Severity: schema.SeverityError, Title: "No secrets", File: "x.go"},
	}
	rows := BuildFindingRows(12, "", findings, now)

	require.Len(t, rows, 2)
	assert.EqualValues(t, 12, rows[0].PRNumber)
	assert.Nil(t, rows[0].HeadSHA)
	assert.Equal(t, "a\nb", rows[0].Details)
	assert.Nil(t, rows[0].File)
	assert.Equal(t, schema.RuleSizeFiles, rows[0].RuleID)
	assert.EqualValues(t, 1, rows[1].Position)
	assert.Equal(t, "no-secrets", rows[1].RuleID)
	require.NotNil(t, rows[1].File)
	assert.Equal(t, "x.go", *rows[1].File)
}

func TestWriteFindingRows(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "out", "findings.parquet")
	findings := []schema.Finding{
		{Severity: schema.SeverityInfo, Title: "PR size summary"},
		{Severity: schema.SeverityError, Title: "Risk Score: 90/100 (High)", RuleID: schema.RuleRiskScore},
	}
	data := BuildFindingRows(3, "abc123", findings, time.Now())

	require.NoError(t, WriteFindingRows(outputPath, data))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[FindingRow](file)
	defer reader.Close()

	readData := make([]FindingRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(data), n)
	assert.Equal(t, "info", readData[0].Severity)
	assert.Equal(t, schema.RuleRiskScore, readData[1].RuleID)
	require.NotNil(t, readData[1].HeadSHA)
	assert.Equal(t, "abc123", *readData[1].HeadSHA)
}

func TestWriteFindingRowsRequiresPath(t *testing.T) {
	assert.Error(t, WriteFindingRows("", nil))
}
