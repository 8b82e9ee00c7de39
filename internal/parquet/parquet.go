// Package parquet exports prgate findings to Parquet files using
// github.com/parquet-go/parquet-go, for loading into warehouses.
package parquet

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/prgate/internal/contract"
	"github.com/huangsam/prgate/schema"
	"github.com/parquet-go/parquet-go"
)

// FindingRow is one finding of one gate run.
type FindingRow struct {
	// PRNumber is the pull request the finding belongs to
	PRNumber int64 `parquet:"pr_number,snappy"`

	// HeadSHA is the commit the run evaluated (nullable)
	HeadSHA *string `parquet:"head_sha,optional,snappy"`

	// GeneratedAt is when the run produced the finding (stored as TIMESTAMP with nanosecond precision)
	GeneratedAt time.Time `parquet:"generated_at,snappy"`

	// Position is the zero-based index of the finding in the aggregate
	Position int32 `parquet:"position,snappy"`

	Severity string `parquet:"severity,snappy,dict"`
	RuleID   string `parquet:"rule_id,snappy,dict"`
	Title    string `parquet:"title,snappy"`

	// File is the repo-relative path the finding points at (nullable)
	File *string `parquet:"file,optional,snappy"`

	// Details holds the detail lines joined by newlines
	Details string `parquet:"details,snappy"`
}

// BuildFindingRows converts findings into Parquet rows.
func BuildFindingRows(prNumber int, headSHA string, findings []schema.Finding, generatedAt time.Time) []FindingRow {
	rows := make([]FindingRow, len(findings))
	for i, f := range findings {
		rows[i] = FindingRow{
			PRNumber:    int64(prNumber),
			HeadSHA:     optional(headSHA),
			GeneratedAt: generatedAt.UTC(),
			Position:    int32(i),
			Severity:    string(f.Severity),
			RuleID:      schema.RuleIDOf(f),
			Title:       f.Title,
			File:        optional(f.File),
			Details:     strings.Join(f.Details, "\n"),
		}
	}
	return rows
}

// WriteFindingRows writes the rows to a Parquet file, creating parent directories.
func WriteFindingRows(outputPath string, rows []FindingRow) (err error) {
	if outputPath == "" {
		return fmt.Errorf("parquet output requires a file path")
	}
	file, err := contract.SelectOutputFile(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close parquet file: %w", cerr)
		}
	}()

	// The schema is automatically derived from the FindingRow struct tags
	writer := parquet.NewGenericWriter[FindingRow](file)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to flush parquet file: %w", err)
	}
	contract.Logger().Infow("Wrote Parquet report", "path", outputPath, "rows", len(rows))
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
