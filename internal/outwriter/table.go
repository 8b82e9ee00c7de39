package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/prgate/internal/contract"
	"github.com/huangsam/prgate/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteFindingsTable writes a human-readable table of findings, ordered
// errors first, followed by a one-line summary. Long file paths keep their tail.
func WriteFindingsTable(w io.Writer, report *schema.Report, width int) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Severity", "Rule", "File", "Finding"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxTitle := GetMaxTitleWidth(width)
	errs, warns, infos := report.Grouped()
	var data [][]string
	for i, f := range append(append(errs, warns...), infos...) {
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			contract.GetColorLabel(f.Severity),
			schema.RuleIDOf(f),
			contract.TruncatePath(f.File, maxFileWidth),
			truncateText(f.Title, maxTitle),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, summaryText(report))
	return err
}

// WriteFindingsCSV writes one CSV row per finding with details joined by "; ".
func WriteFindingsCSV(w io.Writer, report *schema.Report) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write([]string{"severity", "rule", "title", "file", "details"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, f := range report.Findings {
		row := []string{string(f.Severity), schema.RuleIDOf(f), f.Title, f.File, strings.Join(f.Details, "; ")}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// summaryText renders counts and the risk band for terminal output.
func summaryText(report *schema.Report) string {
	errs, warns, infos := report.Counts()
	parts := []string{
		fmt.Sprintf("%s %d", contract.ErrorColor.Sprint("errors:"), errs),
		fmt.Sprintf("%s %d", contract.WarnColor.Sprint("warnings:"), warns),
		fmt.Sprintf("%s %d", contract.InfoColor.Sprint("info:"), infos),
	}
	if r := report.Risk; r != nil {
		parts = append(parts, fmt.Sprintf("risk: %d/100 (%s)", r.Score, contract.GetBandLabel(r.Band)))
	}
	return strings.Join(parts, " | ")
}

// truncateText shortens text to maxWidth runes with a trailing ellipsis.
func truncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}
