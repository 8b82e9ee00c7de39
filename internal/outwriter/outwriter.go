// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/prgate/schema"
	"golang.org/x/term"
)

// Table layout bounds for the title and file columns.
const (
	defaultTermWidth = 80 // Conservative default for narrow terminals and CI
	minTitleWidth    = 20
	maxTitleWidth    = 90
	maxFileWidth     = 30
	fixedTableWidth  = 30 + maxFileWidth // Severity + Rule + File columns with borders/padding
)

// GetMaxTitleWidth calculates the maximum width for finding titles in table
// output based on terminal width. A positive override wins over detection.
func GetMaxTitleWidth(override int) int {
	termWidth := override
	if termWidth <= 0 {
		detected, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detected <= 0 {
			termWidth = defaultTermWidth
		} else {
			termWidth = detected
		}
	}

	available := termWidth - fixedTableWidth
	if available < minTitleWidth {
		return minTitleWidth
	}
	if available > maxTitleWidth {
		return maxTitleWidth
	}
	return available
}

// PrintOptions controls how PrintReport renders a report.
type PrintOptions struct {
	Mode       schema.OutputMode
	OutputFile string // empty writes to stdout
	Header     string
	Version    string
	Width      int
	Now        time.Time
}

// PrintReport writes the report in the requested format to stdout or a file.
func PrintReport(report *schema.Report, opts PrintOptions) error {
	var writer func(io.Writer) error
	switch opts.Mode {
	case schema.TableOut:
		writer = func(w io.Writer) error { return WriteFindingsTable(w, report, opts.Width) }
	case schema.JSONOut:
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		doc := BuildJSONReport(report, opts.Version, now)
		writer = func(w io.Writer) error { return writeJSON(w, doc) }
	case schema.CSVOut:
		writer = func(w io.Writer) error { return WriteFindingsCSV(w, report) }
	case schema.MarkdownOut, "":
		writer = func(w io.Writer) error {
			_, err := fmt.Fprintln(w, RenderMarkdown(opts.Header, report))
			return err
		}
	default:
		return fmt.Errorf("unsupported output mode %q", opts.Mode)
	}
	return writeWithFile(opts.OutputFile, writer, "Wrote report")
}
