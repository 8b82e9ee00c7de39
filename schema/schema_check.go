package schema

// RiskComponents holds the individually clamped parts of a risk score.
type RiskComponents struct {
	SizeLines int `json:"sizeLines"`
	SizeFiles int `json:"sizeFiles"`
	Sensitive int `json:"sensitive"`
	Deps      int `json:"deps"`
	Tests     int `json:"tests"`
}

// Sum adds all components together.
func (c RiskComponents) Sum() int {
	return c.SizeLines + c.SizeFiles + c.Sensitive + c.Deps + c.Tests
}

// RiskScoreResult is the derived risk assessment of a pull request.
type RiskScoreResult struct {
	Score      int            `json:"score"` // 0-100
	Band       RiskBand       `json:"band"`
	Severity   Severity       `json:"severity"`
	Reasons    []string       `json:"reasons"`
	Components RiskComponents `json:"components"`
	Sensitive  []string       `json:"sensitivePaths,omitempty"`
	Deps       []string       `json:"dependencyFiles,omitempty"`
}

// SizeSummary is the file and line count of a pull request.
type SizeSummary struct {
	Files int `json:"files"`
	Lines int `json:"lines"`
}

// Report is the aggregate of one run. Risk and Size are typed side-channels
// so renderers never have to re-parse finding titles.
type Report struct {
	Findings []Finding
	Risk     *RiskScoreResult // nil when the risk check is disabled
	Size     *SizeSummary
	Meta     []string // Run metadata lines, e.g. "PR: #12"
}

// Grouped splits findings into errors, warnings and infos, preserving order within each.
func (r *Report) Grouped() (errs, warns, infos []Finding) {
	for _, f := range r.Findings {
		switch f.Severity {
		case SeverityError:
			errs = append(errs, f)
		case SeverityWarn:
			warns = append(warns, f)
		default:
			infos = append(infos, f)
		}
	}
	return errs, warns, infos
}

// Counts returns the number of errors, warnings and infos.
func (r *Report) Counts() (errs, warns, infos int) {
	e, w, i := r.Grouped()
	return len(e), len(w), len(i)
}

// GateResult is the outcome of a full gate run.
type GateResult struct {
	Report      *Report
	Markdown    string
	Mode        Mode
	Failed      bool
	Published   bool
	JSONPath    string // empty when the JSON report was not written
	SarifPath   string
	ParquetPath string
}
