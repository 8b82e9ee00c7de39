package schema

// Custom string types for type safety.
type (
	// Severity is the ordered severity of a finding: info < warn < error.
	Severity string

	// FileStatus is the change status of a file in a pull request.
	FileStatus string

	// Mode decides whether errors fail the run.
	Mode string

	// RiskBand is the coarse bucket of a risk score.
	RiskBand string

	// OutputMode is the format of a locally printed report.
	OutputMode string
)

// All severities supported.
const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// All file statuses supported.
const (
	StatusAdded    FileStatus = "added"
	StatusModified FileStatus = "modified" // default
	StatusRemoved  FileStatus = "removed"
	StatusRenamed  FileStatus = "renamed"
)

// All run modes supported.
const (
	CommentOnlyMode  Mode = "comment-only"
	BlockOnErrorMode Mode = "block-on-error" // default
)

// All risk bands supported.
const (
	RiskLow    RiskBand = "Low"
	RiskMedium RiskBand = "Medium"
	RiskHigh   RiskBand = "High"
)

// All output modes supported.
const (
	MarkdownOut OutputMode = "markdown" // default
	TableOut    OutputMode = "table"
	JSONOut     OutputMode = "json"
	CSVOut      OutputMode = "csv"
)

// Stable rule identifiers for the built-in checks.
const (
	RuleTitlePrefix      = "pr-title-prefix"
	RuleBodyLength       = "pr-body-length"
	RuleRequiredSection  = "pr-required-section"
	RuleTaskReference    = "pr-task-reference"
	RuleTaskRegexInvalid = "pr-task-regex-invalid"
	RuleSizeSummary      = "size-summary"
	RuleSizeFiles        = "size-files"
	RuleSizeLines        = "size-lines"
	RuleTestCoverage     = "test-coverage"
	RuleRiskScore        = "risk-score"
	RuleCustomPrefix     = "rule/"
)

// Tool identity used in comments and exported reports.
const (
	ToolName      = "prgate"
	ToolURI       = "https://github.com/huangsam/prgate"
	CommentMarker = "<!-- prgate -->"
)

// ValidModes is the set of accepted run modes.
var ValidModes = map[Mode]struct{}{
	CommentOnlyMode:  {},
	BlockOnErrorMode: {},
}

// ValidOutputModes is the set of accepted output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	MarkdownOut: {},
	TableOut:    {},
	JSONOut:     {},
	CSVOut:      {},
}

// ValidSeverities is the set of accepted severities.
var ValidSeverities = map[Severity]struct{}{
	SeverityInfo:  {},
	SeverityWarn:  {},
	SeverityError: {},
}

// Rank orders severities for grouping: info=0, warn=1, error=2.
// Unknown severities rank as info.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 2
	case SeverityWarn:
		return 1
	default:
		return 0
	}
}

// SarifLevel maps a severity to its SARIF result level.
func (s Severity) SarifLevel() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarn:
		return "warning"
	default:
		return "note"
	}
}

// NormalizeFileStatus maps the statuses reported by code hosts onto FileStatus.
// GitHub also reports "copied", "changed" and "unchanged", which count as modified.
func NormalizeFileStatus(raw string) FileStatus {
	switch FileStatus(raw) {
	case StatusAdded, StatusRemoved, StatusRenamed:
		return FileStatus(raw)
	default:
		return StatusModified
	}
}
