package schema

// JSONTool identifies the producer of a JSON report.
type JSONTool struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// JSONSummary counts findings by severity.
type JSONSummary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
	Total    int `json:"total"`
}

// JSONReport is the machine-readable summary written when jsonOutput is enabled.
type JSONReport struct {
	Tool        JSONTool         `json:"tool"`
	GeneratedAt string           `json:"generatedAt"`
	RunID       string           `json:"runId"`
	Summary     JSONSummary      `json:"summary"`
	Risk        *RiskScoreResult `json:"risk,omitempty"`
	Findings    []Finding        `json:"findings"`
}

// SarifLog is the root of a SARIF 2.1.0 document.
type SarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SarifRun `json:"runs"`
}

// SarifRun is a single analysis run.
type SarifRun struct {
	Tool              SarifTool              `json:"tool"`
	AutomationDetails SarifAutomationDetails `json:"automationDetails"`
	Results           []SarifResult          `json:"results"`
}

// SarifAutomationDetails identifies the run for code scanning.
type SarifAutomationDetails struct {
	ID   string `json:"id"`
	GUID string `json:"guid,omitempty"`
}

// SarifTool wraps the driver.
type SarifTool struct {
	Driver SarifDriver `json:"driver"`
}

// SarifDriver describes prgate and its rules.
type SarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []SarifRule `json:"rules"`
}

// SarifRule is one distinct kind of finding.
type SarifRule struct {
	ID                   string             `json:"id"`
	Name                 string             `json:"name"`
	ShortDescription     SarifMessage       `json:"shortDescription"`
	FullDescription      SarifMessage       `json:"fullDescription"`
	DefaultConfiguration SarifConfiguration `json:"defaultConfiguration"`
}

// SarifConfiguration holds the default level of a rule.
type SarifConfiguration struct {
	Level string `json:"level"`
}

// SarifResult is one finding. Locations is omitted when no file is known.
type SarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"` // error, warning, note
	Message   SarifMessage    `json:"message"`
	Locations []SarifLocation `json:"locations,omitempty"`
}

// SarifMessage is a plain-text message.
type SarifMessage struct {
	Text string `json:"text"`
}

// SarifLocation anchors a result to a file.
type SarifLocation struct {
	PhysicalLocation SarifPhysicalLocation `json:"physicalLocation"`
}

// SarifPhysicalLocation points at an artifact.
type SarifPhysicalLocation struct {
	ArtifactLocation SarifArtifactLocation `json:"artifactLocation"`
	Region           *SarifRegion          `json:"region,omitempty"`
}

// SarifArtifactLocation is the repo-relative URI of a file.
type SarifArtifactLocation struct {
	URI string `json:"uri"`
}

// SarifRegion is a 1-based line range.
type SarifRegion struct {
	StartLine int `json:"startLine"`
}
