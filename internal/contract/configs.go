package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/huangsam/prgate/internal/match"
	"github.com/huangsam/prgate/schema"
	"github.com/spf13/viper"
)

// Default values for configuration.
const (
	DefaultConfigPath     = ".prgate.yml"
	DefaultJSONPath       = "prgate-report.json"
	DefaultSarifPath      = "prgate.sarif"
	DefaultParquetPath    = "prgate-findings.parquet"
	DefaultCommentHeader  = "🛡️ prgate Report"
	DefaultMinBodyChars   = 120
	DefaultWarnFiles      = 25
	DefaultWarnLines      = 400
	DefaultTaskRegex      = `(#\d+|JIRA-\d+|TASK-\d+)`
	MaxRuleFileBytes      = 400_000
	MaxViolationsPerRule  = 20
	DefaultRuleScanWorker = 8
)

// CommentConfig controls how the PR comment is published.
type CommentConfig struct {
	UpdateInsteadOfSpam bool   `yaml:"updateInsteadOfSpam"`
	Header              string `yaml:"header"`
}

// PRConfig holds the title and description quality thresholds.
type PRConfig struct {
	TitlePrefixes    []string `yaml:"titlePrefixes"`
	MinBodyChars     int      `yaml:"minBodyChars"`
	RequiredSections []string `yaml:"requiredSections"`
	TaskRegex        string   `yaml:"taskRegex"`
}

// SizeConfig holds the PR size warning thresholds.
type SizeConfig struct {
	WarnFilesChangedOver int `yaml:"warnFilesChangedOver"`
	WarnLinesChangedOver int `yaml:"warnLinesChangedOver"`
}

// TestsConfig holds the code-without-tests heuristic settings.
type TestsConfig struct {
	WarnIfCodeChangedWithoutTests bool     `yaml:"warnIfCodeChangedWithoutTests"`
	CodeGlobs                     []string `yaml:"codeGlobs"`
	TestGlobs                     []string `yaml:"testGlobs"`
}

// RiskConfig holds the risk score settings.
// BlockIfScoreAbove is optional; when set, scores at or above it become errors.
type RiskConfig struct {
	Enabled           bool     `yaml:"enabled"`
	BlockIfScoreAbove *int     `yaml:"blockIfScoreAbove,omitempty"`
	SensitivePaths    []string `yaml:"sensitivePaths"`
	DependencyFiles   []string `yaml:"dependencyFiles"`
}

// OutputConfig toggles one optional report file.
type OutputConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Rule is a user-defined forbid/require regex scan over a glob-matched file set.
type Rule struct {
	Name         string          `yaml:"name"`
	Severity     schema.Severity `yaml:"severity"`
	FileGlobs    []string        `yaml:"fileGlobs"`
	ForbidRegex  []string        `yaml:"forbidRegex,omitempty"`
	RequireRegex []string        `yaml:"requireRegex,omitempty"`
}

// Config holds the final, fully defaulted configuration for one run.
type Config struct {
	Mode          schema.Mode   `yaml:"mode"`
	Comment       CommentConfig `yaml:"comment"`
	PR            PRConfig      `yaml:"pr"`
	Size          SizeConfig    `yaml:"size"`
	Tests         TestsConfig   `yaml:"tests"`
	Risk          RiskConfig    `yaml:"risk"`
	JSONOutput    OutputConfig  `yaml:"jsonOutput"`
	Sarif         OutputConfig  `yaml:"sarif"`
	ParquetOutput OutputConfig  `yaml:"parquetOutput"`
	Rules         []Rule        `yaml:"rules"`
}

// CommentRawInput mirrors CommentConfig with optional fields.
type CommentRawInput struct {
	UpdateInsteadOfSpam *bool   `mapstructure:"updateInsteadOfSpam"`
	Header              *string `mapstructure:"header"`
}

// PRRawInput mirrors PRConfig with optional fields.
type PRRawInput struct {
	TitlePrefixes    *[]string `mapstructure:"titlePrefixes"`
	MinBodyChars     *int      `mapstructure:"minBodyChars"`
	RequiredSections *[]string `mapstructure:"requiredSections"`
	TaskRegex        *string   `mapstructure:"taskRegex"`
}

// SizeRawInput mirrors SizeConfig with optional fields.
type SizeRawInput struct {
	WarnFilesChangedOver *int `mapstructure:"warnFilesChangedOver"`
	WarnLinesChangedOver *int `mapstructure:"warnLinesChangedOver"`
}

// TestsRawInput mirrors TestsConfig with optional fields.
type TestsRawInput struct {
	WarnIfCodeChangedWithoutTests *bool     `mapstructure:"warnIfCodeChangedWithoutTests"`
	CodeGlobs                     *[]string `mapstructure:"codeGlobs"`
	TestGlobs                     *[]string `mapstructure:"testGlobs"`
}

// RiskRawInput mirrors RiskConfig with optional fields.
type RiskRawInput struct {
	Enabled           *bool     `mapstructure:"enabled"`
	BlockIfScoreAbove *int      `mapstructure:"blockIfScoreAbove"`
	SensitivePaths    *[]string `mapstructure:"sensitivePaths"`
	DependencyFiles   *[]string `mapstructure:"dependencyFiles"`
}

// OutputRawInput mirrors OutputConfig with optional fields.
type OutputRawInput struct {
	Enabled *bool   `mapstructure:"enabled"`
	Path    *string `mapstructure:"path"`
}

// RuleRawInput is a rule as written in the config file.
type RuleRawInput struct {
	Name         string   `mapstructure:"name"`
	Severity     string   `mapstructure:"severity"`
	FileGlobs    []string `mapstructure:"fileGlobs"`
	ForbidRegex  []string `mapstructure:"forbidRegex"`
	RequireRegex []string `mapstructure:"requireRegex"`
}

// ConfigRawInput holds the user overrides read from the config file.
// A nil field means "keep the default". Viper unmarshals into this struct.
type ConfigRawInput struct {
	Mode          *string          `mapstructure:"mode"`
	Comment       *CommentRawInput `mapstructure:"comment"`
	PR            *PRRawInput      `mapstructure:"pr"`
	Size          *SizeRawInput    `mapstructure:"size"`
	Tests         *TestsRawInput   `mapstructure:"tests"`
	Risk          *RiskRawInput    `mapstructure:"risk"`
	JSONOutput    *OutputRawInput  `mapstructure:"jsonOutput"`
	Sarif         *OutputRawInput  `mapstructure:"sarif"`
	ParquetOutput *OutputRawInput  `mapstructure:"parquetOutput"`
	Rules         *[]RuleRawInput  `mapstructure:"rules"`
}

// DefaultConfig returns the built-in configuration used when no file exists.
// Every call returns fresh slices so callers may not alias each other.
func DefaultConfig() Config {
	return Config{
		Mode: schema.BlockOnErrorMode,
		Comment: CommentConfig{
			UpdateInsteadOfSpam: true,
			Header:              DefaultCommentHeader,
		},
		PR: PRConfig{
			TitlePrefixes:    []string{"feat:", "fix:", "chore:", "docs:", "refactor:", "test:"},
			MinBodyChars:     DefaultMinBodyChars,
			RequiredSections: []string{"What", "Why", "How tested"},
			TaskRegex:        DefaultTaskRegex,
		},
		Size: SizeConfig{
			WarnFilesChangedOver: DefaultWarnFiles,
			WarnLinesChangedOver: DefaultWarnLines,
		},
		Tests: TestsConfig{
			WarnIfCodeChangedWithoutTests: true,
			CodeGlobs:                     []string{"**/*.go", "**/*.ts", "**/*.js", "**/*.py"},
			TestGlobs:                     []string{"**/*test*.*", "**/*spec*.*", "**/tests/**", "**/test/**"},
		},
		Risk: RiskConfig{
			Enabled: true,
			SensitivePaths: []string{
				"**/auth/**",
				"**/payments/**",
				"**/billing/**",
				"**/security/**",
				"**/infra/**",
				"**/migrations/**",
				"**/.github/workflows/**",
				"**/Dockerfile",
				"**/docker/**",
				"**/*config*.*",
				"**/*.env*",
			},
			DependencyFiles: []string{
				"**/go.mod",
				"**/go.sum",
				"**/package.json",
				"**/package-lock.json",
				"**/yarn.lock",
				"**/pnpm-lock.yaml",
				"**/requirements.txt",
				"**/pyproject.toml",
				"**/poetry.lock",
			},
		},
		JSONOutput:    OutputConfig{Enabled: false, Path: DefaultJSONPath},
		Sarif:         OutputConfig{Enabled: false, Path: DefaultSarifPath},
		ParquetOutput: OutputConfig{Enabled: false, Path: DefaultParquetPath},
		Rules:         []Rule{},
	}
}

// MergeConfig applies user overrides on top of defaults and returns the result.
// Each sub-object is merged field by field; arrays and the rule list replace
// the defaults wholesale. Neither argument is modified.
func MergeConfig(defaults Config, raw ConfigRawInput) Config {
	out := defaults.Clone()

	if raw.Mode != nil {
		out.Mode = schema.Mode(strings.ToLower(strings.TrimSpace(*raw.Mode)))
	}
	if c := raw.Comment; c != nil {
		setIf(&out.Comment.UpdateInsteadOfSpam, c.UpdateInsteadOfSpam)
		setIf(&out.Comment.Header, c.Header)
	}
	if p := raw.PR; p != nil {
		setSliceIf(&out.PR.TitlePrefixes, p.TitlePrefixes)
		setIf(&out.PR.MinBodyChars, p.MinBodyChars)
		setSliceIf(&out.PR.RequiredSections, p.RequiredSections)
		setIf(&out.PR.TaskRegex, p.TaskRegex)
	}
	if s := raw.Size; s != nil {
		setIf(&out.Size.WarnFilesChangedOver, s.WarnFilesChangedOver)
		setIf(&out.Size.WarnLinesChangedOver, s.WarnLinesChangedOver)
	}
	if t := raw.Tests; t != nil {
		setIf(&out.Tests.WarnIfCodeChangedWithoutTests, t.WarnIfCodeChangedWithoutTests)
		setSliceIf(&out.Tests.CodeGlobs, t.CodeGlobs)
		setSliceIf(&out.Tests.TestGlobs, t.TestGlobs)
	}
	if r := raw.Risk; r != nil {
		setIf(&out.Risk.Enabled, r.Enabled)
		if r.BlockIfScoreAbove != nil {
			threshold := *r.BlockIfScoreAbove
			out.Risk.BlockIfScoreAbove = &threshold
		}
		setSliceIf(&out.Risk.SensitivePaths, r.SensitivePaths)
		setSliceIf(&out.Risk.DependencyFiles, r.DependencyFiles)
	}
	mergeOutput(&out.JSONOutput, raw.JSONOutput)
	mergeOutput(&out.Sarif, raw.Sarif)
	mergeOutput(&out.ParquetOutput, raw.ParquetOutput)

	if raw.Rules != nil {
		out.Rules = make([]Rule, 0, len(*raw.Rules))
		for _, r := range *raw.Rules {
			out.Rules = append(out.Rules, Rule{
				Name:         r.Name,
				Severity:     schema.Severity(strings.ToLower(strings.TrimSpace(r.Severity))),
				FileGlobs:    slices.Clone(r.FileGlobs),
				ForbidRegex:  slices.Clone(r.ForbidRegex),
				RequireRegex: slices.Clone(r.RequireRegex),
			})
		}
	}
	return out
}

// Clone returns a deep copy of the Config struct.
func (c Config) Clone() Config {
	clone := c
	clone.PR.TitlePrefixes = slices.Clone(c.PR.TitlePrefixes)
	clone.PR.RequiredSections = slices.Clone(c.PR.RequiredSections)
	clone.Tests.CodeGlobs = slices.Clone(c.Tests.CodeGlobs)
	clone.Tests.TestGlobs = slices.Clone(c.Tests.TestGlobs)
	clone.Risk.SensitivePaths = slices.Clone(c.Risk.SensitivePaths)
	clone.Risk.DependencyFiles = slices.Clone(c.Risk.DependencyFiles)
	if c.Risk.BlockIfScoreAbove != nil {
		threshold := *c.Risk.BlockIfScoreAbove
		clone.Risk.BlockIfScoreAbove = &threshold
	}
	if c.Rules != nil {
		clone.Rules = make([]Rule, len(c.Rules))
		for i, r := range c.Rules {
			clone.Rules[i] = Rule{
				Name:         r.Name,
				Severity:     r.Severity,
				FileGlobs:    slices.Clone(r.FileGlobs),
				ForbidRegex:  slices.Clone(r.ForbidRegex),
				RequireRegex: slices.Clone(r.RequireRegex),
			}
		}
	}
	return clone
}

// Validate checks enumerated fields that have no sensible degraded form.
// Invalid regexes are deliberately not checked here; the checks report them.
func (c Config) Validate() error {
	if _, ok := schema.ValidModes[c.Mode]; !ok {
		return fmt.Errorf("invalid mode '%s'. must be %s or %s", c.Mode, schema.CommentOnlyMode, schema.BlockOnErrorMode)
	}
	if c.PR.MinBodyChars < 0 {
		return fmt.Errorf("pr.minBodyChars must not be negative (received %d)", c.PR.MinBodyChars)
	}
	for i, r := range c.Rules {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("rules[%d] is missing a name", i)
		}
		if _, ok := schema.ValidSeverities[r.Severity]; !ok {
			return fmt.Errorf("rule %q has invalid severity '%s'. must be info, warn or error", r.Name, r.Severity)
		}
	}
	for _, problem := range c.InvalidPatterns() {
		Logger().Warnw("Ignoring invalid pattern", "pattern", problem)
	}
	return nil
}

// InvalidPatterns lists the globs and rule regexes that can never match.
// They are ignored at run time, so they warn instead of failing the config.
func (c Config) InvalidPatterns() []string {
	var out []string
	globs := func(key string, patterns []string) {
		for _, g := range patterns {
			if !match.ValidGlob(g) {
				out = append(out, fmt.Sprintf("%s: %q", key, g))
			}
		}
	}
	globs("tests.codeGlobs", c.Tests.CodeGlobs)
	globs("tests.testGlobs", c.Tests.TestGlobs)
	globs("risk.sensitivePaths", c.Risk.SensitivePaths)
	globs("risk.dependencyFiles", c.Risk.DependencyFiles)
	for _, r := range c.Rules {
		globs(fmt.Sprintf("rules[%s].fileGlobs", r.Name), r.FileGlobs)
		regexes := func(key string, patterns []string) {
			for _, re := range patterns {
				if _, err := match.CompileOne(re); err != nil {
					out = append(out, fmt.Sprintf("rules[%s].%s: %q", r.Name, key, re))
				}
			}
		}
		regexes("forbidRegex", r.ForbidRegex)
		regexes("requireRegex", r.RequireRegex)
	}
	return out
}

// ResolveConfigPath joins a relative config path onto the repository root.
func ResolveConfigPath(configPath, repoRoot string) string {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	if filepath.IsAbs(configPath) {
		return configPath
	}
	return filepath.Join(repoRoot, configPath)
}

// LoadConfig reads the YAML config file and merges it over DefaultConfig.
// A missing file yields the defaults unchanged.
func LoadConfig(configPath, repoRoot string) (Config, error) {
	full := ResolveConfigPath(configPath, repoRoot)
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			Logger().Debugw("Config file not found, using defaults", "path", full)
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("unable to stat config file %q: %w", full, err)
	}

	v := viper.New()
	v.SetConfigFile(full)
	if ext := filepath.Ext(full); ext == "" {
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("error reading config file %q: %w", full, err)
	}

	var raw ConfigRawInput
	if err := v.Unmarshal(&raw); err != nil {
		return Config{}, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	cfg := MergeConfig(DefaultConfig(), raw)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", full, err)
	}
	Logger().Debugw("Loaded config", "path", full, "mode", cfg.Mode, "rules", len(cfg.Rules))
	return cfg, nil
}

func mergeOutput(dst *OutputConfig, raw *OutputRawInput) {
	if raw == nil {
		return
	}
	setIf(&dst.Enabled, raw.Enabled)
	setIf(&dst.Path, raw.Path)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setSliceIf(dst *[]string, src *[]string) {
	if src != nil {
		*dst = slices.Clone(*src)
		if *dst == nil {
			*dst = []string{}
		}
	}
}
