package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/huangsam/prgate/internal/contract"
	"github.com/huangsam/prgate/internal/outwriter"
	"github.com/huangsam/prgate/internal/parquet"
	"github.com/huangsam/prgate/schema"
)

// GateBuilder runs one gate evaluation step by step using a builder pattern:
// fetch changed files, run checks, render, write reports, publish, decide.
type GateBuilder struct {
	ctx      context.Context
	cfg      contract.Config
	pr       schema.PullRequest
	host     contract.PullRequestHost
	reader   contract.FileReader
	policy   ModePolicy
	version  string
	repoRoot string
	now      func() time.Time
	files    []schema.ChangedFile
	fetched  bool
	mode     schema.Mode
	report   *schema.Report
	result   *schema.GateResult
}

// NewGateBuilder creates a new builder for one pull request.
// host may be nil, in which case changed files must be supplied with
// WithChangedFiles and no comment is published.
func NewGateBuilder(ctx context.Context, cfg contract.Config, pr schema.PullRequest, host contract.PullRequestHost) *GateBuilder {
	return &GateBuilder{
		ctx:    ctx,
		cfg:    cfg,
		pr:     pr,
		host:   host,
		policy: NeverOverride,
		now:    time.Now,
		mode:   cfg.Mode,
	}
}

// WithReader sets the file reader used by custom rules.
func (b *GateBuilder) WithReader(reader contract.FileReader) *GateBuilder {
	b.reader = reader
	return b
}

// WithPolicy sets the mode override policy.
func (b *GateBuilder) WithPolicy(policy ModePolicy) *GateBuilder {
	if policy != nil {
		b.policy = policy
	}
	return b
}

// WithVersion sets the tool version stamped into exported reports.
func (b *GateBuilder) WithVersion(version string) *GateBuilder {
	b.version = version
	return b
}

// WithRepoRoot resolves relative report paths against the repository root.
func (b *GateBuilder) WithRepoRoot(root string) *GateBuilder {
	b.repoRoot = root
	return b
}

// WithClock overrides the clock used for report timestamps.
func (b *GateBuilder) WithClock(now func() time.Time) *GateBuilder {
	if now != nil {
		b.now = now
	}
	return b
}

// WithChangedFiles supplies the changed files directly, skipping the host.
func (b *GateBuilder) WithChangedFiles(files []schema.ChangedFile) *GateBuilder {
	b.files = files
	b.fetched = true
	return b
}

// FetchChangedFiles lists the changed files from the host unless already supplied.
func (b *GateBuilder) FetchChangedFiles() (*GateBuilder, error) {
	if b.fetched {
		return b, nil
	}
	if b.host == nil {
		return nil, errors.New("no changed files supplied and no pull request host configured")
	}
	files, err := b.host.ListChangedFiles(b.ctx, b.pr.Number)
	if err != nil {
		return nil, fmt.Errorf("failed to list changed files for PR #%d: %w", b.pr.Number, err)
	}
	b.files = files
	b.fetched = true
	contract.Logger().Debugw("Fetched changed files", "pr", b.pr.Number, "count", len(files))
	return b, nil
}

// RunChecks resolves the effective mode and runs every check.
func (b *GateBuilder) RunChecks() (*GateBuilder, error) {
	b.mode = EffectiveMode(b.cfg.Mode, b.pr.Actor, b.policy)
	if b.mode != b.cfg.Mode {
		contract.Logger().Infow("Mode overridden by policy", "actor", b.pr.Actor, "mode", b.mode)
	}

	report, err := RunChecks(b.ctx, CheckInput{
		Config: b.cfg,
		PR:     b.pr,
		Files:  b.files,
		Reader: b.reader,
	})
	if err != nil {
		return nil, err
	}
	report.Meta = BuildMeta(b.pr.Number, b.mode, len(b.files))
	b.report = report
	return b, nil
}

// RenderReport renders the Markdown comment body.
func (b *GateBuilder) RenderReport() *GateBuilder {
	b.result = &schema.GateResult{
		Report:   b.report,
		Markdown: outwriter.RenderMarkdown(b.cfg.Comment.Header, b.report),
		Mode:     b.mode,
	}
	return b
}

// WriteReports writes the enabled JSON, SARIF and Parquet reports.
func (b *GateBuilder) WriteReports() (*GateBuilder, error) {
	now := b.now()
	findings := b.report.Findings

	if b.cfg.JSONOutput.Enabled {
		path := b.resolve(b.cfg.JSONOutput.Path)
		doc := outwriter.BuildJSONReport(b.report, b.version, now)
		if err := outwriter.WriteJSONReport(path, doc); err != nil {
			return nil, fmt.Errorf("failed to write JSON report: %w", err)
		}
		b.result.JSONPath = path
	}
	if b.cfg.Sarif.Enabled {
		path := b.resolve(b.cfg.Sarif.Path)
		doc := outwriter.BuildSARIF(findings, b.version)
		if err := outwriter.WriteSARIFReport(path, doc); err != nil {
			return nil, fmt.Errorf("failed to write SARIF report: %w", err)
		}
		b.result.SarifPath = path
	}
	if b.cfg.ParquetOutput.Enabled {
		path := b.resolve(b.cfg.ParquetOutput.Path)
		rows := parquet.BuildFindingRows(b.pr.Number, b.pr.HeadSHA, findings, now)
		if err := parquet.WriteFindingRows(path, rows); err != nil {
			return nil, fmt.Errorf("failed to write Parquet report: %w", err)
		}
		b.result.ParquetPath = path
	}
	return b, nil
}

// PublishComment upserts the report comment when a host is configured.
func (b *GateBuilder) PublishComment() (*GateBuilder, error) {
	if b.host == nil {
		return b, nil
	}
	update := b.cfg.Comment.UpdateInsteadOfSpam
	if err := b.host.UpsertComment(b.ctx, b.pr.Number, b.result.Markdown, update); err != nil {
		return nil, fmt.Errorf("failed to publish comment on PR #%d: %w", b.pr.Number, err)
	}
	b.result.Published = true
	return b, nil
}

// Decide applies the pass/fail decision.
func (b *GateBuilder) Decide() *GateBuilder {
	b.result.Failed = ShouldFail(b.mode, b.report.Findings)
	return b
}

// GetResult returns the built GateResult.
func (b *GateBuilder) GetResult() *schema.GateResult {
	return b.result
}

func (b *GateBuilder) resolve(path string) string {
	if b.repoRoot == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(b.repoRoot, path)
}
