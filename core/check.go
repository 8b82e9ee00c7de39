package core

import (
	"context"
	"strings"
	"time"

	"github.com/huangsam/prgate/internal/contract"
	"github.com/huangsam/prgate/schema"
)

// GateOptions carries the optional collaborators of a gate run.
type GateOptions struct {
	Reader   contract.FileReader
	Policy   ModePolicy
	Version  string
	RepoRoot string
	Files    []schema.ChangedFile // when set, the host is not asked for files
}

// ExecuteGate runs the full gate for one pull request. The report is
// rendered before anything is published, so a failed run publishes nothing.
// Callers decide the exit code from GateResult.Failed.
func ExecuteGate(ctx context.Context, cfg contract.Config, pr schema.PullRequest, host contract.PullRequestHost, opts GateOptions) (*schema.GateResult, error) {
	start := time.Now()

	builder := NewGateBuilder(ctx, cfg, pr, host).
		WithReader(opts.Reader).
		WithPolicy(opts.Policy).
		WithVersion(opts.Version).
		WithRepoRoot(opts.RepoRoot)
	if opts.Files != nil {
		builder.WithChangedFiles(opts.Files)
	}

	if _, err := builder.FetchChangedFiles(); err != nil {
		return nil, err
	}
	if _, err := builder.RunChecks(); err != nil {
		return nil, err
	}
	builder.RenderReport()
	if _, err := builder.WriteReports(); err != nil {
		return nil, err
	}
	if _, err := builder.PublishComment(); err != nil {
		return nil, err
	}
	result := builder.Decide().GetResult()

	errs, warns, infos := result.Report.Counts()
	contract.Logger().Infow("Gate finished",
		"pr", pr.Number,
		"mode", result.Mode,
		"errors", errs,
		"warnings", warns,
		"info", infos,
		"failed", result.Failed,
		"duration", time.Since(start),
	)
	return result, nil
}

// ModePolicy decides whether a run triggered by actor must be forced into
// comment-only mode.
type ModePolicy func(actor string) bool

// BotActorPolicy forces comment-only mode for GitHub App and bot accounts.
func BotActorPolicy(actor string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(actor)), "[bot]")
}

// NeverOverride never changes the configured mode.
func NeverOverride(string) bool { return false }

// EffectiveMode applies the policy to the configured mode.
func EffectiveMode(configured schema.Mode, actor string, policy ModePolicy) schema.Mode {
	if policy != nil && policy(actor) {
		return schema.CommentOnlyMode
	}
	return configured
}

// HasErrors reports whether any finding has error severity.
func HasErrors(findings []schema.Finding) bool {
	for _, f := range findings {
		if f.Severity == schema.SeverityError {
			return true
		}
	}
	return false
}

// ShouldFail reports whether the run must fail: only in block-on-error mode
// and only when errors were found.
func ShouldFail(mode schema.Mode, findings []schema.Finding) bool {
	return mode == schema.BlockOnErrorMode && HasErrors(findings)
}
