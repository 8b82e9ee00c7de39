package cmd

import (
	"fmt"
	"time"

	"github.com/huangsam/prgate/core"
	"github.com/huangsam/prgate/internal/contract"
	"github.com/huangsam/prgate/internal/gitdiff"
	"github.com/huangsam/prgate/internal/outwriter"
	"github.com/huangsam/prgate/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// localCmd evaluates a local branch as if it were a pull request.
var localCmd = &cobra.Command{
	Use:   "local",
	Short: "Evaluate local changes between two Git references without calling GitHub",
	Long: `Diff two Git references, run every check against the changed files and print
the report. Nothing is published. Title and body default to the subject and body
of the head commit.

Examples:
  # Preview the report for the current branch
  prgate local --base origin/main

  # Table output with an explicit title
  prgate local --base main --head feature --title "feat: add retries" --output table`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		mode := schema.OutputMode(viper.GetString("output"))
		if _, ok := schema.ValidOutputModes[mode]; !ok {
			return fmt.Errorf("invalid output mode %q", mode)
		}

		client := contract.NewLocalGitClient()
		base, head := viper.GetString("base"), viper.GetString("head")

		files, err := gitdiff.ChangedFiles(rootCtx, client, repoRoot, base, head)
		if err != nil {
			return err
		}
		headSHA, err := gitdiff.ResolveRef(rootCtx, client, repoRoot, head)
		if err != nil {
			return err
		}

		title, body := viper.GetString("title"), viper.GetString("body")
		if title == "" || body == "" {
			subject, message, err := client.GetSubject(rootCtx, repoRoot, head)
			if err != nil {
				return err
			}
			if title == "" {
				title = subject
			}
			if body == "" {
				body = message
			}
		}

		runCfg := cfg.Clone()
		if !viper.GetBool("write-reports") {
			runCfg.JSONOutput.Enabled = false
			runCfg.Sarif.Enabled = false
			runCfg.ParquetOutput.Enabled = false
		}

		pr := schema.PullRequest{Title: title, Body: body, HeadSHA: headSHA}
		result, err := core.ExecuteGate(rootCtx, runCfg, pr, nil, core.GateOptions{
			Reader:   contract.NewOSFileReader(repoRoot),
			Version:  version,
			RepoRoot: repoRoot,
			Files:    files,
		})
		if err != nil {
			return err
		}

		if err := outwriter.PrintReport(result.Report, outwriter.PrintOptions{
			Mode:       mode,
			OutputFile: viper.GetString("output-file"),
			Header:     runCfg.Comment.Header,
			Version:    version,
			Width:      viper.GetInt("width"),
			Now:        time.Now(),
		}); err != nil {
			return err
		}
		if result.Failed {
			return errGateFailed
		}
		return nil
	},
}
