package cmd

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/huangsam/prgate/core"
	"github.com/huangsam/prgate/internal/contract"
	"github.com/huangsam/prgate/internal/ghclient"
	"github.com/huangsam/prgate/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errGateFailed is returned when errors are found in block-on-error mode.
var errGateFailed = errors.New("prgate found merge-blocking errors")

// runCmd evaluates the pull request of the current GitHub Actions event.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate the pull request of the current GitHub event and publish the report",
	Long: `Read the pull_request event payload, fetch the changed files, run every check,
upsert the report comment and write the optional JSON, SARIF and Parquet reports.

The process exits non-zero when the mode is block-on-error and at least one
error was found, or when anything in the run fails.

Examples:
  # Inside a GitHub Actions workflow
  prgate run

  # Against a saved event payload
  prgate run --event-path event.json --repository octo/app --github-token "$TOKEN"`,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		err := runGate(cmd)
		if err != nil && ghclient.InActions() {
			ghclient.ErrorAnnotation(cmd.OutOrStdout(), err.Error())
		}
		return err
	},
}

func runGate(cmd *cobra.Command) error {
	pr, err := ghclient.LoadEvent(viper.GetString("event-path"))
	if err != nil {
		return err
	}

	client, err := ghclient.NewClient(ghclient.Options{
		Token:      viper.GetString("github-token"),
		Repository: viper.GetString("repository"),
		APIURL:     viper.GetString("api-url"),
		RetryMax:   viper.GetInt("retries"),
	})
	if err != nil {
		return err
	}

	policy := core.NeverOverride
	if viper.GetBool("comment-only-for-bots") {
		policy = core.BotActorPolicy
	}

	result, err := core.ExecuteGate(rootCtx, cfg, pr, client, core.GateOptions{
		Reader:   contract.NewOSFileReader(repoRoot),
		Policy:   policy,
		Version:  toolVersion(),
		RepoRoot: repoRoot,
	})
	if err != nil {
		return err
	}

	if err := ghclient.WriteOutputs(viper.GetString("outputs-file"), gateOutputs(result)); err != nil {
		contract.LogWarn("Failed to write step outputs", err)
	}

	errs, warns, infos := result.Report.Counts()
	cmd.Printf("%s: %d error(s), %d warning(s), %d info (mode %s)\n", schema.ToolName, errs, warns, infos, result.Mode)
	if result.Failed {
		return errGateFailed
	}
	return nil
}

// gateOutputs lists the step outputs for a finished run.
func gateOutputs(result *schema.GateResult) map[string]string {
	errs, warns, _ := result.Report.Counts()
	outputs := map[string]string{
		"errors":   strconv.Itoa(errs),
		"warnings": strconv.Itoa(warns),
		"failed":   strconv.FormatBool(result.Failed),
	}
	if result.Report.Risk != nil {
		outputs["risk-score"] = strconv.Itoa(result.Report.Risk.Score)
		outputs["risk-band"] = string(result.Report.Risk.Band)
	}
	if result.JSONPath != "" {
		outputs["json-path"] = result.JSONPath
	}
	if result.SarifPath != "" {
		outputs["sarif-path"] = result.SarifPath
	}
	if result.ParquetPath != "" {
		outputs["parquet-path"] = result.ParquetPath
	}
	return outputs
}

// toolVersion prefers the action ref the workflow pinned over the build version.
func toolVersion() string {
	if ref := os.Getenv("GITHUB_ACTION_REF"); ref != "" {
		return ref
	}
	return version
}

func envKey(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}
