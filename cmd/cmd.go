// Package cmd defines the command-line interface for prgate.
package cmd

import (
	"github.com/huangsam/prgate/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(localCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the config subcommands to the parent config command
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("config", contract.DefaultConfigPath, "Path to config file, relative to the repository root")
	rootCmd.PersistentFlags().String("repo-root", "", "Repository root (default: GITHUB_WORKSPACE or the enclosing git worktree)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of runCmd to Viper
	runCmd.Flags().String("github-token", "", "Token for the GitHub API (default: GITHUB_TOKEN)")
	runCmd.Flags().String("event-path", "", "Path to the webhook event payload (default: GITHUB_EVENT_PATH)")
	runCmd.Flags().String("repository", "", "Repository as owner/name (default: GITHUB_REPOSITORY)")
	runCmd.Flags().String("api-url", "", "GitHub API base URL (default: GITHUB_API_URL)")
	runCmd.Flags().String("outputs-file", "", "File that receives step outputs (default: GITHUB_OUTPUT)")
	runCmd.Flags().Bool("comment-only-for-bots", true, "Never fail the run for pull requests opened by bot accounts")
	runCmd.Flags().Int("retries", 3, "Retries for transient GitHub API failures")
	if err := viper.BindPFlags(runCmd.Flags()); err != nil {
		contract.LogFatal("Error binding run flags", err)
	}
	bindEnv("github-token", "GITHUB_TOKEN")
	bindEnv("event-path", "GITHUB_EVENT_PATH")
	bindEnv("repository", "GITHUB_REPOSITORY")
	bindEnv("api-url", "GITHUB_API_URL")
	bindEnv("outputs-file", "GITHUB_OUTPUT")

	// Bind all flags of localCmd to Viper
	localCmd.Flags().String("base", "origin/main", "Base Git reference")
	localCmd.Flags().String("head", "HEAD", "Head Git reference")
	localCmd.Flags().String("title", "", "Pull request title (default: subject of the head commit)")
	localCmd.Flags().String("body", "", "Pull request description (default: body of the head commit)")
	localCmd.Flags().String("output", "markdown", "Output format: markdown or table or json or csv")
	localCmd.Flags().String("output-file", "", "Optional path to write output to")
	localCmd.Flags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	localCmd.Flags().Bool("write-reports", false, "Also write the JSON, SARIF and Parquet reports enabled in the config")
	if err := viper.BindPFlags(localCmd.Flags()); err != nil {
		contract.LogFatal("Error binding local flags", err)
	}
}

// bindEnv lets a flag fall back to its PRGATE_ variable and then to a GitHub Actions variable.
func bindEnv(key, actionsVar string) {
	if err := viper.BindEnv(key, "PRGATE_"+envKey(key), actionsVar); err != nil {
		contract.LogFatal("Error binding env "+actionsVar, err)
	}
}
