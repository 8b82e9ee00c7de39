package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/prgate/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = contract.DefaultConfig()

// repoRoot is the resolved repository root that config and rule paths are relative to.
var repoRoot = "."

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "prgate",
	Short: "Gate pull requests with quality checks and a risk score.",
	Long: `prgate reviews a pull request's title, description, size, tests and contents,
scores its risk, and publishes one consolidated report comment.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig wires environment variables into Viper.
func initConfig() {
	// Set environment variable prefix
	viper.SetEnvPrefix("PRGATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("config", contract.DefaultConfigPath)
	viper.SetDefault("color", "yes")
	viper.SetDefault("debug", false)
}

// sharedSetup initializes logging, resolves the repository root and loads the config file.
func sharedSetup(ctx context.Context, _ *cobra.Command, _ []string) error {
	if err := contract.InitLogger(viper.GetBool("debug")); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	useColor, err := contract.ParseBoolString(viper.GetString("color"))
	if err != nil {
		return err
	}
	color.NoColor = !useColor

	repoRoot = resolveRepoRoot(ctx, viper.GetString("repo-root"))

	loaded, err := contract.LoadConfig(viper.GetString("config"), repoRoot)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// resolveRepoRoot prefers the explicit flag, then GITHUB_WORKSPACE, then the
// enclosing git worktree, then the current directory.
func resolveRepoRoot(ctx context.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if ws := os.Getenv("GITHUB_WORKSPACE"); ws != "" {
		return ws
	}
	if root, err := contract.NewLocalGitClient().GetRepoRoot(ctx, "."); err == nil {
		return root
	}
	return "."
}

// Execute is the primary entrypoint for the CLI.
func Execute() error {
	return rootCmd.Execute()
}
