package cmd

import (
	"fmt"

	"github.com/huangsam/prgate/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configCmd is the parent command for configuration helpers.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the prgate configuration",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// configShowCmd prints the effective configuration after merging defaults.
var configShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "Print the effective configuration as YAML",
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent(2)
		defer func() { _ = encoder.Close() }()
		if err := encoder.Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		return nil
	},
}

// configValidateCmd loads the configuration and reports whether it is valid.
var configValidateCmd = &cobra.Command{
	Use:     "validate",
	Short:   "Check the configuration file for errors",
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		path := contract.ResolveConfigPath(viper.GetString("config"), repoRoot)
		cmd.Printf("%s: OK (mode %s, %d rule(s))\n", path, cfg.Mode, len(cfg.Rules))
	},
}
