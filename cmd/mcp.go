package cmd

import (
	"github.com/huangsam/prgate/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the prgate MCP server",
	Long:  `Launch an MCP server that lets AI agents evaluate pull requests with the prgate checks via standard tools.`,
	// Logs go to stderr so stdio stays free for the protocol.
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, repoRoot, version)
	},
}
