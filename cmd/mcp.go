package cmd

import (
	"github.com/spf13/cobra"

	"github.com/salesdojo/salesdojo/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP stdio server for agent integration",
	Long: `Start an MCP (Model Context Protocol) server on stdio.

This lets an MCP client drive practice sessions natively. Configure with:

  {
    "mcpServers": {
      "salesdojo": { "command": "salesdojo", "args": ["mcp"] }
    }
  }

Available tools: salesdojo_list_scenarios, salesdojo_start_session,
salesdojo_send_message, salesdojo_end_session, salesdojo_get_session`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := getCatalog()
		if err != nil {
			return err
		}
		srv := mcp.NewServer(cat, newManager(cat))
		return srv.ServeStdio(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
