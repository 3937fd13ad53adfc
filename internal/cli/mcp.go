package cli

import (
	"github.com/spf13/cobra"

	"github.com/mindbackup/mindbackup/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the brain over the Model Context Protocol (stdio)",
		Long: `Expose capture, search, tasks, stats, and scheduling as MCP tools so AI
assistants can use your second brain. Communicates over stdin/stdout;
add it to your assistant's MCP server configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			return mcp.NewServer(a.brain, a.gw, a.user, a.log).Serve(version)
		},
	}
}
