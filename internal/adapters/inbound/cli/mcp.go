package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/charsnap/charsnap/internal/adapters/inbound/mcp"
)

func newMCPCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the charsnap MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(env))
	return cmd
}

func newMCPServeCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start charsnap MCP server (stdio)",
		Long:  "Start the charsnap MCP server using stdio transport. This lets AI assistants take snapshots, inspect single fixtures and diff snapshots.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := env.loadConfig()
			if err != nil {
				return err
			}
			log := env.logger(cfg, "mcp")
			defer func() { _ = log.Sync() }()

			s := mcpadapter.NewCharsnapMCPServer(cfg, env.services(cfg, log), version)
			return server.ServeStdio(s)
		},
	}
}
