package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"TrueArk/internal/di"
	mcpserver "TrueArk/internal/mcp"
	"TrueArk/pkg/config"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var mcpConfigPath string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing the chart tools
(calculate_chart, store_chart, get_chart, list_charts). Persistence-backed
tools require ClickHouse to be enabled in the config; calculate_chart always
works.`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpConfigPath, "config", "config/config.yaml", "config file path")
}

func runMCP(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWithEnv(mcpConfigPath)
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	// stdout belongs to the stdio transport; everything else goes to stderr.
	cfg.Logging.Output = "stderr"

	svc, l, closeDeps, err := di.InitializeChartService(cfg)
	if err != nil {
		return fmt.Errorf("chart service initialization: %w", err)
	}
	defer closeDeps()

	l.Info("starting trueark MCP server over stdio")
	srv := mcpserver.NewServer(svc, l)
	return srv.Run(cmd.Context(), &sdkmcp.StdioTransport{})
}
