package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"TrueArk/internal/di"
	"TrueArk/pkg/config"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the REST API (chart computation, stored charts, live transits
websocket) and the Prometheus metrics endpoint, wired from the YAML config.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "config/config.yaml", "config file path")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadWithEnv(serveConfigPath)
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("app initialization: %w", err)
	}

	return app.Run()
}
