package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Fichusgg/casa-score-br/internal/logger"
	"github.com/Fichusgg/casa-score-br/internal/server"
)

var flagPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the parse-listing and metrics HTTP API",
	Long: `Serve exposes:
  POST /api/parse-listing  {"url": "..."}
  POST /api/metrics        {"listing": {...}, "assumptions": {...}, "comparables": {...}}
  GET  /health`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		port := cfg.App.Port
		if flagPort > 0 {
			port = flagPort
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(newIngestor(), log.With(logger.String("component", "server")))
		return srv.Run(ctx, fmt.Sprintf(":%d", port))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&flagPort, "port", 0, "Listen port (default from config, 8080)")
}
