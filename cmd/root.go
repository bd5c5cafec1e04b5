// Package cmd implements the casascore CLI using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Fichusgg/casa-score-br/core/extract"
	"github.com/Fichusgg/casa-score-br/core/fetch"
	"github.com/Fichusgg/casa-score-br/core/pipeline"
	"github.com/Fichusgg/casa-score-br/internal/config"
	"github.com/Fichusgg/casa-score-br/internal/logger"
)

// Persistent flag values.
var (
	flagConfig   string
	flagLogLevel string
)

// Loaded once in PersistentPreRunE.
var (
	cfg *config.Config
	log logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "casascore",
	Short: "casascore: turn Brazilian listing URLs into normalized property records",
	Long: `casascore ingests classified-ad pages from OLX, QuintoAndar, VivaReal and
Loft and produces a normalized listing (title, price, area, bedrooms, address)
ready for yield valuation.

Usage:
  casascore ingest <url> [flags]
  casascore serve [--port 8080]
  casascore inspect <url>`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: "+config.DefaultPath+" when present)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(*cobra.Command, []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	log, err = logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	return nil
}

// newIngestor wires the pipeline from the loaded config.
func newIngestor() *pipeline.Ingestor {
	opts := []pipeline.Option{pipeline.WithLogger(log)}
	if cfg.Extract.DefaultEstado != "" {
		opts = append(opts, pipeline.WithExtractorOptions(extract.WithDefaultEstado(cfg.Extract.DefaultEstado)))
	}
	return pipeline.New(fetch.New(cfg.Fetch), opts...)
}
