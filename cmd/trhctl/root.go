// Package main implements trhctl, the command-line interface of the
// labour-market intelligence service: API server, NDJSON ingest, and store
// maintenance.
package main

import (
	"github.com/spf13/cobra"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug mode for all commands.
	debug bool

	rootCmd = &cobra.Command{
		Use:   "trhctl",
		Short: "Czech labour-market intelligence pipeline",
		Long: `trhctl normalises scraped job adverts into enriched signals:
salary ranges in monthly CZK, role and seniority classification, semantic
tags, and a deduplicated store with an analytical query surface.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "./configs/config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(ingestCommand())
	rootCmd.AddCommand(cleanupCommand())
	rootCmd.AddCommand(vacuumCommand())
	rootCmd.AddCommand(statsCommand())
}
