package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func cleanupCommand() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete signals not seen within the expiry window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cfgFile, debug)
			if err != nil {
				return err
			}
			defer a.Close()

			if !cmd.Flags().Changed("days") {
				days = a.cfg.Store.ExpiryDays
			}

			deleted, err := a.pipeline.Cleanup(cmd.Context(), time.Duration(days)*24*time.Hour)
			if err != nil {
				return err
			}
			fmt.Printf("deleted %d expired signals (threshold %d days)\n", deleted, days)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", -1, "expiry threshold in days (default from config)")
	return cmd
}

func vacuumCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "vacuum",
		Short: "Reclaim store space after cleanup",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cfgFile, debug)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.Vacuum(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("vacuum complete")
			return nil
		},
	}
}

func statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print store statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cfgFile, debug)
			if err != nil {
				return err
			}
			defer a.Close()

			stats, err := a.store.SignalStats(cmd.Context())
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
