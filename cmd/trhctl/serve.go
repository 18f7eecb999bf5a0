package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/trhprace/intelligence/internal/api"
	"github.com/trhprace/intelligence/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests may drain.
const shutdownTimeout = 10 * time.Second

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the ingest and analytics API server",
		Long: `Starts the HTTP API and the scheduled expiry eviction. The server
accepts raw signals from scrapers and serves the analytical queries until
interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	a, err := newApp(cfgFile, debug)
	if err != nil {
		return err
	}
	defer a.Close()

	handler := api.NewHandler(a.pipeline, a.store, a.analytics, a.log)
	server := api.NewServer(handler, api.ServerConfig{
		Port:         a.cfg.Service.Port,
		ReadTimeout:  a.cfg.Service.ReadTimeout,
		WriteTimeout: a.cfg.Service.WriteTimeout,
		Debug:        a.cfg.Service.Debug,
	}, a.log)

	scheduler := cron.New()
	_, err = scheduler.AddFunc(a.cfg.Service.EvictionCron, func() {
		threshold := time.Duration(a.cfg.Store.ExpiryDays) * 24 * time.Hour
		deleted, cleanupErr := a.pipeline.Cleanup(context.Background(), threshold)
		if cleanupErr != nil {
			a.log.Error("scheduled eviction failed", logger.Error(cleanupErr))
			return
		}
		a.log.Info("scheduled eviction finished", logger.Int64("expired", deleted))
	})
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err = <-errCh:
		return err
	case sig := <-stop:
		a.log.Info("signal received, shutting down", logger.String("signal", sig.String()))
	case <-ctx.Done():
		a.log.Info("context cancelled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
