package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/acmcompass/compass/internal/server"
)

var flagListenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tracker HTTP server",
	Long: `Start the HTTP server for the tracker.

Serves:
  - the JSON API under /api (problems, contests, solutions, git sync)
  - the static frontend from the configured directory, if present
  - a /health endpoint for probes

The server migrates legacy data containers on first read and shuts
down gracefully on SIGINT/SIGTERM.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		if flagListenAddr != "" {
			cfg.ListenAddr = flagListenAddr
		}

		logger, err := newLogger(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()

		srv := &http.Server{
			Addr:         cfg.ListenAddr,
			Handler:      server.New(cfg, logger).Handler(),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		go func() {
			logger.Info("server started",
				zap.String("addr", cfg.ListenAddr),
				zap.String("base_dir", cfg.BaseDir))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("server failed", zap.Error(err))
			}
		}()

		<-stop
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Fatal("shutdown failed", zap.Error(err))
		}
		logger.Info("server stopped")
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagListenAddr, "listen", "",
		"listen address, e.g. :8000 (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
