package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gageg/artforge/internal/app"
	"github.com/gageg/artforge/internal/config"
	"github.com/gageg/artforge/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot daemon",
	Long: `Run the ArtForge daemon: generate a series every SERIES_INTERVAL,
refresh engagement every ENGAGEMENT_INTERVAL, and post viable series
inside peak windows up to the daily cap.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateForServe(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer a.Close()

	orch, err := a.Orchestrator(ctx)
	if err != nil {
		return err
	}
	p, err := a.Poster(ctx)
	if err != nil {
		return err
	}

	slog.Info("starting ArtForge daemon",
		"series_interval", cfg.SeriesInterval,
		"engagement_interval", cfg.EngagementInterval,
		"daily_post_cap", cfg.DailyPostCap,
	)

	sched := scheduler.New(scheduler.Config{
		Cfg:        cfg,
		Series:     orch,
		Poster:     p,
		Counter:    a.Store,
		Engagement: a.EngagementCycle,
	})

	// Run scheduler in background
	errCh := make(chan error, 1)
	go func() {
		errCh <- sched.Run(ctx)
	}()

	// Wait for shutdown signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			return fmt.Errorf("scheduler error: %w", err)
		}
	}

	slog.Info("shutting down...")
	cancel()

	return nil
}
