package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gageg/artforge/internal/app"
	"github.com/gageg/artforge/internal/config"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Update engagement counts for posted series",
	Long: `Visit every posted artifact's post page, read the current like and
comment counts, and refresh the engagement ledger. Records scraped within
RESCRAPE_INTERVAL are skipped.`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateForScraping(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer a.Close()

	if err := a.EngagementCycle(ctx); err != nil {
		return err
	}

	fmt.Printf("Ledger holds %d posts\n", len(a.Ledger.Posts))
	for _, sp := range a.Ledger.Top(5) {
		fmt.Printf("  %4d  %s\n", sp.Record.Score(), sp.Artifact)
	}
	return nil
}
