package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gageg/artforge/internal/app"
	"github.com/gageg/artforge/internal/config"
)

var seriesPost bool

var seriesCmd = &cobra.Command{
	Use:   "series [n]",
	Short: "Generate one image series",
	Long: `Run a full generation cycle: compose n variants of one base idea,
fan them out across distinct generation sites, download the results, and
record the series in the manifest. n defaults to SERIES_SIZE.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSeries,
}

func init() {
	seriesCmd.Flags().BoolVar(&seriesPost, "post", false, "post the series immediately if it is viable")
	rootCmd.AddCommand(seriesCmd)
}

func runSeries(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateForSeries(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	n := cfg.SeriesSize
	if len(args) == 1 {
		n, err = strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid series size %q", args[0])
		}
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

	result, err := orch.Run(ctx, n)
	if err != nil {
		return err
	}

	fmt.Printf("Series %s: %d/%d variants succeeded\n", result.SeriesID, result.Succeeded, result.Requested)
	fmt.Printf("  Base: %s, %s\n", result.BaseSubject, result.BaseEnvironment)
	for _, art := range result.Artifacts {
		fmt.Printf("  [%d] %s (%s)\n", art.Index, art.File, art.Provider)
	}
	if !result.Viable {
		fmt.Printf("Not viable for posting (needs %d images)\n", cfg.SeriesMinViable)
		return nil
	}

	if seriesPost {
		return postOldestViable(ctx, a, true)
	}
	return nil
}
