package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gageg/artforge/internal/app"
	"github.com/gageg/artforge/internal/config"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Sample a single prompt",
	Long: `Compose one prompt from the lexicon using the current engagement
weights and print it. The (subject, style) pair is recorded in the
repeat-avoidance history; nothing is generated or posted.`,
	RunE: runCompose,
}

func init() {
	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer a.Close()

	v := a.Composer.ComposeSingle()

	fmt.Println(v.Prompt())
	fmt.Println()
	for slot, value := range v.Components() {
		fmt.Printf("  %-12s %s\n", slot, value)
	}
	return nil
}
