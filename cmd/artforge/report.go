package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gageg/artforge/internal/config"
	"github.com/gageg/artforge/internal/engagement"
	"github.com/gageg/artforge/internal/lexicon"
	"github.com/gageg/artforge/internal/store"
	"github.com/gageg/artforge/internal/weights"
)

var reportTop int

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the engagement leaderboard",
	Long: `Print the top posts by engagement score from the ledger, plus the
component weights the next compositions will sample with. Reads the
ledger as-is; nothing is rescraped.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().IntVar(&reportTop, "top", 10, "number of posts to show")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	st, err := store.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open manifest: %w", err)
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	ledger := engagement.LoadLedger(cfg.LedgerPath())

	fmt.Printf("=== Engagement Report ===\n\n")
	fmt.Printf("Posts tracked: %d\n", len(ledger.Posts))
	if !ledger.LastUpdated.IsZero() {
		fmt.Printf("Last updated:  %s\n", ledger.LastUpdated.Format("2006-01-02 15:04"))
	}
	fmt.Println()

	recent, err := st.ListSeries(ctx, reportTop)
	if err != nil {
		return fmt.Errorf("list series: %w", err)
	}
	if len(recent) > 0 {
		fmt.Println("Recent series:")
		for _, sr := range recent {
			state := "pending"
			if sr.Posted {
				state = "posted"
			}
			fmt.Printf("  %s  %-7s  %s, %s\n", sr.ID, state, sr.BaseSubject, sr.BaseEnvironment)
		}
		fmt.Println()
	}

	top := ledger.Top(reportTop)
	if len(top) == 0 {
		fmt.Println("No engagement data yet; run scrape after posting.")
		return nil
	}

	fmt.Println("Top posts:")
	for i, sp := range top {
		fmt.Printf("  %2d. %4d pts  (%d likes, %d comments)  %s\n",
			i+1, sp.Record.Score(), sp.Record.Likes, sp.Record.Comments, sp.Artifact)
	}
	fmt.Println()

	// Show which styles and moods the learner currently favors.
	engine := weights.New()
	for _, slot := range []string{lexicon.SlotStyle, lexicon.SlotMood} {
		catalog := lexicon.All()[slot]
		w := engine.Weights(ledger, slot, catalog)

		type pair struct {
			value  string
			weight float64
		}
		var measured []pair
		for i, value := range catalog {
			if w[i] != weights.Neutral {
				measured = append(measured, pair{value, w[i]})
			}
		}
		if len(measured) == 0 {
			continue
		}
		fmt.Printf("Learned %s weights:\n", slot)
		for _, p := range measured {
			fmt.Printf("  %.2f  %s\n", p.weight, p.value)
		}
		fmt.Println()
	}
	return nil
}
