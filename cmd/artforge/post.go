package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/gageg/artforge/internal/app"
	"github.com/gageg/artforge/internal/config"
	"github.com/gageg/artforge/internal/poster"
	"github.com/gageg/artforge/internal/store"
)

var postForce bool

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post the oldest viable series",
	Long: `Post the oldest unposted series that still has enough images on
disk. Respects the peak posting windows and the daily cap unless --force
is given.`,
	RunE: runPost,
}

func init() {
	postCmd.Flags().BoolVar(&postForce, "force", false, "ignore the posting window and daily cap")
	rootCmd.AddCommand(postCmd)
}

func runPost(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateForPosting(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer a.Close()

	return postOldestViable(ctx, a, postForce)
}

// postOldestViable runs the shared posting routine: window and cap checks,
// pick, caption, post, mark.
func postOldestViable(ctx context.Context, a *app.App, force bool) error {
	now := time.Now()

	if !force {
		if !poster.InPostingWindow(now) {
			fmt.Printf("Outside posting window; next is %s (use --force to override)\n", poster.NextWindow(now))
			return nil
		}
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		posted, err := a.Store.CountPostedSince(ctx, midnight)
		if err != nil {
			return fmt.Errorf("count today's posts: %w", err)
		}
		if posted >= a.Config.DailyPostCap {
			fmt.Printf("Daily cap reached (%d/%d)\n", posted, a.Config.DailyPostCap)
			return nil
		}
	}

	orch, err := a.Orchestrator(ctx)
	if err != nil {
		return err
	}
	sr, artifacts, err := orch.PickUnposted(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoUnposted) {
			fmt.Println("Nothing viable to post")
			return nil
		}
		return err
	}

	p, err := a.Poster(ctx)
	if err != nil {
		return err
	}
	if err := p.ValidateLogin(ctx); err != nil {
		return fmt.Errorf("login check: %w", err)
	}

	files := make([]string, 0, len(artifacts))
	for _, art := range artifacts {
		files = append(files, art.File)
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	caption := poster.BuildSeriesCaption(rng, *sr, artifacts, now)

	result, err := p.Post(ctx, poster.Content{Files: files, Caption: caption})
	if err != nil {
		return fmt.Errorf("post series %s: %w", sr.ID, err)
	}

	if err := orch.MarkPosted(ctx, sr.ID, result.PostURL); err != nil {
		return fmt.Errorf("record post: %w", err)
	}

	fmt.Printf("Posted series %s (%d images)\n", sr.ID, len(files))
	if result.PostURL != "" {
		fmt.Printf("  %s\n", result.PostURL)
	}
	return nil
}
