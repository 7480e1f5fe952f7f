// Package scheduler runs the bot's periodic cycles: series generation,
// engagement scraping, and window-gated posting.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/gageg/artforge/internal/config"
	"github.com/gageg/artforge/internal/poster"
	"github.com/gageg/artforge/internal/series"
	"github.com/gageg/artforge/internal/store"
)

// SeriesRunner is the slice of the orchestrator the scheduler needs.
type SeriesRunner interface {
	Run(ctx context.Context, n int) (*series.Result, error)
	PickUnposted(ctx context.Context) (*store.Series, []store.Artifact, error)
	MarkPosted(ctx context.Context, seriesID, postURL string) error
}

// Counter counts posts since a cutoff, for the daily cap.
type Counter interface {
	CountPostedSince(ctx context.Context, cutoff time.Time) (int, error)
}

// Scheduler orchestrates the periodic tasks of the bot.
type Scheduler struct {
	cfg    *config.Config
	series SeriesRunner
	poster poster.Poster
	count  Counter

	// engagement runs one scrape-and-learn pass. Optional.
	engagement func(ctx context.Context) error

	health *Health
	rng    *rand.Rand
	now    func() time.Time

	lastPost time.Time
}

// Config holds scheduler configuration.
type Config struct {
	Cfg        *config.Config
	Series     SeriesRunner
	Poster     poster.Poster
	Counter    Counter
	Engagement func(ctx context.Context) error
}

// New creates a new scheduler.
func New(cfg Config) *Scheduler {
	return &Scheduler{
		cfg:        cfg.Cfg,
		series:     cfg.Series,
		poster:     cfg.Poster,
		count:      cfg.Counter,
		engagement: cfg.Engagement,
		health:     NewHealth(),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		now:        time.Now,
	}
}

// Run starts the scheduler main loop.
func (s *Scheduler) Run(ctx context.Context) error {
	slog.Info("starting scheduler",
		"series_interval", s.cfg.SeriesInterval,
		"engagement_interval", s.cfg.EngagementInterval,
		"post_check_interval", s.cfg.PostCheckInterval,
		"daily_post_cap", s.cfg.DailyPostCap,
	)

	// Validate the stored login on startup
	if err := s.poster.ValidateLogin(ctx); err != nil {
		s.health.SetUnhealthy(s.poster.Platform(), err)
		slog.Error("login validation failed", "platform", s.poster.Platform(), "error", err)
	} else {
		s.health.SetHealthy(s.poster.Platform(), "logged in")
	}

	seriesTicker := time.NewTicker(s.cfg.SeriesInterval)
	engagementTicker := time.NewTicker(s.cfg.EngagementInterval)
	postTicker := time.NewTicker(s.cfg.PostCheckInterval)
	defer seriesTicker.Stop()
	defer engagementTicker.Stop()
	defer postTicker.Stop()

	// Run an initial generation cycle so a fresh install produces
	// something before the first tick.
	s.runSeriesCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler shutting down")
			return ctx.Err()

		case <-seriesTicker.C:
			s.runSeriesCycle(ctx)

		case <-engagementTicker.C:
			s.runEngagementCycle(ctx)

		case <-postTicker.C:
			s.runPostCycle(ctx)
		}
	}
}

// runSeriesCycle generates one series.
func (s *Scheduler) runSeriesCycle(ctx context.Context) {
	slog.Debug("running series cycle")

	result, err := s.series.Run(ctx, s.cfg.SeriesSize)
	if err != nil {
		s.health.SetUnhealthy("series", err)
		slog.Error("series cycle failed", "error", err)
		return
	}

	s.health.SetHealthy("series", "series generated")
	slog.Info("series cycle complete",
		"series_id", result.SeriesID, "succeeded", result.Succeeded, "viable", result.Viable)
}

// runEngagementCycle rescrapes posted artifacts and refreshes the ledger.
func (s *Scheduler) runEngagementCycle(ctx context.Context) {
	if s.engagement == nil {
		return
	}
	slog.Debug("running engagement cycle")

	if err := s.engagement(ctx); err != nil {
		s.health.SetUnhealthy("engagement", err)
		slog.Error("engagement cycle failed", "error", err)
		return
	}
	s.health.SetHealthy("engagement", "ledger updated")
}

// runPostCycle posts the oldest viable series when inside a peak window and
// under the daily cap.
func (s *Scheduler) runPostCycle(ctx context.Context) {
	now := s.now()

	if !poster.InPostingWindow(now) {
		slog.Debug("outside posting window", "next", poster.NextWindow(now))
		return
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	postedToday, err := s.count.CountPostedSince(ctx, midnight)
	if err != nil {
		slog.Error("failed to count today's posts", "error", err)
	} else if postedToday >= s.cfg.DailyPostCap {
		slog.Info("daily post cap reached", "posted_today", postedToday, "cap", s.cfg.DailyPostCap)
		return
	}

	sr, artifacts, err := s.series.PickUnposted(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoUnposted) {
			slog.Debug("nothing viable to post")
			return
		}
		s.health.SetUnhealthy("post", err)
		slog.Error("failed to pick series for posting", "error", err)
		return
	}

	files := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		files = append(files, a.File)
	}
	caption := poster.BuildSeriesCaption(s.rng, *sr, artifacts, now)

	result, err := s.poster.Post(ctx, poster.Content{Files: files, Caption: caption})
	if err != nil {
		s.health.SetUnhealthy("post", err)
		slog.Error("failed to post series", "series_id", sr.ID, "error", err)
		return
	}

	if err := s.series.MarkPosted(ctx, sr.ID, result.PostURL); err != nil {
		slog.Warn("failed to record post", "series_id", sr.ID, "error", err)
	}

	s.health.SetHealthy("post", "posted successfully")
	s.lastPost = now
	slog.Info("posted series", "series_id", sr.ID, "images", len(files), "url", result.PostURL)
}

// Health returns the health tracker.
func (s *Scheduler) Health() *Health {
	return s.health
}
