// Package app wires the application dependencies together.
package app

import (
	"context"
	"fmt"

	"github.com/gageg/artforge/internal/artifact"
	"github.com/gageg/artforge/internal/browser"
	"github.com/gageg/artforge/internal/composer"
	"github.com/gageg/artforge/internal/config"
	"github.com/gageg/artforge/internal/engagement"
	"github.com/gageg/artforge/internal/history"
	"github.com/gageg/artforge/internal/lexicon"
	"github.com/gageg/artforge/internal/poster"
	"github.com/gageg/artforge/internal/provider"
	"github.com/gageg/artforge/internal/series"
	"github.com/gageg/artforge/internal/store"
	"github.com/gageg/artforge/internal/weights"
)

// App is the main application container holding all dependencies.
type App struct {
	Config   *config.Config
	Store    *store.Store
	History  *history.Tracker
	Ledger   *engagement.Ledger
	Composer *composer.Composer

	// session is the exclusive browser, started on first use. Commands
	// that never touch a site (compose, report) leave it nil.
	session *browser.Session
}

// New creates a new application instance with all dependencies wired up.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Open the manifest database
	st, err := store.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}

	hist := history.Load(cfg.HistoryPath(), history.DefaultSize)
	ledger := engagement.LoadLedger(cfg.LedgerPath())

	// Bias the composer toward components that earned engagement
	engine := weights.New()
	comp := composer.New(composer.Config{
		History: hist,
		Weights: engine.AllWeights(ledger, lexicon.All()),
	})

	return &App{
		Config:   cfg,
		Store:    st,
		History:  hist,
		Ledger:   ledger,
		Composer: comp,
	}, nil
}

// Browser returns the automation session, launching Chrome on first call.
func (a *App) Browser(ctx context.Context) (*browser.Session, error) {
	if a.session != nil {
		return a.session, nil
	}
	session, err := browser.NewSession(ctx, browser.Config{
		ProfileDir: a.Config.ProfileDir,
		Headless:   a.Config.Headless,
	})
	if err != nil {
		return nil, fmt.Errorf("start browser: %w", err)
	}
	a.session = session
	return session, nil
}

// Orchestrator builds the series orchestrator over a live browser session.
func (a *App) Orchestrator(ctx context.Context) (*series.Orchestrator, error) {
	session, err := a.Browser(ctx)
	if err != nil {
		return nil, err
	}

	cookies, err := session.Cookies()
	if err != nil {
		cookies = nil
	}
	downloader := artifact.NewDownloader(session.UserAgent(), cookies)

	return series.New(series.Config{
		Composer:  a.Composer,
		Providers: provider.FromSession(session),
		Store:     a.Store,
		SaveDir:   a.Config.SaveDir,
		MinViable: a.Config.SeriesMinViable,
		Fetch:     downloader.Fetch,
	}), nil
}

// Poster builds the posting collaborator over a live browser session.
func (a *App) Poster(ctx context.Context) (poster.Poster, error) {
	session, err := a.Browser(ctx)
	if err != nil {
		return nil, err
	}
	return poster.NewInstagram(session), nil
}

// EngagementCycle scrapes stale posted artifacts and persists the ledger.
func (a *App) EngagementCycle(ctx context.Context) error {
	session, err := a.Browser(ctx)
	if err != nil {
		return err
	}

	posted, err := a.Store.PostedArtifacts(ctx)
	if err != nil {
		return fmt.Errorf("list posted artifacts: %w", err)
	}

	refs := make([]engagement.PostRef, 0, len(posted))
	for _, pa := range posted {
		refs = append(refs, engagement.PostRef{
			Artifact:   pa.File,
			PostURL:    pa.PostURL,
			Components: pa.Components,
		})
	}

	scraper := engagement.NewScraper(session, a.Config.RescrapeInterval)
	scraper.Update(ctx, a.Ledger, refs)

	if err := a.Ledger.Save(a.Config.LedgerPath()); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

// Close closes all resources.
func (a *App) Close() error {
	if a.session != nil {
		_ = a.session.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
