// Package series runs the generation cycle: compose a batch of prompt
// variants around one base idea, fan them out across distinct providers,
// collect the images, and record the batch in the manifest.
package series

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gageg/artforge/internal/artifact"
	"github.com/gageg/artforge/internal/composer"
	"github.com/gageg/artforge/internal/provider"
	"github.com/gageg/artforge/internal/store"
)

const (
	// DefaultSize is how many variants a series requests.
	DefaultSize = 3

	// DefaultMinViable is how many artifacts a series needs before it is
	// worth posting. One image is kept for the archive but never posted.
	DefaultMinViable = 2
)

// FetchFunc downloads an image URL. Injected so tests run without a
// browser or network.
type FetchFunc func(ctx context.Context, url, referer string) ([]byte, error)

// Orchestrator drives one series generation cycle end to end.
type Orchestrator struct {
	composer  *composer.Composer
	providers []provider.Provider
	store     *store.Store
	saveDir   string
	minViable int
	fetch     FetchFunc
	rng       *rand.Rand
	now       func() time.Time
}

// Config holds orchestrator dependencies.
type Config struct {
	Composer  *composer.Composer
	Providers []provider.Provider
	Store     *store.Store
	SaveDir   string

	// MinViable is the posting-eligibility threshold. Zero means
	// DefaultMinViable.
	MinViable int

	// Fetch downloads result URLs. Required.
	Fetch FetchFunc

	// Seed fixes the provider-assignment shuffle; zero seeds from the
	// clock.
	Seed int64
}

// New creates an orchestrator.
func New(cfg Config) *Orchestrator {
	minViable := cfg.MinViable
	if minViable <= 0 {
		minViable = DefaultMinViable
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Orchestrator{
		composer:  cfg.Composer,
		providers: cfg.Providers,
		store:     cfg.Store,
		saveDir:   cfg.SaveDir,
		minViable: minViable,
		fetch:     cfg.Fetch,
		rng:       rand.New(rand.NewSource(seed)),
		now:       time.Now,
	}
}

// Result summarizes one cycle.
type Result struct {
	SeriesID        string
	BaseSubject     string
	BaseEnvironment string
	Requested       int
	Succeeded       int
	Viable          bool
	Artifacts       []store.Artifact
}

// Run executes one full cycle: pick a base, compose n variants, assign each
// to a distinct provider in random order, generate sequentially, and
// persist the manifest when at least one variant produced an image.
//
// Provider failures are logged per variant and never abort the batch.
func (o *Orchestrator) Run(ctx context.Context, n int) (*Result, error) {
	if len(o.providers) == 0 {
		return nil, errors.New("no providers configured")
	}
	if n <= 0 {
		n = DefaultSize
	}
	if n > len(o.providers) {
		slog.Warn("series size clamped to provider count", "requested", n, "providers", len(o.providers))
		n = len(o.providers)
	}

	now := o.now()
	seriesID := now.Format("20060102_150405")
	subject, environment := o.composer.PickBase()
	variants := o.composer.ComposeSeries(subject, environment, n)

	slog.Info("series cycle started",
		"series_id", seriesID, "subject", subject, "environment", environment, "variants", n)

	// Each variant goes to a different provider.
	perm := o.rng.Perm(len(o.providers))[:n]

	result := &Result{
		SeriesID:        seriesID,
		BaseSubject:     subject,
		BaseEnvironment: environment,
		Requested:       n,
	}

	for i, v := range variants {
		v.SeriesID = seriesID
		v.SeriesIndex = i + 1
		v.SeriesTotal = n
		p := o.providers[perm[i]]

		art, err := o.generateOne(ctx, p, v)
		if err != nil {
			var pErr *provider.Error
			if errors.As(err, &pErr) {
				slog.Warn("variant failed", "series_id", seriesID, "index", v.SeriesIndex,
					"provider", p.Name(), "kind", pErr.Kind, "error", err)
			} else {
				slog.Warn("variant failed", "series_id", seriesID, "index", v.SeriesIndex,
					"provider", p.Name(), "error", err)
			}
			if ctx.Err() != nil {
				break
			}
			continue
		}
		result.Artifacts = append(result.Artifacts, *art)
		result.Succeeded++
	}

	if result.Succeeded == 0 {
		return result, fmt.Errorf("series %s: every variant failed", seriesID)
	}

	result.Viable = result.Succeeded >= o.minViable
	if err := o.store.CreateSeries(ctx, store.Series{
		ID:              seriesID,
		BaseSubject:     subject,
		BaseEnvironment: environment,
		GeneratedAt:     now,
	}, result.Artifacts); err != nil {
		return result, fmt.Errorf("persist manifest: %w", err)
	}

	slog.Info("series cycle finished",
		"series_id", seriesID, "succeeded", result.Succeeded, "requested", n, "viable", result.Viable)
	return result, nil
}

func (o *Orchestrator) generateOne(ctx context.Context, p provider.Provider, v composer.Variant) (*store.Artifact, error) {
	prompt := v.Prompt()
	slog.Info("dispatching variant", "series_id", v.SeriesID, "index", v.SeriesIndex,
		"provider", p.Name(), "style", v.Style)

	res, err := p.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	data, err := o.fetch(ctx, res.URL, res.Referer)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}

	components := v.Components()
	path, err := artifact.Save(o.saveDir,
		artifact.Filename(prompt, v.SeriesID, v.SeriesIndex, o.now()),
		data,
		artifact.SaveOptions{
			Prompt:     prompt,
			SourceURL:  res.URL,
			SourceName: p.Name(),
			Components: components,
		})
	if err != nil {
		return nil, err
	}

	return &store.Artifact{
		SeriesID:   v.SeriesID,
		Index:      v.SeriesIndex,
		File:       path,
		Provider:   p.Name(),
		Prompt:     prompt,
		Components: components,
	}, nil
}

// PickUnposted returns the oldest unposted series that still has enough
// artifact files on disk to post. Series whose files have been deleted are
// skipped, not errored.
func (o *Orchestrator) PickUnposted(ctx context.Context) (*store.Series, []store.Artifact, error) {
	candidates, err := o.store.UnpostedSeries(ctx)
	if err != nil {
		return nil, nil, err
	}

	for _, s := range candidates {
		arts, err := o.store.Artifacts(ctx, s.ID)
		if err != nil {
			return nil, nil, err
		}
		var onDisk []store.Artifact
		for _, a := range arts {
			if _, err := os.Stat(a.File); err == nil {
				onDisk = append(onDisk, a)
			}
		}
		if len(onDisk) >= o.minViable {
			return &s, onDisk, nil
		}
		slog.Debug("skipping non-viable series", "series_id", s.ID, "on_disk", len(onDisk))
	}
	return nil, nil, store.ErrNoUnposted
}

// MarkPosted records a successful post against the manifest.
func (o *Orchestrator) MarkPosted(ctx context.Context, seriesID, postURL string) error {
	return o.store.MarkPosted(ctx, seriesID, postURL, o.now())
}
