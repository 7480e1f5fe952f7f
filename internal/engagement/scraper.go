package engagement

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-rod/rod"

	"github.com/gageg/artforge/internal/browser"
)

// PostRef identifies one posted artifact the scraper should measure.
type PostRef struct {
	Artifact   string
	PostURL    string
	Components map[string]string
}

// Scraper reads like/comment counts from post pages. It scans the page's
// rendered innerText with a regex instead of pinning DOM selectors, which
// survives the platform's frequent class-name churn.
type Scraper struct {
	session  *browser.Session
	interval time.Duration

	// settle gives the page's client-side rendering time to finish before
	// the text scan. Overridable in tests.
	settle time.Duration
}

// NewScraper creates a scraper over an open browser session. interval is the
// rescrape interval; zero means DefaultRescrapeInterval.
func NewScraper(session *browser.Session, interval time.Duration) *Scraper {
	if interval <= 0 {
		interval = DefaultRescrapeInterval
	}
	return &Scraper{session: session, interval: interval, settle: 5 * time.Second}
}

// Update scrapes every ref whose ledger record is stale and writes the
// results into the ledger. Per-post scrape failures are logged and skipped;
// they never abort the run. Returns the number of posts scraped.
func (s *Scraper) Update(ctx context.Context, ledger *Ledger, refs []PostRef) int {
	now := time.Now()
	scraped := 0

	for _, ref := range refs {
		if ref.PostURL == "" {
			continue
		}
		if !ledger.NeedsScrape(ref.Artifact, s.interval, now) {
			slog.Debug("skipping fresh engagement record", "artifact", ref.Artifact)
			// Backfill components recorded after the original scrape.
			if rec, ok := ledger.Posts[ref.Artifact]; ok && len(rec.Components) == 0 && len(ref.Components) > 0 {
				rec.Components = ref.Components
				ledger.Put(ref.Artifact, rec)
			}
			continue
		}

		likes, comments, err := s.scrapePost(ctx, ref.PostURL)
		if err != nil {
			slog.Warn("engagement scrape failed", "artifact", ref.Artifact, "url", ref.PostURL, "error", err)
			continue
		}

		ledger.Put(ref.Artifact, Record{
			PostURL:    ref.PostURL,
			Likes:      likes,
			Comments:   comments,
			ScrapedAt:  time.Now(),
			Components: ref.Components,
		})
		scraped++
		slog.Info("scraped engagement", "artifact", ref.Artifact, "likes", likes, "comments", comments)
	}

	return scraped
}

func (s *Scraper) scrapePost(ctx context.Context, url string) (likes, comments int, err error) {
	page, err := s.session.Open(ctx, url)
	if err != nil {
		return 0, 0, err
	}
	defer page.Close()

	select {
	case <-time.After(s.settle):
	case <-ctx.Done():
		return 0, 0, ctx.Err()
	}

	res, err := page.Context(ctx).Evaluate(&rod.EvalOptions{
		JS: `() => {
			var text = document.body.innerText;
			var likes = text.match(/([\d,\.]+[KkMm]?)\s+like/i);
			var comments = text.match(/([\d,\.]+[KkMm]?)\s+comment/i);
			return {
				likes: likes ? likes[1] : "",
				comments: comments ? comments[1] : ""
			};
		}`,
		ByValue: true,
	})
	if err != nil {
		return 0, 0, err
	}

	raw, err := res.Value.MarshalJSON()
	if err != nil {
		return 0, 0, err
	}
	var counts struct {
		Likes    string `json:"likes"`
		Comments string `json:"comments"`
	}
	if err := json.Unmarshal(raw, &counts); err != nil {
		return 0, 0, err
	}

	return ParseCount(counts.Likes), ParseCount(counts.Comments), nil
}
