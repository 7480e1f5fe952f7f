// Package engagement persists measured social engagement per artifact and
// turns it into the report and weight inputs the rest of the bot consumes.
package engagement

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultRescrapeInterval is how long a scraped record stays fresh. Records
// younger than this are skipped on the next update pass.
const DefaultRescrapeInterval = 6 * time.Hour

// commentWeight reflects that a comment signals stronger intent than a like.
const commentWeight = 3

// Record is the measured engagement for one posted artifact, denormalized
// with the prompt components that produced it so the weight engine never has
// to join back to sidecar files.
type Record struct {
	PostURL    string            `json:"post_url"`
	Likes      int               `json:"likes"`
	Comments   int               `json:"comments"`
	ScrapedAt  time.Time         `json:"scraped_at"`
	Components map[string]string `json:"components,omitempty"`
}

// Score is the raw engagement score: likes + 3 x comments.
func (r Record) Score() int {
	return r.Likes + commentWeight*r.Comments
}

// Ledger maps artifact file name to its engagement record.
type Ledger struct {
	Posts       map[string]Record `json:"posts"`
	LastUpdated time.Time         `json:"last_updated"`
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{Posts: make(map[string]Record)}
}

// LoadLedger reads the ledger file at path. A missing or corrupt file loads
// as an empty ledger with a warning; scraping rebuilds it over time.
func LoadLedger(path string) *Ledger {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("could not read engagement ledger, starting empty", "path", path, "error", err)
		}
		return NewLedger()
	}

	var l Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		slog.Warn("corrupt engagement ledger, starting empty", "path", path, "error", err)
		return NewLedger()
	}
	if l.Posts == nil {
		l.Posts = make(map[string]Record)
	}
	return &l
}

// Save writes the ledger to path and stamps LastUpdated.
func (l *Ledger) Save(path string) error {
	l.LastUpdated = time.Now()
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// NeedsScrape reports whether the artifact should be (re-)scraped: true when
// it has never been scraped or its record is older than interval.
func (l *Ledger) NeedsScrape(artifact string, interval time.Duration, now time.Time) bool {
	rec, ok := l.Posts[artifact]
	if !ok {
		return true
	}
	return now.Sub(rec.ScrapedAt) >= interval
}

// Put stores or replaces the record for an artifact.
func (l *Ledger) Put(artifact string, rec Record) {
	l.Posts[artifact] = rec
}

// ScoredPost pairs an artifact name with its record for reporting.
type ScoredPost struct {
	Artifact string
	Record   Record
}

// Top returns the n highest-scoring posts, best first.
func (l *Ledger) Top(n int) []ScoredPost {
	scored := make([]ScoredPost, 0, len(l.Posts))
	for name, rec := range l.Posts {
		scored = append(scored, ScoredPost{Artifact: name, Record: rec})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Record.Score() != scored[j].Record.Score() {
			return scored[i].Record.Score() > scored[j].Record.Score()
		}
		return scored[i].Artifact < scored[j].Artifact
	})
	if n < len(scored) {
		scored = scored[:n]
	}
	return scored
}

// ParseCount parses platform count strings like "1,234", "42K" or "1.2M".
// Unparseable input counts as zero.
func ParseCount(text string) int {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if text == "" {
		return 0
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(strings.ToUpper(text), "K"):
		multiplier = 1_000
		text = text[:len(text)-1]
	case strings.HasSuffix(strings.ToUpper(text), "M"):
		multiplier = 1_000_000
		text = text[:len(text)-1]
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return int(v * multiplier)
}
