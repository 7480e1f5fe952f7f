package engagement

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"0", 0},
		{"42", 42},
		{"1,234", 1234},
		{"42K", 42000},
		{"1.2k", 1200},
		{"1.2M", 1200000},
		{"3m", 3000000},
		{"  17 ", 17},
		{"garbage", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCount(tt.in), "input %q", tt.in)
	}
}

func TestRecord_Score(t *testing.T) {
	r := Record{Likes: 10, Comments: 4}
	assert.Equal(t, 22, r.Score())
}

func TestLoadLedger_MissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()

	l := LoadLedger(filepath.Join(dir, "missing.json"))
	assert.Empty(t, l.Posts)

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{{{"), 0644))
	l = LoadLedger(corrupt)
	assert.Empty(t, l.Posts)
}

func TestLedger_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engagement.json")

	l := NewLedger()
	l.Put("img1.png", Record{
		PostURL:    "https://example.com/p/abc",
		Likes:      12,
		Comments:   3,
		ScrapedAt:  time.Now(),
		Components: map[string]string{"style": "in oils"},
	})
	require.NoError(t, l.Save(path))

	reloaded := LoadLedger(path)
	require.Contains(t, reloaded.Posts, "img1.png")
	assert.Equal(t, 12, reloaded.Posts["img1.png"].Likes)
	assert.Equal(t, "in oils", reloaded.Posts["img1.png"].Components["style"])
	assert.False(t, reloaded.LastUpdated.IsZero())
}

func TestLedger_NeedsScrape(t *testing.T) {
	now := time.Now()
	l := NewLedger()
	l.Put("fresh.png", Record{ScrapedAt: now.Add(-1 * time.Hour)})
	l.Put("stale.png", Record{ScrapedAt: now.Add(-7 * time.Hour)})

	interval := 6 * time.Hour
	assert.False(t, l.NeedsScrape("fresh.png", interval, now))
	assert.True(t, l.NeedsScrape("stale.png", interval, now))
	assert.True(t, l.NeedsScrape("never-seen.png", interval, now))
}

func TestLedger_Top(t *testing.T) {
	l := NewLedger()
	l.Put("low.png", Record{Likes: 1})
	l.Put("high.png", Record{Likes: 50, Comments: 10})
	l.Put("mid.png", Record{Likes: 20})

	top := l.Top(2)
	require.Len(t, top, 2)
	assert.Equal(t, "high.png", top[0].Artifact)
	assert.Equal(t, "mid.png", top[1].Artifact)

	// n larger than the ledger returns everything.
	assert.Len(t, l.Top(10), 3)
}
