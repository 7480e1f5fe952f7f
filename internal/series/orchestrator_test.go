package series

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gageg/artforge/internal/composer"
	"github.com/gageg/artforge/internal/history"
	"github.com/gageg/artforge/internal/provider"
	"github.com/gageg/artforge/internal/store"
)

type fakeProvider struct {
	name  string
	fail  bool
	calls int
}

func (f *fakeProvider) Name() string    { return f.name }
func (f *fakeProvider) Referer() string { return "https://" + f.name + ".test" }

func (f *fakeProvider) Generate(ctx context.Context, prompt string) (*provider.Result, error) {
	f.calls++
	if f.fail {
		return nil, &provider.Error{Provider: f.name, Kind: provider.KindTimeout}
	}
	return &provider.Result{URL: "https://cdn.test/" + f.name + ".png", Referer: f.Referer()}, nil
}

func fakeFetch(ctx context.Context, url, referer string) ([]byte, error) {
	return bytes.Repeat([]byte{0x42}, 32*1024), nil
}

func newOrchestrator(t *testing.T, providers []provider.Provider) (*Orchestrator, *store.Store) {
	t.Helper()
	ctx := context.Background()

	st, err := store.NewStore(ctx, filepath.Join(t.TempDir(), "manifest.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(ctx))

	comp := composer.New(composer.Config{
		History: history.Load(filepath.Join(t.TempDir(), "history.json"), 80),
		Seed:    1,
	})

	return New(Config{
		Composer:  comp,
		Providers: providers,
		Store:     st,
		SaveDir:   t.TempDir(),
		Fetch:     fakeFetch,
		Seed:      1,
	}), st
}

func TestRun_FullSuccess(t *testing.T) {
	providers := []provider.Provider{
		&fakeProvider{name: "grok"},
		&fakeProvider{name: "leonardo"},
		&fakeProvider{name: "firefly"},
	}
	o, st := newOrchestrator(t, providers)

	res, err := o.Run(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Requested)
	assert.Equal(t, 3, res.Succeeded)
	assert.True(t, res.Viable)
	require.Len(t, res.Artifacts, 3)

	// Each variant went to a distinct provider.
	used := map[string]bool{}
	for _, a := range res.Artifacts {
		used[a.Provider] = true
		_, err := os.Stat(a.File)
		assert.NoError(t, err, "artifact file must exist")
	}
	assert.Len(t, used, 3)

	unposted, err := st.UnpostedSeries(context.Background())
	require.NoError(t, err)
	require.Len(t, unposted, 1)
	assert.Equal(t, res.SeriesID, unposted[0].ID)
	assert.Equal(t, res.BaseSubject, unposted[0].BaseSubject)
}

func TestRun_PartialFailureStillPersists(t *testing.T) {
	providers := []provider.Provider{
		&fakeProvider{name: "grok"},
		&fakeProvider{name: "leonardo", fail: true},
		&fakeProvider{name: "firefly"},
	}
	o, st := newOrchestrator(t, providers)

	res, err := o.Run(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Succeeded)
	assert.True(t, res.Viable)

	unposted, err := st.UnpostedSeries(context.Background())
	require.NoError(t, err)
	assert.Len(t, unposted, 1)
}

func TestRun_SingleSuccessNotViable(t *testing.T) {
	providers := []provider.Provider{
		&fakeProvider{name: "grok"},
		&fakeProvider{name: "leonardo", fail: true},
		&fakeProvider{name: "firefly", fail: true},
	}
	o, st := newOrchestrator(t, providers)

	res, err := o.Run(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Succeeded)
	assert.False(t, res.Viable, "one artifact is archived but not postable")

	// Persisted anyway so the image is not lost.
	unposted, err := st.UnpostedSeries(context.Background())
	require.NoError(t, err)
	assert.Len(t, unposted, 1)
}

func TestRun_TotalFailure(t *testing.T) {
	providers := []provider.Provider{
		&fakeProvider{name: "grok", fail: true},
		&fakeProvider{name: "leonardo", fail: true},
	}
	o, st := newOrchestrator(t, providers)

	res, err := o.Run(context.Background(), 2)
	require.Error(t, err)
	assert.Equal(t, 0, res.Succeeded)

	unposted, err := st.UnpostedSeries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, unposted, "an all-failed series must not be persisted")
}

func TestRun_ClampsToProviderCount(t *testing.T) {
	providers := []provider.Provider{
		&fakeProvider{name: "grok"},
		&fakeProvider{name: "leonardo"},
	}
	o, _ := newOrchestrator(t, providers)

	res, err := o.Run(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Requested)
	assert.Equal(t, 2, res.Succeeded)
}

func TestRun_NoProviders(t *testing.T) {
	o, _ := newOrchestrator(t, nil)
	_, err := o.Run(context.Background(), 3)
	assert.Error(t, err)
}

func seedSeries(t *testing.T, st *store.Store, dir, id string, generatedAt time.Time, filesOnDisk int) {
	t.Helper()
	ctx := context.Background()

	var arts []store.Artifact
	for i := 1; i <= 2; i++ {
		path := filepath.Join(dir, id+"_S"+string(rune('0'+i))+".png")
		if i <= filesOnDisk {
			require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{1}, 64), 0o644))
		}
		arts = append(arts, store.Artifact{
			SeriesID: id, Index: i, File: path, Provider: "grok", Prompt: "p",
			Components: map[string]string{"style": "X"},
		})
	}
	require.NoError(t, st.CreateSeries(ctx, store.Series{
		ID: id, BaseSubject: "s", BaseEnvironment: "e", GeneratedAt: generatedAt,
	}, arts))
}

func TestPickUnposted_SkipsSeriesWithMissingFiles(t *testing.T) {
	o, st := newOrchestrator(t, []provider.Provider{&fakeProvider{name: "grok"}})
	dir := t.TempDir()
	now := time.Now()

	// Oldest series lost a file, so the newer complete one wins.
	seedSeries(t, st, dir, "old", now.Add(-2*time.Hour), 1)
	seedSeries(t, st, dir, "new", now, 2)

	s, arts, err := o.PickUnposted(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", s.ID)
	assert.Len(t, arts, 2)
}

func TestPickUnposted_NoneViable(t *testing.T) {
	o, st := newOrchestrator(t, []provider.Provider{&fakeProvider{name: "grok"}})
	seedSeries(t, st, t.TempDir(), "gone", time.Now(), 0)

	_, _, err := o.PickUnposted(context.Background())
	assert.True(t, errors.Is(err, store.ErrNoUnposted))
}

func TestMarkPosted_RemovesFromRotation(t *testing.T) {
	o, st := newOrchestrator(t, []provider.Provider{&fakeProvider{name: "grok"}})
	dir := t.TempDir()
	seedSeries(t, st, dir, "s1", time.Now(), 2)

	require.NoError(t, o.MarkPosted(context.Background(), "s1", "https://instagram.com/p/abc"))

	_, _, err := o.PickUnposted(context.Background())
	assert.True(t, errors.Is(err, store.ErrNoUnposted))
}
