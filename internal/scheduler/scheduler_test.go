package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gageg/artforge/internal/config"
	"github.com/gageg/artforge/internal/poster"
	"github.com/gageg/artforge/internal/series"
	"github.com/gageg/artforge/internal/store"
)

func TestHealth_SetHealthy(t *testing.T) {
	h := NewHealth()

	h.SetHealthy("test", "all good")

	status, ok := h.Status("test")
	require.True(t, ok)
	assert.True(t, status.Healthy)
	assert.Equal(t, "all good", status.Message)
	assert.Nil(t, status.LastError)
	assert.WithinDuration(t, time.Now(), status.LastCheck, time.Second)
	assert.WithinDuration(t, time.Now(), status.LastSuccess, time.Second)
}

func TestHealth_SetUnhealthy(t *testing.T) {
	h := NewHealth()

	err := assert.AnError
	h.SetUnhealthy("test", err)

	status, ok := h.Status("test")
	require.True(t, ok)
	assert.False(t, status.Healthy)
	assert.Equal(t, err, status.LastError)
	assert.Equal(t, err.Error(), status.Message)
}

func TestHealth_Status_NotFound(t *testing.T) {
	h := NewHealth()

	_, ok := h.Status("nonexistent")
	assert.False(t, ok)
}

func TestHealth_All(t *testing.T) {
	h := NewHealth()

	h.SetHealthy("comp1", "ok")
	h.SetHealthy("comp2", "ok")
	h.SetUnhealthy("comp3", assert.AnError)

	statuses := h.All()
	assert.Len(t, statuses, 3)
	assert.True(t, statuses["comp1"].Healthy)
	assert.True(t, statuses["comp2"].Healthy)
	assert.False(t, statuses["comp3"].Healthy)
}

func TestHealth_Healthy(t *testing.T) {
	t.Run("all healthy", func(t *testing.T) {
		h := NewHealth()
		h.SetHealthy("comp1", "ok")
		h.SetHealthy("comp2", "ok")

		assert.True(t, h.Healthy())
	})

	t.Run("one unhealthy", func(t *testing.T) {
		h := NewHealth()
		h.SetHealthy("comp1", "ok")
		h.SetUnhealthy("comp2", assert.AnError)

		assert.False(t, h.Healthy())
	})

	t.Run("empty", func(t *testing.T) {
		h := NewHealth()
		assert.True(t, h.Healthy())
	})
}

type fakeRunner struct {
	unposted    *store.Series
	artifacts   []store.Artifact
	pickErr     error
	markedID    string
	markedURL   string
	runsStarted int
}

func (f *fakeRunner) Run(ctx context.Context, n int) (*series.Result, error) {
	f.runsStarted++
	return &series.Result{SeriesID: "s", Requested: n, Succeeded: n, Viable: true}, nil
}

func (f *fakeRunner) PickUnposted(ctx context.Context) (*store.Series, []store.Artifact, error) {
	if f.pickErr != nil {
		return nil, nil, f.pickErr
	}
	return f.unposted, f.artifacts, nil
}

func (f *fakeRunner) MarkPosted(ctx context.Context, seriesID, postURL string) error {
	f.markedID = seriesID
	f.markedURL = postURL
	return nil
}

type fakePoster struct {
	posts    []poster.Content
	loginErr error
}

func (f *fakePoster) Platform() string { return "instagram" }

func (f *fakePoster) Post(ctx context.Context, content poster.Content) (*poster.Result, error) {
	f.posts = append(f.posts, content)
	return &poster.Result{PostURL: "https://instagram.com/p/new"}, nil
}

func (f *fakePoster) ValidateLogin(ctx context.Context) error { return f.loginErr }

type fakeCounter struct{ posted int }

func (f *fakeCounter) CountPostedSince(ctx context.Context, cutoff time.Time) (int, error) {
	return f.posted, nil
}

func testScheduler(runner *fakeRunner, p *fakePoster, c *fakeCounter) *Scheduler {
	return New(Config{
		Cfg: &config.Config{
			SeriesSize:   3,
			DailyPostCap: 3,
		},
		Series:  runner,
		Poster:  p,
		Counter: c,
	})
}

// Monday 2026-03-02 13:00 is a peak slot; 15:00 is not.
var inWindow = time.Date(2026, time.March, 2, 13, 0, 0, 0, time.UTC)
var outOfWindow = time.Date(2026, time.March, 2, 15, 0, 0, 0, time.UTC)

func viableRunner() *fakeRunner {
	return &fakeRunner{
		unposted: &store.Series{ID: "s1", BaseSubject: "a lighthouse", BaseEnvironment: "in fog"},
		artifacts: []store.Artifact{
			{File: "/art/s1_S1.png", Components: map[string]string{"style": "oil", "mood": "calm"}},
			{File: "/art/s1_S2.png", Components: map[string]string{"style": "ink", "mood": "tense"}},
		},
	}
}

func TestRunPostCycle_PostsInsideWindow(t *testing.T) {
	runner := viableRunner()
	p := &fakePoster{}
	s := testScheduler(runner, p, &fakeCounter{})
	s.now = func() time.Time { return inWindow }

	s.runPostCycle(context.Background())

	require.Len(t, p.posts, 1)
	assert.Equal(t, []string{"/art/s1_S1.png", "/art/s1_S2.png"}, p.posts[0].Files)
	assert.Contains(t, p.posts[0].Caption, "A lighthouse, in fog.")
	assert.Equal(t, "s1", runner.markedID)
	assert.Equal(t, "https://instagram.com/p/new", runner.markedURL)
}

func TestRunPostCycle_SkipsOutsideWindow(t *testing.T) {
	runner := viableRunner()
	p := &fakePoster{}
	s := testScheduler(runner, p, &fakeCounter{})
	s.now = func() time.Time { return outOfWindow }

	s.runPostCycle(context.Background())

	assert.Empty(t, p.posts)
	assert.Empty(t, runner.markedID)
}

func TestRunPostCycle_RespectsDailyCap(t *testing.T) {
	runner := viableRunner()
	p := &fakePoster{}
	s := testScheduler(runner, p, &fakeCounter{posted: 3})
	s.now = func() time.Time { return inWindow }

	s.runPostCycle(context.Background())

	assert.Empty(t, p.posts)
}

func TestRunPostCycle_NothingToPost(t *testing.T) {
	runner := &fakeRunner{pickErr: store.ErrNoUnposted}
	p := &fakePoster{}
	s := testScheduler(runner, p, &fakeCounter{})
	s.now = func() time.Time { return inWindow }

	s.runPostCycle(context.Background())

	assert.Empty(t, p.posts)
	assert.True(t, s.Health().Healthy(), "empty queue is not a failure")
}

func TestRunSeriesCycle(t *testing.T) {
	runner := viableRunner()
	s := testScheduler(runner, &fakePoster{}, &fakeCounter{})

	s.runSeriesCycle(context.Background())

	assert.Equal(t, 1, runner.runsStarted)
	status, ok := s.Health().Status("series")
	require.True(t, ok)
	assert.True(t, status.Healthy)
}
