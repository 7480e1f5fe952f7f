package weights

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gageg/artforge/internal/engagement"
)

func ledgerWith(records ...engagement.Record) *engagement.Ledger {
	l := engagement.NewLedger()
	for i, rec := range records {
		l.Put(fmt.Sprintf("img%02d.png", i), rec)
	}
	return l
}

func TestWeights_ColdStart(t *testing.T) {
	e := New()
	catalog := []string{"X", "Y", "Z"}

	// Empty ledger and nil ledger both return uniform neutral weights.
	assert.Equal(t, []float64{1, 1, 1}, e.Weights(engagement.NewLedger(), "style", catalog))
	assert.Equal(t, []float64{1, 1, 1}, e.Weights(nil, "style", catalog))

	// Just below the threshold is still cold.
	l := ledgerWith(
		engagement.Record{Likes: 100, Components: map[string]string{"style": "X"}},
		engagement.Record{Likes: 1, Components: map[string]string{"style": "Y"}},
		engagement.Record{Likes: 50, Components: map[string]string{"style": "X"}},
		engagement.Record{Likes: 5, Components: map[string]string{"style": "Y"}},
	)
	assert.Equal(t, []float64{1, 1, 1}, e.Weights(l, "style", catalog))
}

func TestWeights_EndpointsAtFloorAndCeiling(t *testing.T) {
	e := New()
	now := time.Now()

	// Six records, above the threshold of five: "X" always scores 100,
	// "Y" always scores 0, so min-max normalization puts them at the
	// interval endpoints.
	var records []engagement.Record
	for i := 0; i < 3; i++ {
		records = append(records,
			engagement.Record{Likes: 100, ScrapedAt: now.Add(time.Duration(i) * time.Minute), Components: map[string]string{"style": "X"}},
			engagement.Record{Likes: 0, ScrapedAt: now.Add(time.Duration(i) * time.Minute), Components: map[string]string{"style": "Y"}},
		)
	}
	l := ledgerWith(records...)

	w := e.Weights(l, "style", []string{"X", "Y"})
	assert.InDelta(t, e.Ceiling, w[0], 1e-9)
	assert.InDelta(t, e.Floor, w[1], 1e-9)
}

func TestWeights_UnseenValueStaysNeutral(t *testing.T) {
	e := New()
	now := time.Now()

	var records []engagement.Record
	for i := 0; i < 6; i++ {
		style := "X"
		likes := 100
		if i%2 == 1 {
			style, likes = "Y", 0
		}
		records = append(records, engagement.Record{
			Likes:      likes,
			ScrapedAt:  now.Add(time.Duration(i) * time.Minute),
			Components: map[string]string{"style": style},
		})
	}
	l := ledgerWith(records...)

	w := e.Weights(l, "style", []string{"X", "Y", "never-used"})
	assert.Equal(t, Neutral, w[2])
}

func TestWeights_BoundsAlwaysHold(t *testing.T) {
	e := New()
	now := time.Now()

	var records []engagement.Record
	for i := 0; i < 25; i++ {
		records = append(records, engagement.Record{
			Likes:      i * 37 % 211,
			Comments:   i % 7,
			ScrapedAt:  now.Add(time.Duration(i) * time.Hour),
			Components: map[string]string{"mood": fmt.Sprintf("m%d", i%5)},
		})
	}
	l := ledgerWith(records...)

	catalog := []string{"m0", "m1", "m2", "m3", "m4", "m5", "m6"}
	for _, w := range e.Weights(l, "mood", catalog) {
		assert.Positive(t, w)
		ok := w == Neutral || (w >= e.Floor-1e-9 && w <= e.Ceiling+1e-9)
		assert.True(t, ok, "weight %v outside [floor, ceiling] and not neutral", w)
	}
}

func TestWeights_SingleValueNormalizesToMidpoint(t *testing.T) {
	e := New()
	now := time.Now()

	var records []engagement.Record
	for i := 0; i < 6; i++ {
		records = append(records, engagement.Record{
			Likes:      40,
			ScrapedAt:  now.Add(time.Duration(i) * time.Minute),
			Components: map[string]string{"style": "X"},
		})
	}
	l := ledgerWith(records...)

	w := e.Weights(l, "style", []string{"X", "Y"})
	mid := e.Floor + (e.Ceiling-e.Floor)*0.5
	assert.InDelta(t, mid, w[0], 1e-9)
	assert.Equal(t, Neutral, w[1])
}

func TestWeights_RecencyDecayDiscountsOldRecords(t *testing.T) {
	e := New()
	e.RecencyWindow = 5
	now := time.Now()

	// "old" scored huge but long ago; "new" scored modestly but recently.
	// With decay 0.5 the old average is halved: 200*0.5=100 vs 80.
	var records []engagement.Record
	for i := 0; i < 5; i++ {
		records = append(records, engagement.Record{
			Likes:      200,
			ScrapedAt:  now.Add(time.Duration(i-10) * time.Hour),
			Components: map[string]string{"style": "old"},
		})
	}
	for i := 0; i < 5; i++ {
		records = append(records, engagement.Record{
			Likes:      80,
			ScrapedAt:  now.Add(time.Duration(i) * time.Hour),
			Components: map[string]string{"style": "new"},
		})
	}
	l := ledgerWith(records...)

	w := e.Weights(l, "style", []string{"old", "new"})
	require.Len(t, w, 2)
	assert.Greater(t, w[0], w[1], "decayed 100 should still beat 80")
	// Without decay "old" would be at the ceiling and "new" at the floor;
	// decay narrows the gap but cannot invert it here.
	assert.InDelta(t, e.Ceiling, w[0], 1e-9)
	assert.InDelta(t, e.Floor, w[1], 1e-9)
}

func TestAllWeights(t *testing.T) {
	e := New()
	out := e.AllWeights(engagement.NewLedger(), map[string][]string{
		"style": {"a", "b"},
		"mood":  {"c"},
	})
	assert.Equal(t, []float64{1, 1}, out["style"])
	assert.Equal(t, []float64{1}, out["mood"])
}
