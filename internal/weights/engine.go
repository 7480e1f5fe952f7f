// Package weights converts the engagement ledger into per-value sampling
// weights for the prompt composer.
package weights

import (
	"sort"

	"github.com/gageg/artforge/internal/engagement"
)

const (
	// Neutral is the weight for catalog values with no engagement data.
	// It sits between the floor and ceiling so unseen values are never
	// penalized relative to measured ones.
	Neutral = 1.0

	defaultMinRecords    = 5
	defaultRecencyWindow = 10
	defaultRecencyDecay  = 0.5
	defaultFloor         = 0.4
	defaultCeiling       = 1.8
)

// Engine computes sampling weights. The zero value is not usable; call New.
//
// Invariants the engine guarantees, regardless of ledger contents:
//   - every weight lies in [Floor, Ceiling] or equals Neutral
//   - no weight is ever zero or negative, so no catalog value can be
//     starved out of the sampler
//   - below MinRecords the whole catalog is uniform at Neutral
type Engine struct {
	// MinRecords is the cold-start threshold: with fewer ledger records
	// than this, every value gets the neutral weight.
	MinRecords int

	// RecencyWindow is how many of the most recent records count at full
	// weight; older records are multiplied by RecencyDecay.
	RecencyWindow int
	RecencyDecay  float64

	// Floor and Ceiling bound the weight of values that have data.
	Floor   float64
	Ceiling float64
}

// New returns an engine with the tuned defaults: 4.5x spread between the
// worst and best performing values, nothing eliminated.
func New() Engine {
	return Engine{
		MinRecords:    defaultMinRecords,
		RecencyWindow: defaultRecencyWindow,
		RecencyDecay:  defaultRecencyDecay,
		Floor:         defaultFloor,
		Ceiling:       defaultCeiling,
	}
}

// Weights returns one weight per catalog value for the given slot.
func (e Engine) Weights(ledger *engagement.Ledger, slot string, catalog []string) []float64 {
	uniform := func() []float64 {
		w := make([]float64, len(catalog))
		for i := range w {
			w[i] = Neutral
		}
		return w
	}

	if ledger == nil || len(ledger.Posts) < e.MinRecords {
		return uniform()
	}

	// Order records chronologically by scrape time to locate the recency
	// window.
	type entry struct {
		name string
		rec  engagement.Record
	}
	entries := make([]entry, 0, len(ledger.Posts))
	for name, rec := range ledger.Posts {
		entries = append(entries, entry{name: name, rec: rec})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].rec.ScrapedAt.Equal(entries[j].rec.ScrapedAt) {
			return entries[i].rec.ScrapedAt.Before(entries[j].rec.ScrapedAt)
		}
		return entries[i].name < entries[j].name
	})

	recentStart := len(entries) - e.RecencyWindow
	if recentStart < 0 {
		recentStart = 0
	}

	// Average the recency-weighted scores per component value.
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i, en := range entries {
		value, ok := en.rec.Components[slot]
		if !ok || value == "" {
			continue
		}
		multiplier := e.RecencyDecay
		if i >= recentStart {
			multiplier = 1.0
		}
		sums[value] += float64(en.rec.Score()) * multiplier
		counts[value]++
	}
	if len(sums) == 0 {
		return uniform()
	}

	averages := make(map[string]float64, len(sums))
	minScore, maxScore := 0.0, 0.0
	first := true
	for value, sum := range sums {
		avg := sum / float64(counts[value])
		averages[value] = avg
		if first {
			minScore, maxScore = avg, avg
			first = false
		} else {
			if avg < minScore {
				minScore = avg
			}
			if avg > maxScore {
				maxScore = avg
			}
		}
	}
	scoreRange := maxScore - minScore

	weights := make([]float64, len(catalog))
	for i, value := range catalog {
		avg, ok := averages[value]
		if !ok {
			weights[i] = Neutral
			continue
		}
		// Min-max normalize; with a single distinct score every measured
		// value lands on the midpoint.
		normalized := 0.5
		if scoreRange > 0 {
			normalized = (avg - minScore) / scoreRange
		}
		weights[i] = e.Floor + (e.Ceiling-e.Floor)*normalized
	}
	return weights
}

// AllWeights computes weights for several slots at once.
func (e Engine) AllWeights(ledger *engagement.Ledger, catalogs map[string][]string) map[string][]float64 {
	out := make(map[string][]float64, len(catalogs))
	for slot, catalog := range catalogs {
		out[slot] = e.Weights(ledger, slot, catalog)
	}
	return out
}
