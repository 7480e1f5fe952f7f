// Package composer assembles prompts from the lexicon catalogs using
// engagement-weighted random sampling with repeat avoidance.
package composer

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gageg/artforge/internal/history"
	"github.com/gageg/artforge/internal/lexicon"
)

// maxAttempts bounds the search for a fresh (subject, style) pair. Past the
// bound the last sampled pair is accepted so composition never blocks.
const maxAttempts = 30

// Variant is one fully resolved set of slot choices forming one prompt.
// Immutable once composed.
type Variant struct {
	Subject     string
	Environment string
	Style       string
	Mood        string
	Palette     string
	Closer      string

	SeriesID    string
	SeriesIndex int
	SeriesTotal int
}

// Prompt assembles the final prompt text from the variant's components.
func (v Variant) Prompt() string {
	return fmt.Sprintf("%s, %s. %s, %s. %s. %s",
		capitalize(v.Subject), v.Environment,
		capitalize(v.Style), v.Palette,
		capitalize(v.Mood), v.Closer,
	)
}

// Components returns the slot→value mapping for provenance records.
func (v Variant) Components() map[string]string {
	return map[string]string{
		lexicon.SlotSubject:     v.Subject,
		lexicon.SlotEnvironment: v.Environment,
		lexicon.SlotStyle:       v.Style,
		lexicon.SlotMood:        v.Mood,
		lexicon.SlotPalette:     v.Palette,
		lexicon.SlotCloser:      v.Closer,
	}
}

// Composer samples variants. Catalogs are assumed non-empty (lexicon
// contract); weights are optional per slot and fall back to uniform.
type Composer struct {
	catalogs map[string][]string
	history  *history.Tracker
	weights  map[string][]float64
	rng      *rand.Rand
}

// Config holds composer construction options.
type Config struct {
	// Catalogs defaults to lexicon.All().
	Catalogs map[string][]string

	// History is the duplicate-avoidance window. Required.
	History *history.Tracker

	// Weights maps slot name to per-value weights aligned with the
	// catalog. Missing or mismatched slots sample uniformly.
	Weights map[string][]float64

	// Seed fixes the random source; zero seeds from the clock.
	Seed int64
}

// New creates a composer.
func New(cfg Config) *Composer {
	catalogs := cfg.Catalogs
	if catalogs == nil {
		catalogs = lexicon.All()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Composer{
		catalogs: catalogs,
		history:  cfg.History,
		weights:  cfg.Weights,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// ComposeSingle samples one variant, avoiding (subject, style) pairs in the
// recent history. The pair is recorded into history before returning.
func (c *Composer) ComposeSingle() Variant {
	var subject, style string
	for i := 0; i < maxAttempts; i++ {
		subject = c.pick(lexicon.SlotSubject)
		style = c.pick(lexicon.SlotStyle)
		if !c.history.Contains(subject, style) {
			break
		}
	}

	v := Variant{
		Subject:     subject,
		Environment: c.pick(lexicon.SlotEnvironment),
		Style:       style,
		Mood:        c.pick(lexicon.SlotMood),
		Palette:     c.pick(lexicon.SlotPalette),
		Closer:      c.pick(lexicon.SlotCloser),
	}
	c.history.Record(subject, style)
	return v
}

// PickBase samples the shared subject and environment for a series.
func (c *Composer) PickBase() (subject, environment string) {
	return c.pick(lexicon.SlotSubject), c.pick(lexicon.SlotEnvironment)
}

// ComposeSeries builds n variants sharing the given subject and environment.
// Styles and moods are sampled without replacement so every variant in the
// series reads differently; if n exceeds a catalog the pool resets and
// repeats become possible. Palette and closer sample independently. Every
// variant is recorded into history.
func (c *Composer) ComposeSeries(baseSubject, baseEnv string, n int) []Variant {
	usedStyles := make(map[string]bool)
	usedMoods := make(map[string]bool)

	variants := make([]Variant, 0, n)
	for i := 0; i < n; i++ {
		style := c.pickExcluding(lexicon.SlotStyle, usedStyles)
		usedStyles[style] = true

		mood := c.pickExcluding(lexicon.SlotMood, usedMoods)
		usedMoods[mood] = true

		v := Variant{
			Subject:     baseSubject,
			Environment: baseEnv,
			Style:       style,
			Mood:        mood,
			Palette:     c.pick(lexicon.SlotPalette),
			Closer:      c.pick(lexicon.SlotCloser),
		}
		variants = append(variants, v)
		c.history.Record(baseSubject, style)
	}
	return variants
}

// pick samples one value for a slot, weighted when weights are available.
func (c *Composer) pick(slot string) string {
	catalog := c.catalogs[slot]
	return weightedChoice(c.rng, catalog, c.weights[slot])
}

// pickExcluding samples from the catalog minus used values, keeping each
// value's weight. An exhausted pool falls back to the full catalog.
func (c *Composer) pickExcluding(slot string, used map[string]bool) string {
	catalog := c.catalogs[slot]
	weights := c.weights[slot]
	aligned := len(weights) == len(catalog)

	var pool []string
	var poolWeights []float64
	for i, v := range catalog {
		if used[v] {
			continue
		}
		pool = append(pool, v)
		if aligned {
			poolWeights = append(poolWeights, weights[i])
		}
	}
	if len(pool) == 0 {
		pool, poolWeights = catalog, nil
		if aligned {
			poolWeights = weights
		}
	}
	return weightedChoice(c.rng, pool, poolWeights)
}

// weightedChoice picks an item proportionally to its weight. Absent or
// mismatched weights, or a non-positive total, fall back to uniform.
func weightedChoice(rng *rand.Rand, items []string, weights []float64) string {
	if len(weights) != len(items) {
		return items[rng.Intn(len(items))]
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return items[rng.Intn(len(items))]
	}

	r := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return items[i]
		}
	}
	return items[len(items)-1]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
