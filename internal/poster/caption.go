package poster

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gageg/artforge/internal/composer"
	"github.com/gageg/artforge/internal/lexicon"
	"github.com/gageg/artforge/internal/store"
)

// BuildSeriesCaption assembles the carousel caption:
//
//	February 24, 2026 at 12:00 PM
//
//	A scholar translating manuscripts, at the edge of a sheer cliff.
//
//	  ↗ Baroque impasto oils · Profound melancholy
//	  ↗ Art Nouveau poster · Ancient forgotten wonder
//
//	#digitalart #surrealism ...
func BuildSeriesCaption(rng *rand.Rand, series store.Series, artifacts []store.Artifact, now time.Time) string {
	header := fmt.Sprintf("%s at %s", formatDate(now), formatClock(now))
	subjectLine := fmt.Sprintf("%s, %s.", capitalize(series.BaseSubject), series.BaseEnvironment)

	var lines []string
	var tagText []string
	for _, a := range artifacts {
		style := a.Components[lexicon.SlotStyle]
		mood := a.Components[lexicon.SlotMood]
		lines = append(lines, fmt.Sprintf("  ↗ %s · %s",
			composer.ShortenDescriptor(style), composer.ShortenDescriptor(mood)))
		tagText = append(tagText, style, mood)
	}

	fullText := series.BaseSubject + " " + series.BaseEnvironment + " " + strings.Join(tagText, " ")
	hashtags := Hashtags(rng, fullText)

	return header + "\n\n" +
		subjectLine + "\n\n" +
		strings.Join(lines, "\n") + "\n\n" +
		hashtags
}

// BuildSingleCaption assembles the caption for a one-image post.
func BuildSingleCaption(rng *rand.Rand, prompt string, generatedAt time.Time) string {
	return fmt.Sprintf("%s at %s\n\n%s\n\n%s",
		formatDate(generatedAt), formatClock(generatedAt), prompt, Hashtags(rng, prompt))
}

// formatDate renders "February 24, 2026".
func formatDate(t time.Time) string {
	return fmt.Sprintf("%s %d, %d", t.Month(), t.Day(), t.Year())
}

// formatClock renders "12:10 PM" without a leading zero on the hour.
func formatClock(t time.Time) string {
	return t.Format("3:04 PM")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
