package composer

import (
	"regexp"
	"strings"
)

// descriptorPrefixes are the lead-in phrases catalog entries open with.
// Stripping them turns "in the style of an Art Nouveau poster..." into
// "An Art Nouveau poster" for compact caption lines.
var descriptorPrefixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^in the (exact )?style of\s+`),
	regexp.MustCompile(`(?i)^in the manner of\s+`),
	regexp.MustCompile(`(?i)^painted (in|as|on|with)\s+`),
	regexp.MustCompile(`(?i)^rendered as\s+`),
	regexp.MustCompile(`(?i)^illustrated (as|with)\s+`),
	regexp.MustCompile(`(?i)^depicted as\s+`),
	regexp.MustCompile(`(?i)^composed as\s+`),
	regexp.MustCompile(`(?i)^created in\s+`),
	regexp.MustCompile(`(?i)^designed as\s+`),
	regexp.MustCompile(`(?i)^shot on\s+`),
	regexp.MustCompile(`(?i)^photographed (on|with|using|at)\s+`),
	regexp.MustCompile(`(?i)^captured (on|with)\s+`),
	regexp.MustCompile(`(?i)^taken with\s+`),
	regexp.MustCompile(`(?i)^drawn in\s+`),
	regexp.MustCompile(`(?i)^evoking\s+`),
	regexp.MustCompile(`(?i)^radiating\s+`),
	regexp.MustCompile(`(?i)^filled with\s+`),
	regexp.MustCompile(`(?i)^bursting with\s+`),
	regexp.MustCompile(`(?i)^heavy with\s+`),
	regexp.MustCompile(`(?i)^alive with\s+`),
	regexp.MustCompile(`(?i)^wrapped in\s+`),
	regexp.MustCompile(`(?i)^charged with\s+`),
	regexp.MustCompile(`(?i)^exuding\s+`),
	regexp.MustCompile(`(?i)^suffused with\s+`),
	regexp.MustCompile(`(?i)^humming with\s+`),
	regexp.MustCompile(`(?i)^carrying\s+`),
}

const shortDescriptorMax = 45

// ShortenDescriptor strips the lead-in phrase from a style or mood value and
// keeps the first clause, capitalized and capped at 45 runes.
func ShortenDescriptor(text string) string {
	stripped := strings.TrimSpace(text)
	for _, p := range descriptorPrefixes {
		stripped = strings.TrimSpace(p.ReplaceAllString(stripped, ""))
	}

	clause := stripped
	if idx := strings.IndexAny(clause, ",."); idx >= 0 {
		clause = clause[:idx]
	}
	clause = strings.TrimSpace(clause)

	r := []rune(clause)
	if len(r) > shortDescriptorMax {
		r = r[:shortDescriptorMax]
	}
	if len(r) == 0 {
		r = []rune(text)
		if len(r) > shortDescriptorMax {
			r = r[:shortDescriptorMax]
		}
		return string(r)
	}
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
