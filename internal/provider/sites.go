package provider

import (
	"fmt"
	"time"

	"github.com/gageg/artforge/internal/browser"
)

// Site describes one generation source declaratively. Selector slices are
// ordered fallback strategies so a site redesign usually costs one new
// entry rather than a code change.
type Site struct {
	Name string
	URL  string

	// PromptSelectors locate the prompt input. Tried in order.
	PromptSelectors []string

	// SubmitSelectors locate the generate button. Empty or unmatched means
	// Enter is pressed in the prompt input instead.
	SubmitSelectors []string

	// PromptPrefix is prepended to the prompt. Chat-style sites need an
	// explicit instruction to produce an image rather than prose.
	PromptPrefix string

	// CDNHints are substrings the generated image's URL should contain.
	CDNHints []string

	// Settle is the wait after navigation before touching the page.
	// Warmup is the wait after submit before polling starts. PollBudget
	// bounds the poll phase.
	Settle     time.Duration
	Warmup     time.Duration
	PollBudget time.Duration
}

// Sites lists every configured generation source, in rotation order.
var Sites = []Site{
	{
		Name: "grok",
		URL:  "https://grok.com",
		PromptSelectors: []string{
			`textarea[placeholder*="Grok" i]`,
			`textarea[aria-label*="Ask" i]`,
			`div[contenteditable="true"]`,
			`textarea`,
		},
		PromptPrefix: "Generate an image: ",
		CDNHints:     []string{"grokusercontent", "assets.grok.com", "blob:", "pbs.twimg"},
		Settle:       6 * time.Second,
		Warmup:       15 * time.Second,
		PollBudget:   165 * time.Second,
	},
	{
		Name: "leonardo",
		URL:  "https://app.leonardo.ai/ai-generations",
		PromptSelectors: []string{
			`textarea[placeholder*="Type a prompt" i]`,
			`textarea[placeholder*="prompt" i]`,
			`textarea`,
		},
		SubmitSelectors: []string{
			`button[aria-label*="Generate" i]`,
			`button[data-testid*="generate"]`,
		},
		CDNHints:   []string{"cdn.leonardo.ai", "production.leonardo.ai", "storage.googleapis.com"},
		Settle:     8 * time.Second,
		Warmup:     12 * time.Second,
		PollBudget: 108 * time.Second,
	},
	{
		Name: "firefly",
		URL:  "https://firefly.adobe.com/generate/images",
		PromptSelectors: []string{
			`textarea[placeholder*="Describe" i]`,
			`textarea[placeholder*="image" i]`,
			`textarea`,
			`div[contenteditable="true"]`,
		},
		SubmitSelectors: []string{
			`button[data-testid*="generate" i]`,
			`button[aria-label*="Generate" i]`,
		},
		CDNHints:   []string{"firefly.adobe.com", "ffoutput", "adobeproductimages", "firefly-prod"},
		Settle:     6 * time.Second,
		Warmup:     10 * time.Second,
		PollBudget: 80 * time.Second,
	},
	{
		Name: "easemate",
		URL:  "https://www.easemate.ai/ai-image-generator",
		PromptSelectors: []string{
			`textarea[placeholder*="Prompt" i]`,
			`textarea[placeholder*="Describe" i]`,
			`textarea[placeholder*="Enter" i]`,
			`textarea`,
			`div[contenteditable="true"]`,
			`input[placeholder*="prompt" i]`,
		},
		SubmitSelectors: []string{
			`button[type="submit"]`,
			`button[aria-label*="Generate" i]`,
		},
		CDNHints:   []string{"easemate.ai", "easemate", "cdn.", "storage.", "output", "result"},
		Settle:     6 * time.Second,
		Warmup:     12 * time.Second,
		PollBudget: 108 * time.Second,
	},
	{
		Name: "chatgpt",
		URL:  "https://chatgpt.com/",
		PromptSelectors: []string{
			`#prompt-textarea`,
			`div[contenteditable="true"][data-lexical-editor]`,
			`div[contenteditable="true"]`,
			`textarea[placeholder*="Message" i]`,
		},
		PromptPrefix: "Generate an image: ",
		CDNHints:     []string{"oaiusercontent", "files.oaiusercontent.com", "blob:"},
		Settle:       6 * time.Second,
		Warmup:       20 * time.Second,
		PollBudget:   160 * time.Second,
	},
	{
		Name: "raphael",
		URL:  "https://raphael.app/",
		PromptSelectors: []string{
			`textarea[placeholder*="describe" i]`,
			`textarea[placeholder*="prompt" i]`,
			`textarea`,
		},
		SubmitSelectors: []string{
			`button[type="submit"]`,
			`button[aria-label*="Generate" i]`,
		},
		CDNHints:   []string{"raphael", "cdn.", "storage.", "output"},
		Settle:     5 * time.Second,
		Warmup:     10 * time.Second,
		PollBudget: 90 * time.Second,
	},
	{
		Name: "gemini",
		URL:  "https://gemini.google.com/",
		PromptSelectors: []string{
			`div[contenteditable="true"][aria-label*="prompt" i]`,
			`rich-textarea div[contenteditable="true"]`,
			`div[contenteditable="true"]`,
		},
		PromptPrefix: "Generate an image: ",
		CDNHints:     []string{"googleusercontent.com", "gstatic.com/gemini", "blob:"},
		Settle:       6 * time.Second,
		Warmup:       15 * time.Second,
		PollBudget:   120 * time.Second,
	},
}

// SiteByName looks a site config up by its short name.
func SiteByName(name string) (Site, error) {
	for _, s := range Sites {
		if s.Name == name {
			return s, nil
		}
	}
	return Site{}, fmt.Errorf("unknown provider %q", name)
}

// FromSession builds one WebProvider per configured site over a shared
// browser session.
func FromSession(session *browser.Session) []Provider {
	providers := make([]Provider, 0, len(Sites))
	for _, site := range Sites {
		providers = append(providers, NewWeb(site, session))
	}
	return providers
}
