package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"

	"github.com/gageg/artforge/internal/browser"
)

// maxPromptRunes caps what gets typed into a site's input. Every site
// truncates long prompts anyway; cutting client-side keeps the tail from
// being swallowed mid-word by the site.
const maxPromptRunes = 480

// findImageJS scans the page for a generated image. It prefers any 512px+
// image whose src matches one of the site's CDN hints and falls back to the
// largest 512px+ image that isn't obviously chrome (avatars, logos).
const findImageJS = `(hints) => {
	var imgs = document.querySelectorAll('img');
	var fallback = null;
	for (var i = 0; i < imgs.length; i++) {
		var src = imgs[i].src || '';
		var w = imgs[i].naturalWidth;
		var h = imgs[i].naturalHeight;
		if (w < 512 || h < 512) continue;
		if (/profile|avatar|logo|icon|spinner/i.test(src)) continue;
		for (var j = 0; j < hints.length; j++) {
			if (src.indexOf(hints[j]) !== -1) return {src: src, w: w, h: h};
		}
		if (!fallback || w > fallback.w) fallback = {src: src, w: w, h: h};
	}
	return fallback;
}`

// WebProvider drives one generation site through the shared browser
// session. Sites differ only in their Site config: where to navigate, which
// selectors might hold the prompt input and submit button, and which CDN
// domains the output lands on. Selector lists are strategies tried in
// order, not pinned DOM paths.
type WebProvider struct {
	site    Site
	session *browser.Session
}

// NewWeb creates a provider for the given site over an open session.
func NewWeb(site Site, session *browser.Session) *WebProvider {
	return &WebProvider{site: site, session: session}
}

func (p *WebProvider) Name() string    { return p.site.Name }
func (p *WebProvider) Referer() string { return p.site.URL }

// Generate opens the site, types the prompt, submits, and polls for the
// generated image until the site's poll budget runs out.
func (p *WebProvider) Generate(ctx context.Context, prompt string) (*Result, error) {
	if p.session == nil {
		return nil, &Error{Provider: p.site.Name, Kind: KindSession, Err: fmt.Errorf("no browser session")}
	}

	page, err := p.session.Open(ctx, p.site.URL)
	if err != nil {
		return nil, &Error{Provider: p.site.Name, Kind: KindNetwork, Err: err}
	}
	defer page.Close()

	// Heavy client-side apps need a beat before their inputs exist.
	if err := sleep(ctx, p.site.Settle); err != nil {
		return nil, &Error{Provider: p.site.Name, Kind: KindTimeout, Err: err}
	}

	text := prompt
	if r := []rune(text); len(r) > maxPromptRunes {
		text = string(r[:maxPromptRunes])
	}
	if p.site.PromptPrefix != "" {
		text = p.site.PromptPrefix + text
	}

	el, err := firstElement(ctx, page, p.site.PromptSelectors)
	if err != nil {
		return nil, &Error{Provider: p.site.Name, Kind: KindElementNotFound, Err: fmt.Errorf("prompt input: %w", err)}
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err == nil {
		_ = sleep(ctx, 500*time.Millisecond)
	}
	if err := el.Input(text); err != nil {
		return nil, &Error{Provider: p.site.Name, Kind: KindElementNotFound, Err: fmt.Errorf("type prompt: %w", err)}
	}

	if btn, err := firstElement(ctx, page, p.site.SubmitSelectors); err == nil {
		if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return nil, &Error{Provider: p.site.Name, Kind: KindElementNotFound, Err: fmt.Errorf("click submit: %w", err)}
		}
	} else {
		// No dedicated button, Enter submits on chat-style sites.
		if err := el.Type(input.Enter); err != nil {
			return nil, &Error{Provider: p.site.Name, Kind: KindElementNotFound, Err: fmt.Errorf("submit: %w", err)}
		}
	}
	slog.Info("prompt submitted", "provider", p.site.Name)

	if err := sleep(ctx, p.site.Warmup); err != nil {
		return nil, &Error{Provider: p.site.Name, Kind: KindTimeout, Err: err}
	}

	url, err := p.pollForImage(ctx, page)
	if err != nil {
		return nil, err
	}
	return &Result{URL: url, Referer: p.site.URL}, nil
}

// pollForImage runs the image scan every few seconds until the poll budget
// is spent.
func (p *WebProvider) pollForImage(ctx context.Context, page *rod.Page) (string, error) {
	deadline := time.Now().Add(p.site.PollBudget)
	for time.Now().Before(deadline) {
		res, err := page.Context(ctx).Evaluate(&rod.EvalOptions{
			JS:      findImageJS,
			JSArgs:  []interface{}{p.site.CDNHints},
			ByValue: true,
		})
		if err == nil && res != nil {
			raw, jerr := res.Value.MarshalJSON()
			if jerr == nil && string(raw) != "null" {
				var img struct {
					Src string `json:"src"`
					W   int    `json:"w"`
					H   int    `json:"h"`
				}
				if json.Unmarshal(raw, &img) == nil && img.Src != "" {
					slog.Info("image detected", "provider", p.site.Name, "width", img.W, "height", img.H)
					return img.Src, nil
				}
			}
		}
		if err := sleep(ctx, 4*time.Second); err != nil {
			return "", &Error{Provider: p.site.Name, Kind: KindTimeout, Err: err}
		}
	}
	return "", &Error{Provider: p.site.Name, Kind: KindTimeout, Err: fmt.Errorf("no image within %s", p.site.PollBudget)}
}

// firstElement tries each selector in order with a short per-selector
// timeout and returns the first match.
func firstElement(ctx context.Context, page *rod.Page, selectors []string) (*rod.Element, error) {
	for _, sel := range selectors {
		el, err := page.Context(ctx).Timeout(4 * time.Second).Element(sel)
		if err == nil && el != nil {
			return el, nil
		}
	}
	return nil, fmt.Errorf("no selector matched out of %d", len(selectors))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
