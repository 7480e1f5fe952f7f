// Package browser owns the exclusive Chrome automation session.
//
// The session is a stateful, non-reentrant resource: one profile, one
// window. Nothing in this repo runs two sessions at once: provider calls,
// posting and engagement scraping all borrow it sequentially.
package browser

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Config holds launch settings for the automation browser.
type Config struct {
	// ProfileDir is the persistent user-data directory. Login sessions for
	// the generation sites and the posting platform live here.
	ProfileDir string

	// Headless runs Chrome without a window. Most generation sites block
	// headless user agents, so this defaults to false.
	Headless bool

	// NavigationTimeout bounds page loads. Zero means 30s.
	NavigationTimeout time.Duration
}

func (c Config) navigationTimeout() time.Duration {
	if c.NavigationTimeout == 0 {
		return 30 * time.Second
	}
	return c.NavigationTimeout
}

// Session wraps a connected browser. Close releases the underlying Chrome
// process; callers must close on every exit path.
type Session struct {
	cfg     Config
	browser *rod.Browser
}

// NewSession launches Chrome and connects to it.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Set("disable-blink-features", "AutomationControlled").
		Set("no-first-run").
		Set("no-default-browser-check").
		Set("disable-extensions").
		Set("window-size", "1400,960")

	if cfg.ProfileDir != "" {
		l = l.UserDataDir(cfg.ProfileDir)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	return &Session{cfg: cfg, browser: b}, nil
}

// Open navigates a new page to url and waits for the load event.
func (s *Session) Open(ctx context.Context, url string) (*rod.Page, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}

	// Mask the webdriver flag before any site script runs.
	_, _ = proto.PageAddScriptToEvaluateOnNewDocument{
		Source: "Object.defineProperty(navigator,'webdriver',{get:()=>undefined})",
	}.Call(page)

	if err := page.Context(ctx).Timeout(s.cfg.navigationTimeout()).Navigate(url); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}
	_ = page.Context(ctx).Timeout(s.cfg.navigationTimeout()).WaitLoad()
	return page, nil
}

// Cookies exports the browser's cookies as an http.Cookie slice so image
// downloads against authenticated CDN URLs can reuse the login session.
func (s *Session) Cookies() ([]*http.Cookie, error) {
	raw, err := s.browser.GetCookies()
	if err != nil {
		return nil, fmt.Errorf("get cookies: %w", err)
	}
	cookies := make([]*http.Cookie, 0, len(raw))
	for _, c := range raw {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Domain: c.Domain, Path: c.Path})
	}
	return cookies, nil
}

// UserAgent returns the browser's user agent string.
func (s *Session) UserAgent() string {
	version, err := s.browser.Version()
	if err != nil || version.UserAgent == "" {
		return "Mozilla/5.0"
	}
	return version.UserAgent
}

// Close shuts the browser down. Safe to call on a nil session.
func (s *Session) Close() error {
	if s == nil || s.browser == nil {
		return nil
	}
	return s.browser.Close()
}
