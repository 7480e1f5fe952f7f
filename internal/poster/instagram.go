package poster

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/gageg/artforge/internal/browser"
)

const instagramURL = "https://www.instagram.com/"

// Instagram posts carousels through the web UI over the shared browser
// session. Login is manual (the login command) and persists in the browser
// profile; this shim only drives the create-post flow.
type Instagram struct {
	session *browser.Session

	// settle paces the multi-step React flow. Overridable in tests.
	settle time.Duration
}

// NewInstagram creates the poster over an open session.
func NewInstagram(session *browser.Session) *Instagram {
	return &Instagram{session: session, settle: 5 * time.Second}
}

// Platform returns the name of the platform.
func (p *Instagram) Platform() string {
	return "instagram"
}

// ValidateLogin opens the home page and checks the profile is signed in.
func (p *Instagram) ValidateLogin(ctx context.Context) error {
	page, err := p.session.Open(ctx, instagramURL)
	if err != nil {
		return fmt.Errorf("open instagram: %w", err)
	}
	defer page.Close()

	if err := p.wait(ctx); err != nil {
		return err
	}

	// A visible login form means the stored session expired.
	if _, err := page.Context(ctx).Timeout(4 * time.Second).Element(`input[name="username"]`); err == nil {
		return fmt.Errorf("not logged in, run the login command")
	}
	if _, err := page.Context(ctx).Timeout(8 * time.Second).Element(`svg[aria-label="Home"]`); err != nil {
		return fmt.Errorf("home navigation not found, session state unclear: %w", err)
	}
	return nil
}

// Post uploads the files as one carousel with the caption and returns the
// resulting post URL when it can be determined.
func (p *Instagram) Post(ctx context.Context, content Content) (*Result, error) {
	if len(content.Files) == 0 {
		return nil, fmt.Errorf("no files to post")
	}

	page, err := p.session.Open(ctx, instagramURL)
	if err != nil {
		return nil, fmt.Errorf("open instagram: %w", err)
	}
	defer page.Close()

	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	if err := p.click(ctx, page, `svg[aria-label="New post"]`, `svg[aria-label="Create"]`); err != nil {
		return nil, fmt.Errorf("open create dialog: %w", err)
	}
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	input, err := page.Context(ctx).Timeout(10 * time.Second).Element(`input[type="file"]`)
	if err != nil {
		return nil, fmt.Errorf("file input not found: %w", err)
	}
	if err := input.SetFiles(content.Files); err != nil {
		return nil, fmt.Errorf("attach files: %w", err)
	}
	slog.Info("files attached", "count", len(content.Files))
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	// Crop step, then filter step.
	for i := 0; i < 2; i++ {
		if err := p.clickText(ctx, page, "Next"); err != nil {
			return nil, fmt.Errorf("advance past step %d: %w", i+1, err)
		}
		if err := p.wait(ctx); err != nil {
			return nil, err
		}
	}

	captionBox, err := page.Context(ctx).Timeout(10*time.Second).Element(`[aria-label="Write a caption..."]`)
	if err != nil {
		return nil, fmt.Errorf("caption box not found: %w", err)
	}
	if err := captionBox.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return nil, fmt.Errorf("focus caption box: %w", err)
	}
	if err := captionBox.Input(content.Caption); err != nil {
		return nil, fmt.Errorf("type caption: %w", err)
	}

	if err := p.clickText(ctx, page, "Share"); err != nil {
		return nil, fmt.Errorf("share: %w", err)
	}

	// Wait out the upload, then try to resolve the permalink.
	if err := sleepCtx(ctx, 15*time.Second); err != nil {
		return nil, err
	}
	url := p.resolvePostURL(ctx, page)
	slog.Info("carousel posted", "files", len(content.Files), "url", url)
	return &Result{PostURL: url}, nil
}

// resolvePostURL grabs the newest post's permalink from the profile feed.
// Best effort: an empty URL still counts as a successful post.
func (p *Instagram) resolvePostURL(ctx context.Context, page *rod.Page) string {
	res, err := page.Context(ctx).Timeout(10*time.Second).Evaluate(&rod.EvalOptions{
		JS: `() => {
			var a = document.querySelector('a[href*="/p/"]');
			return a ? a.href : "";
		}`,
		ByValue: true,
	})
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

func (p *Instagram) click(ctx context.Context, page *rod.Page, selectors ...string) error {
	for _, sel := range selectors {
		el, err := page.Context(ctx).Timeout(6 * time.Second).Element(sel)
		if err != nil {
			continue
		}
		// Icons sit inside the clickable ancestor.
		if parent, perr := el.Parent(); perr == nil {
			el = parent
		}
		return el.Click(proto.InputMouseButtonLeft, 1)
	}
	return fmt.Errorf("no selector matched out of %d", len(selectors))
}

func (p *Instagram) clickText(ctx context.Context, page *rod.Page, text string) error {
	el, err := page.Context(ctx).Timeout(10*time.Second).ElementR(`div[role="button"], button`, "^"+text+"$")
	if err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (p *Instagram) wait(ctx context.Context) error {
	return sleepCtx(ctx, p.settle)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
