// Package provider abstracts the image-generation sites behind a single
// Generate interface so the series orchestrator can fan a prompt batch out
// across sources without knowing how each site works.
package provider

import (
	"context"
	"fmt"
)

// Kind classifies provider failures so the orchestrator can log them
// uniformly and decide nothing beyond "this variant produced no image".
type Kind string

const (
	// KindElementNotFound means a required page element (prompt input,
	// submit button) never appeared.
	KindElementNotFound Kind = "element-not-found"

	// KindTimeout means the site accepted the prompt but no image appeared
	// within the poll budget.
	KindTimeout Kind = "timeout"

	// KindNetwork covers navigation and download failures.
	KindNetwork Kind = "network"

	// KindSession means the browser session itself is unusable.
	KindSession Kind = "session"
)

// Error is a classified provider failure.
type Error struct {
	Provider string
	Kind     Kind
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Result is a successful generation: a URL the caller can download the
// image from, plus the referer the download request should carry.
type Result struct {
	URL     string
	Referer string
}

// Provider submits a prompt to one generation site and resolves the
// generated image's URL.
type Provider interface {
	// Name is the short source identifier used in filenames and logs.
	Name() string

	// Referer is the site URL downloads should present as referer.
	Referer() string

	// Generate submits the prompt and waits for an image. Failures are
	// returned as *Error with a Kind.
	Generate(ctx context.Context, prompt string) (*Result, error)
}
