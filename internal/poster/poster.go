// Package poster publishes finished series to a social platform and owns
// the editorial layer: captions, hashtags, and posting windows.
package poster

import (
	"context"
)

// Content is a carousel post: image files in order plus the caption.
type Content struct {
	Files   []string
	Caption string
}

// Result represents the result of a post.
type Result struct {
	PostURL string
}

// Poster is the interface for posting to social media platforms.
type Poster interface {
	// Platform returns the name of the platform.
	Platform() string

	// Post publishes content to the platform.
	Post(ctx context.Context, content Content) (*Result, error)

	// ValidateLogin checks the stored browser session is still signed in.
	ValidateLogin(ctx context.Context) error
}
