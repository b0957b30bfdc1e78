package menuboard

import (
	"context"
	"time"
)

// RenderOptions controls how a Browser waits for a page before returning it.
// Zero values disable the corresponding step.
type RenderOptions struct {
	// WaitSelector must match an element before the page is returned.
	// Render returns ENOTFOUND if it does not appear within WaitTimeout.
	WaitSelector string
	WaitTimeout  time.Duration

	// LoadMoreSelector is clicked repeatedly until it stops appearing
	// within LoadMoreTimeout, pausing LoadMoreInterval after each click.
	// Disappearance of the control is the normal end of the loop.
	LoadMoreSelector string
	LoadMoreTimeout  time.Duration
	LoadMoreInterval time.Duration
	MaxLoadMore      int

	// Settle is a fixed pause after loading, for pages that keep rendering.
	Settle time.Duration
}

// Browser retrieves HTML from pages that need JavaScript to render.
type Browser interface {
	// Render navigates to the URL, waits as described by opts, and returns
	// the rendered HTML. The context controls timeout and cancellation.
	Render(ctx context.Context, url string, opts RenderOptions) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Browser is no longer needed.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
