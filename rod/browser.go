// Package rod renders JavaScript-driven menu pages with headless Chrome.
package rod

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/menuboard"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Browser implements menuboard.Browser at compile time.
var _ menuboard.Browser = (*Browser)(nil)

// Render defaults applied when RenderOptions leaves a duration unset.
const (
	DefaultWaitTimeout      = 10 * time.Second
	DefaultLoadMoreTimeout  = 2 * time.Second
	DefaultLoadMoreInterval = time.Second
	DefaultMaxLoadMore      = 100
)

// Browser renders pages in tabs of a managed headless Chrome.
// Browser is safe for concurrent use by multiple goroutines.
type Browser struct {
	manager *BrowserManager
}

// NewBrowser launches headless Chrome configured by opts.
// Close must be called when the Browser is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewBrowser(opts ...ManagerOption) (*Browser, error) {
	manager, err := NewBrowserManager(opts...)
	if err != nil {
		return nil, err
	}
	return &Browser{manager: manager}, nil
}

// Render navigates to the URL in a fresh tab, applies the waits in opts and
// returns the rendered HTML.
func (b *Browser) Render(ctx context.Context, url string, opts menuboard.RenderOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if b.manager.Closed() {
		return "", menuboard.Errorf(menuboard.EUNAVAILABLE, "browser is closed")
	}

	page, err := b.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening tab: %w", err)
	}
	defer page.Close()
	defer b.manager.IncrementPageCount()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if opts.WaitSelector != "" {
		if err := waitFor(ctx, page, opts.WaitSelector, durationOr(opts.WaitTimeout, DefaultWaitTimeout)); err != nil {
			return "", err
		}
	}

	if opts.LoadMoreSelector != "" {
		if _, err := loadMore(ctx, page, opts); err != nil {
			return "", err
		}
	}

	if err := sleep(ctx, opts.Settle); err != nil {
		return "", err
	}

	return page.HTML()
}

// Close releases browser resources.
func (b *Browser) Close() error {
	return b.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (b *Browser) LauncherPID() int {
	return b.manager.LauncherPID()
}

// waitFor blocks until selector matches or timeout elapses. An elapsed
// timeout is reported as ENOTFOUND; cancellation of ctx as ctx.Err().
func waitFor(ctx context.Context, page *rod.Page, selector string, timeout time.Duration) error {
	_, err := page.Timeout(timeout).Element(selector)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return menuboard.Errorf(menuboard.ENOTFOUND, "%q did not appear within %s", selector, timeout)
	}
	return err
}

// loadMore clicks the load-more control until it stops appearing within
// LoadMoreTimeout or MaxLoadMore clicks were made, and returns the number of
// clicks. The control not appearing is the normal end of the loop.
func loadMore(ctx context.Context, page *rod.Page, opts menuboard.RenderOptions) (int, error) {
	timeout := durationOr(opts.LoadMoreTimeout, DefaultLoadMoreTimeout)
	interval := durationOr(opts.LoadMoreInterval, DefaultLoadMoreInterval)
	limit := opts.MaxLoadMore
	if limit <= 0 {
		limit = DefaultMaxLoadMore
	}

	clicks := 0
	for clicks < limit {
		el, err := page.Timeout(timeout).Element(opts.LoadMoreSelector)
		if err != nil {
			if ctx.Err() != nil {
				return clicks, ctx.Err()
			}
			return clicks, nil
		}
		visible, err := el.Visible()
		if err != nil || !visible {
			return clicks, nil
		}
		if _, err := el.Eval(`() => this.click()`); err != nil {
			if ctx.Err() != nil {
				return clicks, ctx.Err()
			}
			return clicks, nil
		}
		clicks++
		if err := sleep(ctx, interval); err != nil {
			return clicks, err
		}
	}
	return clicks, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
