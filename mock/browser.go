package mock

import (
	"context"

	"github.com/fwojciec/menuboard"
)

var _ menuboard.Browser = (*Browser)(nil)

// Browser is a mock implementation of menuboard.Browser.
type Browser struct {
	RenderFn func(ctx context.Context, url string, opts menuboard.RenderOptions) (string, error)
	CloseFn  func() error
}

func (b *Browser) Render(ctx context.Context, url string, opts menuboard.RenderOptions) (string, error) {
	return b.RenderFn(ctx, url, opts)
}

func (b *Browser) Close() error {
	return b.CloseFn()
}

var _ menuboard.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of menuboard.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
