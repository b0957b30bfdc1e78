// Package slog provides logging decorators for menuboard services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/menuboard"
)

// Ensure LoggingBrowser implements menuboard.Browser.
var _ menuboard.Browser = (*LoggingBrowser)(nil)

// LoggingBrowser wraps a Browser with logging of each rendered page.
type LoggingBrowser struct {
	next   menuboard.Browser
	logger *slog.Logger
}

// NewLoggingBrowser creates a new LoggingBrowser.
func NewLoggingBrowser(next menuboard.Browser, logger *slog.Logger) *LoggingBrowser {
	return &LoggingBrowser{next: next, logger: logger}
}

// Render delegates to the wrapped browser and logs the operation.
func (b *LoggingBrowser) Render(ctx context.Context, url string, opts menuboard.RenderOptions) (html string, err error) {
	defer func(begin time.Time) {
		b.logger.Info("render",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.Render(ctx, url, opts)
}

// Close delegates to the wrapped browser.
func (b *LoggingBrowser) Close() error {
	return b.next.Close()
}
