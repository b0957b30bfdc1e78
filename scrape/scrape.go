// Package scrape collects brand menus from their websites.
// Scrapers drive a menuboard.Browser, parse pages with the goquery parsers
// and report per-item progress; Run persists whatever a scraper gathered.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fwojciec/menuboard"
)

// Result holds the outcome of scraping one brand.
type Result struct {
	Brand  menuboard.Brand
	Saved  int
	Failed int
}

// Run scrapes one brand and saves the collected records, replacing the
// brand's stored menu. Records are saved even when scraping stopped early;
// the scrape error is returned after saving.
func Run(ctx context.Context, s menuboard.Scraper, store menuboard.MenuStore, progress menuboard.ScrapeProgressFunc) (*Result, error) {
	res := &Result{Brand: s.Brand()}

	records, scrapeErr := s.Scrape(ctx, func(p menuboard.ScrapeProgress) {
		if p.Error != nil {
			res.Failed++
		}
		if progress != nil {
			progress(p)
		}
	})

	// Saving must survive the cancellation that may have stopped the scrape.
	if err := store.Save(context.WithoutCancel(ctx), s.Brand(), records); err != nil {
		return res, errors.Join(scrapeErr, fmt.Errorf("saving %s menu: %w", s.Brand(), err))
	}
	res.Saved = len(records)

	return res, scrapeErr
}

// render waits for the limiter, then renders rawURL.
func render(ctx context.Context, browser menuboard.Browser, limiter menuboard.DomainLimiter, rawURL string, opts menuboard.RenderOptions) (string, error) {
	if limiter != nil {
		if err := limiter.Wait(ctx, domainOf(rawURL)); err != nil {
			return "", err
		}
	}
	return browser.Render(ctx, rawURL, opts)
}

func report(progress menuboard.ScrapeProgressFunc, p menuboard.ScrapeProgress) {
	if progress != nil {
		progress(p)
	}
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
