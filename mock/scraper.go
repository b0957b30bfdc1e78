package mock

import (
	"context"

	"github.com/fwojciec/menuboard"
)

var _ menuboard.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of menuboard.Scraper.
type Scraper struct {
	BrandFn  func() menuboard.Brand
	ScrapeFn func(ctx context.Context, progress menuboard.ScrapeProgressFunc) ([]*menuboard.MenuRecord, error)
}

func (s *Scraper) Brand() menuboard.Brand {
	return s.BrandFn()
}

func (s *Scraper) Scrape(ctx context.Context, progress menuboard.ScrapeProgressFunc) ([]*menuboard.MenuRecord, error) {
	return s.ScrapeFn(ctx, progress)
}
