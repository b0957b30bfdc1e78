package menuboard

import "context"

// ScrapeProgress reports progress while a brand is scraped.
type ScrapeProgress struct {
	Brand     Brand
	URL       string
	Name      string
	Completed int
	Total     int
	Error     error
}

// ScrapeProgressFunc is called as menu items are processed.
type ScrapeProgressFunc func(ScrapeProgress)

// Scraper collects the menu of one brand from its website.
type Scraper interface {
	Brand() Brand

	// Scrape returns every record it managed to collect. Items that fail are
	// reported through progress and skipped. A non-nil error means scraping
	// stopped early; the records gathered so far are still returned.
	Scrape(ctx context.Context, progress ScrapeProgressFunc) ([]*MenuRecord, error)
}
