package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/menuboard"
	"github.com/fwojciec/menuboard/goquery"
)

// Ediya menu page and its "load more" control.
const (
	EdiyaMenuURL          = "https://ediya.com/contents/drink.html?chked_val=12,13,14,15,16,71,83,154,155,&skeyword=#blockcate"
	EdiyaImageBaseURL     = "https://www.ediya.com"
	EdiyaLoadMoreSelector = "div.con_btn > a.line_btn"
)

var _ menuboard.Scraper = (*Ediya)(nil)

// Ediya expands the single menu page by clicking "load more" until the
// control disappears, then parses every listed drink.
type Ediya struct {
	Browser menuboard.Browser
	Limiter menuboard.DomainLimiter
	Logger  *slog.Logger

	MenuURL      string
	ImageBaseURL string

	LoadMoreTimeout  time.Duration
	LoadMoreInterval time.Duration
}

// NewEdiya returns an Ediya scraper with production URLs and waits.
func NewEdiya(browser menuboard.Browser, limiter menuboard.DomainLimiter, logger *slog.Logger) *Ediya {
	return &Ediya{
		Browser:          browser,
		Limiter:          limiter,
		Logger:           loggerOrDiscard(logger),
		MenuURL:          EdiyaMenuURL,
		ImageBaseURL:     EdiyaImageBaseURL,
		LoadMoreTimeout:  2 * time.Second,
		LoadMoreInterval: time.Second,
	}
}

func (e *Ediya) Brand() menuboard.Brand {
	return menuboard.BrandEdiya
}

func (e *Ediya) Scrape(ctx context.Context, progress menuboard.ScrapeProgressFunc) ([]*menuboard.MenuRecord, error) {
	logger := loggerOrDiscard(e.Logger)

	html, err := render(ctx, e.Browser, e.Limiter, e.MenuURL, menuboard.RenderOptions{
		LoadMoreSelector: EdiyaLoadMoreSelector,
		LoadMoreTimeout:  e.LoadMoreTimeout,
		LoadMoreInterval: e.LoadMoreInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("loading menu: %w", err)
	}

	records, failures, err := goquery.ParseEdiyaMenu(html, e.ImageBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing menu: %w", err)
	}
	total := len(records) + len(failures)
	logger.Info("found products", "brand", e.Brand(), "count", total)

	completed := 0
	for _, f := range failures {
		completed++
		logger.Warn("skipping product", "brand", e.Brand(), "index", f.Index, "error", f.Err)
		report(progress, menuboard.ScrapeProgress{
			Brand:     e.Brand(),
			URL:       e.MenuURL,
			Completed: completed,
			Total:     total,
			Error:     f,
		})
	}
	for _, r := range records {
		completed++
		report(progress, menuboard.ScrapeProgress{
			Brand:     e.Brand(),
			Name:      r.Name,
			Completed: completed,
			Total:     total,
		})
	}

	return records, nil
}
