package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/menuboard"
	"github.com/fwojciec/menuboard/goquery"
)

// Starbucks Korea drink pages.
const (
	StarbucksListURL   = "https://www.starbucks.co.kr/menu/drink_list.do"
	StarbucksDetailURL = "https://www.starbucks.co.kr/menu/drink_view.do?product_cd="
)

var _ menuboard.Scraper = (*Starbucks)(nil)

// Starbucks scrapes the drink list page, then every product detail page.
type Starbucks struct {
	Browser menuboard.Browser
	Limiter menuboard.DomainLimiter
	Logger  *slog.Logger

	ListURL   string
	DetailURL string

	// The list page keeps rendering after load; detail pages briefly.
	ListSettle   time.Duration
	DetailSettle time.Duration
}

// NewStarbucks returns a Starbucks scraper with production URLs and waits.
func NewStarbucks(browser menuboard.Browser, limiter menuboard.DomainLimiter, logger *slog.Logger) *Starbucks {
	return &Starbucks{
		Browser:      browser,
		Limiter:      limiter,
		Logger:       loggerOrDiscard(logger),
		ListURL:      StarbucksListURL,
		DetailURL:    StarbucksDetailURL,
		ListSettle:   5 * time.Second,
		DetailSettle: time.Second,
	}
}

func (s *Starbucks) Brand() menuboard.Brand {
	return menuboard.BrandStarbucks
}

func (s *Starbucks) Scrape(ctx context.Context, progress menuboard.ScrapeProgressFunc) ([]*menuboard.MenuRecord, error) {
	logger := loggerOrDiscard(s.Logger)

	html, err := render(ctx, s.Browser, s.Limiter, s.ListURL, menuboard.RenderOptions{Settle: s.ListSettle})
	if err != nil {
		return nil, fmt.Errorf("loading drink list: %w", err)
	}
	products, err := goquery.ParseStarbucksList(html, s.ListURL)
	if err != nil {
		return nil, fmt.Errorf("parsing drink list: %w", err)
	}
	logger.Info("found products", "brand", s.Brand(), "count", len(products))

	records := make([]*menuboard.MenuRecord, 0, len(products))
	for i, p := range products {
		detailURL := s.DetailURL + url.QueryEscape(p.ID)
		event := menuboard.ScrapeProgress{
			Brand:     s.Brand(),
			URL:       detailURL,
			Name:      p.Name,
			Completed: i + 1,
			Total:     len(products),
		}

		detail, err := s.detail(ctx, detailURL)
		if err != nil {
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			logger.Warn("skipping product", "brand", s.Brand(), "name", p.Name, "url", detailURL, "error", err)
			event.Error = err
			report(progress, event)
			continue
		}

		records = append(records, &menuboard.MenuRecord{
			Brand:       s.Brand(),
			Name:        p.Name,
			Category:    p.Category,
			ImageURL:    p.ImageURL,
			Description: detail.Description,
			Price:       menuboard.PriceNotFound,
			Nutrition:   detail.Nutrition,
		})
		report(progress, event)
	}

	return records, nil
}

func (s *Starbucks) detail(ctx context.Context, detailURL string) (*goquery.StarbucksDetail, error) {
	html, err := render(ctx, s.Browser, s.Limiter, detailURL, menuboard.RenderOptions{Settle: s.DetailSettle})
	if err != nil {
		return nil, err
	}
	return goquery.ParseStarbucksDetail(html)
}
