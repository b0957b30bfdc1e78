package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/menuboard"
	"github.com/fwojciec/menuboard/bloom"
	"github.com/fwojciec/menuboard/goquery"
)

// Gong Cha category pages and the selectors that signal they rendered.
const (
	GongChaCategoryURL    = "https://www.gong-cha.co.kr/brand/menu/product?category="
	GongChaLinkSelector   = `div#product_list a[href*="product_detail"]`
	GongChaDetailSelector = "div.menu-detail-conts"
)

// Category is a Gong Cha menu category.
type Category struct {
	Name string
	ID   string
}

// GongChaCategories returns the categories scraped, in site order.
func GongChaCategories() []Category {
	return []Category{
		{Name: "New 시즌 메뉴", ID: "001001"},
		{Name: "베스트셀러", ID: "001002"},
		{Name: "밀크티", ID: "001006"},
		{Name: "스무디", ID: "001010"},
		{Name: "오리지널 티", ID: "001003"},
		{Name: "프룻티&모어", ID: "001015"},
		{Name: "커피", ID: "001011"},
	}
}

var _ menuboard.Scraper = (*GongCha)(nil)

// GongCha visits each category page, then every product it links to.
// A product listed in several categories is scraped once, under the first.
type GongCha struct {
	Browser menuboard.Browser
	Limiter menuboard.DomainLimiter
	Logger  *slog.Logger

	CategoryURL string
	Categories  []Category

	ListTimeout   time.Duration
	DetailTimeout time.Duration
}

// NewGongCha returns a Gong Cha scraper with production URLs and waits.
func NewGongCha(browser menuboard.Browser, limiter menuboard.DomainLimiter, logger *slog.Logger) *GongCha {
	return &GongCha{
		Browser:       browser,
		Limiter:       limiter,
		Logger:        loggerOrDiscard(logger),
		CategoryURL:   GongChaCategoryURL,
		Categories:    GongChaCategories(),
		ListTimeout:   10 * time.Second,
		DetailTimeout: 10 * time.Second,
	}
}

func (g *GongCha) Brand() menuboard.Brand {
	return menuboard.BrandGongCha
}

func (g *GongCha) Scrape(ctx context.Context, progress menuboard.ScrapeProgressFunc) ([]*menuboard.MenuRecord, error) {
	logger := loggerOrDiscard(g.Logger)
	seen := bloom.NewFilter(2000, 1e-6)

	var records []*menuboard.MenuRecord
	completed, total := 0, 0
	for _, c := range g.Categories {
		links, err := g.links(ctx, c)
		if err != nil {
			if ctx.Err() != nil {
				return records, ctx.Err()
			}
			if menuboard.ErrorCode(err) == menuboard.ENOTFOUND {
				logger.Info("no products in category, skipping", "brand", g.Brand(), "category", c.Name)
				continue
			}
			logger.Warn("skipping category", "brand", g.Brand(), "category", c.Name, "error", err)
			report(progress, menuboard.ScrapeProgress{
				Brand:     g.Brand(),
				URL:       g.CategoryURL + c.ID,
				Name:      c.Name,
				Completed: completed,
				Total:     total,
				Error:     err,
			})
			continue
		}

		var fresh []string
		for _, link := range links {
			if seen.Visit(link) {
				fresh = append(fresh, link)
			}
		}
		total += len(fresh)
		logger.Info("found products", "brand", g.Brand(), "category", c.Name, "count", len(fresh))

		for _, link := range fresh {
			completed++
			event := menuboard.ScrapeProgress{
				Brand:     g.Brand(),
				URL:       link,
				Completed: completed,
				Total:     total,
			}

			r, err := g.detail(ctx, link)
			if err != nil {
				if ctx.Err() != nil {
					return records, ctx.Err()
				}
				logger.Warn("skipping product", "brand", g.Brand(), "url", link, "error", err)
				event.Error = err
				report(progress, event)
				continue
			}
			r.Category = c.Name
			records = append(records, r)
			event.Name = r.Name
			report(progress, event)
		}
	}

	return records, nil
}

func (g *GongCha) links(ctx context.Context, c Category) ([]string, error) {
	pageURL := g.CategoryURL + c.ID
	html, err := render(ctx, g.Browser, g.Limiter, pageURL, menuboard.RenderOptions{
		WaitSelector: GongChaLinkSelector,
		WaitTimeout:  g.ListTimeout,
	})
	if err != nil {
		return nil, err
	}
	return goquery.ParseGongChaLinks(html, pageURL)
}

func (g *GongCha) detail(ctx context.Context, link string) (*menuboard.MenuRecord, error) {
	html, err := render(ctx, g.Browser, g.Limiter, link, menuboard.RenderOptions{
		WaitSelector: GongChaDetailSelector,
		WaitTimeout:  g.DetailTimeout,
	})
	if err != nil {
		return nil, err
	}
	r, err := goquery.ParseGongChaDetail(html, link)
	if err != nil {
		return nil, fmt.Errorf("parsing product: %w", err)
	}
	return r, nil
}
