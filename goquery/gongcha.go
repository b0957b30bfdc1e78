package goquery

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/menuboard"
)

// ParseGongChaLinks returns the absolute product detail URLs of a Gong Cha
// category page, in page order without duplicates.
func ParseGongChaLinks(html, pageURL string) ([]string, error) {
	base, err := parseBase(pageURL)
	if err != nil {
		return nil, err
	}
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	var links []string
	seen := make(map[string]bool)
	doc.Find(`div#product_list a[href*="product_detail"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})
	return links, nil
}

// ParseGongChaDetail extracts a product page. The nutrition table's first
// two columns are row labels; the remaining header and body cells are paired
// positionally. Empty and "-" values are skipped, labels are cut at "(",
// 열량 is reported as 칼로리 and units are appended.
func ParseGongChaDetail(html, pageURL string) (*menuboard.MenuRecord, error) {
	base, err := parseBase(pageURL)
	if err != nil {
		return nil, err
	}
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	info := doc.Find("div.text-a").First()
	name := text(info.Find("p.t1").First())
	if name == "" {
		return nil, errors.New("product name missing")
	}
	src, ok := doc.Find("div.picture img").First().Attr("src")
	if !ok {
		return nil, errors.New("product image missing")
	}

	r := &menuboard.MenuRecord{
		Brand:       menuboard.BrandGongCha,
		Name:        name,
		ImageURL:    resolveURL(base, src),
		Description: text(info.Find("p.t2").First()),
		Price:       menuboard.PriceNotFound,
	}

	table := doc.Find("div.table-item table").First()
	headers := cellTexts(table.Find("thead th"))
	values := cellTexts(table.Find("tbody td"))
	if len(headers) > 2 && len(values) > 2 {
		headers, values = headers[2:], values[2:]
		for i := 0; i < len(headers) && i < len(values); i++ {
			value := values[i]
			if value == "" || value == "-" {
				continue
			}
			key, _, _ := strings.Cut(headers[i], "(")
			key = strings.TrimSpace(key)
			if key == "열량" {
				key = menuboard.NutrientCalories
			}
			r.Nutrition.Set(key, menuboard.WithUnit(key, value))
		}
	}

	return r, nil
}

func cellTexts(cells *goquery.Selection) []string {
	out := make([]string, 0, cells.Length())
	cells.Each(func(_ int, c *goquery.Selection) {
		out = append(out, text(c))
	})
	return out
}
