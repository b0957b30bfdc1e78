package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/menuboard"
)

// StarbucksProduct is a drink listed on the Starbucks menu page.
type StarbucksProduct struct {
	ID       string
	Name     string
	Category string
	ImageURL string
}

// StarbucksDetail is the content of a Starbucks product page.
type StarbucksDetail struct {
	Description string
	Nutrition   menuboard.Nutrition
}

// ParseStarbucksList extracts products from the drink list page. Categories
// are the `dt` headings; each heading's products are the `li.menuDataSet`
// entries of the `dd` that follows it. Entries without a product code are
// skipped.
func ParseStarbucksList(html, baseURL string) ([]StarbucksProduct, error) {
	base, err := parseBase(baseURL)
	if err != nil {
		return nil, err
	}
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	var products []StarbucksProduct
	doc.Find("div.product_list > dl > dt").Each(func(_ int, dt *goquery.Selection) {
		anchor := dt.Find("a").First()
		if anchor.Length() == 0 {
			return
		}
		category := text(anchor)

		dd := dt.NextAllFiltered("dd").First()
		dd.Find("li.menuDataSet").Each(func(_ int, li *goquery.Selection) {
			id, _ := li.Find("a.goDrinkView").First().Attr("prod")
			id = strings.TrimSpace(id)
			if id == "" {
				return
			}
			src, _ := li.Find("img").First().Attr("src")
			products = append(products, StarbucksProduct{
				ID:       id,
				Name:     text(li.Find("dd").First()),
				Category: category,
				ImageURL: resolveURL(base, src),
			})
		})
	})

	return products, nil
}

// ParseStarbucksDetail extracts the description and nutrition facts of a
// product page. Labels lose their parenthesized unit, "1회 제공량" is reported
// as 칼로리, and only canonical nutrients are kept, in canonical order, with
// units appended.
func ParseStarbucksDetail(html string) (*StarbucksDetail, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	detail := &StarbucksDetail{
		Description: text(doc.Find("p.t1").First()),
	}

	raw := make(map[string]string)
	doc.Find("div.product_info_content li").Each(func(_ int, li *goquery.Selection) {
		dt, dd := li.Find("dt").First(), li.Find("dd").First()
		if dt.Length() == 0 || dd.Length() == 0 {
			return
		}
		value := text(dd)
		if value == "" {
			return
		}
		key := stripParenthesized(text(dt))
		if strings.Contains(key, "1회 제공량") {
			key = menuboard.NutrientCalories
		}
		raw[key] = value
	})

	for _, key := range menuboard.NutrientKeys() {
		if value, ok := raw[key]; ok {
			detail.Nutrition.Set(key, menuboard.WithUnit(key, value))
		}
	}

	return detail, nil
}
