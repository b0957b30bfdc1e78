package goquery

import (
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/menuboard"
)

// ParseEdiyaMenu extracts every drink of the fully expanded Ediya menu page.
// Entries missing their detail block or name are returned as item errors and
// left out of the records.
func ParseEdiyaMenu(html, baseURL string) ([]*menuboard.MenuRecord, []*ItemError, error) {
	base, err := parseBase(baseURL)
	if err != nil {
		return nil, nil, err
	}
	doc, err := parseDocument(html)
	if err != nil {
		return nil, nil, err
	}

	var records []*menuboard.MenuRecord
	var failures []*ItemError
	doc.Find("#menu_ul > li").Each(func(i int, li *goquery.Selection) {
		r, err := parseEdiyaItem(li, base)
		if err != nil {
			failures = append(failures, &ItemError{Index: i, Err: err})
			return
		}
		records = append(records, r)
	})

	return records, failures, nil
}

func parseEdiyaItem(li *goquery.Selection, base *url.URL) (*menuboard.MenuRecord, error) {
	detail := li.Find("div.pro_detail").First()
	if detail.Length() == 0 {
		return nil, errors.New("detail block missing")
	}

	name := ownText(detail.Find("div.detail_con > h2").First())
	if name == "" {
		return nil, errors.New("name missing")
	}

	src, _ := li.Find(`a[onclick^="show_nutri"] > img`).First().Attr("src")

	r := &menuboard.MenuRecord{
		Brand:       menuboard.BrandEdiya,
		Name:        name,
		ImageURL:    resolveURL(base, src),
		Description: text(detail.Find("div.detail_txt").First()),
		Price:       menuboard.PriceNotFound,
	}

	detail.Find("div.pro_nutri > dl").Each(func(_ int, dl *goquery.Selection) {
		key := text(dl.Find("dt").First())
		if key == "" {
			return
		}
		value := strings.NewReplacer("(", "", ")", "").Replace(text(dl.Find("dd").First()))
		r.Nutrition.Set(key, strings.TrimSpace(value))
	})

	return r, nil
}
