// Package goquery parses brand menu pages with CSS selectors.
package goquery

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/menuboard"
)

// ItemError reports a menu entry that could not be parsed.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

func parseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, menuboard.Errorf(menuboard.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

func parseBase(baseURL string) (*url.URL, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, menuboard.Errorf(menuboard.EINVALID, "invalid base URL %q", baseURL)
	}
	return base, nil
}

// text returns the selection's text with runs of whitespace collapsed.
func text(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// ownText returns the first non-empty text node directly inside sel,
// ignoring text of nested elements.
func ownText(sel *goquery.Selection) string {
	var out string
	sel.Contents().EachWithBreak(func(_ int, c *goquery.Selection) bool {
		if goquery.NodeName(c) != "#text" {
			return true
		}
		if t := strings.Join(strings.Fields(c.Text()), " "); t != "" {
			out = t
			return false
		}
		return true
	})
	return out
}

// resolveURL resolves href against base. Returns empty string for empty or
// unparseable hrefs and for non-HTTP schemes.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || isNonHTTPLink(href) {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

var parenthesized = regexp.MustCompile(`\s*\(.*\)\s*`)

// stripParenthesized removes a parenthesized unit such as "(kcal)" from a label.
func stripParenthesized(s string) string {
	return strings.TrimSpace(parenthesized.ReplaceAllString(s, ""))
}
