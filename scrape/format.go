package scrape

import (
	"fmt"

	"github.com/fwojciec/menuboard"
)

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatProgress renders one progress line for the CLI, e.g.
// "Gong Cha [3/12] 블랙 밀크티" or "Ediya [4] FAILED item 4: name missing".
func FormatProgress(p menuboard.ScrapeProgress) string {
	counter := fmt.Sprintf("%d", p.Completed)
	if p.Total > 0 {
		counter = fmt.Sprintf("%d/%d", p.Completed, p.Total)
	}
	label := p.Name
	if label == "" {
		label = TruncateURL(p.URL, 60)
	}
	if p.Error != nil {
		if label == "" {
			return fmt.Sprintf("%s [%s] FAILED %v", p.Brand, counter, p.Error)
		}
		return fmt.Sprintf("%s [%s] FAILED %s: %v", p.Brand, counter, label, p.Error)
	}
	return fmt.Sprintf("%s [%s] %s", p.Brand, counter, label)
}

// FormatTokens formats token count in human-readable form.
func FormatTokens(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	}
	return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
}
