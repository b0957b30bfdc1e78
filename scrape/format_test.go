package scrape_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/menuboard"
	"github.com/fwojciec/menuboard/scrape"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	t.Run("returns URL unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "https://x.com", scrape.TruncateURL("https://x.com", 50))
	})

	t.Run("truncates with ellipsis when longer than max", func(t *testing.T) {
		t.Parallel()
		url := "https://www.gong-cha.co.kr/brand/menu/product_detail?id=123"
		result := scrape.TruncateURL(url, 20)
		assert.Equal(t, "...uct_detail?id=123", result)
		assert.Len(t, result, 20)
	})

	t.Run("returns empty string when maxLen is not positive", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, scrape.TruncateURL("https://example.com", 0))
		assert.Empty(t, scrape.TruncateURL("https://example.com", -1))
	})

	t.Run("returns prefix of URL when maxLen is very small", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "htt", scrape.TruncateURL("https://example.com", 3))
		assert.Equal(t, "a", scrape.TruncateURL("a", 2))
	})
}

func TestFormatProgress(t *testing.T) {
	t.Parallel()

	t.Run("formats completed item with total", func(t *testing.T) {
		t.Parallel()
		line := scrape.FormatProgress(menuboard.ScrapeProgress{
			Brand: menuboard.BrandGongCha, Name: "블랙 밀크티", Completed: 3, Total: 12,
		})
		assert.Equal(t, "Gong Cha [3/12] 블랙 밀크티", line)
	})

	t.Run("falls back to URL and reports failures", func(t *testing.T) {
		t.Parallel()
		line := scrape.FormatProgress(menuboard.ScrapeProgress{
			Brand: menuboard.BrandStarbucks, URL: "https://x.com/a", Completed: 4, Error: errors.New("timeout"),
		})
		assert.Equal(t, "Starbucks [4] FAILED https://x.com/a: timeout", line)
	})

	t.Run("reports failures without label", func(t *testing.T) {
		t.Parallel()
		line := scrape.FormatProgress(menuboard.ScrapeProgress{
			Brand: menuboard.BrandEdiya, Completed: 2, Total: 5, Error: errors.New("item 1: name missing"),
		})
		assert.Equal(t, "Ediya [2/5] FAILED item 1: name missing", line)
	})
}

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "~500 tokens", scrape.FormatTokens(500))
	assert.Equal(t, "~10k tokens", scrape.FormatTokens(10000))
	assert.Equal(t, "~2k tokens", scrape.FormatTokens(1500))
}
