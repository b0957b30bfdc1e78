package scrape_test

import (
	"context"
	"testing"

	"github.com/fwojciec/menuboard"
	"github.com/fwojciec/menuboard/mock"
	"github.com/fwojciec/menuboard/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ediyaHTML = `<html><body><ul id="menu_ul">
<li>
  <a onclick="show_nutri(1)"><img src="/files/menu/1.png"></a>
  <div class="pro_detail"><div class="detail_con"><h2>아메리카노<span>Americano</span></h2>
  <div class="detail_txt">깔끔한 맛</div></div>
  <div class="pro_nutri"><dl><dt>카페인</dt><dd>(150mg)</dd></dl></div></div>
</li>
<li><a onclick="show_nutri(2)"><img src="/files/menu/2.png"></a></li>
<li>
  <div class="pro_detail"><div class="detail_con"><h2>아메리카노 (디카페인)</h2></div>
  <div class="pro_nutri"><dl><dt>카페인</dt><dd>(10mg)</dd></dl></div></div>
</li>
</ul></body></html>`

func TestEdiya_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("expands the menu and parses every entry", func(t *testing.T) {
		t.Parallel()

		var gotOpts menuboard.RenderOptions
		browser := &mock.Browser{
			RenderFn: func(_ context.Context, url string, opts menuboard.RenderOptions) (string, error) {
				assert.Equal(t, scrape.EdiyaMenuURL, url)
				gotOpts = opts
				return ediyaHTML, nil
			},
		}
		e := scrape.NewEdiya(browser, nil, nil)

		var failed, ok int
		records, err := e.Scrape(context.Background(), func(p menuboard.ScrapeProgress) {
			assert.Equal(t, 3, p.Total)
			if p.Error != nil {
				failed++
			} else {
				ok++
			}
		})

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "아메리카노", records[0].Name)
		assert.Equal(t, "https://www.ediya.com/files/menu/1.png", records[0].ImageURL)
		assert.Equal(t, "아메리카노 (디카페인)", records[1].Name)
		assert.Equal(t, 1, failed)
		assert.Equal(t, 2, ok)

		assert.Equal(t, scrape.EdiyaLoadMoreSelector, gotOpts.LoadMoreSelector)
		assert.Equal(t, e.LoadMoreTimeout, gotOpts.LoadMoreTimeout)
		assert.Equal(t, e.LoadMoreInterval, gotOpts.LoadMoreInterval)
	})

	t.Run("waits for the rate limiter before loading", func(t *testing.T) {
		t.Parallel()

		var domains []string
		limiter := &mock.DomainLimiter{
			WaitFn: func(_ context.Context, domain string) error {
				domains = append(domains, domain)
				return nil
			},
		}
		e := scrape.NewEdiya(pages(map[string]string{scrape.EdiyaMenuURL: ediyaHTML}), limiter, nil)

		_, err := e.Scrape(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"ediya.com"}, domains)
	})

	t.Run("fails when the page cannot load", func(t *testing.T) {
		t.Parallel()

		e := scrape.NewEdiya(pages(nil), nil, nil)

		_, err := e.Scrape(context.Background(), nil)

		assert.ErrorContains(t, err, "loading menu")
	})
}
