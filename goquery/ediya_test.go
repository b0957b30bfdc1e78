package goquery_test

import (
	"testing"

	"github.com/fwojciec/menuboard"
	"github.com/fwojciec/menuboard/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ediyaMenu = `<html><body>
<ul id="menu_ul">
  <li>
    <a href="#" onclick="show_nutri(1)"><img src="/files/menu/IMG_1.png"></a>
    <div class="pro_detail">
      <div class="detail_con">
        <h2>토피넛 라떼<span>Toffee Nut Latte</span></h2>
        <div class="detail_txt">고소한 토피넛
시럽과 에스프레소</div>
      </div>
      <div class="pro_nutri">
        <dl><dt>칼로리</dt><dd>(325kcal)</dd></dl>
        <dl><dt>카페인</dt><dd>(150mg)</dd></dl>
      </div>
    </div>
  </li>
  <li>
    <a href="#" onclick="show_nutri(2)"><img src="/files/menu/IMG_2.png"></a>
  </li>
  <li>
    <div class="pro_detail"><div class="detail_con"><h2><span>only nested</span></h2></div></div>
  </li>
  <li>
    <div class="pro_detail">
      <div class="detail_con"><h2>아메리카노</h2></div>
    </div>
  </li>
</ul>
</body></html>`

func TestParseEdiyaMenu(t *testing.T) {
	t.Parallel()

	t.Run("extracts records and reports broken entries", func(t *testing.T) {
		t.Parallel()

		records, failures, err := goquery.ParseEdiyaMenu(ediyaMenu, "https://www.ediya.com")

		require.NoError(t, err)
		require.Len(t, records, 2)

		first := records[0]
		assert.Equal(t, menuboard.BrandEdiya, first.Brand)
		assert.Equal(t, "토피넛 라떼", first.Name)
		assert.Empty(t, first.Category)
		assert.Equal(t, "https://www.ediya.com/files/menu/IMG_1.png", first.ImageURL)
		assert.Equal(t, "고소한 토피넛 시럽과 에스프레소", first.Description)
		assert.Equal(t, menuboard.PriceNotFound, first.Price)
		assert.Equal(t, menuboard.Nutrition{
			{Key: "칼로리", Value: "325kcal"},
			{Key: "카페인", Value: "150mg"},
		}, first.Nutrition)

		assert.Equal(t, "아메리카노", records[1].Name)
		assert.Empty(t, records[1].ImageURL)

		require.Len(t, failures, 2)
		assert.Equal(t, 1, failures[0].Index)
		assert.EqualError(t, failures[0], "item 1: detail block missing")
		assert.Equal(t, 2, failures[1].Index)
	})

	t.Run("returns nothing for a page without menu", func(t *testing.T) {
		t.Parallel()

		records, failures, err := goquery.ParseEdiyaMenu(`<html></html>`, "https://www.ediya.com")

		require.NoError(t, err)
		assert.Empty(t, records)
		assert.Empty(t, failures)
	})
}
