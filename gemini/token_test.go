package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/menuboard"
	"github.com/fwojciec/menuboard/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("gemini-2.0-flash")
	require.NoError(t, err)

	var _ menuboard.TokenCounter = tc

	t.Run("counts tokens in korean menu text", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "브랜드: 스타벅스\n메뉴 이름: 아이스 카페 아메리카노")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("longer text returns more tokens", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		shortCount, err := tc.CountTokens(ctx, "라떼")
		require.NoError(t, err)

		longCount, err := tc.CountTokens(ctx, "에스프레소에 스팀 밀크를 더하고 부드러운 우유 거품을 얹은 클래식 라떼입니다.")
		require.NoError(t, err)

		assert.Greater(t, longCount, shortCount)
	})
}
