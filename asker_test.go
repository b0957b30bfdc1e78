package menuboard_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/menuboard"
	"github.com/fwojciec/menuboard/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsker_ReceivesHistory(t *testing.T) {
	t.Parallel()

	var asker menuboard.Asker = &mock.Asker{
		AskFn: func(_ context.Context, question string, history []menuboard.Turn) (string, error) {
			return fmt.Sprintf("%s after %d turns", question, len(history)), nil
		},
	}

	answer, err := asker.Ask(context.Background(), "카페인 없는 음료는?", []menuboard.Turn{
		{Question: "추천해줘", Answer: "아메리카노"},
	})

	require.NoError(t, err)
	assert.Equal(t, "카페인 없는 음료는? after 1 turns", answer)
}
