//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/menuboard/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestEmbedder_Integration_ReturnsOneVectorPerText(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)

	e := gemini.NewEmbedder(client, gemini.WithDimensions(256))

	docs, err := e.EmbedDocuments(ctx, []string{"메뉴 이름: 카페 라떼", "메뉴 이름: 블랙 밀크티"})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Len(t, docs[0], 256)

	query, err := e.EmbedQuery(ctx, "라떼")
	require.NoError(t, err)
	assert.Len(t, query, 256)
}
