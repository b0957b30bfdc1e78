package sqlite_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/menuboard"
	"github.com/fwojciec/menuboard/mock"
	"github.com/fwojciec/menuboard/rag"
	"github.com/fwojciec/menuboard/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openIndex(t *testing.T) *sqlite.Index {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return sqlite.NewIndex(db)
}

func doc(id string, brand menuboard.Brand, name string) *menuboard.Document {
	return &menuboard.Document{
		ID:      id,
		Content: "메뉴 이름: " + name,
		Metadata: menuboard.DocumentMetadata{
			Brand:    brand,
			Name:     name,
			Calories: 120,
			Caffeine: 75,
		},
	}
}

func TestIndex_Add(t *testing.T) {
	t.Parallel()

	t.Run("stores documents and counts them", func(t *testing.T) {
		t.Parallel()

		idx := openIndex(t)
		ctx := context.Background()

		err := idx.Add(ctx,
			[]*menuboard.Document{doc("a", menuboard.BrandStarbucks, "라떼"), doc("b", menuboard.BrandEdiya, "아메리카노")},
			[][]float32{{1, 0}, {0, 1}},
		)
		require.NoError(t, err)

		n, err := idx.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("replaces a document with the same ID", func(t *testing.T) {
		t.Parallel()

		idx := openIndex(t)
		ctx := context.Background()

		require.NoError(t, idx.Add(ctx, []*menuboard.Document{doc("a", menuboard.BrandStarbucks, "라떼")}, [][]float32{{1, 0}}))
		require.NoError(t, idx.Add(ctx, []*menuboard.Document{doc("a", menuboard.BrandStarbucks, "라떼")}, [][]float32{{1, 0}}))

		n, err := idx.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("rejects mismatched embeddings", func(t *testing.T) {
		t.Parallel()

		idx := openIndex(t)

		err := idx.Add(context.Background(), []*menuboard.Document{doc("a", menuboard.BrandStarbucks, "라떼")}, nil)

		assert.Equal(t, menuboard.EINVALID, menuboard.ErrorCode(err))
	})

	t.Run("stores nothing when a document fails", func(t *testing.T) {
		t.Parallel()

		idx := openIndex(t)
		ctx := context.Background()

		err := idx.Add(ctx,
			[]*menuboard.Document{doc("a", menuboard.BrandStarbucks, "라떼"), {Content: "no id"}},
			[][]float32{{1, 0}, {0, 1}},
		)
		require.Error(t, err)

		n, err := idx.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) *sqlite.Index {
		t.Helper()
		idx := openIndex(t)
		err := idx.Add(context.Background(),
			[]*menuboard.Document{
				doc("latte", menuboard.BrandStarbucks, "카페 라떼"),
				doc("americano", menuboard.BrandEdiya, "아메리카노"),
				doc("milktea", menuboard.BrandGongCha, "블랙 밀크티"),
			},
			[][]float32{{1, 0, 0}, {0.8, 0.6, 0}, {0, 0, 1}},
		)
		require.NoError(t, err)
		return idx
	}

	t.Run("orders results by similarity", func(t *testing.T) {
		t.Parallel()

		idx := seed(t)

		results, err := idx.Search(context.Background(), []float32{1, 0, 0}, menuboard.SearchOptions{})

		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "latte", results[0].Document.ID)
		assert.Equal(t, "americano", results[1].Document.ID)
		assert.InDelta(t, 1.0, results[0].Score, 0.0001)
		assert.InDelta(t, 0.8, results[1].Score, 0.0001)
	})

	t.Run("round-trips metadata", func(t *testing.T) {
		t.Parallel()

		idx := seed(t)

		results, err := idx.Search(context.Background(), []float32{0, 0, 1}, menuboard.SearchOptions{Limit: 1})

		require.NoError(t, err)
		require.Len(t, results, 1)
		got := results[0].Document
		assert.Equal(t, menuboard.BrandGongCha, got.Metadata.Brand)
		assert.Equal(t, "블랙 밀크티", got.Metadata.Name)
		assert.Equal(t, 120, got.Metadata.Calories)
		assert.Equal(t, 75, got.Metadata.Caffeine)
		assert.Equal(t, "메뉴 이름: 블랙 밀크티", got.Content)
	})

	t.Run("filters by brand", func(t *testing.T) {
		t.Parallel()

		idx := seed(t)

		results, err := idx.Search(context.Background(), []float32{1, 0, 0}, menuboard.SearchOptions{
			Brands: []menuboard.Brand{menuboard.BrandEdiya, menuboard.BrandGongCha},
		})

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "americano", results[0].Document.ID)
	})

	t.Run("applies limit and minimum score", func(t *testing.T) {
		t.Parallel()

		idx := seed(t)

		results, err := idx.Search(context.Background(), []float32{1, 0, 0}, menuboard.SearchOptions{Limit: 5, MinScore: 0.5})

		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("rejects a query with the wrong dimension", func(t *testing.T) {
		t.Parallel()

		idx := seed(t)

		_, err := idx.Search(context.Background(), []float32{1, 0}, menuboard.SearchOptions{})

		assert.Equal(t, menuboard.EINVALID, menuboard.ErrorCode(err))
	})
}

func TestIndex_Reset(t *testing.T) {
	t.Parallel()

	idx := openIndex(t)
	ctx := context.Background()
	require.NoError(t, idx.Add(ctx, []*menuboard.Document{doc("a", menuboard.BrandStarbucks, "라떼")}, [][]float32{{1}}))

	require.NoError(t, idx.Reset(ctx))

	n, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpenIndex(t *testing.T) {
	t.Parallel()

	t.Run("replaces an unreadable file with an index the builder fills", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "index.db")
		garbage := make([]byte, 8192)
		for i := range garbage {
			garbage[i] = byte(i*31 + 7)
		}
		require.NoError(t, os.WriteFile(path, garbage, 0o644))
		require.NoError(t, os.WriteFile(path+"-wal", []byte("stale"), 0o644))

		idx, err := sqlite.OpenIndex(path, slog.New(slog.DiscardHandler))
		require.NoError(t, err)
		t.Cleanup(func() { idx.Close() })

		b := &rag.Builder{
			Embedder: &mock.Embedder{
				EmbedDocumentsFn: func(_ context.Context, texts []string) ([][]float32, error) {
					vecs := make([][]float32, len(texts))
					for i := range vecs {
						vecs[i] = []float32{1, 0}
					}
					return vecs, nil
				},
			},
			Index: idx,
		}
		records := []*menuboard.MenuRecord{
			{Brand: menuboard.BrandStarbucks, Name: "라떼", Description: "우유"},
			{Brand: menuboard.BrandEdiya, Name: "아메리카노", Description: "에스프레소"},
		}

		result, err := b.Build(context.Background(), records, false)
		require.NoError(t, err)
		assert.False(t, result.Reused)
		assert.Equal(t, 2, result.Documents)

		n, err := idx.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("keeps an existing index", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "index.db")
		first, err := sqlite.OpenIndex(path, slog.New(slog.DiscardHandler))
		require.NoError(t, err)
		require.NoError(t, first.Add(context.Background(),
			[]*menuboard.Document{doc("a", menuboard.BrandStarbucks, "라떼")},
			[][]float32{{1, 0}},
		))
		require.NoError(t, first.Close())

		second, err := sqlite.OpenIndex(path, slog.New(slog.DiscardHandler))
		require.NoError(t, err)
		t.Cleanup(func() { second.Close() })

		n, err := second.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}
