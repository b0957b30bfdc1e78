package sqlite_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/fwojciec/menuboard"
	"github.com/fwojciec/menuboard/sqlite"
	"github.com/stretchr/testify/require"
)

// embedding-001 vectors are 3072 wide; a full catalog is a few hundred items.
const (
	benchDimensions = 3072
	benchDocuments  = 500
)

func benchCorpus(n int) ([]*menuboard.Document, [][]float32) {
	r := rand.New(rand.NewPCG(1, 2))
	brands := menuboard.Brands()
	docs := make([]*menuboard.Document, n)
	vecs := make([][]float32, n)
	for i := range docs {
		name := fmt.Sprintf("메뉴 %d", i)
		docs[i] = &menuboard.Document{
			ID:       fmt.Sprintf("doc-%d", i),
			Content:  "메뉴 이름: " + name,
			Metadata: menuboard.DocumentMetadata{Brand: brands[i%len(brands)], Name: name},
		}
		v := make([]float32, benchDimensions)
		for j := range v {
			v[j] = r.Float32()
		}
		vecs[i] = v
	}
	return docs, vecs
}

// BenchmarkIndex_Add measures building a full index in a file-backed database.
func BenchmarkIndex_Add(b *testing.B) {
	docs, vecs := benchCorpus(benchDocuments)
	ctx := context.Background()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		db := sqlite.NewDB(filepath.Join(b.TempDir(), fmt.Sprintf("bench%d.db", i)))
		require.NoError(b, db.Open())
		idx := sqlite.NewIndex(db)
		b.StartTimer()

		if err := idx.Add(ctx, docs, vecs); err != nil {
			b.Fatal(err)
		}

		b.StopTimer()
		db.Close()
	}
}

// BenchmarkIndex_Search measures one brute-force query over a full index.
func BenchmarkIndex_Search(b *testing.B) {
	docs, vecs := benchCorpus(benchDocuments)
	ctx := context.Background()

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()
	idx := sqlite.NewIndex(db)
	require.NoError(b, idx.Add(ctx, docs, vecs))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := idx.Search(ctx, vecs[i%len(vecs)], menuboard.SearchOptions{}); err != nil {
			b.Fatal(err)
		}
	}
}
