package mock

import (
	"context"

	"github.com/fwojciec/menuboard"
)

var _ menuboard.VectorIndex = (*VectorIndex)(nil)

// VectorIndex is a mock implementation of menuboard.VectorIndex.
type VectorIndex struct {
	CountFn  func(ctx context.Context) (int, error)
	AddFn    func(ctx context.Context, docs []*menuboard.Document, embeddings [][]float32) error
	SearchFn func(ctx context.Context, embedding []float32, opts menuboard.SearchOptions) ([]menuboard.SearchResult, error)
	ResetFn  func(ctx context.Context) error
}

func (i *VectorIndex) Count(ctx context.Context) (int, error) {
	return i.CountFn(ctx)
}

func (i *VectorIndex) Add(ctx context.Context, docs []*menuboard.Document, embeddings [][]float32) error {
	return i.AddFn(ctx, docs, embeddings)
}

func (i *VectorIndex) Search(ctx context.Context, embedding []float32, opts menuboard.SearchOptions) ([]menuboard.SearchResult, error) {
	return i.SearchFn(ctx, embedding, opts)
}

func (i *VectorIndex) Reset(ctx context.Context) error {
	return i.ResetFn(ctx)
}

var _ menuboard.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of menuboard.Embedder.
type Embedder struct {
	EmbedDocumentsFn func(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQueryFn     func(ctx context.Context, text string) ([]float32, error)
}

func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedDocumentsFn(ctx, texts)
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedQueryFn(ctx, text)
}

var _ menuboard.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of menuboard.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, opts menuboard.SearchOptions) ([]menuboard.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string, opts menuboard.SearchOptions) ([]menuboard.SearchResult, error) {
	return s.SearchFn(ctx, query, opts)
}
