package rag

import (
	"context"
	"strings"

	"github.com/fwojciec/menuboard"
)

var _ menuboard.SearchService = (*Retriever)(nil)

// Retriever implements menuboard.SearchService by embedding the query and
// searching a VectorIndex.
type Retriever struct {
	embedder menuboard.Embedder
	index    menuboard.VectorIndex
}

// NewRetriever creates a new Retriever.
func NewRetriever(embedder menuboard.Embedder, index menuboard.VectorIndex) *Retriever {
	return &Retriever{embedder: embedder, index: index}
}

// Search returns the documents closest to query. A zero Limit uses
// menuboard.DefaultSearchLimit.
func (r *Retriever) Search(ctx context.Context, query string, opts menuboard.SearchOptions) ([]menuboard.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, menuboard.Errorf(menuboard.EINVALID, "query required")
	}
	if opts.Limit <= 0 {
		opts.Limit = menuboard.DefaultSearchLimit
	}

	vec, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.index.Search(ctx, vec, opts)
}
