package menuboard

import "context"

// Embedder converts text into embedding vectors.
type Embedder interface {
	// EmbedDocuments returns one vector per text, in order.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery returns the vector for a search query.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex stores documents with their embeddings for similarity search.
type VectorIndex interface {
	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// Add stores documents with their embeddings. Documents with an existing
	// ID are replaced.
	Add(ctx context.Context, docs []*Document, embeddings [][]float32) error

	// Search returns the documents most similar to embedding, best first.
	Search(ctx context.Context, embedding []float32, opts SearchOptions) ([]SearchResult, error)

	// Reset removes every stored document.
	Reset(ctx context.Context) error
}

// SearchService provides semantic search over menu documents.
type SearchService interface {
	// Search performs semantic search over documents.
	// Returns documents ordered by relevance to the query.
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}

// DefaultSearchLimit is the number of documents retrieved per question.
const DefaultSearchLimit = 4

// SearchOptions configures search behavior.
type SearchOptions struct {
	// Filter results to specific brand(s)
	Brands []Brand `json:"brands,omitempty"`

	// Maximum number of results to return
	Limit int `json:"limit,omitempty"`

	// Minimum similarity score (0-1)
	MinScore float32 `json:"minScore,omitempty"`
}

// SearchResult represents a search match.
type SearchResult struct {
	Document *Document `json:"document"`
	Score    float32   `json:"score"`
}
