package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/menuboard"
	"google.golang.org/genai"
)

// EmbeddingModel is the model used for document and query embeddings.
const EmbeddingModel = "gemini-embedding-001"

// Retrieval task types understood by the embedding model.
const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)

var _ menuboard.Embedder = (*Embedder)(nil)

// Embedder implements menuboard.Embedder using the Gemini embedding API.
type Embedder struct {
	client     *genai.Client
	dimensions int32
}

// EmbedderOption configures an Embedder.
type EmbedderOption func(*Embedder)

// WithDimensions truncates embeddings to n dimensions.
func WithDimensions(n int32) EmbedderOption {
	return func(e *Embedder) {
		e.dimensions = n
	}
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client, opts ...EmbedderOption) *Embedder {
	e := &Embedder{client: client}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EmbedDocuments returns one embedding per text, in order.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = genai.NewContentFromText(t, genai.RoleUser)
	}
	return e.embed(ctx, contents, TaskRetrievalDocument)
}

// EmbedQuery returns the embedding for a search query.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, menuboard.Errorf(menuboard.EINVALID, "query required")
	}
	vecs, err := e.embed(ctx, []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, TaskRetrievalQuery)
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (e *Embedder) embed(ctx context.Context, contents []*genai.Content, task string) ([][]float32, error) {
	config := &genai.EmbedContentConfig{TaskType: task}
	if e.dimensions > 0 {
		config.OutputDimensionality = &e.dimensions
	}

	result, err := e.client.Models.EmbedContent(ctx, EmbeddingModel, contents, config)
	if err != nil {
		return nil, fmt.Errorf("embedding %d texts: %w", len(contents), err)
	}
	if result == nil || len(result.Embeddings) != len(contents) {
		return nil, menuboard.Errorf(menuboard.EINTERNAL, "gemini returned %d embeddings for %d texts", embeddingCount(result), len(contents))
	}

	vecs := make([][]float32, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		if emb == nil {
			return nil, menuboard.Errorf(menuboard.EINTERNAL, "gemini returned empty embedding %d", i)
		}
		vecs[i] = emb.Values
	}
	return vecs, nil
}

func embeddingCount(r *genai.EmbedContentResponse) int {
	if r == nil {
		return 0
	}
	return len(r.Embeddings)
}
