// Package rag builds and queries the vector index behind the chat assistant.
package rag

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/fwojciec/menuboard"
	"golang.org/x/sync/errgroup"
)

// Builder defaults.
const (
	DefaultBatchSize   = 100
	DefaultConcurrency = 4
)

// BuildResult summarizes an index build.
type BuildResult struct {
	// Documents is the number of documents in the index after the build.
	Documents int
	// Reused is true when an existing non-empty index was kept as-is.
	Reused bool
	// Rebuilt is true when the index was reset before being populated.
	Rebuilt bool
	// Tokens is the token count of the embedded documents, when a
	// TokenCounter is configured.
	Tokens int
}

// Builder populates a VectorIndex from menu records.
type Builder struct {
	Embedder     menuboard.Embedder
	Index        menuboard.VectorIndex
	TokenCounter menuboard.TokenCounter // optional
	Logger       *slog.Logger           // optional

	// BatchSize is the number of documents per embedding request.
	BatchSize int
	// Concurrency bounds the embedding requests in flight.
	Concurrency int
}

// Build makes the index ready for search. A non-empty index is reused unless
// force is set. If the index cannot be read or populated it is reset and
// rebuilt from scratch once.
func (b *Builder) Build(ctx context.Context, records []*menuboard.MenuRecord, force bool) (*BuildResult, error) {
	docs := menuboard.BuildDocuments(records)
	logger := b.logger()

	if force {
		return b.rebuild(ctx, docs)
	}

	n, err := b.Index.Count(ctx)
	if err != nil {
		logger.Warn("index unreadable, rebuilding", "error", err)
		return b.rebuild(ctx, docs)
	}
	if n > 0 {
		logger.Info("reusing existing index", "documents", n)
		return &BuildResult{Documents: n, Reused: true}, nil
	}

	logger.Info("creating index", "documents", len(docs))
	tokens, err := b.populate(ctx, docs)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		logger.Warn("index build failed, rebuilding", "error", err)
		return b.rebuild(ctx, docs)
	}
	return &BuildResult{Documents: len(docs), Tokens: tokens}, nil
}

func (b *Builder) rebuild(ctx context.Context, docs []*menuboard.Document) (*BuildResult, error) {
	if err := b.Index.Reset(ctx); err != nil {
		return nil, err
	}
	tokens, err := b.populate(ctx, docs)
	if err != nil {
		return nil, err
	}
	return &BuildResult{Documents: len(docs), Rebuilt: true, Tokens: tokens}, nil
}

// populate embeds docs in parallel batches and adds them to the index in
// document order.
func (b *Builder) populate(ctx context.Context, docs []*menuboard.Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	batchSize := b.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	embeddings := make([][]float32, len(docs))
	var tokens atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for start := 0; start < len(docs); start += batchSize {
		end := min(start+batchSize, len(docs))
		g.Go(func() error {
			texts := make([]string, 0, end-start)
			for _, d := range docs[start:end] {
				texts = append(texts, d.Content)
			}

			vecs, err := b.Embedder.EmbedDocuments(gctx, texts)
			if err != nil {
				return err
			}
			if len(vecs) != len(texts) {
				return menuboard.Errorf(menuboard.EINTERNAL, "embedder returned %d vectors for %d documents", len(vecs), len(texts))
			}
			copy(embeddings[start:end], vecs)

			if b.TokenCounter != nil {
				for _, t := range texts {
					if n, err := b.TokenCounter.CountTokens(gctx, t); err == nil {
						tokens.Add(int64(n))
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if err := b.Index.Add(ctx, docs, embeddings); err != nil {
		return 0, err
	}
	return int(tokens.Load()), nil
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.New(slog.DiscardHandler)
}
