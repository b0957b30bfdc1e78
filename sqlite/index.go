package sqlite

import (
	"context"
	"encoding/binary"
	"errors"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/fwojciec/menuboard"
)

// Compile-time interface verification.
var _ menuboard.VectorIndex = (*Index)(nil)

// Index implements menuboard.VectorIndex on a SQLite table. Embeddings are
// stored as little-endian float32 blobs and searched by brute-force cosine
// similarity, which is fast enough for a few thousand menu items.
type Index struct {
	db *DB
}

// NewIndex creates a new Index.
func NewIndex(db *DB) *Index {
	return &Index{db: db}
}

// OpenIndex opens the index stored at path. A file that cannot be opened
// as a database is discarded together with its WAL and shared-memory files
// and replaced by an empty index, which the builder then repopulates.
func OpenIndex(path string, logger *slog.Logger) (*Index, error) {
	db := NewDB(path)
	err := db.Open()
	if err == nil {
		return NewIndex(db), nil
	}
	if path == ":memory:" {
		return nil, err
	}

	logger.Warn("discarding unreadable index", "path", path, "error", err)
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if rerr := os.Remove(p); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
			return nil, errors.Join(err, rerr)
		}
	}

	db = NewDB(path)
	if err := db.Open(); err != nil {
		return nil, err
	}
	return NewIndex(db), nil
}

// Close closes the underlying database.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// Count returns the number of stored documents.
func (idx *Index) Count(ctx context.Context) (int, error) {
	var n int
	err := idx.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n)
	return n, err
}

// Add stores documents with their embeddings in a single transaction.
func (idx *Index) Add(ctx context.Context, docs []*menuboard.Document, embeddings [][]float32) error {
	if len(docs) != len(embeddings) {
		return menuboard.Errorf(menuboard.EINVALID, "%d documents but %d embeddings", len(docs), len(embeddings))
	}
	if len(docs) == 0 {
		return nil
	}

	tx, err := idx.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(position) + 1, 0) FROM documents").Scan(&next); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO documents
			(id, brand, name, category, content, calories, sugars, protein, saturated_fat, sodium, caffeine, embedding, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, doc := range docs {
		if doc == nil || doc.ID == "" {
			return menuboard.Errorf(menuboard.EINVALID, "document %d has no ID", i)
		}
		if len(embeddings[i]) == 0 {
			return menuboard.Errorf(menuboard.EINVALID, "document %s has an empty embedding", doc.ID)
		}
		m := doc.Metadata
		if _, err := stmt.ExecContext(ctx,
			doc.ID, string(m.Brand), m.Name, m.Category, doc.Content,
			m.Calories, m.Sugars, m.Protein, m.SaturatedFat, m.Sodium, m.Caffeine,
			encodeEmbedding(embeddings[i]), next+i,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Search returns the documents most similar to embedding.
func (idx *Index) Search(ctx context.Context, embedding []float32, opts menuboard.SearchOptions) ([]menuboard.SearchResult, error) {
	if len(embedding) == 0 {
		return nil, menuboard.Errorf(menuboard.EINVALID, "query embedding required")
	}

	var query strings.Builder
	var args []any
	query.WriteString(`
		SELECT id, brand, name, category, content, calories, sugars, protein, saturated_fat, sodium, caffeine, embedding, position
		FROM documents
	`)
	if len(opts.Brands) > 0 {
		query.WriteString(" WHERE brand IN (?" + strings.Repeat(", ?", len(opts.Brands)-1) + ")")
		for _, b := range opts.Brands {
			args = append(args, string(b))
		}
	}

	rows, err := idx.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type scored struct {
		result   menuboard.SearchResult
		position int
	}
	var matches []scored
	for rows.Next() {
		var doc menuboard.Document
		var brand string
		var blob []byte
		var position int
		m := &doc.Metadata
		if err := rows.Scan(&doc.ID, &brand, &m.Name, &m.Category, &doc.Content,
			&m.Calories, &m.Sugars, &m.Protein, &m.SaturatedFat, &m.Sodium, &m.Caffeine,
			&blob, &position); err != nil {
			return nil, err
		}
		m.Brand = menuboard.Brand(brand)

		vec, err := decodeEmbedding(blob)
		if err != nil {
			return nil, err
		}
		if len(vec) != len(embedding) {
			return nil, menuboard.Errorf(menuboard.EINVALID, "embedding dimension %d does not match index dimension %d", len(embedding), len(vec))
		}

		score := cosine(embedding, vec)
		if score < opts.MinScore {
			continue
		}
		matches = append(matches, scored{
			result:   menuboard.SearchResult{Document: &doc, Score: score},
			position: position,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(matches, func(a, b scored) int {
		switch {
		case a.result.Score > b.result.Score:
			return -1
		case a.result.Score < b.result.Score:
			return 1
		}
		return a.position - b.position
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = menuboard.DefaultSearchLimit
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]menuboard.SearchResult, len(matches))
	for i, s := range matches {
		results[i] = s.result
	}
	return results, nil
}

// Reset removes every stored document.
func (idx *Index) Reset(ctx context.Context) error {
	_, err := idx.db.ExecContext(ctx, "DELETE FROM documents")
	return err
}

func encodeEmbedding(v []float32) []byte {
	b := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(f))
	}
	return b
}

func decodeEmbedding(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, menuboard.Errorf(menuboard.EINTERNAL, "corrupt embedding of %d bytes", len(b))
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return v, nil
}

// cosine returns the cosine similarity of a and b, or 0 when either is the
// zero vector.
func cosine(a, b []float32) float32 {
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
