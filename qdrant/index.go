// Package qdrant provides a vector index backed by a Qdrant collection.
package qdrant

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/menuboard"
	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// DefaultCollection is the collection menu documents are stored in.
const DefaultCollection = "menuboard"

var _ menuboard.VectorIndex = (*Index)(nil)

// Index implements menuboard.VectorIndex on a Qdrant collection. The
// collection is created on the first Add, sized to the embedding dimension.
type Index struct {
	conn        *grpc.ClientConn
	points      pb.PointsClient
	collections pb.CollectionsClient
	collection  string

	mu      sync.Mutex
	ensured bool
}

// New creates an Index connected to Qdrant at the given gRPC address.
func New(addr, collection string) (*Index, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("qdrant: dial %s: %w", addr, err)
	}
	if collection == "" {
		collection = DefaultCollection
	}
	return &Index{
		conn:        conn,
		points:      pb.NewPointsClient(conn),
		collections: pb.NewCollectionsClient(conn),
		collection:  collection,
	}, nil
}

// Close closes the underlying gRPC connection.
func (idx *Index) Close() error {
	return idx.conn.Close()
}

// Count returns the number of points in the collection. A missing
// collection counts as empty.
func (idx *Index) Count(ctx context.Context) (int, error) {
	exact := true
	resp, err := idx.points.Count(ctx, &pb.CountPoints{
		CollectionName: idx.collection,
		Exact:          &exact,
	})
	if status.Code(err) == codes.NotFound {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("qdrant: count %s: %w", idx.collection, err)
	}
	return int(resp.GetResult().GetCount()), nil
}

// Add upserts documents as points. Point IDs are derived from document IDs,
// so re-adding a document replaces it.
func (idx *Index) Add(ctx context.Context, docs []*menuboard.Document, embeddings [][]float32) error {
	if len(docs) != len(embeddings) {
		return menuboard.Errorf(menuboard.EINVALID, "%d documents but %d embeddings", len(docs), len(embeddings))
	}
	if len(docs) == 0 {
		return nil
	}
	if err := idx.ensureCollection(ctx, len(embeddings[0])); err != nil {
		return err
	}

	points := make([]*pb.PointStruct, len(docs))
	for i, doc := range docs {
		if doc == nil || doc.ID == "" {
			return menuboard.Errorf(menuboard.EINVALID, "document %d has no ID", i)
		}
		points[i] = &pb.PointStruct{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Uuid{Uuid: PointID(doc.ID)},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{Data: embeddings[i]},
				},
			},
			Payload: toPayload(doc),
		}
	}

	wait := true
	_, err := idx.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: idx.collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("qdrant: upsert %d points: %w", len(points), err)
	}
	return nil
}

// Search performs k-NN similarity search, optionally restricted to brands.
func (idx *Index) Search(ctx context.Context, embedding []float32, opts menuboard.SearchOptions) ([]menuboard.SearchResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = menuboard.DefaultSearchLimit
	}

	req := &pb.SearchPoints{
		CollectionName: idx.collection,
		Vector:         embedding,
		Limit:          uint64(limit),
		Filter:         brandFilter(opts.Brands),
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
	}
	if opts.MinScore > 0 {
		threshold := opts.MinScore
		req.ScoreThreshold = &threshold
	}

	resp, err := idx.points.Search(ctx, req)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("qdrant: search: %w", err)
	}

	results := make([]menuboard.SearchResult, len(resp.GetResult()))
	for i, r := range resp.GetResult() {
		results[i] = menuboard.SearchResult{
			Document: fromPayload(r.GetPayload()),
			Score:    r.GetScore(),
		}
	}
	return results, nil
}

// Reset deletes the collection. It is recreated by the next Add.
func (idx *Index) Reset(ctx context.Context) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	_, err := idx.collections.Delete(ctx, &pb.DeleteCollection{
		CollectionName: idx.collection,
	})
	if err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("qdrant: delete collection %s: %w", idx.collection, err)
	}
	idx.ensured = false
	return nil
}

func (idx *Index) ensureCollection(ctx context.Context, dims int) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.ensured {
		return nil
	}

	list, err := idx.collections.List(ctx, &pb.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("qdrant: list collections: %w", err)
	}
	for _, c := range list.GetCollections() {
		if c.GetName() == idx.collection {
			idx.ensured = true
			return nil
		}
	}

	_, err = idx.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: idx.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     uint64(dims),
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("qdrant: create collection %s: %w", idx.collection, err)
	}
	idx.ensured = true
	return nil
}

// PointID returns the Qdrant point ID for a document ID.
func PointID(docID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("menuboard:"+docID)).String()
}
