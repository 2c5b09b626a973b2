// Package qdrant implements the vector store on a Qdrant instance over
// gRPC.
package qdrant

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/scripture-search-engine/internal/embeddings"
	"github.com/scripture-search-engine/internal/repository"
)

// VectorStore implements repository.VectorStore for Qdrant.
type VectorStore struct {
	points      qdrant.PointsClient
	collections qdrant.CollectionsClient
	embedder    embeddings.Embedder
	collection  string
	dims        uint64
}

// Connect dials Qdrant and ensures the collection exists with a cosine
// vector config of the given dimensionality.
func Connect(ctx context.Context, addr string, embedder embeddings.Embedder, collection string, dims int) (*VectorStore, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, &repository.StoreConnectionError{Err: fmt.Errorf("dial qdrant: %w", err)}
	}

	s := &VectorStore{
		points:      qdrant.NewPointsClient(conn),
		collections: qdrant.NewCollectionsClient(conn),
		embedder:    embedder,
		collection:  collection,
		dims:        uint64(dims),
	}
	if err := s.ensureCollection(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *VectorStore) ensureCollection(ctx context.Context) error {
	_, err := s.collections.Get(ctx, &qdrant.GetCollectionInfoRequest{CollectionName: s.collection})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return &repository.StoreConnectionError{Err: fmt.Errorf("get collection: %w", err)}
	}

	_, err = s.collections.Create(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &qdrant.VectorsConfig{
			Config: &qdrant.VectorsConfig_Params{
				Params: &qdrant.VectorParams{
					Size:     s.dims,
					Distance: qdrant.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return &repository.StoreConnectionError{Err: fmt.Errorf("create collection: %w", err)}
	}
	return nil
}

// Clear drops and recreates the collection.
func (s *VectorStore) Clear(ctx context.Context) error {
	_, err := s.collections.Delete(ctx, &qdrant.DeleteCollection{CollectionName: s.collection})
	if err != nil && status.Code(err) != codes.NotFound {
		return &repository.StoreConnectionError{Err: fmt.Errorf("delete collection: %w", err)}
	}
	return s.ensureCollection(ctx)
}

// Upsert embeds the documents and writes them as points keyed by a UUID
// derived from the deterministic record id.
func (s *VectorStore) Upsert(ctx context.Context, docs []repository.Document) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.EmbedText
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts, embeddings.TaskTypeDocument)
	if err != nil {
		return fmt.Errorf("embed documents: %w", err)
	}

	points := make([]*qdrant.PointStruct, len(docs))
	for i, doc := range docs {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(pointUUID(doc.ID)),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: documentPayload(doc),
		}
	}

	upsert, err := s.points.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
	})
	if err != nil {
		return &repository.StoreConnectionError{Err: fmt.Errorf("upsert points: %w", err)}
	}
	st := upsert.GetResult().GetStatus()
	if st != qdrant.UpdateStatus_Acknowledged && st != qdrant.UpdateStatus_Completed {
		return fmt.Errorf("upsert not acknowledged: status %d", st)
	}
	return nil
}

// Query performs similarity search, optionally pre-filtered by book at
// the store level. Qdrant's cosine score is already higher-is-better.
func (s *VectorStore) Query(ctx context.Context, text string, k int, bookFilter []string) ([]repository.Candidate, error) {
	embedding, err := s.embedder.Embed(ctx, text, embeddings.TaskTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	req := &qdrant.SearchPoints{
		CollectionName: s.collection,
		Vector:         embedding,
		Limit:          uint64(k),
		WithPayload:    &qdrant.WithPayloadSelector{SelectorOptions: &qdrant.WithPayloadSelector_Enable{Enable: true}},
	}
	if len(bookFilter) > 0 {
		req.Filter = &qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewMatchKeywords("book", bookFilter...)},
		}
	}

	resp, err := s.points.Search(ctx, req)
	if err != nil {
		return nil, &repository.StoreConnectionError{Err: fmt.Errorf("search points: %w", err)}
	}

	results := make([]repository.Candidate, 0, len(resp.GetResult()))
	for _, point := range resp.GetResult() {
		c, err := candidateFromPayload(point.Payload)
		if err != nil {
			return nil, err
		}
		c.Score = float64(point.Score)
		results = append(results, c)
	}
	return results, nil
}

// Count returns the exact number of points in the collection.
func (s *VectorStore) Count(ctx context.Context) (int, error) {
	exact := true
	resp, err := s.points.Count(ctx, &qdrant.CountPoints{
		CollectionName: s.collection,
		Exact:          &exact,
	})
	if err != nil {
		return 0, &repository.StoreConnectionError{Err: fmt.Errorf("count points: %w", err)}
	}
	return int(resp.GetResult().GetCount()), nil
}

// pointUUID derives a stable UUID-shaped point id from the record id.
// Qdrant only accepts UUIDs or integers as point ids.
func pointUUID(recordID string) string {
	sum := md5.Sum([]byte(recordID))
	hexStr := hex.EncodeToString(sum[:])
	return fmt.Sprintf("%s-%s-%s-%s-%s", hexStr[0:8], hexStr[8:12], hexStr[12:16], hexStr[16:20], hexStr[20:32])
}

func documentPayload(doc repository.Document) map[string]*qdrant.Value {
	return map[string]*qdrant.Value{
		"record_id": {Kind: &qdrant.Value_StringValue{StringValue: doc.ID}},
		"book":      {Kind: &qdrant.Value_StringValue{StringValue: doc.Book}},
		"chapter":   {Kind: &qdrant.Value_IntegerValue{IntegerValue: int64(doc.Chapter)}},
		"verse":     {Kind: &qdrant.Value_IntegerValue{IntegerValue: int64(doc.Verse)}},
		"reference": {Kind: &qdrant.Value_StringValue{StringValue: doc.Reference}},
		"text":      {Kind: &qdrant.Value_StringValue{StringValue: doc.Text}},
	}
}

func candidateFromPayload(payload map[string]*qdrant.Value) (repository.Candidate, error) {
	if payload == nil {
		return repository.Candidate{}, fmt.Errorf("point payload is nil")
	}
	c := repository.Candidate{
		ID:        payload["record_id"].GetStringValue(),
		Book:      payload["book"].GetStringValue(),
		Chapter:   int(payload["chapter"].GetIntegerValue()),
		Verse:     int(payload["verse"].GetIntegerValue()),
		Reference: payload["reference"].GetStringValue(),
		Text:      payload["text"].GetStringValue(),
	}
	if c.ID == "" {
		return repository.Candidate{}, fmt.Errorf("point payload missing record_id")
	}
	return c, nil
}
