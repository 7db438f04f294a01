package store

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus/client/v2/entity"

	"github.com/Anurag02012004/ai-resume-project/pkg/component/milvus"
)

// MilvusVectorStore implements VectorStore on a Milvus collection.
type MilvusVectorStore struct {
	client     *milvus.Client
	collection string
}

var _ VectorStore = (*MilvusVectorStore)(nil)

// NewMilvusVectorStore creates a Milvus-backed vector store.
func NewMilvusVectorStore(client *milvus.Client, collection string) *MilvusVectorStore {
	return &MilvusVectorStore{
		client:     client,
		collection: collection,
	}
}

// Collection returns the collection name.
func (s *MilvusVectorStore) Collection() string {
	return s.collection
}

// EnsureCollection creates the collection if it does not exist.
func (s *MilvusVectorStore) EnsureCollection(ctx context.Context, dimension int) error {
	schema := &milvus.CollectionSchema{
		Name:        s.collection,
		Description: "resume profile document chunks",
		Dimension:   dimension,
		MetaFields: []milvus.MetaField{
			{Name: "type", DataType: entity.FieldTypeVarChar, MaxLen: 32},
			{Name: "source_id", DataType: entity.FieldTypeVarChar, MaxLen: 64},
			{Name: "title", DataType: entity.FieldTypeVarChar, MaxLen: 255},
			{Name: "content", DataType: entity.FieldTypeVarChar, MaxLen: 65535},
			{Name: "chunk_index", DataType: entity.FieldTypeInt64},
		},
	}
	return s.client.CreateCollection(ctx, schema)
}

// Upsert writes records into Milvus, overwriting records with the same ID.
func (s *MilvusVectorStore) Upsert(ctx context.Context, records []*VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	data := &milvus.UpsertData{
		IDs:        make([]string, len(records)),
		Embeddings: make([][]float32, len(records)),
		Metadata: map[string][]any{
			"type":        make([]any, len(records)),
			"source_id":   make([]any, len(records)),
			"title":       make([]any, len(records)),
			"content":     make([]any, len(records)),
			"chunk_index": make([]any, len(records)),
		},
	}

	for i, r := range records {
		data.IDs[i] = r.ID
		data.Embeddings[i] = r.Embedding
		data.Metadata["type"][i] = r.Type
		data.Metadata["source_id"][i] = r.SourceID
		data.Metadata["title"][i] = r.Title
		data.Metadata["content"][i] = r.Content
		data.Metadata["chunk_index"][i] = int64(r.ChunkIndex)
	}

	if err := s.client.Upsert(ctx, s.collection, data); err != nil {
		return fmt.Errorf("failed to upsert into milvus: %w", err)
	}
	return nil
}

// Search returns the topK records most similar to the embedding.
func (s *MilvusVectorStore) Search(ctx context.Context, embedding []float32, topK int) ([]*VectorMatch, error) {
	outputFields := []string{"type", "source_id", "title", "content"}
	results, err := s.client.Search(ctx, s.collection, embedding, topK, outputFields)
	if err != nil {
		return nil, fmt.Errorf("failed to search milvus: %w", err)
	}

	matches := make([]*VectorMatch, 0, len(results))
	for _, r := range results {
		match := &VectorMatch{
			ID:    r.ID,
			Score: float64(r.Score),
		}
		if v, ok := r.Metadata["type"].(string); ok {
			match.Type = v
		}
		if v, ok := r.Metadata["title"].(string); ok {
			match.Title = v
		}
		if v, ok := r.Metadata["content"].(string); ok {
			match.Content = v
		}
		matches = append(matches, match)
	}

	return matches, nil
}

// Drop removes the collection and all its vectors.
func (s *MilvusVectorStore) Drop(ctx context.Context) error {
	return s.client.DropCollection(ctx, s.collection)
}

// Stats returns the number of stored vectors.
func (s *MilvusVectorStore) Stats(ctx context.Context) (int64, error) {
	return s.client.GetCollectionStats(ctx, s.collection)
}
