package store

import (
	"context"
	"sort"
	"sync"

	"github.com/Anurag02012004/ai-resume-project/internal/pkg/textutil"
)

// MemoryVectorStore is a brute-force in-memory VectorStore. It backs tests
// and local development where no Milvus instance is available.
type MemoryVectorStore struct {
	mu      sync.RWMutex
	records map[string]*VectorRecord
}

var _ VectorStore = (*MemoryVectorStore)(nil)

// NewMemoryVectorStore creates an empty in-memory vector store.
func NewMemoryVectorStore() *MemoryVectorStore {
	return &MemoryVectorStore{
		records: make(map[string]*VectorRecord),
	}
}

// EnsureCollection is a no-op for the in-memory store.
func (s *MemoryVectorStore) EnsureCollection(ctx context.Context, dimension int) error {
	return nil
}

// Upsert writes records, overwriting records with the same ID.
func (s *MemoryVectorStore) Upsert(ctx context.Context, records []*VectorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.records[r.ID] = r
	}
	return nil
}

// Search scans all records and returns the topK by cosine similarity.
func (s *MemoryVectorStore) Search(ctx context.Context, embedding []float32, topK int) ([]*VectorMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]*VectorMatch, 0, len(s.records))
	for _, r := range s.records {
		matches = append(matches, &VectorMatch{
			ID:      r.ID,
			Score:   textutil.CosineSimilarity(embedding, r.Embedding),
			Type:    r.Type,
			Title:   r.Title,
			Content: r.Content,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Drop removes all records.
func (s *MemoryVectorStore) Drop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]*VectorRecord)
	return nil
}

// Stats returns the number of stored vectors.
func (s *MemoryVectorStore) Stats(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}
