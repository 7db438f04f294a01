package biz_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anurag02012004/ai-resume-project/internal/resume/biz"
	"github.com/Anurag02012004/ai-resume-project/internal/resume/store"
	"github.com/Anurag02012004/ai-resume-project/pkg/llm"
)

// seededVectors fills a memory store with n records embedded by embed.
func seededVectors(t *testing.T, embed *fakeEmbedding, n int) *store.MemoryVectorStore {
	t.Helper()

	vectors := store.NewMemoryVectorStore()
	records := make([]*store.VectorRecord, 0, n)
	for i := 0; i < n; i++ {
		content := fmt.Sprintf("document number %d about backend services", i)
		emb, err := embed.EmbedSingle(context.Background(), content)
		require.NoError(t, err)

		records = append(records, &store.VectorRecord{
			ID:        fmt.Sprintf("project_%d_0", i),
			Embedding: emb,
			Type:      "project",
			SourceID:  fmt.Sprintf("%d", i),
			Title:     fmt.Sprintf("Project %d", i),
			Content:   content,
		})
	}
	require.NoError(t, vectors.Upsert(context.Background(), records))
	return vectors
}

func TestRetrieveUnavailableWithoutCapabilities(t *testing.T) {
	cfg := biz.DefaultConfig()

	r := biz.NewRetriever(nil, store.NewMemoryVectorStore(), nil, cfg)
	assert.False(t, r.Available())
	_, err := r.Retrieve(context.Background(), "anything")
	assert.ErrorIs(t, err, biz.ErrCapabilityUnavailable)

	r = biz.NewRetriever(newFakeEmbedding(8), nil, nil, cfg)
	assert.False(t, r.Available())
	_, err = r.Retrieve(context.Background(), "anything")
	assert.ErrorIs(t, err, biz.ErrCapabilityUnavailable)
}

func TestRetrieveReturnsTopKNormalized(t *testing.T) {
	embed := newFakeEmbedding(8)
	vectors := seededVectors(t, embed, 7)

	r := biz.NewRetriever(embed, vectors, nil, biz.DefaultConfig())

	matches, err := r.Retrieve(context.Background(), "backend services")
	require.NoError(t, err)
	require.Len(t, matches, 5)

	for i, m := range matches {
		assert.GreaterOrEqual(t, m.Score, 0.0)
		assert.LessOrEqual(t, m.Score, 1.0)
		if i > 0 {
			assert.LessOrEqual(t, m.Score, matches[i-1].Score)
		}
	}
}

func TestRetrieveRerankNarrowsResults(t *testing.T) {
	embed := newFakeEmbedding(8)
	vectors := seededVectors(t, embed, 7)

	reranker := &fakeRerank{
		results: []llm.RerankResult{
			{Index: 2, Score: 0.91},
			{Index: 0, Score: 0.44},
		},
	}
	r := biz.NewRetriever(embed, vectors, reranker, biz.DefaultConfig())

	matches, err := r.Retrieve(context.Background(), "backend services")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, 1, reranker.calls)
	assert.Equal(t, 0.91, matches[0].Score)
	assert.Equal(t, 0.44, matches[1].Score)
}

func TestRetrieveRerankFailureKeepsOriginalOrder(t *testing.T) {
	embed := newFakeEmbedding(8)
	vectors := seededVectors(t, embed, 7)

	reranker := &fakeRerank{err: errors.New("rerank service down")}
	r := biz.NewRetriever(embed, vectors, reranker, biz.DefaultConfig())

	matches, err := r.Retrieve(context.Background(), "backend services")
	require.NoError(t, err)
	require.Len(t, matches, 5)

	for i := 1; i < len(matches); i++ {
		assert.LessOrEqual(t, matches[i].Score, matches[i-1].Score)
	}
}

func TestRetrieveRerankSkipsInvalidIndexes(t *testing.T) {
	embed := newFakeEmbedding(8)
	vectors := seededVectors(t, embed, 3)

	reranker := &fakeRerank{
		results: []llm.RerankResult{
			{Index: 99, Score: 0.9},
			{Index: 1, Score: 0.8},
			{Index: -1, Score: 0.7},
		},
	}
	r := biz.NewRetriever(embed, vectors, reranker, biz.DefaultConfig())

	matches, err := r.Retrieve(context.Background(), "backend services")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 0.8, matches[0].Score)
}

func TestRetrieveEmbeddingFailure(t *testing.T) {
	embed := newFakeEmbedding(8)
	embed.failAt = 1

	r := biz.NewRetriever(embed, store.NewMemoryVectorStore(), nil, biz.DefaultConfig())

	_, err := r.Retrieve(context.Background(), "backend services")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to embed query")
}
