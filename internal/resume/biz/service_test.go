package biz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anurag02012004/ai-resume-project/internal/model"
	"github.com/Anurag02012004/ai-resume-project/internal/resume/biz"
	"github.com/Anurag02012004/ai-resume-project/internal/resume/store"
)

// newTestService wires a service with a memory vector index and no LLM, cache
// or reranker, the same degraded setup a bare deployment runs with.
func newTestService(profile store.ProfileStore) (biz.Service, *store.MemoryVectorStore) {
	cfg := biz.DefaultConfig()
	cfg.EmbeddingDim = 8

	vectors := store.NewMemoryVectorStore()
	embed := newFakeEmbedding(8)
	syncer := biz.NewSyncer(profile, vectors, embed, cfg)
	answerer := biz.NewAnswerer(nil, biz.NewRetriever(embed, vectors, nil, cfg), cfg, nil)

	return biz.NewService(profile, vectors, syncer, answerer, nil), vectors
}

func TestServiceQueryRejectsEmptyQuery(t *testing.T) {
	svc, _ := newTestService(&fixedProfileStore{snapshot: testSnapshot()})

	_, err := svc.Query(context.Background(), "   ")
	assert.ErrorIs(t, err, biz.ErrEmptyQuery)
}

func TestServiceQueryAnswersWithoutLLM(t *testing.T) {
	svc, _ := newTestService(&fixedProfileStore{snapshot: testSnapshot()})

	resp, err := svc.Query(context.Background(), "tell me about your projects")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Answer)
	assert.False(t, resp.Cached)
	assert.Equal(t, model.TierKeywordTemplate, resp.Tier)
}

func TestServiceQueryPropagatesProfileError(t *testing.T) {
	svc, _ := newTestService(&fixedProfileStore{err: errors.New("connection refused")})

	_, err := svc.Query(context.Background(), "tell me about your projects")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load profile")
}

func TestServiceSyncThenStats(t *testing.T) {
	svc, _ := newTestService(&fixedProfileStore{snapshot: testSnapshot()})

	report, err := svc.Sync(context.Background(), biz.SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, model.SyncStatusSuccess, report.Status)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.IndexConfigured)
	assert.False(t, stats.CacheEnabled)
	assert.Equal(t, int64(9), stats.RowCount)
}

func TestServiceQueryUsesVectorIndexAfterSync(t *testing.T) {
	svc, _ := newTestService(&fixedProfileStore{snapshot: testSnapshot()})

	_, err := svc.Sync(context.Background(), biz.SyncOptions{})
	require.NoError(t, err)

	// Without a chat provider the LLM tiers stay unavailable even though
	// retrieval works, so the keyword template still answers.
	resp, err := svc.Query(context.Background(), "what skills do you have")
	require.NoError(t, err)
	assert.Equal(t, model.TierKeywordTemplate, resp.Tier)
}
