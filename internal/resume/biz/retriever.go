package biz

import (
	"context"
	"fmt"

	"github.com/kart-io/logger"

	"github.com/Anurag02012004/ai-resume-project/internal/pkg/textutil"
	"github.com/Anurag02012004/ai-resume-project/internal/resume/store"
	"github.com/Anurag02012004/ai-resume-project/pkg/llm"
)

// Retriever performs vector similarity retrieval with optional reranking.
type Retriever struct {
	embedding llm.EmbeddingProvider
	vectors   store.VectorStore
	reranker  llm.RerankProvider
	cfg       *Config
}

// NewRetriever creates a retriever. The embedding provider, vector store and
// reranker may each be nil; retrieval reports itself unavailable rather than
// failing when a required one is missing.
func NewRetriever(embedding llm.EmbeddingProvider, vectors store.VectorStore, reranker llm.RerankProvider, cfg *Config) *Retriever {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Retriever{
		embedding: embedding,
		vectors:   vectors,
		reranker:  reranker,
		cfg:       cfg,
	}
}

// Available reports whether vector retrieval can run at all.
func (r *Retriever) Available() bool {
	return r.embedding != nil && r.vectors != nil
}

// Retrieve embeds the query, fetches the TopK nearest chunks and optionally
// narrows them with the reranker. A rerank failure is logged and the
// pre-rerank order is kept; it never fails the retrieval.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]*store.VectorMatch, error) {
	if !r.Available() {
		return nil, ErrCapabilityUnavailable
	}

	embedding, err := r.embedding.EmbedSingle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	matches, err := r.vectors.Search(ctx, embedding, r.cfg.TopK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	// Cosine scores land in [-1, 1]; report them in [0, 1].
	for _, m := range matches {
		m.Score = textutil.NormalizeCosineSimilarity(m.Score)
	}

	if r.reranker == nil || len(matches) == 0 {
		return matches, nil
	}

	return r.rerank(ctx, query, matches), nil
}

func (r *Retriever) rerank(ctx context.Context, query string, matches []*store.VectorMatch) []*store.VectorMatch {
	documents := make([]string, len(matches))
	for i, m := range matches {
		documents[i] = m.Content
	}

	results, err := r.reranker.Rerank(ctx, query, documents, r.cfg.RerankTopN)
	if err != nil {
		logger.Warnw("rerank failed, keeping original order",
			"error", err.Error(),
			"query", textutil.TruncateString(query, 80),
		)
		return matches
	}
	if len(results) == 0 {
		return matches
	}

	reranked := make([]*store.VectorMatch, 0, len(results))
	for _, res := range results {
		if res.Index < 0 || res.Index >= len(matches) {
			continue
		}
		match := matches[res.Index]
		match.Score = res.Score
		reranked = append(reranked, match)
	}

	logger.Debugw("reranked retrieval results",
		"candidates", len(matches),
		"kept", len(reranked),
	)
	return reranked
}
