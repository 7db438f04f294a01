// Package biz provides business logic for the resume answering service.
package biz

import "errors"

var (
	// ErrEmptyQuery is returned when a query is empty or whitespace-only.
	ErrEmptyQuery = errors.New("query must not be empty")

	// ErrCapabilityUnavailable signals that an optional capability (embedding
	// provider or vector index) is not configured. Callers treat it as a cue
	// to degrade, not as a hard failure.
	ErrCapabilityUnavailable = errors.New("capability not available")
)

// KeywordWeights are the per-token scores of the keyword matcher.
type KeywordWeights struct {
	// Structural scores tokens naming a profile section, e.g. "projects".
	Structural float64
	// Domain scores tokens drawn from the profile itself, e.g. a technology name.
	Domain float64
	// Default scores all other tokens.
	Default float64
}

// DefaultKeywordWeights returns the standard weighting.
func DefaultKeywordWeights() KeywordWeights {
	return KeywordWeights{
		Structural: 2,
		Domain:     3,
		Default:    1,
	}
}

// Config contains pipeline configuration.
type Config struct {
	// ChunkSize is the chunk window in characters.
	ChunkSize int
	// ChunkOverlap is the shared region between consecutive chunks.
	ChunkOverlap int
	// TopK is how many vector matches retrieval fetches.
	TopK int
	// RerankTopN narrows reranked results to the best N.
	RerankTopN int
	// SyncBatchSize is how many vectors are upserted per batch.
	SyncBatchSize int
	// EmbeddingDim is the embedding vector dimension.
	EmbeddingDim int
	// Weights tune the keyword fallback matcher.
	Weights KeywordWeights
}

// DefaultConfig returns the standard pipeline configuration.
func DefaultConfig() *Config {
	return &Config{
		ChunkSize:     1000,
		ChunkOverlap:  150,
		TopK:          5,
		RerankTopN:    2,
		SyncBatchSize: 100,
		EmbeddingDim:  1536,
		Weights:       DefaultKeywordWeights(),
	}
}
