// Package store provides persistence for profile data and vectors.
package store

import (
	"context"

	"github.com/Anurag02012004/ai-resume-project/internal/model"
)

// ProfileStore reads and writes profile entities.
type ProfileStore interface {
	// Snapshot fetches the entire profile in one consistent read.
	Snapshot(ctx context.Context) (*model.ProfileSnapshot, error)

	// Projects lists all projects.
	Projects(ctx context.Context) ([]*model.Project, error)

	// Experiences lists all work experience entries.
	Experiences(ctx context.Context) ([]*model.Experience, error)

	// Skills lists all skills.
	Skills(ctx context.Context) ([]*model.Skill, error)

	// Education lists all education entries.
	Education(ctx context.Context) ([]*model.Education, error)

	// Certificates lists all certificates.
	Certificates(ctx context.Context) ([]*model.Certificate, error)
}

// VectorRecord is one chunk embedding ready for upsert. The ID is derived
// deterministically from the source entity and chunk index so re-syncing the
// same content overwrites rather than duplicates.
type VectorRecord struct {
	ID         string
	Embedding  []float32
	Type       string
	SourceID   string
	Title      string
	Content    string
	ChunkIndex int
}

// VectorMatch is one search hit with its metadata.
type VectorMatch struct {
	ID      string
	Score   float64
	Type    string
	Title   string
	Content string
}

// VectorStore is the vector index behind retrieval.
type VectorStore interface {
	// EnsureCollection creates the collection if it does not exist.
	EnsureCollection(ctx context.Context, dimension int) error

	// Upsert writes records, overwriting records with the same ID.
	Upsert(ctx context.Context, records []*VectorRecord) error

	// Search returns the topK records most similar to the embedding.
	Search(ctx context.Context, embedding []float32, topK int) ([]*VectorMatch, error)

	// Drop removes the collection and all its vectors.
	Drop(ctx context.Context) error

	// Stats returns the number of stored vectors.
	Stats(ctx context.Context) (int64, error)
}
