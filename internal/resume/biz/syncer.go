package biz

import (
	"context"
	"fmt"

	"github.com/kart-io/logger"

	"github.com/Anurag02012004/ai-resume-project/internal/model"
	"github.com/Anurag02012004/ai-resume-project/internal/pkg/textutil"
	"github.com/Anurag02012004/ai-resume-project/internal/resume/store"
	"github.com/Anurag02012004/ai-resume-project/pkg/llm"
)

// Syncer pushes formatted profile documents into the vector index.
type Syncer struct {
	profile   store.ProfileStore
	vectors   store.VectorStore
	embedding llm.EmbeddingProvider
	cfg       *Config
}

// NewSyncer creates a syncer. A nil vector store turns Sync into a no-op
// reporting the skipped status.
func NewSyncer(profile store.ProfileStore, vectors store.VectorStore, embedding llm.EmbeddingProvider, cfg *Config) *Syncer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Syncer{
		profile:   profile,
		vectors:   vectors,
		embedding: embedding,
		cfg:       cfg,
	}
}

// SyncOptions control one synchronization run.
type SyncOptions struct {
	// Rebuild drops the collection first, so vectors of deleted entities do
	// not linger. Without it stale vectors keep their old content until the
	// same ID is written again.
	Rebuild bool
}

// Sync formats the profile, chunks and embeds every document and upserts the
// vectors in batches. Vector IDs are derived from the document identity and
// chunk index, so running Sync twice over unchanged data writes the same IDs
// and the index does not grow.
//
// On failure the returned report still carries the progress made so far.
func (s *Syncer) Sync(ctx context.Context, opts SyncOptions) (*model.SyncReport, error) {
	if s.vectors == nil {
		logger.Warnw("vector index not configured, skipping sync")
		return &model.SyncReport{
			Status:  model.SyncStatusSkipped,
			Message: "vector index not configured",
		}, nil
	}
	if s.embedding == nil {
		report := &model.SyncReport{
			Status:  model.SyncStatusError,
			Message: "embedding provider not configured",
		}
		return report, fmt.Errorf("embedding provider not configured")
	}

	snapshot, err := s.profile.Snapshot(ctx)
	if err != nil {
		return &model.SyncReport{
			Status:  model.SyncStatusError,
			Message: err.Error(),
		}, fmt.Errorf("failed to load profile: %w", err)
	}

	if opts.Rebuild {
		logger.Infow("rebuilding vector collection")
		if err := s.vectors.Drop(ctx); err != nil {
			logger.Warnw("failed to drop collection before rebuild", "error", err.Error())
		}
	}

	if err := s.vectors.EnsureCollection(ctx, s.cfg.EmbeddingDim); err != nil {
		return &model.SyncReport{
			Status:  model.SyncStatusError,
			Message: err.Error(),
		}, fmt.Errorf("failed to ensure collection: %w", err)
	}

	docs := FormatProfile(snapshot)
	logger.Infof("Syncing %d profile documents to vector index", len(docs))

	report := &model.SyncReport{Status: model.SyncStatusSuccess}
	batch := make([]*store.VectorRecord, 0, s.cfg.SyncBatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.vectors.Upsert(ctx, batch); err != nil {
			return err
		}
		report.VectorsUpserted += len(batch)
		batch = batch[:0]
		return nil
	}

	fail := func(err error) (*model.SyncReport, error) {
		report.Status = model.SyncStatusError
		report.Message = err.Error()
		return report, err
	}

	for _, doc := range docs {
		chunks, err := textutil.SplitIntoChunks(doc.Content, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
		if err != nil {
			return fail(fmt.Errorf("invalid chunking config: %w", err))
		}

		for i, chunk := range chunks {
			embedding, err := s.embedding.EmbedSingle(ctx, chunk)
			if err != nil {
				return fail(fmt.Errorf("failed to embed chunk %d of %s %s: %w", i, doc.Type, doc.SourceID, err))
			}

			batch = append(batch, &store.VectorRecord{
				ID:         fmt.Sprintf("%s_%s_%d", doc.Type, doc.SourceID, i),
				Embedding:  embedding,
				Type:       doc.Type,
				SourceID:   doc.SourceID,
				Title:      doc.Title,
				Content:    chunk,
				ChunkIndex: i,
			})

			if len(batch) >= s.cfg.SyncBatchSize {
				if err := flush(); err != nil {
					return fail(fmt.Errorf("failed to upsert batch: %w", err))
				}
			}
		}

		report.DocumentsProcessed++
	}

	if err := flush(); err != nil {
		return fail(fmt.Errorf("failed to upsert final batch: %w", err))
	}

	logger.Infow("vector sync completed",
		"documents_processed", report.DocumentsProcessed,
		"vectors_upserted", report.VectorsUpserted,
		"rebuild", opts.Rebuild,
	)
	return report, nil
}
