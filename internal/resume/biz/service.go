package biz

import (
	"context"
	"fmt"
	"strings"

	"github.com/kart-io/logger"

	"github.com/Anurag02012004/ai-resume-project/internal/model"
	"github.com/Anurag02012004/ai-resume-project/internal/resume/metrics"
	"github.com/Anurag02012004/ai-resume-project/internal/resume/store"
)

// Service is the business API of the resume answering service.
type Service interface {
	// Query answers a natural-language question about the profile.
	Query(ctx context.Context, query string) (*model.QueryResponse, error)

	// Sync pushes the profile into the vector index.
	Sync(ctx context.Context, opts SyncOptions) (*model.SyncReport, error)

	// Stats reports index and cache state.
	Stats(ctx context.Context) (*model.IndexStats, error)
}

type service struct {
	profile  store.ProfileStore
	vectors  store.VectorStore
	syncer   *Syncer
	answerer *Answerer
	cache    *QueryCache
	metrics  *metrics.Metrics
}

var _ Service = (*service)(nil)

// NewService composes the pipeline into a Service.
func NewService(profile store.ProfileStore, vectors store.VectorStore, syncer *Syncer, answerer *Answerer, cache *QueryCache) Service {
	return &service{
		profile:  profile,
		vectors:  vectors,
		syncer:   syncer,
		answerer: answerer,
		cache:    cache,
		metrics:  metrics.Get(),
	}
}

// Query validates the query, consults the cache and runs the answer cascade
// over a fresh profile snapshot. Cache failures are logged and ignored; the
// only hard failures are an empty query and an unreadable profile store.
func (s *service) Query(ctx context.Context, query string) (*model.QueryResponse, error) {
	if strings.TrimSpace(query) == "" {
		s.metrics.RecordQuery(false, ErrEmptyQuery)
		return nil, ErrEmptyQuery
	}

	if cached, err := s.cache.Get(ctx, query); err == nil && cached != nil {
		cached.Cached = true
		s.metrics.RecordQuery(true, nil)
		s.metrics.RecordTier(cached.Tier)
		return cached, nil
	}

	snapshot, err := s.profile.Snapshot(ctx)
	if err != nil {
		s.metrics.RecordQuery(false, err)
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	resp, err := s.answerer.Answer(ctx, query, snapshot)
	if err != nil {
		s.metrics.RecordQuery(false, err)
		return nil, err
	}

	if err := s.cache.Set(ctx, query, resp); err != nil {
		logger.Debugw("failed to cache query response", "error", err.Error())
	}

	s.metrics.RecordQuery(false, nil)
	s.metrics.RecordTier(resp.Tier)
	return resp, nil
}

// Sync runs an index synchronization and invalidates the query cache on
// success, so cached answers never outlive the data they were built from.
func (s *service) Sync(ctx context.Context, opts SyncOptions) (*model.SyncReport, error) {
	report, err := s.syncer.Sync(ctx, opts)
	s.metrics.RecordSync(err)

	if err == nil && report.Status == model.SyncStatusSuccess {
		if cerr := s.cache.Clear(ctx); cerr != nil {
			logger.Warnw("failed to clear query cache after sync", "error", cerr.Error())
		}
	}
	return report, err
}

// Stats reports index and cache state.
func (s *service) Stats(ctx context.Context) (*model.IndexStats, error) {
	stats := &model.IndexStats{
		IndexConfigured: s.vectors != nil,
		CacheEnabled:    s.cache.Enabled(),
		QueriesServed:   int64(s.metrics.QueriesTotal()),
		CacheHits:       int64(s.metrics.CacheHits()),
		SyncRuns:        int64(s.metrics.SyncRuns()),
		TierCounts:      s.metrics.TierCounts(),
		UptimeSeconds:   int64(s.metrics.Uptime().Seconds()),
	}

	if s.vectors != nil {
		count, err := s.vectors.Stats(ctx)
		if err != nil {
			logger.Warnw("failed to read vector index stats", "error", err.Error())
		} else {
			stats.RowCount = count
		}
		if mv, ok := s.vectors.(*store.MilvusVectorStore); ok {
			stats.Collection = mv.Collection()
		}
	}

	return stats, nil
}
