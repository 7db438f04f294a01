package model

// Document source types, also used as the prefix of vector IDs.
const (
	DocTypeProject     = "project"
	DocTypeExperience  = "experience"
	DocTypeSkills      = "skills"
	DocTypeEducation   = "education"
	DocTypeCertificate = "certificate"
	DocTypeOverview    = "overview"
)

// Document is a formatted text rendering of one profile entity, ready for
// chunking and indexing.
type Document struct {
	// Type is one of the DocType constants.
	Type string `json:"type"`
	// SourceID identifies the originating entity, e.g. "3" or "skills_backend".
	SourceID string `json:"source_id"`
	// Title is a human-readable label, surfaced as an answer source.
	Title string `json:"title"`
	// Content is the full formatted text.
	Content string `json:"content"`
}

// QueryRequest is the body of a query call.
type QueryRequest struct {
	Query string `json:"query" binding:"required"`
}

// Source describes one document that contributed to an answer.
type Source struct {
	Type  string  `json:"type"`
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Answer tiers, ordered from most to least capable.
const (
	TierVectorLLM       = "vector_llm"
	TierKeywordLLM      = "keyword_llm"
	TierKeywordTemplate = "keyword_template"
	TierStaticDefault   = "static_default"
)

// QueryResponse is the result of a query call.
type QueryResponse struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
	// Tier records which strategy produced the answer.
	Tier string `json:"tier,omitempty"`
	// Cached is true when the response was served from the query cache.
	Cached bool `json:"cached,omitempty"`
}

// SyncRequest is the body of an index sync call.
type SyncRequest struct {
	// Rebuild drops and recreates the collection before upserting, removing
	// vectors for entities that no longer exist.
	Rebuild bool `json:"rebuild"`
}

// Sync statuses.
const (
	SyncStatusSuccess = "success"
	SyncStatusSkipped = "skipped"
	SyncStatusError   = "error"
)

// SyncReport summarizes an index synchronization run. On failure it still
// carries the progress made before the error.
type SyncReport struct {
	Status             string `json:"status"`
	DocumentsProcessed int    `json:"documents_processed"`
	VectorsUpserted    int    `json:"vectors_upserted"`
	Message            string `json:"message,omitempty"`
}

// IndexStats reports the state of the vector index and caches.
type IndexStats struct {
	IndexConfigured bool              `json:"index_configured"`
	Collection      string            `json:"collection,omitempty"`
	RowCount        int64             `json:"row_count"`
	CacheEnabled    bool              `json:"cache_enabled"`
	QueriesServed   int64             `json:"queries_served"`
	CacheHits       int64             `json:"cache_hits"`
	SyncRuns        int64             `json:"sync_runs"`
	TierCounts      map[string]uint64 `json:"tier_counts,omitempty"`
	UptimeSeconds   int64             `json:"uptime_seconds"`
}
