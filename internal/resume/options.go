// Package app provides the resume service application.
package app

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/Anurag02012004/ai-resume-project/internal/resume/biz"
	logopts "github.com/Anurag02012004/ai-resume-project/pkg/options/logger"
	milvusopts "github.com/Anurag02012004/ai-resume-project/pkg/options/milvus"
	pgopts "github.com/Anurag02012004/ai-resume-project/pkg/options/postgres"
	httpopts "github.com/Anurag02012004/ai-resume-project/pkg/options/server/http"
)

// Options contains all resume service options.
type Options struct {
	// HTTP contains HTTP server configuration.
	HTTP *httpopts.Options `json:"http" mapstructure:"http"`

	// Log contains logger configuration.
	Log *logopts.Options `json:"log" mapstructure:"log"`

	// Postgres contains profile database configuration.
	Postgres *pgopts.Options `json:"postgres" mapstructure:"postgres"`

	// Milvus contains vector index configuration.
	Milvus *milvusopts.Options `json:"milvus" mapstructure:"milvus"`

	// Embedding contains embedding provider configuration.
	Embedding *LLMProviderOptions `json:"embedding" mapstructure:"embedding"`

	// Chat contains chat provider configuration.
	Chat *LLMProviderOptions `json:"chat" mapstructure:"chat"`

	// Rerank contains rerank provider configuration.
	Rerank *LLMProviderOptions `json:"rerank" mapstructure:"rerank"`

	// Resume contains answering pipeline configuration.
	Resume *ResumeOptions `json:"resume" mapstructure:"resume"`

	// Cache contains query cache configuration.
	Cache *CacheOptions `json:"cache" mapstructure:"cache"`
}

// LLMProviderOptions configures one LLM provider.
type LLMProviderOptions struct {
	// Provider is the provider name ("openai", "cohere"). Empty disables it.
	Provider string `json:"provider" mapstructure:"provider"`

	// BaseURL is the API base URL.
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// APIKey is the API key.
	APIKey string `json:"api-key" mapstructure:"api-key"`

	// Model is the model name.
	Model string `json:"model" mapstructure:"model"`

	// Timeout is the request timeout.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// MaxRetries is the maximum number of HTTP retries.
	MaxRetries int `json:"max-retries" mapstructure:"max-retries"`
}

// NewLLMProviderOptions creates default LLM provider options.
func NewLLMProviderOptions() *LLMProviderOptions {
	return &LLMProviderOptions{
		Provider:   "",
		BaseURL:    "",
		Timeout:    120 * time.Second,
		MaxRetries: 3,
	}
}

// Enabled reports whether a provider is configured.
func (o *LLMProviderOptions) Enabled() bool {
	return o != nil && o.Provider != ""
}

// ToConfigMap converts the options into a provider factory config map.
func (o *LLMProviderOptions) ToConfigMap() map[string]any {
	m := map[string]any{
		"api_key":      o.APIKey,
		"embed_model":  o.Model,
		"chat_model":   o.Model,
		"rerank_model": o.Model,
		"timeout":      o.Timeout,
		"max_retries":  o.MaxRetries,
	}
	if o.BaseURL != "" {
		m["base_url"] = o.BaseURL
	}
	return m
}

// ResumeOptions contains answering pipeline configuration.
type ResumeOptions struct {
	// ChunkSize is the chunk window in characters.
	ChunkSize int `json:"chunk-size" mapstructure:"chunk-size"`

	// ChunkOverlap is the overlap between consecutive chunks.
	ChunkOverlap int `json:"chunk-overlap" mapstructure:"chunk-overlap"`

	// TopK is the number of results from similarity search.
	TopK int `json:"top-k" mapstructure:"top-k"`

	// RerankTopN is how many results survive reranking.
	RerankTopN int `json:"rerank-top-n" mapstructure:"rerank-top-n"`

	// SyncBatchSize is the vector upsert batch size.
	SyncBatchSize int `json:"sync-batch-size" mapstructure:"sync-batch-size"`

	// Collection is the Milvus collection name.
	Collection string `json:"collection" mapstructure:"collection"`

	// EmbeddingDim is the embedding vector dimension.
	EmbeddingDim int `json:"embedding-dim" mapstructure:"embedding-dim"`

	// Weights tune the keyword fallback matcher.
	Weights *WeightOptions `json:"weights" mapstructure:"weights"`

	// SyncOnStartup runs one index sync when the service starts.
	SyncOnStartup bool `json:"sync-on-startup" mapstructure:"sync-on-startup"`
}

// WeightOptions are the keyword matcher weights.
type WeightOptions struct {
	// Structural scores section words like "projects".
	Structural float64 `json:"structural" mapstructure:"structural"`

	// Domain scores words drawn from the profile itself.
	Domain float64 `json:"domain" mapstructure:"domain"`

	// Default scores all other matched words.
	Default float64 `json:"default" mapstructure:"default"`
}

// NewResumeOptions creates default pipeline options.
func NewResumeOptions() *ResumeOptions {
	cfg := biz.DefaultConfig()
	weights := biz.DefaultKeywordWeights()

	return &ResumeOptions{
		ChunkSize:     cfg.ChunkSize,
		ChunkOverlap:  cfg.ChunkOverlap,
		TopK:          cfg.TopK,
		RerankTopN:    cfg.RerankTopN,
		SyncBatchSize: cfg.SyncBatchSize,
		Collection:    "resume_profile",
		EmbeddingDim:  cfg.EmbeddingDim,
		Weights: &WeightOptions{
			Structural: weights.Structural,
			Domain:     weights.Domain,
			Default:    weights.Default,
		},
		SyncOnStartup: false,
	}
}

// ToBizConfig converts the options into a pipeline config.
func (o *ResumeOptions) ToBizConfig() *biz.Config {
	return &biz.Config{
		ChunkSize:     o.ChunkSize,
		ChunkOverlap:  o.ChunkOverlap,
		TopK:          o.TopK,
		RerankTopN:    o.RerankTopN,
		SyncBatchSize: o.SyncBatchSize,
		EmbeddingDim:  o.EmbeddingDim,
		Weights: biz.KeywordWeights{
			Structural: o.Weights.Structural,
			Domain:     o.Weights.Domain,
			Default:    o.Weights.Default,
		},
	}
}

// CacheOptions contains query cache configuration.
type CacheOptions struct {
	// Enabled toggles the cache.
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// TTL is the cache entry lifetime.
	TTL time.Duration `json:"ttl" mapstructure:"ttl"`

	// KeyPrefix namespaces cache keys.
	KeyPrefix string `json:"key-prefix" mapstructure:"key-prefix"`

	// Redis contains Redis connection configuration.
	Redis *RedisOptions `json:"redis" mapstructure:"redis"`
}

// RedisOptions contains Redis connection configuration.
type RedisOptions struct {
	// Host is the Redis host.
	Host string `json:"host" mapstructure:"host"`

	// Port is the Redis port.
	Port int `json:"port" mapstructure:"port"`

	// Password is the Redis password.
	Password string `json:"password" mapstructure:"password"`

	// Database is the Redis database number.
	Database int `json:"database" mapstructure:"database"`

	// MaxRetries is the maximum number of command retries.
	MaxRetries int `json:"max-retries" mapstructure:"max-retries"`

	// PoolSize is the connection pool size.
	PoolSize int `json:"pool-size" mapstructure:"pool-size"`

	// MinIdleConns is the minimum number of idle connections.
	MinIdleConns int `json:"min-idle-conns" mapstructure:"min-idle-conns"`
}

// NewCacheOptions creates default cache options. The cache stays off until a
// deployment opts in; query answers are cheap without an LLM.
func NewCacheOptions() *CacheOptions {
	return &CacheOptions{
		Enabled:   false,
		TTL:       1 * time.Hour,
		KeyPrefix: "resume:query:",
		Redis:     NewRedisOptions(),
	}
}

// NewRedisOptions creates default Redis options.
func NewRedisOptions() *RedisOptions {
	return &RedisOptions{
		Host:         "localhost",
		Port:         6379,
		Password:     "",
		Database:     0,
		MaxRetries:   3,
		PoolSize:     10,
		MinIdleConns: 5,
	}
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	embeddingOpts := NewLLMProviderOptions()
	embeddingOpts.Model = "text-embedding-3-small"

	chatOpts := NewLLMProviderOptions()
	chatOpts.Model = "gpt-4o-mini"

	rerankOpts := NewLLMProviderOptions()
	rerankOpts.Model = "rerank-english-v3.0"
	rerankOpts.Timeout = 30 * time.Second

	return &Options{
		HTTP:      httpopts.NewOptions(),
		Log:       logopts.NewOptions(),
		Postgres:  pgopts.NewOptions(),
		Milvus:    milvusopts.NewOptions(),
		Embedding: embeddingOpts,
		Chat:      chatOpts,
		Rerank:    rerankOpts,
		Resume:    NewResumeOptions(),
		Cache:     NewCacheOptions(),
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.HTTP.AddFlags(fs)
	o.Log.AddFlags(fs)
	o.Postgres.AddFlags(fs)
	o.Milvus.AddFlags(fs)
	o.addProviderFlags(fs, "embedding", o.Embedding)
	o.addProviderFlags(fs, "chat", o.Chat)
	o.addProviderFlags(fs, "rerank", o.Rerank)
	o.addResumeFlags(fs)
	o.addCacheFlags(fs)
}

func (o *Options) addProviderFlags(fs *pflag.FlagSet, prefix string, opts *LLMProviderOptions) {
	fs.StringVar(&opts.Provider, prefix+".provider", opts.Provider, "Provider name (empty disables it)")
	fs.StringVar(&opts.BaseURL, prefix+".base-url", opts.BaseURL, "API base URL")
	fs.StringVar(&opts.APIKey, prefix+".api-key", opts.APIKey, "API key")
	fs.StringVar(&opts.Model, prefix+".model", opts.Model, "Model name")
	fs.DurationVar(&opts.Timeout, prefix+".timeout", opts.Timeout, "Request timeout")
	fs.IntVar(&opts.MaxRetries, prefix+".max-retries", opts.MaxRetries, "Max HTTP retries")
}

func (o *Options) addResumeFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.Resume.ChunkSize, "resume.chunk-size", o.Resume.ChunkSize, "Size of text chunks")
	fs.IntVar(&o.Resume.ChunkOverlap, "resume.chunk-overlap", o.Resume.ChunkOverlap, "Overlap between chunks")
	fs.IntVar(&o.Resume.TopK, "resume.top-k", o.Resume.TopK, "Number of results from similarity search")
	fs.IntVar(&o.Resume.RerankTopN, "resume.rerank-top-n", o.Resume.RerankTopN, "Number of results kept after reranking")
	fs.IntVar(&o.Resume.SyncBatchSize, "resume.sync-batch-size", o.Resume.SyncBatchSize, "Vector upsert batch size")
	fs.StringVar(&o.Resume.Collection, "resume.collection", o.Resume.Collection, "Milvus collection name")
	fs.IntVar(&o.Resume.EmbeddingDim, "resume.embedding-dim", o.Resume.EmbeddingDim, "Embedding vector dimension")
	fs.Float64Var(&o.Resume.Weights.Structural, "resume.weights.structural", o.Resume.Weights.Structural, "Keyword weight for section words")
	fs.Float64Var(&o.Resume.Weights.Domain, "resume.weights.domain", o.Resume.Weights.Domain, "Keyword weight for profile words")
	fs.Float64Var(&o.Resume.Weights.Default, "resume.weights.default", o.Resume.Weights.Default, "Keyword weight for other words")
	fs.BoolVar(&o.Resume.SyncOnStartup, "resume.sync-on-startup", o.Resume.SyncOnStartup, "Sync the vector index on startup")
}

func (o *Options) addCacheFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Cache.Enabled, "cache.enabled", o.Cache.Enabled, "Enable query result cache")
	fs.DurationVar(&o.Cache.TTL, "cache.ttl", o.Cache.TTL, "Cache TTL duration")
	fs.StringVar(&o.Cache.KeyPrefix, "cache.key-prefix", o.Cache.KeyPrefix, "Cache key prefix")
	fs.StringVar(&o.Cache.Redis.Host, "cache.redis.host", o.Cache.Redis.Host, "Redis host")
	fs.IntVar(&o.Cache.Redis.Port, "cache.redis.port", o.Cache.Redis.Port, "Redis port")
	fs.StringVar(&o.Cache.Redis.Password, "cache.redis.password", o.Cache.Redis.Password, "Redis password")
	fs.IntVar(&o.Cache.Redis.Database, "cache.redis.database", o.Cache.Redis.Database, "Redis database number")
	fs.IntVar(&o.Cache.Redis.MaxRetries, "cache.redis.max-retries", o.Cache.Redis.MaxRetries, "Redis max retries")
	fs.IntVar(&o.Cache.Redis.PoolSize, "cache.redis.pool-size", o.Cache.Redis.PoolSize, "Redis connection pool size")
	fs.IntVar(&o.Cache.Redis.MinIdleConns, "cache.redis.min-idle-conns", o.Cache.Redis.MinIdleConns, "Redis minimum idle connections")
}

// Validate validates the options.
func (o *Options) Validate() error {
	if err := o.Log.Validate(); err != nil {
		return err
	}
	for _, err := range o.HTTP.Validate() {
		return err
	}
	for _, err := range o.Milvus.Validate() {
		return err
	}
	if err := o.Postgres.Validate(); err != nil {
		return err
	}
	if err := o.validateProvider(o.Embedding, "embedding"); err != nil {
		return err
	}
	if err := o.validateProvider(o.Chat, "chat"); err != nil {
		return err
	}
	if err := o.validateProvider(o.Rerank, "rerank"); err != nil {
		return err
	}
	if o.Resume.ChunkSize <= 0 {
		return fmt.Errorf("resume.chunk-size must be positive")
	}
	if o.Resume.ChunkOverlap < 0 || o.Resume.ChunkOverlap >= o.Resume.ChunkSize {
		return fmt.Errorf("resume.chunk-overlap must be in [0, chunk-size)")
	}
	if o.Resume.TopK <= 0 {
		return fmt.Errorf("resume.top-k must be positive")
	}
	if o.Resume.RerankTopN <= 0 {
		return fmt.Errorf("resume.rerank-top-n must be positive")
	}
	return nil
}

func (o *Options) validateProvider(opts *LLMProviderOptions, prefix string) error {
	if !opts.Enabled() {
		return nil
	}
	if opts.Model == "" {
		return fmt.Errorf("%s.model is required", prefix)
	}
	if opts.Provider == "openai" && opts.APIKey == "" {
		return fmt.Errorf("%s.api-key is required for openai provider", prefix)
	}
	if opts.Provider == "cohere" && opts.APIKey == "" {
		return fmt.Errorf("%s.api-key is required for cohere provider", prefix)
	}
	if opts.Timeout <= 0 {
		return fmt.Errorf("%s.timeout must be positive", prefix)
	}
	return nil
}

// Complete completes the options.
func (o *Options) Complete() error {
	return nil
}
