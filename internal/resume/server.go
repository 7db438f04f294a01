package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/kart-io/logger"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Anurag02012004/ai-resume-project/internal/resume/biz"
	"github.com/Anurag02012004/ai-resume-project/internal/resume/handler"
	"github.com/Anurag02012004/ai-resume-project/internal/resume/router"
	"github.com/Anurag02012004/ai-resume-project/internal/resume/store"
	milvusclient "github.com/Anurag02012004/ai-resume-project/pkg/component/milvus"
	pgclient "github.com/Anurag02012004/ai-resume-project/pkg/component/postgres"
	"github.com/Anurag02012004/ai-resume-project/pkg/llm"

	// Register LLM providers.
	_ "github.com/Anurag02012004/ai-resume-project/pkg/llm/cohere"
	_ "github.com/Anurag02012004/ai-resume-project/pkg/llm/openai"
	"github.com/Anurag02012004/ai-resume-project/pkg/llm/resilience"
)

// sqliteFallbackPath is where the local profile database lives when no
// PostgreSQL database is configured.
const sqliteFallbackPath = "resume.db"

// Server is the wired resume service, ready to run.
type Server struct {
	opts    *Options
	engine  *gin.Engine
	service biz.Service

	closers []func()
}

// NewServer wires all components according to opts. Optional backends that
// are not configured (Milvus, Redis, LLM providers) leave their capability
// nil and the pipeline degrades at query time.
func NewServer(ctx context.Context, opts *Options) (*Server, error) {
	s := &Server{opts: opts}

	// 1. Profile database
	db, err := s.openDatabase(ctx)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := store.Seed(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}
	profile := store.NewProfileStore(db)
	logger.Info("Profile store initialized")

	// 2. Vector index (optional)
	var vectors store.VectorStore
	if opts.Milvus.Enabled() {
		client, err := milvusclient.New(opts.Milvus)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize milvus: %w", err)
		}
		s.closers = append(s.closers, func() { _ = client.Close(context.Background()) })
		vectors = store.NewMilvusVectorStore(client, opts.Resume.Collection)
		logger.Infow("Milvus vector store initialized",
			"address", opts.Milvus.Address,
			"collection", opts.Resume.Collection,
		)
	} else {
		logger.Warn("Milvus not configured, vector search disabled")
	}

	// 3. LLM providers (optional)
	embedding, chat, reranker, err := s.buildProviders()
	if err != nil {
		return nil, err
	}

	// 4. Query cache (optional)
	cache := s.buildCache(ctx)

	// 5. Biz layer
	cfg := opts.Resume.ToBizConfig()
	syncer := biz.NewSyncer(profile, vectors, embedding, cfg)
	retriever := biz.NewRetriever(embedding, vectors, reranker, cfg)
	answerer := biz.NewAnswerer(chat, retriever, cfg, nil)
	s.service = biz.NewService(profile, vectors, syncer, answerer, cache)
	logger.Infow("Resume service initialized",
		"vector_search", retriever.Available(),
		"llm", chat != nil,
		"rerank", reranker != nil,
		"cache", cache.Enabled(),
	)

	// 6. HTTP layer
	gin.SetMode(opts.HTTP.Mode)
	s.engine = gin.New()
	router.Register(s.engine, handler.NewResumeHandler(s.service, profile))

	// 7. Optional index sync on startup
	if opts.Resume.SyncOnStartup {
		go func() {
			report, err := s.service.Sync(context.Background(), biz.SyncOptions{})
			if err != nil {
				logger.Errorw("startup sync failed", "error", err.Error())
				return
			}
			logger.Infow("startup sync finished", "status", report.Status)
		}()
	}

	logger.Info("Resume service is ready")
	return s, nil
}

func (s *Server) openDatabase(ctx context.Context) (*gorm.DB, error) {
	if s.opts.Postgres.Enabled() {
		client, err := pgclient.NewWithContext(ctx, s.opts.Postgres)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		s.closers = append(s.closers, func() { _ = client.Close() })
		logger.Infow("PostgreSQL connected",
			"host", s.opts.Postgres.Host,
			"database", s.opts.Postgres.Database,
		)
		return client.DB(), nil
	}

	db, err := gorm.Open(sqlite.Open(sqliteFallbackPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	logger.Infow("No PostgreSQL database configured, using local SQLite", "path", sqliteFallbackPath)
	return db, nil
}

func (s *Server) buildProviders() (llm.EmbeddingProvider, llm.ChatProvider, llm.RerankProvider, error) {
	var embedding llm.EmbeddingProvider
	var chat llm.ChatProvider
	var reranker llm.RerankProvider

	if s.opts.Embedding.Enabled() {
		provider, err := llm.NewEmbeddingProvider(s.opts.Embedding.Provider, s.opts.Embedding.ToConfigMap())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to initialize embedding provider: %w", err)
		}
		// Embeddings sit on the sync and retrieval hot paths; wrap them with
		// retry and circuit breaking.
		embedding = resilience.NewResilientEmbeddingProvider(provider, nil, nil)
		logger.Infow("Embedding provider initialized",
			"provider", s.opts.Embedding.Provider,
			"model", s.opts.Embedding.Model,
		)
	} else {
		logger.Warn("Embedding provider not configured, vector search disabled")
	}

	if s.opts.Chat.Enabled() {
		provider, err := llm.NewChatProvider(s.opts.Chat.Provider, s.opts.Chat.ToConfigMap())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to initialize chat provider: %w", err)
		}
		chat = provider
		logger.Infow("Chat provider initialized",
			"provider", s.opts.Chat.Provider,
			"model", s.opts.Chat.Model,
		)
	} else {
		logger.Warn("Chat provider not configured, LLM answers disabled")
	}

	if s.opts.Rerank.Enabled() {
		provider, err := llm.NewRerankProvider(s.opts.Rerank.Provider, s.opts.Rerank.ToConfigMap())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to initialize rerank provider: %w", err)
		}
		reranker = provider
		logger.Infow("Rerank provider initialized",
			"provider", s.opts.Rerank.Provider,
			"model", s.opts.Rerank.Model,
		)
	}

	return embedding, chat, reranker, nil
}

func (s *Server) buildCache(ctx context.Context) *biz.QueryCache {
	if !s.opts.Cache.Enabled {
		logger.Info("Query cache is disabled")
		return nil
	}

	redisOpts := s.opts.Cache.Redis
	client := goredis.NewClient(&goredis.Options{
		Addr:         fmt.Sprintf("%s:%d", redisOpts.Host, redisOpts.Port),
		Password:     redisOpts.Password,
		DB:           redisOpts.Database,
		MaxRetries:   redisOpts.MaxRetries,
		PoolSize:     redisOpts.PoolSize,
		MinIdleConns: redisOpts.MinIdleConns,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warnw("failed to connect to redis, cache will be disabled", "error", err.Error())
		_ = client.Close()
		return nil
	}

	s.closers = append(s.closers, func() { _ = client.Close() })
	logger.Infow("Redis cache initialized",
		"host", redisOpts.Host,
		"port", redisOpts.Port,
		"ttl", s.opts.Cache.TTL,
	)
	return biz.NewQueryCache(client, &biz.QueryCacheConfig{
		Enabled:   true,
		TTL:       s.opts.Cache.TTL,
		KeyPrefix: s.opts.Cache.KeyPrefix,
	})
}

// Run starts the HTTP server and blocks until a termination signal arrives,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer func() {
		for _, closeFn := range s.closers {
			closeFn()
		}
	}()

	srv := &http.Server{
		Addr:         s.opts.HTTP.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.opts.HTTP.ReadTimeout,
		WriteTimeout: s.opts.HTTP.WriteTimeout,
		IdleTimeout:  s.opts.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("HTTP server listening", "addr", s.opts.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
