package biz

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/kart-io/logger"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Anurag02012004/ai-resume-project/internal/model"
	"github.com/Anurag02012004/ai-resume-project/pkg/utils/json"
)

// QueryCacheConfig configures the answer cache.
type QueryCacheConfig struct {
	// Enabled toggles caching.
	Enabled bool
	// TTL is the cache entry lifetime.
	TTL time.Duration
	// KeyPrefix namespaces the cache keys.
	KeyPrefix string
}

// QueryCache caches query responses in Redis, keyed by a hash of the query.
// Cache errors are surfaced to callers but are safe to ignore; the cache is
// purely an optimization.
type QueryCache struct {
	redis  *goredis.Client
	config *QueryCacheConfig
}

// NewQueryCache creates a query cache.
func NewQueryCache(redis *goredis.Client, config *QueryCacheConfig) *QueryCache {
	if config == nil {
		config = &QueryCacheConfig{
			Enabled:   false,
			TTL:       1 * time.Hour,
			KeyPrefix: "resume:query:",
		}
	}
	return &QueryCache{
		redis:  redis,
		config: config,
	}
}

// Enabled reports whether the cache is active.
func (c *QueryCache) Enabled() bool {
	return c != nil && c.config.Enabled && c.redis != nil
}

func (c *QueryCache) cacheKey(query string) string {
	hash := sha256.Sum256([]byte(query))
	return c.config.KeyPrefix + hex.EncodeToString(hash[:])
}

// Get fetches a cached response. A miss returns (nil, nil).
func (c *QueryCache) Get(ctx context.Context, query string) (*model.QueryResponse, error) {
	if !c.Enabled() {
		return nil, nil
	}

	key := c.cacheKey(query)
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			logger.Debugw("query cache miss", "key", key)
			return nil, nil
		}
		logger.Warnw("failed to get from query cache", "error", err.Error(), "key", key)
		return nil, err
	}

	var resp model.QueryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		logger.Warnw("failed to unmarshal cached response", "error", err.Error(), "key", key)
		_ = c.redis.Del(ctx, key).Err()
		return nil, err
	}

	logger.Debugw("query cache hit", "key", key, "tier", resp.Tier)
	return &resp, nil
}

// Set stores a response in the cache.
func (c *QueryCache) Set(ctx context.Context, query string, resp *model.QueryResponse) error {
	if !c.Enabled() {
		return nil
	}

	data, err := json.Marshal(resp)
	if err != nil {
		logger.Warnw("failed to marshal response for caching", "error", err.Error())
		return err
	}

	key := c.cacheKey(query)
	if err := c.redis.Set(ctx, key, data, c.config.TTL).Err(); err != nil {
		logger.Warnw("failed to set query cache", "error", err.Error(), "key", key)
		return err
	}
	return nil
}

// Clear removes all cached query responses. Used after a sync so answers do
// not reflect stale profile data.
func (c *QueryCache) Clear(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}

	iter := c.redis.Scan(ctx, 0, c.config.KeyPrefix+"*", 0).Iterator()
	deleted := 0
	for iter.Next(ctx) {
		if err := c.redis.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warnw("failed to delete cache key", "error", err.Error(), "key", iter.Val())
		} else {
			deleted++
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warnw("error during cache scan", "error", err.Error())
		return err
	}

	logger.Infow("cleared query cache", "deleted", deleted)
	return nil
}
