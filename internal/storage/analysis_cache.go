package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/enrique89ve/hive-challenge-analyzer/internal/types"
)

// AnalysisCache stores finished challenge analyses in Redis with a TTL.
// A cache miss is reported as (nil, nil).
type AnalysisCache struct {
	cache *RedisCache
	ttl   time.Duration
}

// NewAnalysisCache creates a new analysis cache
func NewAnalysisCache(cache *RedisCache, ttl time.Duration) *AnalysisCache {
	return &AnalysisCache{
		cache: cache,
		ttl:   ttl,
	}
}

// Get retrieves a cached analysis by key.
func (c *AnalysisCache) Get(ctx context.Context, key string) (*types.ChallengeAnalysis, error) {
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var analysis types.ChallengeAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// Set stores an analysis under key for the configured TTL.
func (c *AnalysisCache) Set(ctx context.Context, key string, analysis *types.ChallengeAnalysis) error {
	raw, err := json.Marshal(analysis)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, key, raw, c.ttl)
}
