package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enrique89ve/hive-challenge-analyzer/internal/types"
)

func newTestCache(t *testing.T, ttl time.Duration) (*AnalysisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewAnalysisCache(NewRedisCacheFromClient(client), ttl), mr
}

func TestAnalysisCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Hour)
	ctx := context.Background()

	analysis := &types.ChallengeAnalysis{
		ValidUsers: []types.Participant{
			{
				Name:         "alice",
				Images:       []string{"https://example.com/a.jpg"},
				HasImages:    true,
				HasPowerUp:   true,
				TotalPowerUp: "12.000",
				CommentCount: 1,
			},
		},
		InvalidUsers:  []types.Participant{{Name: "bob", Reason: "no qualifying power-up in the date range"}},
		IgnoredUsers:  []string{"hivebuzz"},
		TotalComments: 3,
	}

	require.NoError(t, cache.Set(ctx, "analysis:test", analysis))

	got, err := cache.Get(ctx, "analysis:test")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, analysis, got)
}

func TestAnalysisCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t, time.Hour)

	got, err := cache.Get(context.Background(), "analysis:absent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAnalysisCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "analysis:ttl", &types.ChallengeAnalysis{TotalComments: 1}))

	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx, "analysis:ttl")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAnalysisCacheCorruptEntry(t *testing.T) {
	cache, mr := newTestCache(t, time.Hour)

	require.NoError(t, mr.Set("analysis:bad", "{not json"))

	got, err := cache.Get(context.Background(), "analysis:bad")
	require.Error(t, err)
	assert.Nil(t, got)
}
