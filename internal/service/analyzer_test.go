package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enrique89ve/hive-challenge-analyzer/internal/adapter"
	apperrors "github.com/enrique89ve/hive-challenge-analyzer/internal/errors"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/types"
)

type fakeCommentSource struct {
	comments []adapter.Comment
	calls    int
	err      error
}

func (f *fakeCommentSource) GetContentReplies(ctx context.Context, author, permlink string) ([]adapter.Comment, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.comments, nil
}

type memoryCache struct {
	entries map[string]*types.ChallengeAnalysis
	gets    []string
}

func (m *memoryCache) Get(ctx context.Context, key string) (*types.ChallengeAnalysis, error) {
	m.gets = append(m.gets, key)
	return m.entries[key], nil
}

func (m *memoryCache) Set(ctx context.Context, key string, analysis *types.ChallengeAnalysis) error {
	if m.entries == nil {
		m.entries = make(map[string]*types.ChallengeAnalysis)
	}
	m.entries[key] = analysis
	return nil
}

func newTestAnalyzer(comments *fakeCommentSource, resolver *fakeResolver, cache AnalysisCache) *Analyzer {
	logger := testLogger()
	return NewAnalyzer(comments, NewParticipantClassifier(resolver, logger), cache, logger)
}

func TestAnalyzeValidatesInput(t *testing.T) {
	analyzer := newTestAnalyzer(&fakeCommentSource{}, &fakeResolver{}, nil)
	valid := AnalyzeInput{
		Author:     "host",
		Permlink:   "challenge",
		Range:      testRange(t),
		MinPowerUp: decimal.NewFromInt(10),
	}

	cases := []struct {
		name   string
		mutate func(*AnalyzeInput)
	}{
		{"empty author", func(in *AnalyzeInput) { in.Author = "  " }},
		{"empty permlink", func(in *AnalyzeInput) { in.Permlink = "" }},
		{"inverted range", func(in *AnalyzeInput) {
			in.Range.StartDate, in.Range.EndDate = in.Range.EndDate, in.Range.StartDate
		}},
		{"negative threshold", func(in *AnalyzeInput) { in.MinPowerUp = decimal.NewFromInt(-1) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)

			_, err := analyzer.Analyze(context.Background(), input)
			require.Error(t, err)
			catErr := apperrors.Categorize(err)
			assert.Equal(t, apperrors.CategoryValidation, catErr.Category)
		})
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	comments := &fakeCommentSource{comments: []adapter.Comment{
		commentWithImage("alice", "https://example.com/a.jpg"),
		{Author: "hivebuzz", JSONMetadata: `{}`},
	}}
	resolver := &fakeResolver{results: map[string]*types.PowerUpResult{
		"alice": passingResult("tx-alice"),
	}}
	analyzer := newTestAnalyzer(comments, resolver, nil)

	analysis, err := analyzer.Analyze(context.Background(), AnalyzeInput{
		Author:        "host",
		Permlink:      "challenge",
		Range:         testRange(t),
		MinPowerUp:    decimal.NewFromInt(10),
		RequireImages: true,
	})
	require.NoError(t, err)

	require.Len(t, analysis.ValidUsers, 1)
	assert.Equal(t, "alice", analysis.ValidUsers[0].Name)
	assert.Equal(t, []string{"hivebuzz"}, analysis.IgnoredUsers)
	assert.Equal(t, 2, analysis.TotalComments)
}

func TestAnalyzeServesCachedResult(t *testing.T) {
	comments := &fakeCommentSource{comments: []adapter.Comment{
		commentWithImage("alice", "https://example.com/a.jpg"),
	}}
	resolver := &fakeResolver{results: map[string]*types.PowerUpResult{
		"alice": passingResult("tx-alice"),
	}}
	cache := &memoryCache{}
	analyzer := newTestAnalyzer(comments, resolver, cache)

	input := AnalyzeInput{
		Author:     "host",
		Permlink:   "challenge",
		Range:      testRange(t),
		MinPowerUp: decimal.NewFromInt(10),
	}

	first, err := analyzer.Analyze(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, 1, comments.calls)

	second, err := analyzer.Analyze(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	// Second run never reaches the content API.
	assert.Equal(t, 1, comments.calls)
}

func TestAnalyzeCacheKeyCoversParameters(t *testing.T) {
	base := AnalyzeInput{
		Author:     "Host",
		Permlink:   "Challenge",
		Range:      testRange(t),
		MinPowerUp: decimal.NewFromInt(10),
	}

	baseKey := analysisKey(base)
	assert.Equal(t, baseKey, analysisKey(AnalyzeInput{
		Author:     "host",
		Permlink:   "challenge",
		Range:      base.Range,
		MinPowerUp: decimal.NewFromInt(10),
	}))

	changed := base
	changed.MinPowerUp = decimal.NewFromInt(5)
	assert.NotEqual(t, baseKey, analysisKey(changed))

	changed = base
	changed.RequireImages = true
	assert.NotEqual(t, baseKey, analysisKey(changed))
}

func TestAnalyzePropagatesContentErrors(t *testing.T) {
	comments := &fakeCommentSource{err: apperrors.NewUpstreamError(503, "https://api.hive.blog")}
	analyzer := newTestAnalyzer(comments, &fakeResolver{}, nil)

	_, err := analyzer.Analyze(context.Background(), AnalyzeInput{
		Author:     "host",
		Permlink:   "challenge",
		Range:      testRange(t),
		MinPowerUp: decimal.Zero,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
}
