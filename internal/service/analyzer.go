package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/enrique89ve/hive-challenge-analyzer/internal/adapter"
	apperrors "github.com/enrique89ve/hive-challenge-analyzer/internal/errors"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/logging"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/types"
)

// DefaultMinimumPowerUp is the aggregate HIVE threshold applied when the
// caller does not specify one.
var DefaultMinimumPowerUp = decimal.NewFromInt(10)

// AnalyzeInput holds all parameters of one analysis run. Every parameter
// is explicit; nothing is read from the environment here.
type AnalyzeInput struct {
	Author        string
	Permlink      string
	Range         types.DateRange
	MinPowerUp    decimal.Decimal
	RequireImages bool
	OnProgress    types.ProgressFunc
}

// AnalysisCache caches finished analyses. Get returns (nil, nil) on miss.
type AnalysisCache interface {
	Get(ctx context.Context, key string) (*types.ChallengeAnalysis, error)
	Set(ctx context.Context, key string, analysis *types.ChallengeAnalysis) error
}

// Analyzer is the caller-facing entry point: one invocation analyzes one
// thread against one date range, with no state retained between calls.
type Analyzer struct {
	comments   adapter.CommentSource
	classifier *ParticipantClassifier
	cache      AnalysisCache // optional
	logger     *logging.Logger
}

// NewAnalyzer creates a new analyzer. cache may be nil.
func NewAnalyzer(comments adapter.CommentSource, classifier *ParticipantClassifier, cache AnalysisCache, logger *logging.Logger) *Analyzer {
	return &Analyzer{
		comments:   comments,
		classifier: classifier,
		cache:      cache,
		logger:     logger,
	}
}

// Analyze runs one single-shot batch analysis of a thread.
func (a *Analyzer) Analyze(ctx context.Context, input AnalyzeInput) (*types.ChallengeAnalysis, error) {
	if strings.TrimSpace(input.Author) == "" {
		return nil, apperrors.NewInvalidParameterError("author", "must not be empty")
	}
	if strings.TrimSpace(input.Permlink) == "" {
		return nil, apperrors.NewInvalidParameterError("permlink", "must not be empty")
	}
	if !input.Range.Valid() {
		return nil, apperrors.NewInvalidRangeError("start date must be before end date")
	}
	if input.MinPowerUp.IsNegative() {
		return nil, apperrors.NewInvalidParameterError("minPowerUp", "must not be negative")
	}

	log := a.logger.WithFields(map[string]interface{}{
		"author":   input.Author,
		"permlink": input.Permlink,
	})

	key := analysisKey(input)
	if a.cache != nil {
		cached, err := a.cache.Get(ctx, key)
		if err != nil {
			log.WithError(err).Warn("Analysis cache read failed")
		} else if cached != nil {
			log.Debug("Analysis served from cache")
			return cached, nil
		}
	}

	comments, err := a.comments.GetContentReplies(ctx, input.Author, input.Permlink)
	if err != nil {
		return nil, err
	}
	log.WithField("comments", len(comments)).Info("Analyzing thread")

	analysis, err := a.classifier.Classify(ctx, comments, input.Range, input.MinPowerUp, input.RequireImages, input.OnProgress)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, key, analysis); err != nil {
			log.WithError(err).Warn("Analysis cache write failed")
		}
	}

	log.WithFields(map[string]interface{}{
		"valid":   len(analysis.ValidUsers),
		"invalid": len(analysis.InvalidUsers),
		"ignored": len(analysis.IgnoredUsers),
	}).Info("Analysis completed")

	return analysis, nil
}

// analysisKey builds the cache key for one analysis invocation.
func analysisKey(input AnalyzeInput) string {
	return fmt.Sprintf("analysis:%s:%s:%d:%d:%s:%t",
		strings.ToLower(input.Author),
		strings.ToLower(input.Permlink),
		input.Range.StartDate.Unix(),
		input.Range.EndDate.Unix(),
		input.MinPowerUp.String(),
		input.RequireImages,
	)
}
