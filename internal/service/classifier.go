package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/enrique89ve/hive-challenge-analyzer/internal/adapter"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/images"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/logging"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/types"
)

// ignoredAccounts holds known bot and system identities excluded from
// challenge eligibility entirely. Process-wide read-only.
var ignoredAccounts = map[string]struct{}{
	"hivebuzz":      {},
	"hive.blog":     {},
	"peakd":         {},
	"ecency":        {},
	"blocktrades":   {},
	"buildawhale":   {},
	"appreciator":   {},
	"curangel":      {},
	"ocdb":          {},
	"leo.voter":     {},
	"steemcleaners": {},
	"spaminator":    {},
	"cheetah":       {},
}

// Rejection reasons recorded on invalid participants.
const (
	reasonMetadataParse = "comment metadata could not be parsed"
	reasonMissingImages = "no valid images included in the comment"
	reasonNoPowerUp     = "no qualifying power-up in the date range"
)

// PowerUpResolver resolves the power-up outcome for one account.
type PowerUpResolver interface {
	Scan(ctx context.Context, account string, exact types.DateRange, minThreshold decimal.Decimal) (*types.PowerUpResult, error)
}

// ParticipantClassifier partitions the comments of a thread into valid,
// invalid and ignored participants.
type ParticipantClassifier struct {
	resolver PowerUpResolver
	logger   *logging.Logger
}

// NewParticipantClassifier creates a new participant classifier
func NewParticipantClassifier(resolver PowerUpResolver, logger *logging.Logger) *ParticipantClassifier {
	return &ParticipantClassifier{
		resolver: resolver,
		logger:   logger,
	}
}

// commentMetadata is the parsed comment metadata. The image list is
// dynamically typed in the wild; entries are coerced defensively.
type commentMetadata struct {
	Image interface{} `json:"image"`
}

// imageList coerces the metadata image field into a string list. Anything
// that is not an array of strings degrades to "no images" rather than an
// error.
func (m *commentMetadata) imageList() []string {
	entries, ok := m.Image.([]interface{})
	if !ok {
		return nil
	}

	list := make([]string, 0, len(entries))
	for _, entry := range entries {
		if s, ok := entry.(string); ok {
			list = append(list, s)
		}
	}
	return list
}

// Classify resolves every comment of a thread into the final three-way
// partition. The first network or upstream failure aborts the whole run;
// metadata failures are recorded per participant and the run continues.
func (c *ParticipantClassifier) Classify(ctx context.Context, comments []adapter.Comment, exact types.DateRange, minThreshold decimal.Decimal, requireImages bool, onProgress types.ProgressFunc) (*types.ChallengeAnalysis, error) {
	var (
		validUsers   []types.Participant
		invalidUsers []types.Participant
		ignoredUsers []string
	)

	// One scan per author: repeated comments reuse the first scan result.
	scanResults := make(map[string]*types.PowerUpResult)

	for i, comment := range comments {
		author := strings.ToLower(comment.Author)

		if _, ignored := ignoredAccounts[author]; ignored {
			c.logger.WithField("author", comment.Author).Debug("Ignored bot/system account")
			ignoredUsers = append(ignoredUsers, comment.Author)
			reportProgress(onProgress, i+1, len(comments))
			continue
		}

		metadata, err := parseMetadata(comment.JSONMetadata)
		if err != nil {
			c.logger.WithField("author", comment.Author).WithError(err).Warn("Could not parse comment metadata")
			invalidUsers = append(invalidUsers, types.Participant{
				Name:   comment.Author,
				Images: []string{},
				Reason: reasonMetadataParse,
			})
			reportProgress(onProgress, i+1, len(comments))
			continue
		}

		validImages := images.ValidImages(metadata.imageList())
		hasImages := len(validImages) >= 1

		// A participant already disqualified on images costs no network.
		if requireImages && !hasImages {
			invalidUsers = append(invalidUsers, types.Participant{
				Name:   comment.Author,
				Images: []string{},
				Reason: reasonMissingImages,
			})
			reportProgress(onProgress, i+1, len(comments))
			continue
		}

		powerUp, ok := scanResults[author]
		if !ok {
			powerUp, err = c.resolver.Scan(ctx, comment.Author, exact, minThreshold)
			if err != nil {
				return nil, err
			}
			scanResults[author] = powerUp
		}

		if powerUp.HasPowerUp {
			validUsers = append(validUsers, types.Participant{
				Name:                comment.Author,
				Images:              validImages,
				PowerUpDate:         powerUp.PowerUpDate,
				PowerUpAmount:       powerUp.PowerUpAmount,
				PowerUpTxID:         powerUp.PowerUpTxID,
				PowerUpTransactions: powerUp.PowerUpTransactions,
				TotalPowerUp:        powerUp.TotalPowerUp,
				HasImages:           hasImages,
				HasPowerUp:          true,
			})
		} else {
			invalidUsers = append(invalidUsers, types.Participant{
				Name:      comment.Author,
				Images:    validImages,
				HasImages: hasImages,
				Reason:    reasonNoPowerUp,
			})
		}

		reportProgress(onProgress, i+1, len(comments))
	}

	return &types.ChallengeAnalysis{
		ValidUsers:    mergeDuplicateAuthors(validUsers),
		InvalidUsers:  mergeDuplicateAuthors(invalidUsers),
		IgnoredUsers:  dedupeStrings(ignoredUsers),
		TotalComments: len(comments),
	}, nil
}

// parseMetadata parses the raw json_metadata string. An empty string is
// treated as empty metadata.
func parseMetadata(raw string) (*commentMetadata, error) {
	if strings.TrimSpace(raw) == "" {
		return &commentMetadata{}, nil
	}

	var metadata commentMetadata
	if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
		return nil, err
	}
	return &metadata, nil
}

// mergeDuplicateAuthors consolidates repeated comments by the same author
// into one participant: image lists are unioned as a set, the comment
// count is incremented, and hasImages holds if any comment had images.
// First-seen order is preserved.
func mergeDuplicateAuthors(users []types.Participant) []types.Participant {
	merged := make([]types.Participant, 0, len(users))
	index := make(map[string]int)

	for _, user := range users {
		at, seen := index[user.Name]
		if !seen {
			user.CommentCount = 1
			index[user.Name] = len(merged)
			merged = append(merged, user)
			continue
		}

		existing := &merged[at]
		existing.Images = unionStrings(existing.Images, user.Images)
		existing.CommentCount++
		existing.HasImages = existing.HasImages || user.HasImages
	}

	return merged
}

// unionStrings appends the entries of b not already present in a,
// preserving order.
func unionStrings(a, b []string) []string {
	seen := make(map[string]struct{}, len(a))
	for _, s := range a {
		seen[s] = struct{}{}
	}

	out := a
	for _, s := range b {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// dedupeStrings removes duplicates preserving first-seen order.
func dedupeStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func reportProgress(onProgress types.ProgressFunc, processed, total int) {
	if onProgress != nil {
		onProgress(processed, total)
	}
}
