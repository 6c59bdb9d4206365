package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/enrique89ve/hive-challenge-analyzer/internal/hivetime"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/hiveurl"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/service"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/types"
)

// AnalyzeRequest is the request body for POST /api/analyze. Either a post
// URL or an explicit author/permlink pair identifies the thread. When
// minPowerUp is omitted the default threshold applies.
type AnalyzeRequest struct {
	PostURL       string    `json:"postUrl,omitempty"`
	Author        string    `json:"author,omitempty"`
	Permlink      string    `json:"permlink,omitempty"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	MinPowerUp    *string   `json:"minPowerUp,omitempty"`
	RequireImages bool      `json:"requireImages,omitempty"`
}

// AnalysisWindow summarizes the analyzed date window.
type AnalysisWindow struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Summary string `json:"summary"`
}

// AnalyzeResponse is the response body for POST /api/analyze.
type AnalyzeResponse struct {
	Author   string                   `json:"author"`
	Permlink string                   `json:"permlink"`
	PostURL  string                   `json:"postUrl"`
	Window   AnalysisWindow           `json:"window"`
	Analysis *types.ChallengeAnalysis `json:"analysis"`
}

// handleAnalyze runs one single-shot challenge analysis.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body: "+err.Error(), nil)
		return
	}

	author := strings.ToLower(strings.TrimSpace(req.Author))
	permlink := strings.ToLower(strings.TrimSpace(req.Permlink))

	if req.PostURL != "" {
		ref, err := hiveurl.ParsePostURL(req.PostURL)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_POST_URL", err.Error(), nil)
			return
		}
		author, permlink = ref.Author, ref.Permlink
	}

	if author == "" || permlink == "" {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "Either postUrl or author and permlink are required", nil)
		return
	}

	minPowerUp := service.DefaultMinimumPowerUp
	if req.MinPowerUp != nil {
		parsed, err := decimal.NewFromString(*req.MinPowerUp)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_INPUT", "minPowerUp must be a decimal number", nil)
			return
		}
		minPowerUp = parsed
	}

	analysis, err := s.analyzer.Analyze(r.Context(), service.AnalyzeInput{
		Author:        author,
		Permlink:      permlink,
		Range:         types.DateRange{StartDate: req.StartDate, EndDate: req.EndDate},
		MinPowerUp:    minPowerUp,
		RequireImages: req.RequireImages,
	})
	if err != nil {
		respondCategorized(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AnalyzeResponse{
		Author:   author,
		Permlink: permlink,
		PostURL:  hiveurl.BuildPeakdURL(author, permlink),
		Window: AnalysisWindow{
			Start:   hivetime.FormatDisplay(req.StartDate),
			End:     hivetime.FormatDisplay(req.EndDate),
			Summary: hivetime.FormatHuman(req.StartDate) + " - " + hivetime.FormatHuman(req.EndDate),
		},
		Analysis: analysis,
	})
}
