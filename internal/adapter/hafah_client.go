package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/enrique89ve/hive-challenge-analyzer/internal/config"
	apperrors "github.com/enrique89ve/hive-challenge-analyzer/internal/errors"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/types"
)

// HafahClient fetches account operation history from a HAFAH API node.
// Operations are returned newest-first; page 1 is requested without an
// explicit page parameter (upstream convention).
type HafahClient struct {
	baseURL       string
	pageSize      int
	dataSizeLimit int
	client        *http.Client
	limiter       *rate.Limiter // throttles requests against the public node
}

// NewHafahClient creates a new HAFAH API client
func NewHafahClient(cfg *config.HafahConfig) *HafahClient {
	return &HafahClient{
		baseURL:       cfg.BaseURL,
		pageSize:      cfg.PageSize,
		dataSizeLimit: cfg.DataSizeLimit,
		client:        &http.Client{Timeout: cfg.Timeout},
		limiter:       rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// BuildQuery builds the base query string for a power-up history scan
// over the extended (margin-padded) window.
func (c *HafahClient) BuildQuery(extended types.ExtendedDateRange) string {
	return fmt.Sprintf(
		"participation-mode=all&operation-types=%d&page-size=%d&data-size-limit=%d&from-block=%s&to-block=%s",
		types.OpTransferToVesting,
		c.pageSize,
		c.dataSizeLimit,
		url.QueryEscape(extended.FromBlock),
		url.QueryEscape(extended.ToBlock),
	)
}

// FetchPage retrieves one page of an account's operation history.
// No retries: a failure here aborts the caller's scan.
func (c *HafahClient) FetchPage(ctx context.Context, account string, query string, page int) (*OperationsPage, error) {
	endpoint := fmt.Sprintf("%s/accounts/%s/operations?%s", c.baseURL, url.PathEscape(account), query)
	if page > 1 {
		endpoint += fmt.Sprintf("&page=%d", page)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperrors.NewNetworkError(endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError(endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, apperrors.NewUpstreamError(resp.StatusCode, endpoint)
	}

	var result OperationsPage
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperrors.NewParseError("hafah operations response", err)
	}

	return &result, nil
}
