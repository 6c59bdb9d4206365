package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/enrique89ve/hive-challenge-analyzer/internal/config"
	apperrors "github.com/enrique89ve/hive-challenge-analyzer/internal/errors"
)

// HiveClient reads post content from a Hive node via the condenser
// JSON-RPC API.
type HiveClient struct {
	nodeURL string
	client  *http.Client
}

// NewHiveClient creates a new Hive content API client
func NewHiveClient(cfg *config.HiveConfig) *HiveClient {
	return &HiveClient{
		nodeURL: cfg.NodeURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type repliesResponse struct {
	Result []Comment `json:"result"`
	Error  *rpcError `json:"error"`
}

// GetContentReplies returns all replies to a post as a single batch.
func (c *HiveClient) GetContentReplies(ctx context.Context, author, permlink string) ([]Comment, error) {
	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  "condenser_api.get_content_replies",
		Params:  []interface{}{author, permlink},
		ID:      1,
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode RPC request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.nodeURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError(c.nodeURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewUpstreamError(resp.StatusCode, c.nodeURL)
	}

	var rpcResp repliesResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, apperrors.NewParseError("get_content_replies response", err)
	}
	if rpcResp.Error != nil {
		return nil, apperrors.NewParseError("get_content_replies response",
			fmt.Errorf("RPC error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message))
	}

	return rpcResp.Result, nil
}
