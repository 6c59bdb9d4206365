package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enrique89ve/hive-challenge-analyzer/internal/config"
	apperrors "github.com/enrique89ve/hive-challenge-analyzer/internal/errors"
)

func testHiveClient(nodeURL string) *HiveClient {
	return NewHiveClient(&config.HiveConfig{NodeURL: nodeURL, Timeout: 5 * time.Second})
}

func TestGetContentReplies(t *testing.T) {
	var gotBody rpcRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{
			"jsonrpc": "2.0",
			"result": [
				{"author": "alice", "permlink": "re-challenge", "json_metadata": "{\"image\":[\"https://example.com/a.jpg\"]}"},
				{"author": "bob", "permlink": "re-challenge-2", "json_metadata": ""}
			],
			"id": 1
		}`))
	}))
	defer server.Close()

	replies, err := testHiveClient(server.URL).GetContentReplies(context.Background(), "host", "my-challenge")
	require.NoError(t, err)

	assert.Equal(t, "condenser_api.get_content_replies", gotBody.Method)
	assert.Equal(t, []interface{}{"host", "my-challenge"}, gotBody.Params)

	require.Len(t, replies, 2)
	assert.Equal(t, "alice", replies[0].Author)
	assert.Contains(t, replies[0].JSONMetadata, "example.com/a.jpg")
}

func TestGetContentRepliesRPCError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc": "2.0", "error": {"code": -32602, "message": "Invalid parameters"}, "id": 1}`))
	}))
	defer server.Close()

	_, err := testHiveClient(server.URL).GetContentReplies(context.Background(), "host", "missing")
	require.Error(t, err)
	catErr := apperrors.Categorize(err)
	assert.Equal(t, apperrors.CategoryParse, catErr.Category)
	assert.Contains(t, err.Error(), "-32602")
}

func TestGetContentRepliesUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := testHiveClient(server.URL).GetContentReplies(context.Background(), "host", "post")
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
}
