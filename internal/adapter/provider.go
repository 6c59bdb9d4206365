package adapter

import (
	"context"

	"github.com/enrique89ve/hive-challenge-analyzer/internal/types"
)

// OperationSource provides paginated read access to an account's
// operation history.
type OperationSource interface {
	// BuildQuery builds the base query string bounding a scan to the
	// extended (margin-padded) window.
	BuildQuery(extended types.ExtendedDateRange) string
	// FetchPage retrieves one page of operations. The highest-numbered
	// page is the newest; operations within a page are newest-first.
	FetchPage(ctx context.Context, account string, query string, page int) (*OperationsPage, error)
}

// CommentSource provides read access to the replies of a post.
type CommentSource interface {
	GetContentReplies(ctx context.Context, author, permlink string) ([]Comment, error)
}

// Comment is one reply record from the content API. JSONMetadata is the
// raw metadata string as posted; it may be empty or malformed.
type Comment struct {
	Author       string `json:"author"`
	Permlink     string `json:"permlink"`
	JSONMetadata string `json:"json_metadata"`
}

// Asset is an amount as reported by HAFAH: an integer string scaled by
// the precision field.
type Asset struct {
	Amount    string `json:"amount"`
	Precision int    `json:"precision"`
	Nai       string `json:"nai"`
}

// OperationValue carries the payload of a transfer_to_vesting operation.
// HiveVested is absent on other operation kinds.
type OperationValue struct {
	ToAccount             string `json:"to_account"`
	FromAccount           string `json:"from_account"`
	HiveVested            *Asset `json:"hive_vested,omitempty"`
	VestingSharesReceived *Asset `json:"vesting_shares_received,omitempty"`
}

// OperationData wraps the typed operation payload.
type OperationData struct {
	Type  string         `json:"type"`
	Value OperationValue `json:"value"`
}

// Operation is one raw operation record from the HAFAH API. Read-only;
// the scanner classifies it but never mutates it.
type Operation struct {
	Block       int64         `json:"block"`
	TrxID       string        `json:"trx_id"`
	OpPos       int           `json:"op_pos"`
	OpTypeID    int           `json:"op_type_id"`
	Timestamp   string        `json:"timestamp"`
	VirtualOp   bool          `json:"virtual_op"`
	OperationID string        `json:"operation_id"`
	TrxInBlock  int           `json:"trx_in_block"`
	Op          OperationData `json:"op"`
}

// BlockRange is the block interval the upstream resolved the query to.
type BlockRange struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// OperationsPage is one page of an account's operation history.
type OperationsPage struct {
	TotalOperations  int         `json:"total_operations"`
	TotalPages       int         `json:"total_pages"`
	OperationsResult []Operation `json:"operations_result"`
	BlockRange       BlockRange  `json:"block_range"`
}
