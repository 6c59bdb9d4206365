package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/enrique89ve/hive-challenge-analyzer/internal/adapter"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/hivetime"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/logging"
	"github.com/enrique89ve/hive-challenge-analyzer/internal/types"
)

const (
	// marginHours pads the query window on both ends. The upstream
	// block-range filter is coarse; the padding keeps boundary operations
	// visible to the scanner, which re-validates against the exact range.
	marginHours = 10

	// maxScanPages bounds the worst-case walk over pathological histories.
	maxScanPages = 50
)

// PowerUpScanner resolves the power-up outcome for one account against an
// exact date range. It walks the account's operation history from newest
// to oldest until the early-exit condition fires.
type PowerUpScanner struct {
	source adapter.OperationSource
	logger *logging.Logger
}

// NewPowerUpScanner creates a new power-up scanner
func NewPowerUpScanner(source adapter.OperationSource, logger *logging.Logger) *PowerUpScanner {
	return &PowerUpScanner{
		source: source,
		logger: logger,
	}
}

// ExtendRange pads an exact range with the safety margin on both ends and
// formats the bounds for the upstream query.
func ExtendRange(exact types.DateRange) types.ExtendedDateRange {
	from := exact.StartDate.Add(-marginHours * time.Hour)
	to := exact.EndDate.Add(marginHours * time.Hour)

	return types.ExtendedDateRange{
		FromBlock:     hivetime.FormatQuery(from),
		ToBlock:       hivetime.FormatQuery(to),
		FromBlockDate: from,
		ToBlockDate:   to,
	}
}

// pageOutcome is the result of processing one page of operations.
// keepPaging is false once an operation older than the extended lower
// bound was observed; every remaining page holds only older operations.
type pageOutcome struct {
	transactions []types.PowerUpTransaction
	keepPaging   bool
}

// Scan walks the account's operation history and resolves its power-up
// eligibility for the exact range under the aggregate minimum threshold.
func (s *PowerUpScanner) Scan(ctx context.Context, account string, exact types.DateRange, minThreshold decimal.Decimal) (*types.PowerUpResult, error) {
	extended := ExtendRange(exact)
	query := s.source.BuildQuery(extended)

	log := s.logger.WithField("account", account)
	log.WithFields(map[string]interface{}{
		"from": extended.FromBlock,
		"to":   extended.ToBlock,
	}).Debug("Starting power-up scan")

	first, err := s.source.FetchPage(ctx, account, query, 1)
	if err != nil {
		return nil, err
	}
	totalPages := first.TotalPages

	seenTxIDs := make(map[string]struct{})
	var validPowerUps []types.PowerUpTransaction

	// Walk from the highest-numbered (newest) page down to page 1
	// (oldest). Operations are newest-first within each page, so
	// timestamps are non-increasing across the whole scan order; the
	// early exit relies on that monotonicity.
	pagesWalked := 0
	for page := totalPages; page >= 1; page-- {
		if pagesWalked >= maxScanPages {
			log.Warnf("Aborting scan after %d pages", maxScanPages)
			break
		}

		result, err := s.source.FetchPage(ctx, account, query, page)
		if err != nil {
			return nil, err
		}
		pagesWalked++

		outcome := s.processPage(account, result, exact, extended, seenTxIDs)
		validPowerUps = append(validPowerUps, outcome.transactions...)

		if !outcome.keepPaging {
			log.Debugf("Early exit at page %d/%d", page, totalPages)
			break
		}
	}

	log.WithField("transactions", len(validPowerUps)).Debug("Power-up scan finished")

	return ResolveEligibility(validPowerUps, minThreshold), nil
}

// processPage filters one page's operations against the exact range and
// deduplicates them by transaction identifier. Operations within a page
// are newest-first, so once one falls below the extended lower bound the
// rest of the page (and every remaining page) can be skipped.
func (s *PowerUpScanner) processPage(account string, page *adapter.OperationsPage, exact types.DateRange, extended types.ExtendedDateRange, seenTxIDs map[string]struct{}) pageOutcome {
	outcome := pageOutcome{keepPaging: true}

	for _, op := range page.OperationsResult {
		if types.OperationTypeID(op.OpTypeID) != types.OpTransferToVesting {
			continue
		}

		opTime, err := hivetime.ParseOperationTimestamp(op.Timestamp)
		if err != nil {
			s.logger.WithFields(map[string]interface{}{
				"account":   account,
				"timestamp": op.Timestamp,
				"txId":      op.TrxID,
			}).Warn("Skipping operation with unparseable timestamp")
			continue
		}

		if opTime.Before(extended.FromBlockDate) {
			outcome.keepPaging = false
			break
		}

		// Padded bounds only control pagination; membership is always
		// re-checked against the exact range.
		if !exact.Contains(opTime) {
			continue
		}

		if _, dup := seenTxIDs[op.TrxID]; dup {
			s.logger.WithFields(map[string]interface{}{
				"account": account,
				"txId":    op.TrxID,
			}).Debug("Duplicate transaction ignored")
			continue
		}
		seenTxIDs[op.TrxID] = struct{}{}

		outcome.transactions = append(outcome.transactions, types.PowerUpTransaction{
			Date:   hivetime.FormatDisplay(opTime),
			Amount: formatVestedAmount(op.Op.Value.HiveVested),
			TxID:   op.TrxID,
		})
	}

	return outcome
}

// formatVestedAmount converts a raw HAFAH asset (integer string scaled by
// its precision) into a HIVE amount with 3 decimal places.
func formatVestedAmount(asset *adapter.Asset) string {
	if asset == nil {
		return "0.000"
	}

	raw, err := decimal.NewFromString(asset.Amount)
	if err != nil {
		return "0.000"
	}

	precision := asset.Precision
	if precision <= 0 {
		precision = 3
	}

	return raw.Shift(int32(-precision)).StringFixed(3)
}
