package service

import (
	"github.com/shopspring/decimal"

	"github.com/enrique89ve/hive-challenge-analyzer/internal/types"
)

// ResolveEligibility sums the validated transactions and decides pass/fail
// against the minimum threshold. The threshold applies to the aggregate,
// never to any single transaction. The headline fields carry the first
// transaction found during the backward page walk, i.e. the most recent
// qualifying one.
func ResolveEligibility(transactions []types.PowerUpTransaction, minThreshold decimal.Decimal) *types.PowerUpResult {
	if len(transactions) == 0 {
		return &types.PowerUpResult{HasPowerUp: false}
	}

	total := decimal.Zero
	for _, tx := range transactions {
		amount, err := decimal.NewFromString(tx.Amount)
		if err != nil {
			continue
		}
		total = total.Add(amount)
	}

	if minThreshold.IsPositive() && total.LessThan(minThreshold) {
		return &types.PowerUpResult{HasPowerUp: false}
	}

	first := transactions[0]
	return &types.PowerUpResult{
		HasPowerUp:          true,
		PowerUpDate:         first.Date,
		PowerUpAmount:       first.Amount,
		PowerUpTxID:         first.TxID,
		PowerUpTransactions: transactions,
		TotalPowerUp:        total.StringFixed(3),
	}
}
