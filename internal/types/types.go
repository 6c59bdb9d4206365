// Package types provides common type definitions for the challenge analyzer.
package types

import "time"

// OperationTypeID identifies a Hive operation type in the HAFAH API.
type OperationTypeID int

// OpTransferToVesting is the operation type for a power-up
// (liquid HIVE converted into vesting shares).
const OpTransferToVesting OperationTypeID = 77

// DateRange is the exact analysis window. Both bounds are UTC instants
// and StartDate must be strictly before EndDate.
type DateRange struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Valid reports whether the range is usable for an analysis run.
func (r DateRange) Valid() bool {
	return !r.StartDate.IsZero() && !r.EndDate.IsZero() && r.StartDate.Before(r.EndDate)
}

// Contains reports whether t falls within the range, bounds inclusive.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.StartDate) && !t.After(r.EndDate)
}

// ExtendedDateRange is a DateRange padded with the safety margin used to
// drive the upstream block-range filter. FromBlock/ToBlock carry the
// formatted query bounds, the instants drive the early-exit check.
type ExtendedDateRange struct {
	FromBlock     string
	ToBlock       string
	FromBlockDate time.Time
	ToBlockDate   time.Time
}

// PowerUpTransaction is one validated, deduplicated power-up operation.
type PowerUpTransaction struct {
	Date   string `json:"date"`   // formatted UTC display string
	Amount string `json:"amount"` // HIVE with 3 decimal places
	TxID   string `json:"txId"`
}

// PowerUpResult is the resolved power-up outcome for one user and one
// date range. The headline fields describe the first transaction seen
// during the backward page walk, i.e. the most recent qualifying one.
type PowerUpResult struct {
	HasPowerUp          bool                 `json:"hasPowerUp"`
	PowerUpDate         string               `json:"powerUpDate,omitempty"`
	PowerUpAmount       string               `json:"powerUpAmount,omitempty"`
	PowerUpTxID         string               `json:"powerUpTxId,omitempty"`
	PowerUpTransactions []PowerUpTransaction `json:"powerUpTransactions,omitempty"`
	TotalPowerUp        string               `json:"totalPowerUp,omitempty"`
}

// Participant is one challenge participant after classification. Fields
// are only mutated during the duplicate-author merge step.
type Participant struct {
	Name                string               `json:"name"`
	Images              []string             `json:"images"`
	PowerUpDate         string               `json:"powerUpDate,omitempty"`
	PowerUpAmount       string               `json:"powerUpAmount,omitempty"`
	PowerUpTxID         string               `json:"powerUpTxId,omitempty"`
	PowerUpTransactions []PowerUpTransaction `json:"powerUpTransactions,omitempty"`
	TotalPowerUp        string               `json:"totalPowerUp,omitempty"`
	HasImages           bool                 `json:"hasImages"`
	HasPowerUp          bool                 `json:"hasPowerUp"`
	Reason              string               `json:"reason,omitempty"`
	CommentCount        int                  `json:"commentCount,omitempty"`
}

// ChallengeAnalysis is the final three-way partition of one analysis run.
type ChallengeAnalysis struct {
	ValidUsers    []Participant `json:"validUsers"`
	InvalidUsers  []Participant `json:"invalidUsers"`
	IgnoredUsers  []string      `json:"ignoredUsers"`
	TotalComments int           `json:"totalComments"`
}

// ProgressFunc is an observer invoked after each comment is resolved,
// with the number processed so far and the total.
type ProgressFunc func(processed, total int)

// ServiceError represents a structured error response.
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return e.Code + ": " + e.Message
}
