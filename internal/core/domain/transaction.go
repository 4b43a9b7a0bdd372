package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction tells the recorder whether to add to or subtract from a balance.
type Direction string

const (
	Add      Direction = "ADD"
	Subtract Direction = "SUBTRACT"
)

// TransactionRequest is the input to the transaction recorder.
// RecordID is optional; when set it becomes the TransactionID of the record.
type TransactionRequest struct {
	RecordID    string
	AccountID   string
	Amount      decimal.Decimal // always positive
	Direction   Direction
	Description string
	CausedBy    *string
}

// TransactionRecord is an immutable, append-only balance movement on one account.
type TransactionRecord struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	SignedAmount  decimal.Decimal `json:"signedAmount"`
	Description   string          `json:"description"`
	Timestamp     time.Time       `json:"timestamp"`
	CausedBy      *string         `json:"causedBy,omitempty"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
}
