package dto

import (
	"time"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListTransactionsParams defines query parameters for an account statement.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse defines the data returned for a transaction record.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	SignedAmount  decimal.Decimal `json:"signedAmount"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Description   string          `json:"description"`
	Timestamp     time.Time       `json:"timestamp"`
	CausedBy      *string         `json:"causedBy,omitempty"`
}

// ListTransactionsResponse is one page of an account statement.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.TransactionRecord to TransactionResponse DTO.
func ToTransactionResponse(rec *domain.TransactionRecord) TransactionResponse {
	return TransactionResponse{
		TransactionID: rec.TransactionID,
		AccountID:     rec.AccountID,
		SignedAmount:  rec.SignedAmount,
		BalanceAfter:  rec.BalanceAfter,
		Description:   rec.Description,
		Timestamp:     rec.Timestamp,
		CausedBy:      rec.CausedBy,
	}
}

// ToTransactionResponses converts a slice of records to []TransactionResponse.
func ToTransactionResponses(recs []domain.TransactionRecord) []TransactionResponse {
	responses := make([]TransactionResponse, len(recs))
	for i, rec := range recs {
		responses[i] = ToTransactionResponse(&rec)
	}
	return responses
}
