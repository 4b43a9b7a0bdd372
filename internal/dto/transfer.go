package dto

import (
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransferRequest defines the data needed to move value between accounts.
type CreateTransferRequest struct {
	SourceAccountID string             `json:"sourceAccountID"`
	SourceKind      domain.AccountKind `json:"sourceKind" binding:"required,oneof=CASH BANK"`
	DestAccountID   string             `json:"destAccountID"`
	DestKind        domain.AccountKind `json:"destKind" binding:"required,oneof=CASH BANK"`
	Amount          decimal.Decimal    `json:"amount"`
	Description     string             `json:"description" binding:"max=255"`
}

// ToTransferIntent converts the request into a domain.TransferIntent.
func (r CreateTransferRequest) ToTransferIntent() domain.TransferIntent {
	return domain.TransferIntent{
		SourceAccountID: r.SourceAccountID,
		SourceKind:      r.SourceKind,
		DestAccountID:   r.DestAccountID,
		DestKind:        r.DestKind,
		Amount:          r.Amount,
		Description:     r.Description,
	}
}

// TransferResponse defines the data returned for a completed transfer.
type TransferResponse struct {
	Debit  TransactionResponse `json:"debit"`
	Credit TransactionResponse `json:"credit"`
}

// ToTransferResponse converts a domain.TransferResult to TransferResponse DTO.
func ToTransferResponse(res *domain.TransferResult) TransferResponse {
	return TransferResponse{
		Debit:  ToTransactionResponse(&res.Debit),
		Credit: ToTransactionResponse(&res.Credit),
	}
}
