package dto

import (
	"time"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest defines the data needed to create a new Bank account.
type CreateBankAccountRequest struct {
	DisplayName string `json:"displayName" binding:"required,max=120"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	Kind          domain.AccountKind `json:"kind"`
	DisplayName   string             `json:"displayName"`
	Balance       decimal.Decimal    `json:"balance"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Kind:          acc.Kind,
		DisplayName:   acc.DisplayName,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}
