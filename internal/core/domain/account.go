package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind distinguishes the single Cash account from Bank accounts.
type AccountKind string

const (
	Cash AccountKind = "CASH"
	Bank AccountKind = "BANK"
)

// IsValid reports whether k is a known account kind.
func (k AccountKind) IsValid() bool {
	return k == Cash || k == Bank
}

// Account is a named balance bucket.
// Balance always equals the sum of SignedAmount over the account's TransactionRecords.
type Account struct {
	AccountID     string          `json:"accountID"`
	Kind          AccountKind     `json:"kind"`
	DisplayName   string          `json:"displayName"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// BalanceVerification compares the cached balance with the sum of records.
type BalanceVerification struct {
	AccountID   string          `json:"accountID"`
	Cached      decimal.Decimal `json:"cached"`
	Computed    decimal.Decimal `json:"computed"`
	RecordCount int             `json:"recordCount"`
	Consistent  bool            `json:"consistent"`
}
