package domain

import "github.com/shopspring/decimal"

// TransferIntent describes a movement of value between two accounts.
// Cash-side ids are optional since there is only one Cash account.
type TransferIntent struct {
	SourceAccountID string
	SourceKind      AccountKind
	DestAccountID   string
	DestKind        AccountKind
	Amount          decimal.Decimal
	Description     string
}

// TransferResult holds the two records of a completed transfer.
type TransferResult struct {
	Debit  TransactionRecord `json:"debit"`
	Credit TransactionRecord `json:"credit"`
}
