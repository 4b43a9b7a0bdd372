package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind mirrors domain.AccountKind for storage.
type AccountKind string

// Account is the row shape of the accounts table.
type Account struct {
	AccountID     string          `db:"account_id"`
	Kind          AccountKind     `db:"kind"`
	DisplayName   string          `db:"display_name"`
	Balance       decimal.Decimal `db:"balance"`
	CreatedAt     time.Time       `db:"created_at"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
}
