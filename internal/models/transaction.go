package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the row shape of the account_transactions table.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	SignedAmount  decimal.Decimal `db:"signed_amount"`
	Description   string          `db:"description"`
	CausedBy      sql.NullString  `db:"caused_by"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	CreatedAt     time.Time       `db:"created_at"`
}
