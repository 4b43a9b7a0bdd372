package repositories

import (
	"context"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for transaction records
type TransactionReader interface {
	// FindTransactionByID retrieves a single record, or apperrors.ErrNotFound.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.TransactionRecord, error)

	// ListTransactionsByAccountID retrieves a page of records for an account, newest first.
	// It returns the records, a token for the next page, and an error.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.TransactionRecord, *string, error)

	// SumSignedAmountsByAccountID returns the sum of signed amounts and the record count for an account.
	SumSignedAmountsByAccountID(ctx context.Context, accountID string) (decimal.Decimal, int, error)
}

// TransactionWriter defines write operations for transaction records
type TransactionWriter interface {
	// SaveTransactionInTx appends a record within a transaction.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, record domain.TransactionRecord) error
}

// TransactionRepositoryFacade combines all transaction-record repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
