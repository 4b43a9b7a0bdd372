package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindCashAccount retrieves the single Cash account.
	FindCashAccount(ctx context.Context) (*domain.Account, error)

	// ListBankAccounts retrieves all Bank accounts ordered by name.
	ListBankAccounts(ctx context.Context) ([]domain.Account, error)

	// GetAccountBalance returns the cached balance of an account.
	GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations that support account transactions
type AccountTransactionSupport interface {
	// FindAccountByIDForUpdate selects an account and locks it within a transaction.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// UpdateAccountBalanceInTx sets the cached balance of an account within a transaction.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, newBalance decimal.Decimal, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
