package services

import (
	"context"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/SscSPs/inventory_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountResolverSvc defines read operations for account data
type AccountResolverSvc interface {
	// ResolveAccount returns the Cash account (id ignored) or the Bank account with the given id.
	ResolveAccount(ctx context.Context, kind domain.AccountKind, accountID string) (*domain.Account, error)

	// GetAccountByID returns an account of either kind.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// CurrentBalance returns the cached balance. Treat it as stale.
	CurrentBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// ListAccounts returns the Cash account followed by all Bank accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListBankAccounts returns all Bank accounts.
	ListBankAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriterSvc defines account creation
type AccountWriterSvc interface {
	// EnsureCashAccount creates the Cash account if it does not exist yet.
	EnsureCashAccount(ctx context.Context, displayName string) (*domain.Account, error)

	// CreateBankAccount creates a Bank account with a zero balance.
	CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest) (*domain.Account, error)
}

// AccountVerifierSvc checks the balance invariant
type AccountVerifierSvc interface {
	// VerifyBalance compares the cached balance with the sum of the account's records.
	VerifyBalance(ctx context.Context, accountID string) (*domain.BalanceVerification, error)
}

// AccountRegistrySvcFacade combines all account-related service interfaces
type AccountRegistrySvcFacade interface {
	AccountResolverSvc
	AccountWriterSvc
	AccountVerifierSvc
}
