package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountRegistry resolves the Cash account and Bank accounts.
type accountRegistry struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	txnReader   portsrepo.TransactionReader
}

// NewAccountRegistry creates the account registry.
func NewAccountRegistry(accountRepo portsrepo.AccountRepositoryFacade, txnReader portsrepo.TransactionReader) portssvc.AccountRegistrySvcFacade {
	return &accountRegistry{
		accountRepo: accountRepo,
		txnReader:   txnReader,
	}
}

var _ portssvc.AccountRegistrySvcFacade = (*accountRegistry)(nil)

// accountNotFound maps a repository not-found into ErrAccountNotFound.
func accountNotFound(err error, accountID string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
	}
	return err
}

func (s *accountRegistry) ResolveAccount(ctx context.Context, kind domain.AccountKind, accountID string) (*domain.Account, error) {
	switch kind {
	case domain.Cash:
		account, err := s.accountRepo.FindCashAccount(ctx)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				s.LogError(ctx, err, "Failed to find cash account")
			}
			return nil, accountNotFound(err, "cash")
		}
		return account, nil
	case domain.Bank:
		if accountID == "" {
			return nil, fmt.Errorf("%w: bank account id is required", apperrors.ErrValidation)
		}
		account, err := s.accountRepo.FindAccountByID(ctx, accountID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				s.LogError(ctx, err, "Failed to find bank account", slog.String("account_id", accountID))
			}
			return nil, accountNotFound(err, accountID)
		}
		if account.Kind != domain.Bank {
			s.LogDebug(ctx, "Account found but is not a bank account",
				slog.String("account_id", accountID),
				slog.String("kind", string(account.Kind)))
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, accountID)
		}
		return account, nil
	default:
		return nil, fmt.Errorf("%w: unknown account kind '%s'", apperrors.ErrValidation, kind)
	}
}

func (s *accountRegistry) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, accountNotFound(err, accountID)
	}
	return account, nil
}

func (s *accountRegistry) CurrentBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	balance, err := s.accountRepo.GetAccountBalance(ctx, accountID)
	if err != nil {
		return decimal.Zero, accountNotFound(err, accountID)
	}
	return balance, nil
}

func (s *accountRegistry) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0)
	cash, err := s.accountRepo.FindCashAccount(ctx)
	switch {
	case err == nil:
		accounts = append(accounts, *cash)
	case errors.Is(err, apperrors.ErrNotFound):
		s.LogWarn(ctx, nil, "Cash account has not been created yet")
	default:
		s.LogError(ctx, err, "Failed to find cash account")
		return nil, err
	}

	banks, err := s.ListBankAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return append(accounts, banks...), nil
}

func (s *accountRegistry) ListBankAccounts(ctx context.Context) ([]domain.Account, error) {
	banks, err := s.accountRepo.ListBankAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank accounts")
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	if banks == nil {
		return []domain.Account{}, nil
	}
	return banks, nil
}

func (s *accountRegistry) EnsureCashAccount(ctx context.Context, displayName string) (*domain.Account, error) {
	existing, err := s.accountRepo.FindCashAccount(ctx)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up cash account")
		return nil, err
	}

	if strings.TrimSpace(displayName) == "" {
		displayName = "Cash"
	}
	now := time.Now()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		Kind:          domain.Cash,
		DisplayName:   displayName,
		Balance:       decimal.Zero,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		// another instance created it first
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.accountRepo.FindCashAccount(ctx)
		}
		s.LogError(ctx, err, "Failed to create cash account")
		return nil, err
	}

	s.LogInfo(ctx, "Cash account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountRegistry) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest) (*domain.Account, error) {
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, fmt.Errorf("%w: display name is required", apperrors.ErrValidation)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		Kind:          domain.Bank,
		DisplayName:   name,
		Balance:       decimal.Zero,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save bank account", slog.String("display_name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Bank account created successfully", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountRegistry) VerifyBalance(ctx context.Context, accountID string) (*domain.BalanceVerification, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, accountNotFound(err, accountID)
	}

	computed, count, err := s.txnReader.SumSignedAmountsByAccountID(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account transactions", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to sum transactions for account %s: %w", accountID, err)
	}

	v := &domain.BalanceVerification{
		AccountID:   accountID,
		Cached:      account.Balance,
		Computed:    computed,
		RecordCount: count,
		Consistent:  account.Balance.Equal(computed),
	}
	if !v.Consistent {
		s.LogError(ctx, apperrors.ErrInternal, "Cached balance does not match transaction records",
			slog.String("account_id", accountID),
			slog.String("cached", account.Balance.String()),
			slog.String("computed", computed.String()))
	}
	return v, nil
}
