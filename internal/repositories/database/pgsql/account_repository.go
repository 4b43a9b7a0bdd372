package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/inventory_ledger/internal/models"
	"github.com/SscSPs/inventory_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, kind, display_name, balance, created_at, last_updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	if err := row.Scan(&m.AccountID, &m.Kind, &m.DisplayName, &m.Balance, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
		return nil, err
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (account_id, kind, display_name, balance, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query, m.AccountID, m.Kind, m.DisplayName, m.Balance, m.CreatedAt, m.LastUpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account %s (%s) already exists", apperrors.ErrDuplicate, m.AccountID, m.Kind)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return acc, nil
}

// FindCashAccount retrieves the single Cash account.
func (r *PgxAccountRepository) FindCashAccount(ctx context.Context) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE kind = 'CASH' LIMIT 1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cash account: %w", err)
	}
	return acc, nil
}

// ListBankAccounts retrieves all Bank accounts ordered by name.
func (r *PgxAccountRepository) ListBankAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE kind = 'BANK' ORDER BY display_name, account_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank account row: %w", err)
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank account rows: %w", err)
	}
	return accounts, nil
}

// GetAccountBalance returns the cached balance of an account.
func (r *PgxAccountRepository) GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.Pool.QueryRow(ctx, `SELECT balance FROM accounts WHERE account_id = $1;`, accountID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to read balance of account %s: %w", accountID, err)
	}
	return balance, nil
}

// FindAccountByIDForUpdate selects an account and locks its row until tx ends.
func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	acc, err := scanAccount(tx.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}
	return acc, nil
}

// UpdateAccountBalanceInTx sets the cached balance of a locked account.
func (r *PgxAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, newBalance decimal.Decimal, now time.Time) error {
	query := `UPDATE accounts SET balance = $2, last_updated_at = $3 WHERE account_id = $1;`
	ct, err := tx.Exec(ctx, query, accountID, newBalance, now)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %s: %w", accountID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountID)
	}
	return nil
}
