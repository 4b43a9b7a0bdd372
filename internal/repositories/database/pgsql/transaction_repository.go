package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/inventory_ledger/internal/models"
	"github.com/SscSPs/inventory_ledger/internal/utils/mapping"
	"github.com/SscSPs/inventory_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// SaveTransactionInTx appends a record within tx.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, record domain.TransactionRecord) error {
	m := mapping.ToModelTransaction(record)
	query := `
		INSERT INTO account_transactions (transaction_id, account_id, signed_amount, description, caused_by, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query, m.TransactionID, m.AccountID, m.SignedAmount, m.Description, m.CausedBy, m.BalanceAfter, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction %s already recorded", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a single record by its id.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.TransactionRecord, error) {
	query := `
		SELECT transaction_id, account_id, signed_amount, description, caused_by, balance_after, created_at
		FROM account_transactions
		WHERE transaction_id = $1;
	`
	var t models.Transaction
	err := r.Pool.QueryRow(ctx, query, transactionID).Scan(&t.TransactionID, &t.AccountID, &t.SignedAmount, &t.Description, &t.CausedBy, &t.BalanceAfter, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	record := mapping.ToDomainTransaction(t)
	return &record, nil
}

// ListTransactionsByAccountID retrieves a page of records for an account,
// newest first, using keyset pagination on (created_at, transaction_id).
func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.TransactionRecord, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// one extra row tells us whether there is a next page
	fetchLimit := limit + 1

	baseQuery := `
		SELECT transaction_id, account_id, signed_amount, description, caused_by, balance_after, created_at
		FROM account_transactions
		WHERE account_id = $1
	`
	orderByClause := `ORDER BY created_at DESC, transaction_id DESC`
	args := []any{accountID}

	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		query += ` AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for account "+accountID, err)
	}
	defer rows.Close()

	results := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.TransactionID, &t.AccountID, &t.SignedAmount, &t.Description, &t.CausedBy, &t.BalanceAfter, &t.CreatedAt); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row for account "+accountID, err)
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows for account "+accountID, err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		last := results[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		nextTokenVal = &token
		results = results[:limit]
	}

	records := make([]domain.TransactionRecord, len(results))
	for i, t := range results {
		records[i] = mapping.ToDomainTransaction(t)
	}
	return records, nextTokenVal, nil
}

// SumSignedAmountsByAccountID returns the sum of signed amounts and the record count for an account.
func (r *PgxTransactionRepository) SumSignedAmountsByAccountID(ctx context.Context, accountID string) (decimal.Decimal, int, error) {
	var (
		sum   decimal.Decimal
		count int
	)
	query := `SELECT COALESCE(SUM(signed_amount), 0), COUNT(*) FROM account_transactions WHERE account_id = $1;`
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&sum, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to sum transactions for account %s: %w", accountID, err)
	}
	return sum, count, nil
}
