package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager opens the database transaction a balance change is
// applied in. The account row lock taken inside it lasts until Commit or Rollback.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	// Rollback is a no-op on a transaction that already ended.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
