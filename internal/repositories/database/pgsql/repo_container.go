package pgsql

import (
	portsrepo "github.com/SscSPs/inventory_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:        newPgxAccountRepository(dbPool),
		TransactionRepo:    newPgxTransactionRepository(dbPool),
		OperationRepo:      newPgxOperationRepository(dbPool),
		ProductHistoryRepo: newPgxProductHistoryRepository(dbPool),
	}
}
