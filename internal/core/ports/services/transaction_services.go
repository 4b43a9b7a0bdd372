package services

import (
	"context"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/SscSPs/inventory_ledger/internal/dto"
)

// TransactionApplierSvc is the single mutation point for account balances.
type TransactionApplierSvc interface {
	// ApplyTransaction atomically appends a record and updates the balance.
	ApplyTransaction(ctx context.Context, req domain.TransactionRequest) (*domain.TransactionRecord, error)

	// FindAppliedTransaction returns the record stored under recordID, or
	// apperrors.ErrNotFound. Callers use it to settle a step whose outcome is unknown.
	FindAppliedTransaction(ctx context.Context, recordID string) (*domain.TransactionRecord, error)
}

// TransactionReaderSvc defines read operations for transaction records
type TransactionReaderSvc interface {
	// ListAccountTransactions returns a page of an account's records, newest first.
	ListAccountTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionRecorderSvcFacade combines all transaction-record service interfaces
type TransactionRecorderSvcFacade interface {
	TransactionApplierSvc
	TransactionReaderSvc
}
