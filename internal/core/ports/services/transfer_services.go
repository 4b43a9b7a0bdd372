package services

import (
	"context"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
)

// TransferSvc moves value between accounts.
type TransferSvc interface {
	// Transfer debits the source and credits the destination. It is not idempotent.
	Transfer(ctx context.Context, intent domain.TransferIntent) (*domain.TransferResult, error)
}
