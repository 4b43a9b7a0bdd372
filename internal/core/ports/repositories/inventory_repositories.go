package repositories

import (
	"context"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
)

// InventoryWriter persists stock changes.
type InventoryWriter interface {
	// PersistInventoryChange writes the inventory record of a purchase and returns its id.
	PersistInventoryChange(ctx context.Context, draft domain.ProductDraft) (string, error)
}

// SupplierLedgerWriter persists supplier ledger entries.
type SupplierLedgerWriter interface {
	// PersistSupplierLedgerEntry writes a ledger entry against a supplier and returns its id.
	PersistSupplierLedgerEntry(ctx context.Context, entry domain.SupplierLedgerEntry) (string, error)
}

// ExpenseWriter persists expense ledger entries.
type ExpenseWriter interface {
	// PersistExpenseEntry writes an expense ledger entry and returns its id.
	PersistExpenseEntry(ctx context.Context, expense domain.ExpenseRequest) (string, error)
}

// DeferredPaymentWriter persists cheque/credit payment intents.
type DeferredPaymentWriter interface {
	// PersistDeferredPayment records a deferred payment and returns its id.
	PersistDeferredPayment(ctx context.Context, payment domain.DeferredPayment) (string, error)
}

// OperationRepositoryFacade combines the writers used by business operations
type OperationRepositoryFacade interface {
	InventoryWriter
	SupplierLedgerWriter
	ExpenseWriter
	DeferredPaymentWriter
}
