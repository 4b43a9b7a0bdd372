package services

import (
	"context"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
)

// PurchaseSvc executes supplier purchases.
// On a partial failure the returned result is non-nil alongside the error and
// holds every effect that committed.
type PurchaseSvc interface {
	// ExecutePurchase runs inventory, supplier ledger and payment steps in order.
	ExecutePurchase(ctx context.Context, req domain.PurchaseRequest) (*domain.PurchaseResult, error)

	// ResumePurchase replays only the steps not marked committed in prior.
	ResumePurchase(ctx context.Context, req domain.PurchaseRequest, prior domain.PurchaseResult) (*domain.PurchaseResult, error)
}

// ExpenseSvc executes expenses. Partial failures return the result as PurchaseSvc does.
type ExpenseSvc interface {
	// ExecuteExpense runs the expense ledger and payment steps in order.
	ExecuteExpense(ctx context.Context, req domain.ExpenseRequest) (*domain.ExpenseResult, error)

	// ResumeExpense replays only the steps not marked committed in prior.
	ResumeExpense(ctx context.Context, req domain.ExpenseRequest, prior domain.ExpenseResult) (*domain.ExpenseResult, error)
}

// OperationSvcFacade combines the business operation services
type OperationSvcFacade interface {
	PurchaseSvc
	ExpenseSvc
}
