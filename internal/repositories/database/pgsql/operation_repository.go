package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxOperationRepository persists the non-account effects of purchases and expenses.
type PgxOperationRepository struct {
	BaseRepository
}

func newPgxOperationRepository(pool *pgxpool.Pool) *PgxOperationRepository {
	return &PgxOperationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OperationRepositoryFacade = (*PgxOperationRepository)(nil)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// PersistInventoryChange writes the purchase row, creating the product first
// when the draft does not reference an existing one. Both inserts share a transaction.
func (r *PgxOperationRepository) PersistInventoryChange(ctx context.Context, draft domain.ProductDraft) (string, error) {
	purchaseID := uuid.NewString()
	productID := draft.ProductID
	now := time.Now()

	err := r.withTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		if productID == "" {
			productID = uuid.NewString()
			batch.Queue(`INSERT INTO products (product_id, name, sku, created_at) VALUES ($1, $2, $3, $4);`,
				productID, draft.Name, draft.SKU, now)
		}
		batch.Queue(`
			INSERT INTO product_purchases (purchase_id, product_id, supplier_id, warehouse_id, quantity, unit_cost, amount, purchased_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
			purchaseID, productID, draft.SupplierID, nullString(draft.WarehouseID),
			draft.Quantity, draft.UnitCost, draft.Amount, draft.PurchasedAt, now)

		br := tx.SendBatch(ctx, batch)
		var batchErr error
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil && batchErr == nil {
				batchErr = err
			}
		}
		if err := br.Close(); err != nil && batchErr == nil {
			batchErr = err
		}
		return batchErr
	})
	if err != nil {
		return "", fmt.Errorf("failed to persist inventory change for product %s: %w", productID, err)
	}
	return purchaseID, nil
}

// PersistSupplierLedgerEntry writes a ledger entry against a supplier.
func (r *PgxOperationRepository) PersistSupplierLedgerEntry(ctx context.Context, entry domain.SupplierLedgerEntry) (string, error) {
	entryID := uuid.NewString()
	query := `
		INSERT INTO supplier_ledger_entries (entry_id, supplier_id, amount, description, inventory_record_id, payment_method, entry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query, entryID, entry.SupplierID, entry.Amount, entry.Description,
		entry.InventoryRecordID, string(entry.PaymentMethod), entry.EntryDate, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to persist supplier ledger entry for supplier %s: %w", entry.SupplierID, err)
	}
	return entryID, nil
}

// PersistExpenseEntry writes an expense ledger entry.
func (r *PgxOperationRepository) PersistExpenseEntry(ctx context.Context, expense domain.ExpenseRequest) (string, error) {
	expenseID := uuid.NewString()
	query := `
		INSERT INTO expense_entries (expense_id, category, amount, payment_method, account_id, description, payee_name, expense_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query, expenseID, expense.Category, expense.Amount, string(expense.PaymentMethod),
		nullString(expense.AccountID), expense.Description, expense.PayeeName, expense.ExpenseDate, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to persist expense entry (%s): %w", expense.Category, err)
	}
	return expenseID, nil
}

// PersistDeferredPayment records a cheque or credit payment intent. The
// caller's DeferredID is used as the key so a retried write cannot duplicate.
func (r *PgxOperationRepository) PersistDeferredPayment(ctx context.Context, payment domain.DeferredPayment) (string, error) {
	if payment.DeferredID == "" {
		payment.DeferredID = uuid.NewString()
	}
	query := `
		INSERT INTO deferred_payments (deferred_id, operation, reference_id, method, amount, counterparty_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query, payment.DeferredID, payment.Operation, payment.ReferenceID,
		string(payment.Method), payment.Amount, payment.CounterpartyID, payment.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%w: deferred payment %s", apperrors.ErrDuplicate, payment.DeferredID)
		}
		return "", fmt.Errorf("failed to persist deferred payment for %s %s: %w", payment.Operation, payment.ReferenceID, err)
	}
	return payment.DeferredID, nil
}
