package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxProductHistoryRepository reads the raw purchase, arrival and sale streams of a product.
type PgxProductHistoryRepository struct {
	BaseRepository
}

func newPgxProductHistoryRepository(pool *pgxpool.Pool) *PgxProductHistoryRepository {
	return &PgxProductHistoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductHistoryRepositoryFacade = (*PgxProductHistoryRepository)(nil)

// FindProductByID retrieves a product by its ID.
func (r *PgxProductHistoryRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	var p domain.Product
	err := r.Pool.QueryRow(ctx, `SELECT product_id, name, sku FROM products WHERE product_id = $1;`, productID).
		Scan(&p.ProductID, &p.Name, &p.SKU)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return &p, nil
}

// FetchProductPurchases returns the purchases of a product in no particular order.
func (r *PgxProductHistoryRepository) FetchProductPurchases(ctx context.Context, productID string) ([]domain.PurchaseRecord, error) {
	query := `
		SELECT p.purchase_id, p.purchased_at, p.quantity, p.amount, COALESCE(s.name, p.supplier_id)
		FROM product_purchases p
		LEFT JOIN suppliers s ON s.supplier_id = p.supplier_id
		WHERE p.product_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases of product %s: %w", productID, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PurchaseRecord, error) {
		var rec domain.PurchaseRecord
		err := row.Scan(&rec.RecordID, &rec.PurchasedAt, &rec.Quantity, &rec.Amount, &rec.SupplierName)
		return rec, err
	})
}

// FetchProductArrivals returns the warehouse arrivals of a product in no particular order.
func (r *PgxProductHistoryRepository) FetchProductArrivals(ctx context.Context, productID string) ([]domain.ArrivalRecord, error) {
	query := `
		SELECT a.arrival_id, a.arrived_at, a.quantity, COALESCE(w.name, a.warehouse_id)
		FROM product_arrivals a
		LEFT JOIN warehouses w ON w.warehouse_id = a.warehouse_id
		WHERE a.product_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query arrivals of product %s: %w", productID, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ArrivalRecord, error) {
		var rec domain.ArrivalRecord
		err := row.Scan(&rec.RecordID, &rec.ArrivedAt, &rec.Quantity, &rec.WarehouseName)
		return rec, err
	})
}

// FetchProductSales returns the sales of a product in no particular order.
func (r *PgxProductHistoryRepository) FetchProductSales(ctx context.Context, productID string) ([]domain.SaleRecord, error) {
	query := `
		SELECT sl.sale_id, sl.sold_at, sl.quantity, sl.amount, COALESCE(c.name, sl.customer_id)
		FROM product_sales sl
		LEFT JOIN customers c ON c.customer_id = sl.customer_id
		WHERE sl.product_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales of product %s: %w", productID, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SaleRecord, error) {
		var rec domain.SaleRecord
		err := row.Scan(&rec.RecordID, &rec.SoldAt, &rec.Quantity, &rec.Amount, &rec.CustomerName)
		return rec, err
	})
}
