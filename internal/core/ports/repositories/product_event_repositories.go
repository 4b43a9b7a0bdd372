package repositories

import (
	"context"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
)

// ProductReader resolves products.
type ProductReader interface {
	// FindProductByID retrieves a product, or apperrors.ErrNotFound.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
}

// ProductEventSource fetches the raw per-product event streams. Each returns
// an unordered slice.
type ProductEventSource interface {
	FetchProductPurchases(ctx context.Context, productID string) ([]domain.PurchaseRecord, error)
	FetchProductArrivals(ctx context.Context, productID string) ([]domain.ArrivalRecord, error)
	FetchProductSales(ctx context.Context, productID string) ([]domain.SaleRecord, error)
}

// ProductHistoryRepositoryFacade combines product lookups and event sources
type ProductHistoryRepositoryFacade interface {
	ProductReader
	ProductEventSource
}
