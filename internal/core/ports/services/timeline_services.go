package services

import (
	"context"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
)

// TimelineSvc builds per-product event timelines.
type TimelineSvc interface {
	// BuildTimeline merges purchases, arrivals and sales of a product into one ordered view.
	BuildTimeline(ctx context.Context, productID string) (*domain.ProductTimeline, error)
}
