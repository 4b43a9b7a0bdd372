package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// timelineAggregator merges a product's purchase, arrival and sale streams.
type timelineAggregator struct {
	BaseService
	repo portsrepo.ProductHistoryRepositoryFacade
}

// NewTimelineAggregator creates the product timeline service.
func NewTimelineAggregator(repo portsrepo.ProductHistoryRepositoryFacade) portssvc.TimelineSvc {
	return &timelineAggregator{repo: repo}
}

var _ portssvc.TimelineSvc = (*timelineAggregator)(nil)

func (s *timelineAggregator) BuildTimeline(ctx context.Context, productID string) (*domain.ProductTimeline, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product id is required", apperrors.ErrValidation)
	}

	product, err := s.repo.FindProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrProductNotFound, productID)
		}
		s.LogError(ctx, err, "Failed to find product", slog.String("product_id", productID))
		return nil, err
	}

	var (
		purchases []domain.PurchaseRecord
		arrivals  []domain.ArrivalRecord
		sales     []domain.SaleRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		purchases, err = s.repo.FetchProductPurchases(gctx, productID)
		return wrapFetch("purchases", err)
	})
	g.Go(func() error {
		var err error
		arrivals, err = s.repo.FetchProductArrivals(gctx, productID)
		return wrapFetch("arrivals", err)
	})
	g.Go(func() error {
		var err error
		sales, err = s.repo.FetchProductSales(gctx, productID)
		return wrapFetch("sales", err)
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to fetch product history", slog.String("product_id", productID))
		return nil, err
	}

	events := mergeEvents(purchases, arrivals, sales)
	customers := groupByCustomer(sales)

	summary, err := summarize(purchases, arrivals, sales, customers)
	if err != nil {
		s.LogError(ctx, err, "Timeline summary cross-check failed", slog.String("product_id", productID))
		return nil, err
	}

	s.LogDebug(ctx, "Timeline built",
		slog.String("product_id", productID),
		slog.Int("events", len(events)))
	return &domain.ProductTimeline{
		Product:   *product,
		Events:    events,
		Summary:   summary,
		Customers: customers,
	}, nil
}

func wrapFetch(source string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to fetch product %s: %w", source, err)
}

// mergeEvents maps each source to ProductEvent and orders by date, breaking
// ties purchase < arrival < sale. Records equal on both keep source order.
func mergeEvents(purchases []domain.PurchaseRecord, arrivals []domain.ArrivalRecord, sales []domain.SaleRecord) []domain.ProductEvent {
	events := make([]domain.ProductEvent, 0, len(purchases)+len(arrivals)+len(sales))
	for _, p := range purchases {
		events = append(events, domain.ProductEvent{
			Date:             p.PurchasedAt,
			Kind:             domain.EventPurchase,
			Quantity:         p.Quantity,
			QuantityDelta:    p.Quantity,
			Amount:           p.Amount,
			CounterpartyName: p.SupplierName,
			SourceID:         p.RecordID,
		})
	}
	for _, a := range arrivals {
		events = append(events, domain.ProductEvent{
			Date:             a.ArrivedAt,
			Kind:             domain.EventArrival,
			Quantity:         a.Quantity,
			QuantityDelta:    a.Quantity,
			Amount:           decimal.Zero,
			CounterpartyName: a.WarehouseName,
			SourceID:         a.RecordID,
		})
	}
	for _, sl := range sales {
		events = append(events, domain.ProductEvent{
			Date:             sl.SoldAt,
			Kind:             domain.EventSale,
			Quantity:         sl.Quantity,
			QuantityDelta:    sl.Quantity.Neg(),
			Amount:           sl.Amount,
			CounterpartyName: sl.CustomerName,
			SourceID:         sl.RecordID,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].Kind.Rank() < events[j].Kind.Rank()
	})
	return events
}

func groupByCustomer(sales []domain.SaleRecord) []domain.CustomerSales {
	byName := make(map[string]*domain.CustomerSales)
	for _, sl := range sales {
		c, ok := byName[sl.CustomerName]
		if !ok {
			c = &domain.CustomerSales{CustomerName: sl.CustomerName}
			byName[sl.CustomerName] = c
		}
		c.Quantity = c.Quantity.Add(sl.Quantity)
		c.Amount = c.Amount.Add(sl.Amount)
		c.SaleCount++
	}

	customers := make([]domain.CustomerSales, 0, len(byName))
	for _, c := range byName {
		customers = append(customers, *c)
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].CustomerName < customers[j].CustomerName
	})
	return customers
}

func summarize(purchases []domain.PurchaseRecord, arrivals []domain.ArrivalRecord, sales []domain.SaleRecord, customers []domain.CustomerSales) (domain.TimelineSummary, error) {
	var sum domain.TimelineSummary
	for _, p := range purchases {
		sum.PurchasedQuantity = sum.PurchasedQuantity.Add(p.Quantity)
		sum.PurchasedAmount = sum.PurchasedAmount.Add(p.Amount)
	}
	for _, a := range arrivals {
		sum.ArrivedQuantity = sum.ArrivedQuantity.Add(a.Quantity)
	}
	for _, c := range customers {
		sum.SoldQuantity = sum.SoldQuantity.Add(c.Quantity)
		sum.SoldAmount = sum.SoldAmount.Add(c.Amount)
	}

	rawQty, rawAmount := decimal.Zero, decimal.Zero
	for _, sl := range sales {
		rawQty = rawQty.Add(sl.Quantity)
		rawAmount = rawAmount.Add(sl.Amount)
	}
	if !rawQty.Equal(sum.SoldQuantity) || !rawAmount.Equal(sum.SoldAmount) {
		return domain.TimelineSummary{}, fmt.Errorf("%w: grouped sales %s/%s differ from raw sales %s/%s",
			apperrors.ErrInternal, sum.SoldQuantity, sum.SoldAmount, rawQty, rawAmount)
	}

	sum.InStock = sum.ArrivedQuantity.Sub(sum.SoldQuantity)
	return sum, nil
}
