package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductEventKind tags a timeline event with its source stream.
type ProductEventKind string

const (
	EventPurchase ProductEventKind = "purchase"
	EventArrival  ProductEventKind = "arrival"
	EventSale     ProductEventKind = "sale"
)

// Rank orders kinds that share a timestamp: an item is purchased before it
// arrives and arrives before it sells.
func (k ProductEventKind) Rank() int {
	switch k {
	case EventPurchase:
		return 0
	case EventArrival:
		return 1
	case EventSale:
		return 2
	}
	return 3
}

// Product is the minimal product view the aggregator needs.
type Product struct {
	ProductID string `json:"productID"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
}

// PurchaseRecord is a raw row from the purchase source.
type PurchaseRecord struct {
	RecordID     string
	PurchasedAt  time.Time
	Quantity     decimal.Decimal
	Amount       decimal.Decimal
	SupplierName string
}

// ArrivalRecord is a raw row from the arrival source.
type ArrivalRecord struct {
	RecordID      string
	ArrivedAt     time.Time
	Quantity      decimal.Decimal
	WarehouseName string
}

// SaleRecord is a raw row from the sale source.
type SaleRecord struct {
	RecordID     string
	SoldAt       time.Time
	Quantity     decimal.Decimal
	Amount       decimal.Decimal
	CustomerName string
}

// ProductEvent is the canonical timeline entry. QuantityDelta is positive for
// inbound events (purchase, arrival) and negative for sales.
type ProductEvent struct {
	Date             time.Time        `json:"date"`
	Kind             ProductEventKind `json:"kind"`
	Quantity         decimal.Decimal  `json:"quantity"`
	QuantityDelta    decimal.Decimal  `json:"quantityDelta"`
	Amount           decimal.Decimal  `json:"amount"`
	CounterpartyName string           `json:"counterpartyName"`
	SourceID         string           `json:"sourceID"`
}

// CustomerSales is the sale total for one customer.
type CustomerSales struct {
	CustomerName string          `json:"customerName"`
	Quantity     decimal.Decimal `json:"quantity"`
	Amount       decimal.Decimal `json:"amount"`
	SaleCount    int             `json:"saleCount"`
}

// TimelineSummary holds metrics derived from the merged streams.
type TimelineSummary struct {
	PurchasedQuantity decimal.Decimal `json:"purchasedQuantity"`
	PurchasedAmount   decimal.Decimal `json:"purchasedAmount"`
	ArrivedQuantity   decimal.Decimal `json:"arrivedQuantity"`
	SoldQuantity      decimal.Decimal `json:"soldQuantity"`
	SoldAmount        decimal.Decimal `json:"soldAmount"`
	InStock           decimal.Decimal `json:"inStock"`
}

// ProductTimeline is the merged, ordered view of one product.
type ProductTimeline struct {
	Product   Product         `json:"product"`
	Events    []ProductEvent  `json:"events"`
	Summary   TimelineSummary `json:"summary"`
	Customers []CustomerSales `json:"customers"`
}
