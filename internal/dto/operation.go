package dto

import (
	"time"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProductDraftRequest describes the stock written by a purchase.
type ProductDraftRequest struct {
	ProductID   string          `json:"productID"`
	Name        string          `json:"name" binding:"required,max=200"`
	SKU         string          `json:"sku"`
	WarehouseID string          `json:"warehouseID"`
	UnitCost    decimal.Decimal `json:"unitCost"`
}

// CreatePurchaseRequest defines the data needed to execute a supplier purchase.
type CreatePurchaseRequest struct {
	AccountKind   domain.AccountKind   `json:"accountKind" binding:"omitempty,oneof=CASH BANK"`
	AccountID     string               `json:"accountID"`
	SupplierID    string               `json:"supplierID" binding:"required"`
	Amount        decimal.Decimal      `json:"amount" binding:"positive_decimal"`
	Quantity      decimal.Decimal      `json:"quantity" binding:"positive_decimal"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=CASH ONLINE CHEQUE CREDIT"`
	Description   string               `json:"description" binding:"max=255"`
	PurchasedAt   *time.Time           `json:"purchasedAt"`
	Product       ProductDraftRequest  `json:"product" binding:"required"`
}

// ToPurchaseRequest converts the request into a domain.PurchaseRequest.
func (r CreatePurchaseRequest) ToPurchaseRequest(now time.Time) domain.PurchaseRequest {
	purchasedAt := now
	if r.PurchasedAt != nil {
		purchasedAt = *r.PurchasedAt
	}
	return domain.PurchaseRequest{
		AccountKind:   r.AccountKind,
		AccountID:     r.AccountID,
		SupplierID:    r.SupplierID,
		Amount:        r.Amount,
		Quantity:      r.Quantity,
		PaymentMethod: r.PaymentMethod,
		Description:   r.Description,
		ProductDraft: domain.ProductDraft{
			ProductID:   r.Product.ProductID,
			Name:        r.Product.Name,
			SKU:         r.Product.SKU,
			WarehouseID: r.Product.WarehouseID,
			Quantity:    r.Quantity,
			UnitCost:    r.Product.UnitCost,
			Amount:      r.Amount,
			SupplierID:  r.SupplierID,
			PurchasedAt: purchasedAt,
		},
	}
}

// ResumePurchaseRequest carries the original request and the result of the failed attempt.
type ResumePurchaseRequest struct {
	Purchase CreatePurchaseRequest `json:"purchase" binding:"required"`
	Prior    domain.PurchaseResult `json:"prior"`
}

// CreateExpenseRequest defines the data needed to record an expense.
type CreateExpenseRequest struct {
	Category      string               `json:"category" binding:"required,max=100"`
	Amount        decimal.Decimal      `json:"amount" binding:"positive_decimal"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=CASH ONLINE CHEQUE CREDIT"`
	AccountID     string               `json:"accountID"`
	Description   string               `json:"description" binding:"max=255"`
	PayeeName     string               `json:"payeeName"`
	ExpenseDate   *time.Time           `json:"expenseDate"`
}

// ToExpenseRequest converts the request into a domain.ExpenseRequest.
func (r CreateExpenseRequest) ToExpenseRequest(now time.Time) domain.ExpenseRequest {
	expenseDate := now
	if r.ExpenseDate != nil {
		expenseDate = *r.ExpenseDate
	}
	return domain.ExpenseRequest{
		Category:      r.Category,
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
		AccountID:     r.AccountID,
		Description:   r.Description,
		PayeeName:     r.PayeeName,
		ExpenseDate:   expenseDate,
	}
}

// ResumeExpenseRequest carries the original request and the result of the failed attempt.
type ResumeExpenseRequest struct {
	Expense CreateExpenseRequest `json:"expense" binding:"required"`
	Prior   domain.ExpenseResult `json:"prior"`
}

// OperationFailureResponse is returned with 207 when an operation committed only some effects.
type OperationFailureResponse struct {
	Error        string             `json:"error"`
	Kind         string             `json:"kind"`
	Effects      domain.EffectFlags `json:"effects"`
	CommittedIDs map[string]string  `json:"committedIDs"`
	Result       any                `json:"result,omitempty"`
}
