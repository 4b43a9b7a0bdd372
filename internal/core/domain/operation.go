package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod selects the account effect of a business operation.
type PaymentMethod string

const (
	PayCash   PaymentMethod = "CASH"
	PayOnline PaymentMethod = "ONLINE"
	PayCheque PaymentMethod = "CHEQUE"
	PayCredit PaymentMethod = "CREDIT"
)

// IsValid reports whether m is a known payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PayCash, PayOnline, PayCheque, PayCredit:
		return true
	}
	return false
}

// IsDeferred reports whether payment settles outside the core (cheque, credit).
func (m PaymentMethod) IsDeferred() bool {
	return m == PayCheque || m == PayCredit
}

// ProductDraft is the inventory change written by a purchase.
type ProductDraft struct {
	ProductID   string          `json:"productID,omitempty"` // empty for a new product
	Name        string          `json:"name"`
	SKU         string          `json:"sku,omitempty"`
	WarehouseID string          `json:"warehouseID,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Amount      decimal.Decimal `json:"amount"`
	SupplierID  string          `json:"supplierID"`
	PurchasedAt time.Time       `json:"purchasedAt"`
}

// PurchaseRequest is a supplier purchase: stock in, supplier ledger, payment.
type PurchaseRequest struct {
	AccountKind   AccountKind
	AccountID     string
	SupplierID    string
	Amount        decimal.Decimal
	Quantity      decimal.Decimal
	ProductDraft  ProductDraft
	PaymentMethod PaymentMethod
	Description   string
}

// SupplierLedgerEntry records what is owed to or paid to a supplier.
type SupplierLedgerEntry struct {
	SupplierID        string
	Amount            decimal.Decimal
	Description       string
	InventoryRecordID string
	PaymentMethod     PaymentMethod
	EntryDate         time.Time
}

// DeferredPayment is the recorded intent of a cheque or credit payment that
// clears outside the core.
type DeferredPayment struct {
	DeferredID     string          `json:"deferredID"`
	Operation      string          `json:"operation"`
	ReferenceID    string          `json:"referenceID"`
	Method         PaymentMethod   `json:"method"`
	Amount         decimal.Decimal `json:"amount"`
	CounterpartyID string          `json:"counterpartyID"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// PurchaseResult is the execution trace of a purchase.
// AccountAttemptID is the record id the account debit was last submitted under;
// a resume reuses it so a debit that committed after a timeout is not applied twice.
type PurchaseResult struct {
	InventoryRecordID string             `json:"inventoryRecordID,omitempty"`
	LedgerEntryID     string             `json:"ledgerEntryID,omitempty"`
	AccountRecord     *TransactionRecord `json:"accountRecord,omitempty"`
	AccountAttemptID  string             `json:"accountAttemptID,omitempty"`
	DeferredID        string             `json:"deferredID,omitempty"`
	Effects           EffectFlags        `json:"effects"`
}

// ExpenseRequest is an operating expense.
type ExpenseRequest struct {
	Category      string
	Amount        decimal.Decimal
	PaymentMethod PaymentMethod
	AccountID     string // Bank account, required for ONLINE and CHEQUE
	Description   string
	PayeeName     string
	ExpenseDate   time.Time
}

// ExpenseResult is the execution trace of an expense.
type ExpenseResult struct {
	ExpenseEntryID   string             `json:"expenseEntryID,omitempty"`
	AccountRecord    *TransactionRecord `json:"accountRecord,omitempty"`
	AccountAttemptID string             `json:"accountAttemptID,omitempty"`
	Effects          EffectFlags        `json:"effects"`
}
