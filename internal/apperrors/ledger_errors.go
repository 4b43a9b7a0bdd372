package apperrors

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FailureKind names the category of a partial failure.
type FailureKind string

const (
	KindSupplierLedgerFailed   FailureKind = "SupplierLedgerFailed"
	KindPartialPurchase        FailureKind = "PartialPurchase"
	KindPartialExpense         FailureKind = "PartialExpense"
	KindDeferredIntentFailed   FailureKind = "DeferredIntentFailed"
	KindPartialTransferFailure FailureKind = "PartialTransferFailure"
	KindUnreconciledTransfer   FailureKind = "UnreconciledTransfer"
)

// Effects reports which effects of a multi-step operation committed.
type Effects struct {
	Inventory bool `json:"inventory"`
	Ledger    bool `json:"ledger"`
	Account   bool `json:"account"`
	Deferred  bool `json:"deferred"`
}

func (e Effects) String() string {
	return fmt.Sprintf("inventory:%t ledger:%t account:%t deferred:%t", e.Inventory, e.Ledger, e.Account, e.Deferred)
}

// InsufficientFundsError is returned when a debit would take an account below zero.
type InsufficientFundsError struct {
	AccountID string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds in account %s: available %s, requested %s",
		e.AccountID, e.Available.String(), e.Requested.String())
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// PartialFailureError reports a business operation that stopped after some
// steps had already committed. CommittedIDs maps effect name to the id of the
// record it produced.
type PartialFailureError struct {
	Kind         FailureKind
	Operation    string
	Effects      Effects
	CommittedIDs map[string]string
	Cause        error
}

func (e *PartialFailureError) Error() string {
	ids := make([]string, 0, len(e.CommittedIDs))
	for k, v := range e.CommittedIDs {
		ids = append(ids, k+"="+v)
	}
	return fmt.Sprintf("%s: %s stopped with effects {%s} committed [%s]: %v",
		e.Kind, e.Operation, e.Effects, strings.Join(ids, ","), e.Cause)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Cause
}

// PartialTransferError is returned when the credit leg of a transfer failed
// and the compensating credit back to the source committed.
type PartialTransferError struct {
	DebitRecordID        string
	CompensationRecordID string
	Cause                error
}

func (e *PartialTransferError) Error() string {
	return fmt.Sprintf("%s: credit leg failed, debit %s compensated by %s: %v",
		KindPartialTransferFailure, e.DebitRecordID, e.CompensationRecordID, e.Cause)
}

func (e *PartialTransferError) Unwrap() error {
	return e.Cause
}

// UnreconciledTransferError is returned when the credit leg failed and the
// compensating credit failed too. It must be reconciled by hand and is never retried.
// CreditAttemptID and CompensationAttemptID are the ids the failed legs were
// submitted under; either may exist if the failure was a timeout.
type UnreconciledTransferError struct {
	DebitRecordID         string
	CreditAttemptID       string
	CompensationAttemptID string
	SourceAccountID       string
	DestAccountID         string
	Amount                decimal.Decimal
	CreditCause           error
	CompensationCause     error
}

func (e *UnreconciledTransferError) Error() string {
	return fmt.Sprintf("%s: debit %s on %s (%s) not matched by credit %s on %s (%v), compensation %s failed (%v)",
		KindUnreconciledTransfer, e.DebitRecordID, e.SourceAccountID, e.Amount.String(),
		e.CreditAttemptID, e.DestAccountID, e.CreditCause,
		e.CompensationAttemptID, e.CompensationCause)
}

// RecordIDs returns every record id relevant for manual reconciliation.
func (e *UnreconciledTransferError) RecordIDs() []string {
	return []string{e.DebitRecordID, e.CreditAttemptID, e.CompensationAttemptID}
}
