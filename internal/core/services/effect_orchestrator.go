package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/inventory_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

const (
	operationPurchase = "purchase"
	operationExpense  = "expense"
)

// effectOrchestrator runs purchases and expenses as ordered steps that each
// commit on their own. Once the first step has committed nothing is rolled
// back; failures are reported with the effects that did commit.
type effectOrchestrator struct {
	BaseService
	ops         portsrepo.OperationRepositoryFacade
	accounts    portssvc.AccountResolverSvc
	recorder    portssvc.TransactionApplierSvc
	stepTimeout time.Duration
	now         func() time.Time
}

// NewEffectOrchestrator creates the purchase and expense orchestrator.
func NewEffectOrchestrator(ops portsrepo.OperationRepositoryFacade, accounts portssvc.AccountResolverSvc, recorder portssvc.TransactionApplierSvc, stepTimeout time.Duration) portssvc.OperationSvcFacade {
	return &effectOrchestrator{
		ops:         ops,
		accounts:    accounts,
		recorder:    recorder,
		stepTimeout: stepTimeout,
		now:         time.Now,
	}
}

var _ portssvc.OperationSvcFacade = (*effectOrchestrator)(nil)

func purchaseCommittedIDs(r domain.PurchaseResult) map[string]string {
	ids := make(map[string]string)
	if r.Effects.Inventory {
		ids["inventory"] = r.InventoryRecordID
	}
	if r.Effects.Ledger {
		ids["ledger"] = r.LedgerEntryID
	}
	if r.Effects.Account && r.AccountRecord != nil {
		ids["account"] = r.AccountRecord.TransactionID
	}
	if r.Effects.Deferred {
		ids["deferred"] = r.DeferredID
	}
	return ids
}

func expenseCommittedIDs(r domain.ExpenseResult) map[string]string {
	ids := make(map[string]string)
	if r.Effects.Ledger {
		ids["ledger"] = r.ExpenseEntryID
	}
	if r.Effects.Account && r.AccountRecord != nil {
		ids["account"] = r.AccountRecord.TransactionID
	}
	return ids
}

// settleDuplicateDebit resolves a debit rejected because its attempt id is
// already stored: an earlier run committed it after its step gave up, so the
// stored record is the outcome. Any other error is returned unchanged.
func (s *effectOrchestrator) settleDuplicateDebit(ctx context.Context, attemptID string, applyErr error) (*domain.TransactionRecord, error) {
	if !errors.Is(applyErr, apperrors.ErrDuplicate) {
		return nil, applyErr
	}
	record, err := runStep(ctx, s.stepTimeout, func(stepCtx context.Context) (*domain.TransactionRecord, error) {
		return s.recorder.FindAppliedTransaction(stepCtx, attemptID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load account debit of an earlier attempt", slog.String("record_id", attemptID))
		return nil, applyErr
	}
	s.LogInfo(ctx, "Account debit already applied by an earlier attempt", slog.String("record_id", attemptID))
	return record, nil
}

// purchaseDebitAccount resolves the account a CASH or ONLINE purchase pays from.
func (s *effectOrchestrator) purchaseDebitAccount(ctx context.Context, req domain.PurchaseRequest) (*domain.Account, error) {
	kind := domain.Cash
	if req.PaymentMethod == domain.PayOnline {
		kind = domain.Bank
	}
	if req.AccountKind != "" && req.AccountKind != kind {
		return nil, fmt.Errorf("%w: %s payment requires a %s account", apperrors.ErrValidation, req.PaymentMethod, kind)
	}
	return s.accounts.ResolveAccount(ctx, kind, req.AccountID)
}

func validatePurchase(req domain.PurchaseRequest) error {
	if !accounting.ValidAmount(req.Amount) {
		return apperrors.ErrInvalidAmount
	}
	if !accounting.ValidAmount(req.Quantity) {
		return fmt.Errorf("%w: quantity must be positive with at most 4 decimal places", apperrors.ErrValidation)
	}
	if !req.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unknown payment method '%s'", apperrors.ErrValidation, req.PaymentMethod)
	}
	if req.SupplierID == "" {
		return fmt.Errorf("%w: supplier id is required", apperrors.ErrValidation)
	}
	if req.PaymentMethod == domain.PayOnline && req.AccountID == "" {
		return fmt.Errorf("%w: online payment requires a bank account", apperrors.ErrValidation)
	}
	return nil
}

func (s *effectOrchestrator) ExecutePurchase(ctx context.Context, req domain.PurchaseRequest) (*domain.PurchaseResult, error) {
	return s.runPurchase(ctx, req, domain.PurchaseResult{})
}

func (s *effectOrchestrator) ResumePurchase(ctx context.Context, req domain.PurchaseRequest, prior domain.PurchaseResult) (*domain.PurchaseResult, error) {
	if prior.Effects.Inventory && prior.InventoryRecordID == "" {
		return nil, fmt.Errorf("%w: prior result marks inventory committed without an id", apperrors.ErrValidation)
	}
	if prior.Effects.Ledger && prior.LedgerEntryID == "" {
		return nil, fmt.Errorf("%w: prior result marks ledger committed without an id", apperrors.ErrValidation)
	}
	s.LogInfo(ctx, "Resuming purchase", slog.String("effects", prior.Effects.String()))
	return s.runPurchase(ctx, req, prior)
}

func (s *effectOrchestrator) runPurchase(ctx context.Context, req domain.PurchaseRequest, result domain.PurchaseResult) (*domain.PurchaseResult, error) {
	if err := validatePurchase(req); err != nil {
		return nil, err
	}

	needsDebit := !req.PaymentMethod.IsDeferred() && !result.Effects.Account
	var payFrom *domain.Account
	if needsDebit {
		var err error
		if payFrom, err = s.purchaseDebitAccount(ctx, req); err != nil {
			return nil, err
		}
	}

	partial := func(kind apperrors.FailureKind, cause error) (*domain.PurchaseResult, error) {
		err := &apperrors.PartialFailureError{
			Kind:         kind,
			Operation:    operationPurchase,
			Effects:      result.Effects,
			CommittedIDs: purchaseCommittedIDs(result),
			Cause:        cause,
		}
		s.LogError(ctx, err, "Purchase partially applied",
			slog.String("kind", string(kind)),
			slog.String("effects", result.Effects.String()))
		return &result, err
	}

	if !result.Effects.Inventory {
		draft := purchaseDraft(req, s.now())
		id, err := runStep(ctx, s.stepTimeout, func(stepCtx context.Context) (string, error) {
			return s.ops.PersistInventoryChange(stepCtx, draft)
		})
		if err != nil {
			s.LogError(ctx, err, "Inventory write failed, purchase aborted", slog.String("supplier_id", req.SupplierID))
			return nil, fmt.Errorf("%w: %w", apperrors.ErrInventoryWriteFailed, err)
		}
		result.InventoryRecordID = id
		result.Effects.Inventory = true
	}

	// inventory is committed from here on
	ctx = context.WithoutCancel(ctx)

	if !result.Effects.Ledger {
		entryDate := req.ProductDraft.PurchasedAt
		if entryDate.IsZero() {
			entryDate = s.now()
		}
		entry := domain.SupplierLedgerEntry{
			SupplierID:        req.SupplierID,
			Amount:            req.Amount,
			Description:       req.Description,
			InventoryRecordID: result.InventoryRecordID,
			PaymentMethod:     req.PaymentMethod,
			EntryDate:         entryDate,
		}
		id, err := runStep(ctx, s.stepTimeout, func(stepCtx context.Context) (string, error) {
			return s.ops.PersistSupplierLedgerEntry(stepCtx, entry)
		})
		if err != nil {
			return partial(apperrors.KindSupplierLedgerFailed, err)
		}
		result.LedgerEntryID = id
		result.Effects.Ledger = true
	}

	switch {
	case req.PaymentMethod.IsDeferred():
		if !result.Effects.Deferred {
			if result.DeferredID == "" {
				result.DeferredID = uuid.NewString()
			}
			payment := domain.DeferredPayment{
				DeferredID:     result.DeferredID,
				Operation:      operationPurchase,
				ReferenceID:    result.LedgerEntryID,
				Method:         req.PaymentMethod,
				Amount:         req.Amount,
				CounterpartyID: req.SupplierID,
				CreatedAt:      s.now(),
			}
			id, err := runStep(ctx, s.stepTimeout, func(stepCtx context.Context) (string, error) {
				return s.ops.PersistDeferredPayment(stepCtx, payment)
			})
			if errors.Is(err, apperrors.ErrDuplicate) {
				// stored by an earlier attempt under the same id
				s.LogInfo(ctx, "Deferred payment already recorded", slog.String("deferred_id", payment.DeferredID))
				id, err = payment.DeferredID, nil
			}
			if err != nil {
				return partial(apperrors.KindDeferredIntentFailed, err)
			}
			result.DeferredID = id
			result.Effects.Deferred = true
		}
	case needsDebit:
		if result.AccountAttemptID == "" {
			result.AccountAttemptID = uuid.NewString()
		}
		ledgerID := result.LedgerEntryID
		record, err := runStep(ctx, s.stepTimeout, func(stepCtx context.Context) (*domain.TransactionRecord, error) {
			return s.recorder.ApplyTransaction(stepCtx, domain.TransactionRequest{
				RecordID:    result.AccountAttemptID,
				AccountID:   payFrom.AccountID,
				Amount:      req.Amount,
				Direction:   domain.Subtract,
				Description: purchaseDescription(req),
				CausedBy:    &ledgerID,
			})
		})
		if err != nil {
			record, err = s.settleDuplicateDebit(ctx, result.AccountAttemptID, err)
		}
		if err != nil {
			return partial(apperrors.KindPartialPurchase, err)
		}
		result.AccountRecord = record
		result.Effects.Account = true
	}

	s.LogInfo(ctx, "Purchase completed",
		slog.String("inventory_record_id", result.InventoryRecordID),
		slog.String("ledger_entry_id", result.LedgerEntryID),
		slog.String("payment_method", string(req.PaymentMethod)))
	return &result, nil
}

// purchaseDraft fills the inventory draft from the request where it is silent.
func purchaseDraft(req domain.PurchaseRequest, now time.Time) domain.ProductDraft {
	draft := req.ProductDraft
	if draft.Quantity.IsZero() {
		draft.Quantity = req.Quantity
	}
	if draft.Amount.IsZero() {
		draft.Amount = req.Amount
	}
	if draft.SupplierID == "" {
		draft.SupplierID = req.SupplierID
	}
	if draft.PurchasedAt.IsZero() {
		draft.PurchasedAt = now
	}
	return draft
}

func purchaseDescription(req domain.PurchaseRequest) string {
	if req.Description != "" {
		return req.Description
	}
	return fmt.Sprintf("Purchase of %s %s from supplier %s", req.Quantity.String(), req.ProductDraft.Name, req.SupplierID)
}

func expenseDebits(method domain.PaymentMethod) bool {
	return method == domain.PayOnline || method == domain.PayCheque
}

func validateExpense(req domain.ExpenseRequest) error {
	if !accounting.ValidAmount(req.Amount) {
		return apperrors.ErrInvalidAmount
	}
	if !req.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unknown payment method '%s'", apperrors.ErrValidation, req.PaymentMethod)
	}
	if req.Category == "" {
		return fmt.Errorf("%w: category is required", apperrors.ErrValidation)
	}
	if expenseDebits(req.PaymentMethod) && req.AccountID == "" {
		return fmt.Errorf("%w: %s expense requires a bank account", apperrors.ErrValidation, req.PaymentMethod)
	}
	return nil
}

func (s *effectOrchestrator) ExecuteExpense(ctx context.Context, req domain.ExpenseRequest) (*domain.ExpenseResult, error) {
	return s.runExpense(ctx, req, domain.ExpenseResult{})
}

func (s *effectOrchestrator) ResumeExpense(ctx context.Context, req domain.ExpenseRequest, prior domain.ExpenseResult) (*domain.ExpenseResult, error) {
	if prior.Effects.Ledger && prior.ExpenseEntryID == "" {
		return nil, fmt.Errorf("%w: prior result marks ledger committed without an id", apperrors.ErrValidation)
	}
	s.LogInfo(ctx, "Resuming expense", slog.String("effects", prior.Effects.String()))
	return s.runExpense(ctx, req, prior)
}

func (s *effectOrchestrator) runExpense(ctx context.Context, req domain.ExpenseRequest, result domain.ExpenseResult) (*domain.ExpenseResult, error) {
	if err := validateExpense(req); err != nil {
		return nil, err
	}

	needsDebit := expenseDebits(req.PaymentMethod) && !result.Effects.Account
	var payFrom *domain.Account
	if needsDebit {
		var err error
		if payFrom, err = s.accounts.ResolveAccount(ctx, domain.Bank, req.AccountID); err != nil {
			return nil, err
		}
	}

	if !result.Effects.Ledger {
		id, err := runStep(ctx, s.stepTimeout, func(stepCtx context.Context) (string, error) {
			return s.ops.PersistExpenseEntry(stepCtx, req)
		})
		if err != nil {
			s.LogError(ctx, err, "Expense ledger write failed", slog.String("category", req.Category))
			return nil, fmt.Errorf("%w: %w", apperrors.ErrExpenseWriteFailed, err)
		}
		result.ExpenseEntryID = id
		result.Effects.Ledger = true
	}

	ctx = context.WithoutCancel(ctx)

	if needsDebit {
		if result.AccountAttemptID == "" {
			result.AccountAttemptID = uuid.NewString()
		}
		entryID := result.ExpenseEntryID
		description := req.Description
		if description == "" {
			description = "Expense: " + req.Category
		}
		record, err := runStep(ctx, s.stepTimeout, func(stepCtx context.Context) (*domain.TransactionRecord, error) {
			return s.recorder.ApplyTransaction(stepCtx, domain.TransactionRequest{
				RecordID:    result.AccountAttemptID,
				AccountID:   payFrom.AccountID,
				Amount:      req.Amount,
				Direction:   domain.Subtract,
				Description: description,
				CausedBy:    &entryID,
			})
		})
		if err != nil {
			record, err = s.settleDuplicateDebit(ctx, result.AccountAttemptID, err)
		}
		if err != nil {
			perr := &apperrors.PartialFailureError{
				Kind:         apperrors.KindPartialExpense,
				Operation:    operationExpense,
				Effects:      result.Effects,
				CommittedIDs: expenseCommittedIDs(result),
				Cause:        err,
			}
			s.LogError(ctx, perr, "Expense partially applied", slog.String("effects", result.Effects.String()))
			return &result, perr
		}
		result.AccountRecord = record
		result.Effects.Account = true
	}

	s.LogInfo(ctx, "Expense recorded",
		slog.String("expense_entry_id", result.ExpenseEntryID),
		slog.String("payment_method", string(req.PaymentMethod)))
	return &result, nil
}
