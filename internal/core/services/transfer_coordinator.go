package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

// transferCoordinator runs transfers as a debit step and a credit step, with a
// single compensating credit when the second step fails.
type transferCoordinator struct {
	BaseService
	accounts    portssvc.AccountResolverSvc
	recorder    portssvc.TransactionApplierSvc
	stepTimeout time.Duration
}

// NewTransferCoordinator creates the transfer coordinator.
func NewTransferCoordinator(accounts portssvc.AccountResolverSvc, recorder portssvc.TransactionApplierSvc, stepTimeout time.Duration) portssvc.TransferSvc {
	return &transferCoordinator{
		accounts:    accounts,
		recorder:    recorder,
		stepTimeout: stepTimeout,
	}
}

var _ portssvc.TransferSvc = (*transferCoordinator)(nil)

// validate returns the first violated precondition, in a fixed order.
func (s *transferCoordinator) validate(ctx context.Context, intent domain.TransferIntent) (src, dst *domain.Account, err error) {
	if !accounting.ValidAmount(intent.Amount) {
		return nil, nil, apperrors.ErrInvalidAmount
	}
	if !intent.SourceKind.IsValid() || !intent.DestKind.IsValid() {
		return nil, nil, fmt.Errorf("%w: account kind must be CASH or BANK", apperrors.ErrValidation)
	}
	if intent.SourceKind == domain.Bank && intent.DestKind == domain.Bank && intent.SourceAccountID == intent.DestAccountID {
		return nil, nil, apperrors.ErrSameAccount
	}
	if intent.SourceKind == domain.Cash && intent.DestKind == domain.Cash {
		return nil, nil, apperrors.ErrUnsupported
	}

	src, err = s.accounts.ResolveAccount(ctx, intent.SourceKind, intent.SourceAccountID)
	if err != nil {
		return nil, nil, err
	}
	dst, err = s.accounts.ResolveAccount(ctx, intent.DestKind, intent.DestAccountID)
	if err != nil {
		return nil, nil, err
	}
	if src.AccountID == dst.AccountID {
		return nil, nil, apperrors.ErrSameAccount
	}

	// stale read; the recorder re-checks under lock
	if intent.Amount.GreaterThan(src.Balance) {
		return nil, nil, &apperrors.InsufficientFundsError{
			AccountID: src.AccountID,
			Available: src.Balance,
			Requested: intent.Amount,
		}
	}
	return src, dst, nil
}

func (s *transferCoordinator) Transfer(ctx context.Context, intent domain.TransferIntent) (*domain.TransferResult, error) {
	src, dst, err := s.validate(ctx, intent)
	if err != nil {
		s.LogDebug(ctx, "Transfer rejected", slog.String("reason", err.Error()))
		return nil, err
	}

	debitID := uuid.NewString()
	creditID := uuid.NewString()
	compensationID := uuid.NewString()

	description := intent.Description
	if description == "" {
		description = fmt.Sprintf("Transfer %s -> %s", src.DisplayName, dst.DisplayName)
	}

	debit, err := runStep(ctx, s.stepTimeout, func(stepCtx context.Context) (*domain.TransactionRecord, error) {
		return s.recorder.ApplyTransaction(stepCtx, domain.TransactionRequest{
			RecordID:    debitID,
			AccountID:   src.AccountID,
			Amount:      intent.Amount,
			Direction:   domain.Subtract,
			Description: description,
		})
	})
	if err != nil {
		s.LogWarn(ctx, err, "Transfer debit failed, nothing committed",
			slog.String("source_account_id", src.AccountID),
			slog.String("debit_attempt_id", debitID))
		return nil, err
	}

	// the debit is committed, the rest must run to a reportable end
	detached := context.WithoutCancel(ctx)

	credit, creditErr := runStep(detached, s.stepTimeout, func(stepCtx context.Context) (*domain.TransactionRecord, error) {
		return s.recorder.ApplyTransaction(stepCtx, domain.TransactionRequest{
			RecordID:    creditID,
			AccountID:   dst.AccountID,
			Amount:      intent.Amount,
			Direction:   domain.Add,
			Description: description,
			CausedBy:    &debit.TransactionID,
		})
	})
	if creditErr == nil {
		s.LogInfo(ctx, "Transfer completed",
			slog.String("debit_id", debit.TransactionID),
			slog.String("credit_id", credit.TransactionID),
			slog.String("amount", intent.Amount.String()))
		return &domain.TransferResult{Debit: *debit, Credit: *credit}, nil
	}

	// the credit may have committed after its step timed out
	if late, lookupErr := runStep(detached, s.stepTimeout, func(stepCtx context.Context) (*domain.TransactionRecord, error) {
		return s.recorder.FindAppliedTransaction(stepCtx, creditID)
	}); lookupErr == nil {
		s.LogWarn(ctx, creditErr, "Transfer credit committed after its step failed, not compensating",
			slog.String("debit_id", debit.TransactionID),
			slog.String("credit_id", late.TransactionID))
		return &domain.TransferResult{Debit: *debit, Credit: *late}, nil
	}

	s.LogWarn(ctx, creditErr, "Transfer credit failed, compensating source",
		slog.String("debit_id", debit.TransactionID),
		slog.String("credit_attempt_id", creditID))

	compensation, compErr := runStep(detached, s.stepTimeout, func(stepCtx context.Context) (*domain.TransactionRecord, error) {
		return s.recorder.ApplyTransaction(stepCtx, domain.TransactionRequest{
			RecordID:    compensationID,
			AccountID:   src.AccountID,
			Amount:      intent.Amount,
			Direction:   domain.Add,
			Description: "Reversal of failed transfer: " + description,
			CausedBy:    &debit.TransactionID,
		})
	})
	if compErr == nil {
		return nil, &apperrors.PartialTransferError{
			DebitRecordID:        debit.TransactionID,
			CompensationRecordID: compensation.TransactionID,
			Cause:                creditErr,
		}
	}

	unreconciled := &apperrors.UnreconciledTransferError{
		DebitRecordID:         debit.TransactionID,
		CreditAttemptID:       creditID,
		CompensationAttemptID: compensationID,
		SourceAccountID:       src.AccountID,
		DestAccountID:         dst.AccountID,
		Amount:                intent.Amount,
		CreditCause:           creditErr,
		CompensationCause:     compErr,
	}
	s.LogError(ctx, unreconciled, "Unreconciled transfer requires manual reconciliation",
		slog.String("debit_id", unreconciled.DebitRecordID),
		slog.String("credit_attempt_id", creditID),
		slog.String("compensation_attempt_id", compensationID),
		slog.String("source_account_id", src.AccountID),
		slog.String("dest_account_id", dst.AccountID),
		slog.String("amount", intent.Amount.String()))
	return nil, unreconciled
}
