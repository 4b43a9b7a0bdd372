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
	"github.com/SscSPs/inventory_ledger/internal/dto"
	"github.com/SscSPs/inventory_ledger/internal/utils/accounting"
	"github.com/google/uuid"
)

// transactionRecorder is the only writer of transaction records and cached balances.
type transactionRecorder struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryWithTx
	txnRepo     portsrepo.TransactionRepositoryFacade
	now         func() time.Time
}

// NewTransactionRecorder creates the transaction recorder.
func NewTransactionRecorder(accountRepo portsrepo.AccountRepositoryWithTx, txnRepo portsrepo.TransactionRepositoryFacade) portssvc.TransactionRecorderSvcFacade {
	return &transactionRecorder{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		now:         time.Now,
	}
}

var _ portssvc.TransactionRecorderSvcFacade = (*transactionRecorder)(nil)

func (s *transactionRecorder) ApplyTransaction(ctx context.Context, req domain.TransactionRequest) (*domain.TransactionRecord, error) {
	if !accounting.ValidAmount(req.Amount) {
		return nil, apperrors.ErrInvalidAmount
	}
	if req.AccountID == "" {
		return nil, fmt.Errorf("%w: account id is required", apperrors.ErrValidation)
	}
	signed, err := accounting.SignedAmount(req.Amount, req.Direction)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	recordID := req.RecordID
	if recordID == "" {
		recordID = uuid.NewString()
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction", slog.String("record_id", recordID))
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			if rbErr := s.accountRepo.Rollback(ctx, tx); rbErr != nil {
				s.LogError(ctx, rbErr, "Failed to roll back transaction", slog.String("record_id", recordID))
			}
		}
	}()

	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, req.AccountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock account", slog.String("account_id", req.AccountID))
		}
		return nil, accountNotFound(err, req.AccountID)
	}

	balanceAfter, ok := accounting.ApplySigned(account.Balance, signed)
	if !ok {
		s.LogDebug(ctx, "Rejected debit that would overdraw account",
			slog.String("account_id", account.AccountID),
			slog.String("balance", account.Balance.String()),
			slog.String("amount", req.Amount.String()))
		return nil, &apperrors.InsufficientFundsError{
			AccountID: account.AccountID,
			Available: account.Balance,
			Requested: req.Amount,
		}
	}

	now := s.now()
	record := domain.TransactionRecord{
		TransactionID: recordID,
		AccountID:     account.AccountID,
		SignedAmount:  signed,
		Description:   req.Description,
		Timestamp:     now,
		CausedBy:      req.CausedBy,
		BalanceAfter:  balanceAfter,
	}

	if err := s.txnRepo.SaveTransactionInTx(ctx, tx, record); err != nil {
		s.LogError(ctx, err, "Failed to save transaction record", slog.String("record_id", recordID))
		return nil, err
	}
	if err := s.accountRepo.UpdateAccountBalanceInTx(ctx, tx, account.AccountID, balanceAfter, now); err != nil {
		s.LogError(ctx, err, "Failed to update account balance", slog.String("account_id", account.AccountID))
		return nil, err
	}
	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit transaction", slog.String("record_id", recordID))
		return nil, err
	}
	committed = true

	s.LogInfo(ctx, "Transaction applied",
		slog.String("record_id", recordID),
		slog.String("account_id", account.AccountID),
		slog.String("signed_amount", signed.String()),
		slog.String("balance_after", balanceAfter.String()))
	return &record, nil
}

func (s *transactionRecorder) FindAppliedTransaction(ctx context.Context, recordID string) (*domain.TransactionRecord, error) {
	record, err := s.txnRepo.FindTransactionByID(ctx, recordID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up transaction record", slog.String("record_id", recordID))
		}
		return nil, err
	}
	return record, nil
}

func (s *transactionRecorder) ListAccountTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, accountNotFound(err, accountID)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	records, nextToken, err := s.txnRepo.ListTransactionsByAccountID(ctx, accountID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions by account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	s.LogDebug(ctx, "Transactions listed successfully for account", slog.Int("count", len(records)))
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(records),
		NextToken:    nextToken,
	}, nil
}
