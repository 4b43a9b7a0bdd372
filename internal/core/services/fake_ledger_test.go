package services_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// fakeTx stands in for a database transaction. The embedded interface is
// never called by the fake ledger.
type fakeTx struct {
	pgx.Tx
	records  []domain.TransactionRecord
	balances map[string]decimal.Decimal
	done     bool
}

// fakeLedger is an in-memory store implementing both the account and the
// transaction repositories. Transactions are serialized with a single lock
// held from Begin until Commit or Rollback.
type fakeLedger struct {
	txLock   sync.Mutex
	mu       sync.Mutex
	accounts map[string]domain.Account
	records  []domain.TransactionRecord

	// failSave, when set, is consulted before a record is staged.
	failSave func(domain.TransactionRecord) error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{accounts: make(map[string]domain.Account)}
}

func (f *fakeLedger) addAccount(id string, kind domain.AccountKind, name string) domain.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	acc := domain.Account{AccountID: id, Kind: kind, DisplayName: name, Balance: decimal.Zero, CreatedAt: now, LastUpdatedAt: now}
	f.accounts[id] = acc
	return acc
}

func (f *fakeLedger) balance(id string) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[id].Balance
}

func (f *fakeLedger) recordCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func (f *fakeLedger) recordByID(id string) (domain.TransactionRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.TransactionID == id {
			return r, true
		}
	}
	return domain.TransactionRecord{}, false
}

// AccountReader

func (f *fakeLedger) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (f *fakeLedger) FindCashAccount(_ context.Context) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acc := range f.accounts {
		if acc.Kind == domain.Cash {
			a := acc
			return &a, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeLedger) ListBankAccounts(_ context.Context) ([]domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var banks []domain.Account
	for _, acc := range f.accounts {
		if acc.Kind == domain.Bank {
			banks = append(banks, acc)
		}
	}
	sort.Slice(banks, func(i, j int) bool { return banks[i].DisplayName < banks[j].DisplayName })
	return banks, nil
}

func (f *fakeLedger) GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	acc, err := f.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return acc.Balance, nil
}

// AccountWriter

func (f *fakeLedger) SaveAccount(_ context.Context, account domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[account.AccountID]; ok {
		return apperrors.ErrDuplicate
	}
	f.accounts[account.AccountID] = account
	return nil
}

// TransactionManager

func (f *fakeLedger) Begin(ctx context.Context) (pgx.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.txLock.Lock()
	return &fakeTx{balances: make(map[string]decimal.Decimal)}, nil
}

func (f *fakeLedger) Commit(_ context.Context, tx pgx.Tx) error {
	ftx := tx.(*fakeTx)
	if ftx.done {
		return errors.New("tx closed")
	}
	f.mu.Lock()
	now := time.Now()
	for id, bal := range ftx.balances {
		acc := f.accounts[id]
		acc.Balance = bal
		acc.LastUpdatedAt = now
		f.accounts[id] = acc
	}
	f.records = append(f.records, ftx.records...)
	f.mu.Unlock()
	ftx.done = true
	f.txLock.Unlock()
	return nil
}

func (f *fakeLedger) Rollback(_ context.Context, tx pgx.Tx) error {
	ftx := tx.(*fakeTx)
	if ftx.done {
		return nil
	}
	ftx.done = true
	f.txLock.Unlock()
	return nil
}

// AccountTransactionSupport

func (f *fakeLedger) FindAccountByIDForUpdate(ctx context.Context, _ pgx.Tx, accountID string) (*domain.Account, error) {
	return f.FindAccountByID(ctx, accountID)
}

func (f *fakeLedger) UpdateAccountBalanceInTx(_ context.Context, tx pgx.Tx, accountID string, newBalance decimal.Decimal, _ time.Time) error {
	tx.(*fakeTx).balances[accountID] = newBalance
	return nil
}

// TransactionRepositoryFacade

func (f *fakeLedger) SaveTransactionInTx(_ context.Context, tx pgx.Tx, record domain.TransactionRecord) error {
	if f.failSave != nil {
		if err := f.failSave(record); err != nil {
			return err
		}
	}
	if _, exists := f.recordByID(record.TransactionID); exists {
		return apperrors.ErrDuplicate
	}
	ftx := tx.(*fakeTx)
	ftx.records = append(ftx.records, record)
	return nil
}

func (f *fakeLedger) FindTransactionByID(_ context.Context, transactionID string) (*domain.TransactionRecord, error) {
	r, ok := f.recordByID(transactionID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &r, nil
}

func (f *fakeLedger) ListTransactionsByAccountID(_ context.Context, accountID string, limit int, _ *string) ([]domain.TransactionRecord, *string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.TransactionRecord
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		if f.records[i].AccountID == accountID {
			out = append(out, f.records[i])
		}
	}
	return out, nil, nil
}

func (f *fakeLedger) SumSignedAmountsByAccountID(_ context.Context, accountID string) (decimal.Decimal, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum, n := decimal.Zero, 0
	for _, r := range f.records {
		if r.AccountID == accountID {
			sum = sum.Add(r.SignedAmount)
			n++
		}
	}
	return sum, n, nil
}
