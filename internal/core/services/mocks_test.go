package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountRepositoryWithTx interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindCashAccount(ctx context.Context) (*domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListBankAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, newBalance decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, tx, accountID, newBalance, now)
	return args.Error(0)
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.TransactionRecord, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var token *string
	if t := args.Get(1); t != nil {
		token = t.(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.TransactionRecord), token, args.Error(2)
}

func (m *MockTransactionRepository) SumSignedAmountsByAccountID(ctx context.Context, accountID string) (decimal.Decimal, int, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Int(1), args.Error(2)
}

func (m *MockTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, record domain.TransactionRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

// MockOperationRepository is a mock type for the OperationRepositoryFacade interface
type MockOperationRepository struct {
	mock.Mock
}

func (m *MockOperationRepository) PersistInventoryChange(ctx context.Context, draft domain.ProductDraft) (string, error) {
	args := m.Called(ctx, draft)
	return args.String(0), args.Error(1)
}

func (m *MockOperationRepository) PersistSupplierLedgerEntry(ctx context.Context, entry domain.SupplierLedgerEntry) (string, error) {
	args := m.Called(ctx, entry)
	return args.String(0), args.Error(1)
}

func (m *MockOperationRepository) PersistExpenseEntry(ctx context.Context, expense domain.ExpenseRequest) (string, error) {
	args := m.Called(ctx, expense)
	return args.String(0), args.Error(1)
}

func (m *MockOperationRepository) PersistDeferredPayment(ctx context.Context, payment domain.DeferredPayment) (string, error) {
	args := m.Called(ctx, payment)
	return args.String(0), args.Error(1)
}

// MockProductHistoryRepository is a mock type for the ProductHistoryRepositoryFacade interface
type MockProductHistoryRepository struct {
	mock.Mock
}

func (m *MockProductHistoryRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductHistoryRepository) FetchProductPurchases(ctx context.Context, productID string) ([]domain.PurchaseRecord, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseRecord), args.Error(1)
}

func (m *MockProductHistoryRepository) FetchProductArrivals(ctx context.Context, productID string) ([]domain.ArrivalRecord, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ArrivalRecord), args.Error(1)
}

func (m *MockProductHistoryRepository) FetchProductSales(ctx context.Context, productID string) ([]domain.SaleRecord, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SaleRecord), args.Error(1)
}

// MockAccountResolver is a mock type for the AccountResolverSvc interface
type MockAccountResolver struct {
	mock.Mock
}

func (m *MockAccountResolver) ResolveAccount(ctx context.Context, kind domain.AccountKind, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, kind, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountResolver) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountResolver) CurrentBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountResolver) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountResolver) ListBankAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// MockTransactionApplier is a mock type for the TransactionApplierSvc interface
type MockTransactionApplier struct {
	mock.Mock
}

func (m *MockTransactionApplier) ApplyTransaction(ctx context.Context, req domain.TransactionRequest) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}

func (m *MockTransactionApplier) FindAppliedTransaction(ctx context.Context, recordID string) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}

// applierFunc adapts a function to TransactionApplierSvc for tests that need
// to observe the step context. It never finds an applied record.
type applierFunc func(ctx context.Context, req domain.TransactionRequest) (*domain.TransactionRecord, error)

func (f applierFunc) ApplyTransaction(ctx context.Context, req domain.TransactionRequest) (*domain.TransactionRecord, error) {
	return f(ctx, req)
}

func (f applierFunc) FindAppliedTransaction(context.Context, string) (*domain.TransactionRecord, error) {
	return nil, apperrors.ErrNotFound
}

// lateCommitApplier commits through inner and, for requests matching late,
// then blocks until the step deadline so the caller sees a timeout for a write
// that landed.
type lateCommitApplier struct {
	inner portssvc.TransactionApplierSvc
	late  func(domain.TransactionRequest) bool
}

func (a *lateCommitApplier) ApplyTransaction(ctx context.Context, req domain.TransactionRequest) (*domain.TransactionRecord, error) {
	record, err := a.inner.ApplyTransaction(ctx, req)
	if err != nil || !a.late(req) {
		return record, err
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func (a *lateCommitApplier) FindAppliedTransaction(ctx context.Context, recordID string) (*domain.TransactionRecord, error) {
	return a.inner.FindAppliedTransaction(ctx, recordID)
}

// decimalEq matches a decimal argument by numeric value.
func decimalEq(v int64) any {
	want := decimal.NewFromInt(v)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}
