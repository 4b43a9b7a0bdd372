package handlers_test

import (
	"context"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ResolveAccount(ctx context.Context, kind domain.AccountKind, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, kind, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) CurrentBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListBankAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) EnsureCashAccount(ctx context.Context, displayName string) (*domain.Account, error) {
	args := m.Called(ctx, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) VerifyBalance(ctx context.Context, accountID string) (*domain.BalanceVerification, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceVerification), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountRegistrySvcFacade = (*MockAccountService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) ListAccountTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

var _ portssvc.TransactionReaderSvc = (*MockTransactionService)(nil)

// --- Mock TransferService ---
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Transfer(ctx context.Context, intent domain.TransferIntent) (*domain.TransferResult, error) {
	args := m.Called(ctx, intent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferResult), args.Error(1)
}

var _ portssvc.TransferSvc = (*MockTransferService)(nil)

// --- Mock OperationService ---
type MockOperationService struct {
	mock.Mock
}

func (m *MockOperationService) ExecutePurchase(ctx context.Context, req domain.PurchaseRequest) (*domain.PurchaseResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseResult), args.Error(1)
}

func (m *MockOperationService) ResumePurchase(ctx context.Context, req domain.PurchaseRequest, prior domain.PurchaseResult) (*domain.PurchaseResult, error) {
	args := m.Called(ctx, req, prior)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseResult), args.Error(1)
}

func (m *MockOperationService) ExecuteExpense(ctx context.Context, req domain.ExpenseRequest) (*domain.ExpenseResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseResult), args.Error(1)
}

func (m *MockOperationService) ResumeExpense(ctx context.Context, req domain.ExpenseRequest, prior domain.ExpenseResult) (*domain.ExpenseResult, error) {
	args := m.Called(ctx, req, prior)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseResult), args.Error(1)
}

var _ portssvc.OperationSvcFacade = (*MockOperationService)(nil)

// --- Mock TimelineService ---
type MockTimelineService struct {
	mock.Mock
}

func (m *MockTimelineService) BuildTimeline(ctx context.Context, productID string) (*domain.ProductTimeline, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductTimeline), args.Error(1)
}

var _ portssvc.TimelineSvc = (*MockTimelineService)(nil)
