package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/core/services"
	"github.com/SscSPs/inventory_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionRecorderTestSuite struct {
	suite.Suite
	mockAccounts *MockAccountRepository
	mockTxns     *MockTransactionRepository
	recorder     portssvc.TransactionRecorderSvcFacade
	tx           *fakeTx
}

func (suite *TransactionRecorderTestSuite) SetupTest() {
	suite.mockAccounts = new(MockAccountRepository)
	suite.mockTxns = new(MockTransactionRepository)
	suite.recorder = services.NewTransactionRecorder(suite.mockAccounts, suite.mockTxns)
	suite.tx = &fakeTx{}
}

func (suite *TransactionRecorderTestSuite) account(balance int64) *domain.Account {
	return &domain.Account{AccountID: "bank-1", Kind: domain.Bank, DisplayName: "Main", Balance: decimal.NewFromInt(balance)}
}

func (suite *TransactionRecorderTestSuite) TestApplyTransaction_Subtract_Success() {
	ctx := context.Background()
	cause := "ledger-9"

	suite.mockAccounts.On("Begin", ctx).Return(suite.tx, nil).Once()
	suite.mockAccounts.On("FindAccountByIDForUpdate", ctx, suite.tx, "bank-1").Return(suite.account(100), nil).Once()
	suite.mockTxns.On("SaveTransactionInTx", ctx, suite.tx, mock.MatchedBy(func(r domain.TransactionRecord) bool {
		return r.TransactionID == "rec-1" &&
			r.SignedAmount.Equal(decimal.NewFromInt(-40)) &&
			r.BalanceAfter.Equal(decimal.NewFromInt(60)) &&
			r.CausedBy != nil && *r.CausedBy == cause
	})).Return(nil).Once()
	suite.mockAccounts.On("UpdateAccountBalanceInTx", ctx, suite.tx, "bank-1", decimalEq(60), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAccounts.On("Commit", ctx, suite.tx).Return(nil).Once()

	rec, err := suite.recorder.ApplyTransaction(ctx, domain.TransactionRequest{
		RecordID:  "rec-1",
		AccountID: "bank-1",
		Amount:    decimal.NewFromInt(40),
		Direction: domain.Subtract,
		CausedBy:  &cause,
	})

	suite.Require().NoError(err)
	suite.Equal("rec-1", rec.TransactionID)
	suite.True(rec.BalanceAfter.Equal(decimal.NewFromInt(60)))
	suite.mockAccounts.AssertNotCalled(suite.T(), "Rollback", mock.Anything, mock.Anything)
	suite.mockAccounts.AssertExpectations(suite.T())
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *TransactionRecorderTestSuite) TestApplyTransaction_GeneratesRecordID() {
	ctx := context.Background()

	suite.mockAccounts.On("Begin", ctx).Return(suite.tx, nil).Once()
	suite.mockAccounts.On("FindAccountByIDForUpdate", ctx, suite.tx, "bank-1").Return(suite.account(0), nil).Once()
	suite.mockTxns.On("SaveTransactionInTx", ctx, suite.tx, mock.AnythingOfType("domain.TransactionRecord")).Return(nil).Once()
	suite.mockAccounts.On("UpdateAccountBalanceInTx", ctx, suite.tx, "bank-1", decimalEq(25), mock.Anything).Return(nil).Once()
	suite.mockAccounts.On("Commit", ctx, suite.tx).Return(nil).Once()

	rec, err := suite.recorder.ApplyTransaction(ctx, domain.TransactionRequest{
		AccountID: "bank-1",
		Amount:    decimal.NewFromInt(25),
		Direction: domain.Add,
	})

	suite.Require().NoError(err)
	suite.NotEmpty(rec.TransactionID)
	suite.True(rec.SignedAmount.Equal(decimal.NewFromInt(25)))
}

func (suite *TransactionRecorderTestSuite) TestApplyTransaction_InsufficientFunds() {
	ctx := context.Background()

	suite.mockAccounts.On("Begin", ctx).Return(suite.tx, nil).Once()
	suite.mockAccounts.On("FindAccountByIDForUpdate", ctx, suite.tx, "bank-1").Return(suite.account(30), nil).Once()
	suite.mockAccounts.On("Rollback", ctx, suite.tx).Return(nil).Once()

	rec, err := suite.recorder.ApplyTransaction(ctx, domain.TransactionRequest{
		AccountID: "bank-1",
		Amount:    decimal.RequireFromString("30.01"),
		Direction: domain.Subtract,
	})

	suite.Require().Error(err)
	suite.Nil(rec)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.ErrorIs(err, apperrors.ErrConflict)
	var insufficient *apperrors.InsufficientFundsError
	suite.Require().True(errors.As(err, &insufficient))
	suite.True(insufficient.Available.Equal(decimal.NewFromInt(30)))
	suite.mockTxns.AssertNotCalled(suite.T(), "SaveTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccounts.AssertExpectations(suite.T())
}

func (suite *TransactionRecorderTestSuite) TestApplyTransaction_AccountNotFound() {
	ctx := context.Background()

	suite.mockAccounts.On("Begin", ctx).Return(suite.tx, nil).Once()
	suite.mockAccounts.On("FindAccountByIDForUpdate", ctx, suite.tx, "ghost").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccounts.On("Rollback", ctx, suite.tx).Return(nil).Once()

	_, err := suite.recorder.ApplyTransaction(ctx, domain.TransactionRequest{
		AccountID: "ghost",
		Amount:    decimal.NewFromInt(1),
		Direction: domain.Add,
	})

	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
	suite.mockAccounts.AssertExpectations(suite.T())
}

func (suite *TransactionRecorderTestSuite) TestApplyTransaction_SaveFails_RollsBack() {
	ctx := context.Background()

	suite.mockAccounts.On("Begin", ctx).Return(suite.tx, nil).Once()
	suite.mockAccounts.On("FindAccountByIDForUpdate", ctx, suite.tx, "bank-1").Return(suite.account(10), nil).Once()
	suite.mockTxns.On("SaveTransactionInTx", ctx, suite.tx, mock.Anything).Return(assert.AnError).Once()
	suite.mockAccounts.On("Rollback", ctx, suite.tx).Return(nil).Once()

	_, err := suite.recorder.ApplyTransaction(ctx, domain.TransactionRequest{
		AccountID: "bank-1",
		Amount:    decimal.NewFromInt(5),
		Direction: domain.Add,
	})

	suite.ErrorIs(err, assert.AnError)
	suite.mockAccounts.AssertNotCalled(suite.T(), "UpdateAccountBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccounts.AssertExpectations(suite.T())
}

func (suite *TransactionRecorderTestSuite) TestApplyTransaction_RejectsBadInput() {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     domain.TransactionRequest
		wantErr error
	}{
		{
			name:    "zero amount",
			req:     domain.TransactionRequest{AccountID: "bank-1", Amount: decimal.Zero, Direction: domain.Add},
			wantErr: apperrors.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			req:     domain.TransactionRequest{AccountID: "bank-1", Amount: decimal.NewFromInt(-3), Direction: domain.Subtract},
			wantErr: apperrors.ErrInvalidAmount,
		},
		{
			name:    "below stored precision",
			req:     domain.TransactionRequest{AccountID: "bank-1", Amount: decimal.RequireFromString("0.00001"), Direction: domain.Add},
			wantErr: apperrors.ErrInvalidAmount,
		},
		{
			name:    "unknown direction",
			req:     domain.TransactionRequest{AccountID: "bank-1", Amount: decimal.NewFromInt(3), Direction: "UP"},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "missing account",
			req:     domain.TransactionRequest{Amount: decimal.NewFromInt(3), Direction: domain.Add},
			wantErr: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.recorder.ApplyTransaction(ctx, tt.req)
			suite.ErrorIs(err, tt.wantErr)
		})
	}
	suite.mockAccounts.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *TransactionRecorderTestSuite) TestListAccountTransactions_DefaultsLimit() {
	ctx := context.Background()
	next := "token-2"
	records := []domain.TransactionRecord{
		{TransactionID: "t2", AccountID: "bank-1", SignedAmount: decimal.NewFromInt(-5)},
		{TransactionID: "t1", AccountID: "bank-1", SignedAmount: decimal.NewFromInt(20)},
	}

	suite.mockAccounts.On("FindAccountByID", ctx, "bank-1").Return(suite.account(15), nil).Once()
	suite.mockTxns.On("ListTransactionsByAccountID", ctx, "bank-1", 20, (*string)(nil)).Return(records, &next, nil).Once()

	resp, err := suite.recorder.ListAccountTransactions(ctx, "bank-1", dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 2)
	suite.Equal("t2", resp.Transactions[0].TransactionID)
	suite.Equal(&next, resp.NextToken)
	suite.mockTxns.AssertExpectations(suite.T())
}

func (suite *TransactionRecorderTestSuite) TestListAccountTransactions_UnknownAccount() {
	ctx := context.Background()
	suite.mockAccounts.On("FindAccountByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.recorder.ListAccountTransactions(ctx, "ghost", dto.ListTransactionsParams{Limit: 5})

	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
	suite.mockTxns.AssertNotCalled(suite.T(), "ListTransactionsByAccountID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionRecorderTestSuite) TestFindAppliedTransaction() {
	ctx := context.Background()
	stored := &domain.TransactionRecord{TransactionID: "rec-1", AccountID: "bank-1", SignedAmount: decimal.NewFromInt(-40)}
	suite.mockTxns.On("FindTransactionByID", ctx, "rec-1").Return(stored, nil).Once()
	suite.mockTxns.On("FindTransactionByID", ctx, "rec-2").Return(nil, apperrors.ErrNotFound).Once()

	rec, err := suite.recorder.FindAppliedTransaction(ctx, "rec-1")
	suite.Require().NoError(err)
	suite.Equal(stored, rec)

	_, err = suite.recorder.FindAppliedTransaction(ctx, "rec-2")
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxns.AssertExpectations(suite.T())
}

func TestTransactionRecorderTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionRecorderTestSuite))
}

func TestTransactionRecorder_BalanceMatchesRecords(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	ledger.addAccount("cash", domain.Cash, "Cash")
	recorder := services.NewTransactionRecorder(ledger, ledger)
	registry := services.NewAccountRegistry(ledger, ledger)

	steps := []struct {
		amount    string
		direction domain.Direction
		wantErr   error
	}{
		{"100", domain.Add, nil},
		{"35.50", domain.Subtract, nil},
		{"70", domain.Subtract, apperrors.ErrInsufficientFunds},
		{"64.50", domain.Subtract, nil},
		{"0.01", domain.Subtract, apperrors.ErrInsufficientFunds},
		{"12.25", domain.Add, nil},
	}
	for _, st := range steps {
		_, err := recorder.ApplyTransaction(ctx, domain.TransactionRequest{
			AccountID: "cash",
			Amount:    decimal.RequireFromString(st.amount),
			Direction: st.direction,
		})
		if st.wantErr != nil {
			assert.ErrorIs(t, err, st.wantErr)
		} else {
			assert.NoError(t, err)
		}
	}

	v, err := registry.VerifyBalance(ctx, "cash")
	assert.NoError(t, err)
	assert.True(t, v.Consistent)
	assert.Equal(t, 4, v.RecordCount)
	assert.True(t, decimal.RequireFromString("12.25").Equal(v.Cached), "cached %s", v.Cached)
}
