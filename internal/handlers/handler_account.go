package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/dto"
	"github.com/SscSPs/inventory_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService     portssvc.AccountRegistrySvcFacade
	transactionService portssvc.TransactionReaderSvc
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountRegistrySvcFacade, ts portssvc.TransactionReaderSvc) *accountHandler {
	return &accountHandler{
		accountService:     as,
		transactionService: ts,
	}
}

// RegisterAccountRoutes registers routes related to accounts and their statements.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountRegistrySvcFacade, transactionService portssvc.TransactionReaderSvc) {
	h := newAccountHandler(accountService, transactionService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("/bank", h.createBankAccount)
		accounts.GET("/:accountID", h.getAccount)
		accounts.GET("/:accountID/transactions", h.listAccountTransactions)
		accounts.GET("/:accountID/verify", h.verifyBalance)
	}
}

// listAccounts returns the Cash account followed by every Bank account.
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "list accounts")
		return
	}

	logger.Info("Accounts listed successfully", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// createBankAccount creates a Bank account with a zero balance.
func (h *accountHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create bank account", slog.String("display_name", req.DisplayName))

	account, err := h.accountService.CreateBankAccount(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err, "create bank account")
		return
	}

	logger.Info("Bank account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount returns one account with its cached balance.
func (h *accountHandler) getAccount(c *gin.Context) {
	accountID := c.Param("accountID")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		writeServiceError(c, err, "retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccountTransactions returns a page of the account statement, newest first.
func (h *accountHandler) listAccountTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	accountID := c.Param("accountID")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListAccountTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("account_id", accountID))
	logger.Info("Received request to list account transactions", slog.Int("limit", params.Limit))

	resp, err := h.transactionService.ListAccountTransactions(c.Request.Context(), accountID, params)
	if err != nil {
		writeServiceError(c, err, "list account transactions")
		return
	}

	logger.Info("Account transactions listed successfully", slog.Int("count", len(resp.Transactions)))
	c.JSON(http.StatusOK, resp)
}

// verifyBalance checks the cached balance against the sum of the account's records.
func (h *accountHandler) verifyBalance(c *gin.Context) {
	accountID := c.Param("accountID")

	verification, err := h.accountService.VerifyBalance(c.Request.Context(), accountID)
	if err != nil {
		writeServiceError(c, err, "verify balance")
		return
	}

	c.JSON(http.StatusOK, verification)
}
