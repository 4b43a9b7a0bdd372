package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/dto"
	"github.com/SscSPs/inventory_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// operationHandler handles purchases and expenses.
type operationHandler struct {
	operationService portssvc.OperationSvcFacade
	now              func() time.Time
}

func newOperationHandler(ops portssvc.OperationSvcFacade) *operationHandler {
	return &operationHandler{operationService: ops, now: time.Now}
}

// RegisterOperationRoutes registers purchase and expense routes.
func RegisterOperationRoutes(rg *gin.RouterGroup, operationService portssvc.OperationSvcFacade) {
	h := newOperationHandler(operationService)

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.executePurchase)
		purchases.POST("/resume", h.resumePurchase)
	}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.executeExpense)
		expenses.POST("/resume", h.resumeExpense)
	}
}

// writeOperationError reports a partial failure together with the result
// trace, which the caller needs to resume.
func writeOperationError(c *gin.Context, err error, result any, action string) {
	var pf *apperrors.PartialFailureError
	if errors.As(err, &pf) {
		writePartialFailure(c, pf, result)
		return
	}
	writeServiceError(c, err, action)
}

func (h *operationHandler) executePurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ExecutePurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to execute purchase",
		slog.String("supplier_id", req.SupplierID),
		slog.String("payment_method", string(req.PaymentMethod)),
		slog.String("amount", req.Amount.String()))

	result, err := h.operationService.ExecutePurchase(c.Request.Context(), req.ToPurchaseRequest(h.now()))
	if err != nil {
		writeOperationError(c, err, result, "execute purchase")
		return
	}

	logger.Info("Purchase executed successfully", slog.String("inventory_record_id", result.InventoryRecordID))
	c.JSON(http.StatusCreated, result)
}

func (h *operationHandler) resumePurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.ResumePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ResumePurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to resume purchase", slog.String("prior_effects", req.Prior.Effects.String()))

	result, err := h.operationService.ResumePurchase(c.Request.Context(), req.Purchase.ToPurchaseRequest(h.now()), req.Prior)
	if err != nil {
		writeOperationError(c, err, result, "resume purchase")
		return
	}

	logger.Info("Purchase resumed successfully", slog.String("inventory_record_id", result.InventoryRecordID))
	c.JSON(http.StatusOK, result)
}

func (h *operationHandler) executeExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ExecuteExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to execute expense",
		slog.String("category", req.Category),
		slog.String("payment_method", string(req.PaymentMethod)),
		slog.String("amount", req.Amount.String()))

	result, err := h.operationService.ExecuteExpense(c.Request.Context(), req.ToExpenseRequest(h.now()))
	if err != nil {
		writeOperationError(c, err, result, "execute expense")
		return
	}

	logger.Info("Expense executed successfully", slog.String("expense_entry_id", result.ExpenseEntryID))
	c.JSON(http.StatusCreated, result)
}

func (h *operationHandler) resumeExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.ResumeExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ResumeExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.operationService.ResumeExpense(c.Request.Context(), req.Expense.ToExpenseRequest(h.now()), req.Prior)
	if err != nil {
		writeOperationError(c, err, result, "resume expense")
		return
	}

	logger.Info("Expense resumed successfully", slog.String("expense_entry_id", result.ExpenseEntryID))
	c.JSON(http.StatusOK, result)
}
