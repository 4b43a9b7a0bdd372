package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/dto"
	"github.com/SscSPs/inventory_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type transferHandler struct {
	transferService portssvc.TransferSvc
}

func newTransferHandler(ts portssvc.TransferSvc) *transferHandler {
	return &transferHandler{transferService: ts}
}

// RegisterTransferRoutes registers routes related to transfers.
func RegisterTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvc) {
	h := newTransferHandler(transferService)
	rg.POST("/transfers", h.createTransfer)
}

// createTransfer moves value from one account to another.
// Retrying a failed transfer is not safe: a 207 or 500 response means the
// source was debited at least once.
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to transfer",
		slog.String("source_kind", string(req.SourceKind)),
		slog.String("source_account_id", req.SourceAccountID),
		slog.String("dest_kind", string(req.DestKind)),
		slog.String("dest_account_id", req.DestAccountID),
		slog.String("amount", req.Amount.String()))

	result, err := h.transferService.Transfer(c.Request.Context(), req.ToTransferIntent())
	if err != nil {
		writeServiceError(c, err, "transfer")
		return
	}

	logger.Info("Transfer completed successfully",
		slog.String("debit_record_id", result.Debit.TransactionID),
		slog.String("credit_record_id", result.Credit.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransferResponse(result))
}
