package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/dto"
	"github.com/SscSPs/inventory_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// writeServiceError maps a service error onto a status code and JSON body.
// action completes the sentence "Failed to ..." for unexpected faults.
func writeServiceError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromContext(c)

	var (
		unreconciled    *apperrors.UnreconciledTransferError
		partialTransfer *apperrors.PartialTransferError
		partial         *apperrors.PartialFailureError
		insufficient    *apperrors.InsufficientFundsError
	)
	switch {
	case errors.As(err, &unreconciled):
		logger.Error("Transfer left unreconciled, manual action required",
			slog.String("debit_record_id", unreconciled.DebitRecordID),
			slog.String("credit_attempt_id", unreconciled.CreditAttemptID),
			slog.String("compensation_attempt_id", unreconciled.CompensationAttemptID),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     unreconciled.Error(),
			"kind":      apperrors.KindUnreconciledTransfer,
			"recordIDs": unreconciled.RecordIDs(),
		})
	case errors.As(err, &partialTransfer):
		logger.Warn("Transfer credit failed and was compensated", slog.String("error", err.Error()))
		c.JSON(http.StatusMultiStatus, gin.H{
			"error":                partialTransfer.Error(),
			"kind":                 apperrors.KindPartialTransferFailure,
			"debitRecordID":        partialTransfer.DebitRecordID,
			"compensationRecordID": partialTransfer.CompensationRecordID,
		})
	case errors.As(err, &partial):
		writePartialFailure(c, partial, nil)
	case errors.Is(err, apperrors.ErrUnsupported):
		logger.Warn("Unsupported request", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &insufficient):
		logger.Warn("Insufficient funds", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{
			"error":     err.Error(),
			"accountID": insufficient.AccountID,
			"available": insufficient.Available,
			"requested": insufficient.Requested,
		})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInventoryWriteFailed), errors.Is(err, apperrors.ErrExpenseWriteFailed):
		// nothing was committed
		logger.Error("Operation failed before any effect", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + ": " + err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// writePartialFailure reports an operation that committed some of its effects.
func writePartialFailure(c *gin.Context, pf *apperrors.PartialFailureError, result any) {
	middleware.GetLoggerFromContext(c).Warn("Operation partially applied",
		slog.String("kind", string(pf.Kind)),
		slog.String("effects", pf.Effects.String()),
		slog.String("error", pf.Error()))
	c.JSON(http.StatusMultiStatus, dto.OperationFailureResponse{
		Error:        pf.Error(),
		Kind:         string(pf.Kind),
		Effects:      pf.Effects,
		CommittedIDs: pf.CommittedIDs,
		Result:       result,
	})
}
