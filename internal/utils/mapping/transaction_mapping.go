package mapping

import (
	"database/sql"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/SscSPs/inventory_ledger/internal/models"
)

// ToModelTransaction converts a domain TransactionRecord to a model Transaction
func ToModelTransaction(d domain.TransactionRecord) models.Transaction {
	var causedBy sql.NullString
	if d.CausedBy != nil {
		causedBy = sql.NullString{String: *d.CausedBy, Valid: true}
	}
	return models.Transaction{
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		SignedAmount:  d.SignedAmount,
		Description:   d.Description,
		CausedBy:      causedBy,
		BalanceAfter:  d.BalanceAfter,
		CreatedAt:     d.Timestamp,
	}
}

// ToDomainTransaction converts a model Transaction to a domain TransactionRecord
func ToDomainTransaction(m models.Transaction) domain.TransactionRecord {
	var causedBy *string
	if m.CausedBy.Valid {
		s := m.CausedBy.String
		causedBy = &s
	}
	return domain.TransactionRecord{
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		SignedAmount:  m.SignedAmount,
		Description:   m.Description,
		Timestamp:     m.CreatedAt,
		CausedBy:      causedBy,
		BalanceAfter:  m.BalanceAfter,
	}
}
