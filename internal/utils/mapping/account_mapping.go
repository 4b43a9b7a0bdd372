package mapping

import (
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/SscSPs/inventory_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		Kind:          models.AccountKind(d.Kind),
		DisplayName:   d.DisplayName,
		Balance:       d.Balance,
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		Kind:          domain.AccountKind(m.Kind),
		DisplayName:   m.DisplayName,
		Balance:       m.Balance,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}
