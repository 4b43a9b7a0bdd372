package domain

import "github.com/SscSPs/inventory_ledger/internal/apperrors"

// EffectFlags reports which effects of a business operation committed.
type EffectFlags = apperrors.Effects
