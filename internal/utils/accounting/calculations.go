package accounting

import (
	"fmt"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places stored for amounts and quantities.
const AmountScale = 4

// ValidAmount reports whether d is positive and representable at AmountScale
// without rounding.
func ValidAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Truncate(AmountScale))
}

// SignedAmount returns the amount with the sign implied by the direction.
// ADD is positive, SUBTRACT is negative.
func SignedAmount(amount decimal.Decimal, direction domain.Direction) (decimal.Decimal, error) {
	switch direction {
	case domain.Add:
		return amount, nil
	case domain.Subtract:
		return amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown direction '%s'", direction)
	}
}

// ApplySigned returns the balance after applying signed and whether the
// result stays non-negative.
func ApplySigned(balance, signed decimal.Decimal) (decimal.Decimal, bool) {
	next := balance.Add(signed)
	return next, !next.IsNegative()
}

// SumSigned folds the signed amounts of records.
func SumSigned(records []domain.TransactionRecord) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		sum = sum.Add(r.SignedAmount)
	}
	return sum
}
