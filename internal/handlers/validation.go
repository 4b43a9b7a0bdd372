package handlers

import (
	"fmt"

	"github.com/SscSPs/inventory_ledger/internal/utils/accounting"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators adds the custom binding tags used by request DTOs to
// gin's validator engine. It must run before any route is served.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("positive_decimal", positiveDecimal); err != nil {
		return fmt.Errorf("failed to register 'positive_decimal': %w", err)
	}
	return nil
}

// positiveDecimal rejects values that are not positive or carry more decimal
// places than the ledger stores.
func positiveDecimal(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return accounting.ValidAmount(value)
}
