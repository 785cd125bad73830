// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("positive_amount", validatePositiveAmount)
	}
}

// validatePositiveAmount checks that a decimal amount is strictly greater
// than zero. Precision is handled later by the money package; this only
// rejects zero and negative values at the binding layer.
func validatePositiveAmount(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.IsPositive()
}
