package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidators installs the binding rules shared by the amount
// fields. Every amount in the system is a non-negative whole number; the
// token has 0 fractional digits and reserve amounts are integers of base
// units.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("integeramount", integerAmount)
	}
}

func integerAmount(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return !d.IsNegative() && d.Equal(d.Truncate(0))
}
