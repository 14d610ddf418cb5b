package utils

import (
	"github.com/geek-edu/courseledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatTokenAmount formats a token amount at the token's display precision.
// The token has 0 fractional digits, so 100 stays "100" and any stray
// fraction is rounded away.
func FormatTokenAmount(amount decimal.Decimal) string {
	return amount.Round(domain.TokenPrecision).String()
}

// FormatWithPrecision formats an amount with the given precision.
func FormatWithPrecision(amount decimal.Decimal, precision int32) string {
	return amount.Round(precision).String()
}
