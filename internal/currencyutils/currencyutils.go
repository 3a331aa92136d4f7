// Package currencyutils provides common monetary amount operations used
// throughout the application.
package currencyutils

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// nonAmountChars matches everything that cannot be part of a plain decimal
// number. Currency symbols, thousands separators, parentheses and stray
// letters are all stripped before parsing.
var nonAmountChars = regexp.MustCompile(`[^0-9.\-]`)

// ParseAmount extracts a monetary value from a noisy token such as
// "$1,234.56", "CHF 45.00" or "(45.00)".
//
// The token is reduced to digits, '.' and '-' and then parsed. The boolean
// is false when nothing parseable remains. The returned value carries no
// sign semantics of its own: parentheses-as-negative and keyword-based
// credit detection are the caller's responsibility, applied before or after
// this call.
func ParseAmount(token string) (decimal.Decimal, bool) {
	cleaned := nonAmountChars.ReplaceAllString(token, "")
	if cleaned == "" {
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// SignForType forces the sign of an amount: negative when expense is true,
// positive otherwise. The sign the source supplied is discarded.
func SignForType(amount decimal.Decimal, expense bool) decimal.Decimal {
	abs := amount.Abs()
	if expense {
		return abs.Neg()
	}
	return abs
}
