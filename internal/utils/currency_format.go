package utils

import "github.com/shopspring/decimal"

// FormatMoney renders a monetary amount as a fixed two-decimal string for API
// responses (e.g. "123.40"), never a raw float.
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatRate renders a unit-fraction rate with enough precision to round-trip
// typical annual effective rates.
func FormatRate(rate decimal.Decimal) string {
	return rate.Round(6).String()
}
