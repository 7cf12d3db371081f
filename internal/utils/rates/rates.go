package rates

import "github.com/shopspring/decimal"

var (
	one        = decimal.NewFromInt(1)
	hundred    = decimal.NewFromInt(100)
	twelve     = decimal.NewFromInt(12)
	daysInYear = decimal.NewFromInt(365)
)

// rateScale bounds the precision of rate divisions; decimal division is not
// exact for repeating fractions so a fixed scale keeps results deterministic.
const rateScale = 12

// NormalizeAnnualRate accepts an annual effective rate in either of its two
// stored forms and returns a unit fraction: values above 1 are treated as
// percentages (18 -> 0.18), values at or below 1 are already unit fractions.
// The >1 threshold cannot distinguish a stored 1.5% from a 150% unit
// fraction; existing data relies on it, so it stays.
func NormalizeAnnualRate(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(one) {
		return rate.DivRound(hundred, rateScale)
	}
	return rate
}

// MonthlyRateFromAnnualEffective decomposes an annual unit-fraction rate into
// a monthly rate by simple division. This is an approximation, not the
// compound-interest-exact twelfth root.
func MonthlyRateFromAnnualEffective(annualRateUnit decimal.Decimal) decimal.Decimal {
	return annualRateUnit.DivRound(twelve, rateScale)
}

// DailyRateFromAnnual decomposes an annual unit-fraction rate into a daily
// rate on a 365-day convention. Like the monthly decomposition this is a
// simple division, documented as an approximation.
func DailyRateFromAnnual(annualRateUnit decimal.Decimal) decimal.Decimal {
	return annualRateUnit.DivRound(daysInYear, rateScale)
}
